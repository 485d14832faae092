// Package standings folds a flat list of match records into a sorted league
// table. It shares the match record shape with the bracket engine but is
// otherwise independent of it.
package standings

import (
	"sort"

	"github.com/cupstage/cupstage/models"
)

// Row is one participant's aggregated league record.
type Row struct {
	ParticipantID string `json:"participant_id,omitempty"`
	Name          string `json:"name"`
	Played        int    `json:"played"`
	Wins          int    `json:"wins"`
	Draws         int    `json:"draws"`
	Losses        int    `json:"losses"`
	GoalsFor      int    `json:"goals_for"`
	GoalsAgainst  int    `json:"goals_against"`
	GoalDiff      int    `json:"goal_difference"`
	Points        int    `json:"points"`
}

const (
	pointsWin  = 3
	pointsDraw = 1
)

// Aggregate builds the table from scratch on every call. Records without a
// parseable result contribute nothing, not even a played count.
//
// Rows are keyed by participant id when the record carries one; only id-less
// records fall back to the display name, so two participants that happen to
// share a name never merge.
func Aggregate(records []models.MatchRecord) []Row {
	index := make(map[string]*Row)
	rows := make([]*Row, 0, len(records))

	rowFor := func(id *string, name string) *Row {
		key := "name:" + name
		if id != nil {
			key = "id:" + *id
		}
		if row, ok := index[key]; ok {
			return row
		}
		row := &Row{Name: name}
		if id != nil {
			row.ParticipantID = *id
		}
		index[key] = row
		rows = append(rows, row)
		return row
	}

	for i := range records {
		rec := &records[i]
		homeGoals, awayGoals, ok := rec.ParsedResult()
		if !ok {
			continue
		}

		home := rowFor(rec.HomeID, rec.HomeName)
		away := rowFor(rec.AwayID, rec.AwayName)

		home.Played++
		away.Played++
		home.GoalsFor += homeGoals
		home.GoalsAgainst += awayGoals
		away.GoalsFor += awayGoals
		away.GoalsAgainst += homeGoals

		switch {
		case homeGoals > awayGoals:
			home.Wins++
			home.Points += pointsWin
			away.Losses++
		case awayGoals > homeGoals:
			away.Wins++
			away.Points += pointsWin
			home.Losses++
		default:
			home.Draws++
			away.Draws++
			home.Points += pointsDraw
			away.Points += pointsDraw
		}

		home.GoalDiff = home.GoalsFor - home.GoalsAgainst
		away.GoalDiff = away.GoalsFor - away.GoalsAgainst
	}

	table := make([]Row, len(rows))
	for i, row := range rows {
		table[i] = *row
	}

	sort.Slice(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		if table[i].GoalDiff != table[j].GoalDiff {
			return table[i].GoalDiff > table[j].GoalDiff
		}
		if table[i].GoalsFor != table[j].GoalsFor {
			return table[i].GoalsFor > table[j].GoalsFor
		}
		return table[i].Name < table[j].Name
	})

	return table
}
