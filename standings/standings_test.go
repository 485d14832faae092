package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cupstage/cupstage/models"
)

func strPtr(s string) *string { return &s }

func record(homeID, homeName, awayID, awayName string, result *string) models.MatchRecord {
	rec := models.MatchRecord{
		TournamentID: 1,
		HomeName:     homeName,
		AwayName:     awayName,
		Result:       result,
	}
	if homeID != "" {
		rec.HomeID = strPtr(homeID)
	}
	if awayID != "" {
		rec.AwayID = strPtr(awayID)
	}
	return rec
}

func TestAggregateBasicTable(t *testing.T) {
	records := []models.MatchRecord{
		record("", "Alpha", "", "Bravo", strPtr("3-1")),
		record("", "Bravo", "", "Alpha", strPtr("2-2")),
	}

	table := Aggregate(records)
	require.Len(t, table, 2)

	alpha := table[0]
	assert.Equal(t, "Alpha", alpha.Name)
	assert.Equal(t, 2, alpha.Played)
	assert.Equal(t, 1, alpha.Wins)
	assert.Equal(t, 1, alpha.Draws)
	assert.Equal(t, 0, alpha.Losses)
	assert.Equal(t, 5, alpha.GoalsFor)
	assert.Equal(t, 3, alpha.GoalsAgainst)
	assert.Equal(t, 2, alpha.GoalDiff)
	assert.Equal(t, 4, alpha.Points)

	bravo := table[1]
	assert.Equal(t, "Bravo", bravo.Name)
	assert.Equal(t, 2, bravo.Played)
	assert.Equal(t, 0, bravo.Wins)
	assert.Equal(t, 1, bravo.Draws)
	assert.Equal(t, 1, bravo.Losses)
	assert.Equal(t, 3, bravo.GoalsFor)
	assert.Equal(t, 5, bravo.GoalsAgainst)
	assert.Equal(t, -2, bravo.GoalDiff)
	assert.Equal(t, 1, bravo.Points)
}

func TestAggregateSkipsUnplayedRecords(t *testing.T) {
	records := []models.MatchRecord{
		record("", "Alpha", "", "Bravo", nil),
		record("", "Alpha", "", "Bravo", strPtr("not a score")),
		record("", "Alpha", "", "Bravo", strPtr("1-0")),
	}

	table := Aggregate(records)
	require.Len(t, table, 2)
	assert.Equal(t, 1, table[0].Played)
	assert.Equal(t, 1, table[1].Played)
}

func TestAggregateEmptyInput(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
	assert.Empty(t, Aggregate([]models.MatchRecord{}))
}

func TestAggregateTieBreakOrder(t *testing.T) {
	// Two pairs of teams level on points, split by goal difference.
	records := []models.MatchRecord{
		record("", "Delta", "", "Echo", strPtr("4-0")),
		record("", "Foxtrot", "", "Golf", strPtr("2-0")),
		record("", "Echo", "", "Golf", strPtr("1-1")),
	}

	table := Aggregate(records)
	require.Len(t, table, 4)

	// Delta and Foxtrot both have 3 points; Delta wins on goal difference.
	assert.Equal(t, "Delta", table[0].Name)
	assert.Equal(t, "Foxtrot", table[1].Name)
	// Echo and Golf both have 1 point; Echo is behind on goal difference.
	assert.Equal(t, "Golf", table[2].Name)
	assert.Equal(t, "Echo", table[3].Name)
}

func TestAggregateNameTieBreakIsAlphabetical(t *testing.T) {
	records := []models.MatchRecord{
		record("", "Zulu", "", "Alpha", strPtr("1-1")),
	}

	table := Aggregate(records)
	require.Len(t, table, 2)
	assert.Equal(t, "Alpha", table[0].Name)
	assert.Equal(t, "Zulu", table[1].Name)
}

func TestAggregateKeysByParticipantID(t *testing.T) {
	// Two distinct participants sharing a display name must not merge.
	records := []models.MatchRecord{
		record("p1", "Smith", "p2", "Smith", strPtr("1-0")),
	}

	table := Aggregate(records)
	require.Len(t, table, 2)
	assert.Equal(t, "p1", table[0].ParticipantID)
	assert.Equal(t, 3, table[0].Points)
	assert.Equal(t, "p2", table[1].ParticipantID)
	assert.Equal(t, 0, table[1].Points)
}

func TestAggregateMergesIDAcrossNameChanges(t *testing.T) {
	// A renamed participant keeps a single row because the id wins over
	// the display name.
	records := []models.MatchRecord{
		record("p1", "Old Name", "p2", "Bravo", strPtr("2-0")),
		record("p2", "Bravo", "p1", "New Name", strPtr("0-1")),
	}

	table := Aggregate(records)
	require.Len(t, table, 2)
	assert.Equal(t, "p1", table[0].ParticipantID)
	assert.Equal(t, 2, table[0].Played)
	assert.Equal(t, 6, table[0].Points)
}
