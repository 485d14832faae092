package models

import (
	"strconv"
	"strings"
	"time"
)

// MatchRecord is one scheduled or played match as the match store keeps it.
// Home/away names are denormalized at creation time so a record stays
// renderable even if a participant row is later removed.
type MatchRecord struct {
	ID           string `json:"id" db:"id"`
	TournamentID int    `json:"tournament_id" db:"tournament_id"`
	// BracketSlotID ties the record to a slot of the elimination skeleton.
	// Nil for league matches.
	BracketSlotID *int      `json:"bracket_slot_id,omitempty" db:"bracket_slot_id"`
	HomeID        *string   `json:"home_id,omitempty" db:"home_id"`
	AwayID        *string   `json:"away_id,omitempty" db:"away_id"`
	HomeName      string    `json:"home_name" db:"home_name"`
	AwayName      string    `json:"away_name" db:"away_name"`
	Result        *string   `json:"result,omitempty" db:"result"`
	Date          *string   `json:"date,omitempty" db:"match_date"`
	Time          *string   `json:"time,omitempty" db:"match_time"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// ParsedResult splits the free-text result ("<home>-<away>") into scores.
// Anything that does not parse as two integers reads as "not played yet",
// never as an error.
func (m *MatchRecord) ParsedResult() (home, away int, ok bool) {
	if m.Result == nil {
		return 0, 0, false
	}
	parts := strings.SplitN(*m.Result, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	home, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	away, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return home, away, true
}
