package models

import "time"

// Participant is one entrant of a tournament. The ID is opaque to the
// bracket and standings code: it may stand for an individual or a team.
type Participant struct {
	ID           string    `json:"id" db:"id"`
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	Name         string    `json:"name" db:"name"`
	Seed         *int      `json:"seed,omitempty" db:"seed"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
