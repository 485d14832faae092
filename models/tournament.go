package models

import "time"

// TournamentFormat selects which projection the standings view runs.
// The core never infers the format from match data.
type TournamentFormat string

const (
	FormatElimination TournamentFormat = "elimination"
	FormatLeague      TournamentFormat = "league"
)

type TournamentStatus string

const (
	StatusDraft        TournamentStatus = "draft"
	StatusRegistration TournamentStatus = "registration"
	StatusActive       TournamentStatus = "active"
	StatusCompleted    TournamentStatus = "completed"
	StatusCanceled     TournamentStatus = "canceled"
)

type Tournament struct {
	ID          int              `json:"id" db:"id"`
	Name        string           `json:"name" db:"name"`
	Description *string          `json:"description,omitempty" db:"description"`
	Format      TournamentFormat `json:"format" db:"format"`
	// ParticipantCount is the bracket size for elimination tournaments.
	// Zero for league tournaments.
	ParticipantCount int              `json:"participant_count,omitempty" db:"participant_count"`
	OrganizerID      int              `json:"organizer_id" db:"organizer_id"`
	Status           TournamentStatus `json:"status" db:"status"`
	LogoKey          *string          `json:"-" db:"logo_key"`
	LogoURL          *string          `json:"logo_url,omitempty" db:"-"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`

	// Optional linked data, populated by services, not mapped directly.
	Organizer    *User         `json:"organizer,omitempty" db:"-"`
	Participants []Participant `json:"participants,omitempty" db:"-"`
	Matches      []MatchRecord `json:"matches,omitempty" db:"-"`
}
