package brackets

import (
	"errors"
	"strconv"
)

// ErrInvalidParticipantCount is the only hard failure of the bracket engine.
// Every other malformed input degrades to "not played yet".
var ErrInvalidParticipantCount = errors.New("participant count must be a power of two, minimum 2")

type SlotStatus string

const (
	SlotPending   SlotStatus = "pending"
	SlotScheduled SlotStatus = "scheduled"
	SlotCompleted SlotStatus = "completed"
	SlotTied      SlotStatus = "tied"
)

const placeholderName = "TBD"

// Side is one half of a bracket slot.
type Side struct {
	ParticipantID *string `json:"participant_id"`
	Name          string  `json:"name"`
	Score         *int    `json:"score,omitempty"`
	Winner        bool    `json:"winner"`
}

// Slot is one cell of the elimination skeleton. Slot ids start at 1 and run
// round by round, so a flat slice indexed by ID-1 holds the whole bracket.
type Slot struct {
	ID int `json:"slot_id"`
	// NextSlotID is where this slot's winner advances. Nil for the final.
	NextSlotID    *int       `json:"next_slot_id,omitempty"`
	RoundLabel    string     `json:"round_label"`
	RoundIndex    int        `json:"round_index"`
	Sides         [2]Side    `json:"sides"`
	Status        SlotStatus `json:"status"`
	LinkedMatchID *string    `json:"linked_match_id,omitempty"`
}

// GenerateSkeleton builds the empty bracket for participantCount entrants:
// participantCount-1 slots over log2(participantCount) rounds, where slots
// 2k and 2k+1 of one round both feed slot k of the next.
func GenerateSkeleton(participantCount int) ([]Slot, error) {
	if participantCount < 2 || participantCount&(participantCount-1) != 0 {
		return nil, ErrInvalidParticipantCount
	}

	slots := make([]Slot, 0, participantCount-1)
	matchesInRound := participantCount / 2
	round := 1
	nextID := 1

	for matchesInRound >= 1 {
		nextRoundStart := nextID + matchesInRound
		label := roundLabel(round, matchesInRound)

		for i := 0; i < matchesInRound; i++ {
			slot := Slot{
				ID:         nextID + i,
				RoundLabel: label,
				RoundIndex: i,
				Status:     SlotScheduled,
				Sides: [2]Side{
					{Name: placeholderName},
					{Name: placeholderName},
				},
			}
			if matchesInRound > 1 {
				next := nextRoundStart + i/2
				slot.NextSlotID = &next
			}
			slots = append(slots, slot)
		}

		nextID = nextRoundStart
		matchesInRound /= 2
		round++
	}

	return slots, nil
}

func roundLabel(round, matchesInRound int) string {
	if matchesInRound == 1 {
		return "Final"
	}
	return "Round " + strconv.Itoa(round)
}
