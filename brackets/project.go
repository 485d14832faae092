package brackets

import (
	"github.com/cupstage/cupstage/models"
)

// Round groups the slots of one elimination depth for display, first round
// first. A slice keeps the skeleton's round order; a map would not.
type Round struct {
	Label string `json:"label"`
	Slots []Slot `json:"slots"`
}

// Project overlays the current match records onto a skeleton and advances
// winners into their next-round slots. It is a pure function: the skeleton
// is never written through, every overlay installs fresh values, so calling
// it again with the same inputs yields an identical result.
func Project(skeleton []Slot, records []models.MatchRecord) []Round {
	slots := make([]Slot, len(skeleton))
	copy(slots, skeleton)

	index := make(map[int]int, len(slots))
	for i, s := range slots {
		index[s.ID] = i
	}

	// Overlay pass: bind each record to its slot. Records pointing at a
	// slot that no longer exists are skipped, which keeps old records
	// harmless after the bracket was regenerated at a different size.
	for i := range records {
		rec := &records[i]
		if rec.BracketSlotID == nil {
			continue
		}
		at, ok := index[*rec.BracketSlotID]
		if !ok {
			continue
		}
		overlay(&slots[at], rec)
	}

	// Propagation pass in ascending slot id order, so every feeder round is
	// final before its targets are touched. Tied slots have no winner and
	// deliberately advance nobody.
	for i := range slots {
		s := &slots[i]
		if s.Status != SlotCompleted || s.NextSlotID == nil {
			continue
		}
		winner := winnerSide(s)
		if winner == nil {
			continue
		}
		target := &slots[index[*s.NextSlotID]]
		placeWinner(target, s.RoundIndex%2, winner)
	}

	return groupByRound(slots)
}

func overlay(s *Slot, rec *models.MatchRecord) {
	id := rec.ID
	s.LinkedMatchID = &id
	s.Sides[0] = Side{ParticipantID: rec.HomeID, Name: sideName(rec.HomeName)}
	s.Sides[1] = Side{ParticipantID: rec.AwayID, Name: sideName(rec.AwayName)}

	home, away, ok := rec.ParsedResult()
	if !ok {
		s.Status = SlotScheduled
		return
	}

	h, a := home, away
	s.Sides[0].Score = &h
	s.Sides[1].Score = &a

	switch {
	case home > away:
		s.Sides[0].Winner = true
		s.Status = SlotCompleted
	case away > home:
		s.Sides[1].Winner = true
		s.Status = SlotCompleted
	default:
		s.Status = SlotTied
	}
}

// placeWinner puts the winner into the target side unless the same
// participant already sits there (value comparison on the id, so reruns of
// the projection do not stack). It then recomputes the target's readiness.
func placeWinner(target *Slot, sideIndex int, winner *Side) {
	current := target.Sides[sideIndex].ParticipantID
	if current == nil || winner.ParticipantID == nil || *current != *winner.ParticipantID {
		target.Sides[sideIndex] = Side{
			ParticipantID: winner.ParticipantID,
			Name:          winner.Name,
		}
	}

	if target.Status == SlotCompleted || target.Status == SlotTied {
		return
	}
	if target.Sides[0].ParticipantID != nil && target.Sides[1].ParticipantID != nil {
		target.Status = SlotScheduled
	} else {
		target.Status = SlotPending
	}
}

func winnerSide(s *Slot) *Side {
	for i := range s.Sides {
		if s.Sides[i].Winner {
			return &s.Sides[i]
		}
	}
	return nil
}

func sideName(name string) string {
	if name == "" {
		return placeholderName
	}
	return name
}

func groupByRound(slots []Slot) []Round {
	rounds := make([]Round, 0, 8)
	for _, s := range slots {
		if len(rounds) == 0 || rounds[len(rounds)-1].Label != s.RoundLabel {
			rounds = append(rounds, Round{Label: s.RoundLabel})
		}
		last := &rounds[len(rounds)-1]
		last.Slots = append(last.Slots, s)
	}
	return rounds
}
