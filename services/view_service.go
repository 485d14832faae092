package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/cupstage/cupstage/brackets"
	"github.com/cupstage/cupstage/models"
	"github.com/cupstage/cupstage/repositories"
	"github.com/cupstage/cupstage/standings"
	"golang.org/x/sync/errgroup"
)

// TournamentView is the display-ready projection of one tournament: a
// round-grouped bracket for elimination play, a sorted table for league play.
// Exactly one of Bracket/Table is set, per the tournament's format.
type TournamentView struct {
	TournamentID int                     `json:"tournament_id"`
	Name         string                  `json:"name"`
	Format       models.TournamentFormat `json:"format"`
	Status       models.TournamentStatus `json:"status"`
	Bracket      []brackets.Round        `json:"bracket,omitempty"`
	Table        []standings.Row         `json:"table,omitempty"`
}

type TournamentViewService interface {
	GetView(ctx context.Context, tournamentID int) (*TournamentView, error)
}

type tournamentViewService struct {
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRecordRepository
}

func NewTournamentViewService(
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRecordRepository,
) TournamentViewService {
	return &tournamentViewService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
	}
}

// GetView loads the tournament and its full match snapshot, then recomputes
// the projection from scratch. There is no incremental path: the record set
// is tiny and pure recomputation keeps the engine stateless.
func (s *tournamentViewService) GetView(ctx context.Context, tournamentID int) (*TournamentView, error) {
	var (
		tournament *models.Tournament
		records    []*models.MatchRecord
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.tournamentRepo.GetByID(gCtx, tournamentID)
		if err != nil {
			return err
		}
		tournament = t
		return nil
	})
	g.Go(func() error {
		list, err := s.matchRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return err
		}
		records = list
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to load tournament %d view data: %w", tournamentID, err)
	}

	return BuildView(tournament, matchRecordsToValues(records))
}

// BuildView runs the format-appropriate pure projection over an already
// loaded snapshot. Exposed so write paths can rebuild the view they just
// changed without a second repository round trip.
func BuildView(tournament *models.Tournament, records []models.MatchRecord) (*TournamentView, error) {
	view := &TournamentView{
		TournamentID: tournament.ID,
		Name:         tournament.Name,
		Format:       tournament.Format,
		Status:       tournament.Status,
	}

	switch tournament.Format {
	case models.FormatElimination:
		skeleton, err := brackets.GenerateSkeleton(tournament.ParticipantCount)
		if err != nil {
			// Configuration error: surfaced, never rendered partially.
			return nil, err
		}
		view.Bracket = brackets.Project(skeleton, records)
	case models.FormatLeague:
		view.Table = standings.Aggregate(records)
	default:
		return nil, ErrTournamentInvalidFormat
	}

	return view, nil
}
