package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cupstage/cupstage/brackets"
	"github.com/cupstage/cupstage/models"
	"github.com/cupstage/cupstage/repositories"
	"github.com/google/uuid"
)

type ScheduleMatchInput struct {
	BracketSlotID *int    `json:"bracket_slot_id"`
	HomeID        *string `json:"home_id"`
	AwayID        *string `json:"away_id"`
	HomeName      string  `json:"home_name"`
	AwayName      string  `json:"away_name"`
	Date          *string `json:"date"`
	Time          *string `json:"time"`
}

type ReportResultInput struct {
	// Result is free text; "2-1" marks a played match, anything that does
	// not parse as two integers reads as not played. Empty clears it.
	Result string `json:"result"`
}

type MatchService interface {
	Schedule(ctx context.Context, tournamentID, currentUserID int, input ScheduleMatchInput) (*models.MatchRecord, error)
	ReportResult(ctx context.Context, matchID string, currentUserID int, input ReportResultInput) (*models.MatchRecord, error)
	Reschedule(ctx context.Context, matchID string, currentUserID int, date, matchTime *string) (*models.MatchRecord, error)
	Delete(ctx context.Context, matchID string, currentUserID int) error
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.MatchRecord, error)
}

type matchService struct {
	matchRepo      repositories.MatchRecordRepository
	tournamentRepo repositories.TournamentRepository
	viewService    TournamentViewService
	hub            *brackets.Hub
	logger         *slog.Logger
}

func NewMatchService(
	matchRepo repositories.MatchRecordRepository,
	tournamentRepo repositories.TournamentRepository,
	viewService TournamentViewService,
	hub *brackets.Hub,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		matchRepo:      matchRepo,
		tournamentRepo: tournamentRepo,
		viewService:    viewService,
		hub:            hub,
		logger:         logger,
	}
}

func (s *matchService) Schedule(ctx context.Context, tournamentID, currentUserID int, input ScheduleMatchInput) (*models.MatchRecord, error) {
	tournament, err := s.ownedTournament(ctx, tournamentID, currentUserID)
	if err != nil {
		return nil, err
	}

	homeName := strings.TrimSpace(input.HomeName)
	awayName := strings.TrimSpace(input.AwayName)
	if homeName == "" || awayName == "" {
		return nil, ErrMatchNamesRequired
	}

	if input.BracketSlotID != nil {
		if tournament.Format != models.FormatElimination {
			return nil, fmt.Errorf("%w: bracket slots only exist in elimination tournaments", ErrValidationFailed)
		}
		// Slot ids run 1..N-1; anything outside is a stale or bogus
		// reference the projection would ignore anyway, so refuse it at
		// write time where the user can still fix it.
		if *input.BracketSlotID < 1 || *input.BracketSlotID > tournament.ParticipantCount-1 {
			return nil, fmt.Errorf("%w: bracket slot %d does not exist", ErrValidationFailed, *input.BracketSlotID)
		}
	}

	record := &models.MatchRecord{
		ID:            uuid.NewString(),
		TournamentID:  tournamentID,
		BracketSlotID: input.BracketSlotID,
		HomeID:        input.HomeID,
		AwayID:        input.AwayID,
		HomeName:      homeName,
		AwayName:      awayName,
		Date:          normalizeOptionalText(input.Date),
		Time:          normalizeOptionalText(input.Time),
	}
	if err := s.matchRepo.Create(ctx, nil, record); err != nil {
		if errors.Is(err, repositories.ErrMatchSlotConflict) {
			return nil, ErrMatchSlotTaken
		}
		return nil, fmt.Errorf("failed to create match record: %w", err)
	}

	s.logger.InfoContext(ctx, "match scheduled",
		slog.Int("tournament_id", tournamentID),
		slog.String("match_id", record.ID),
	)
	s.broadcastView(ctx, tournamentID)
	return record, nil
}

func (s *matchService) ReportResult(ctx context.Context, matchID string, currentUserID int, input ReportResultInput) (*models.MatchRecord, error) {
	record, err := s.ownedMatch(ctx, matchID, currentUserID)
	if err != nil {
		return nil, err
	}

	record.Result = normalizeOptionalText(&input.Result)
	if err := s.matchRepo.UpdateResult(ctx, matchID, record.Result); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update result of match %s: %w", matchID, err)
	}

	s.logger.InfoContext(ctx, "match result reported",
		slog.Int("tournament_id", record.TournamentID),
		slog.String("match_id", matchID),
	)
	s.broadcastView(ctx, record.TournamentID)
	return record, nil
}

func (s *matchService) Reschedule(ctx context.Context, matchID string, currentUserID int, date, matchTime *string) (*models.MatchRecord, error) {
	record, err := s.ownedMatch(ctx, matchID, currentUserID)
	if err != nil {
		return nil, err
	}

	record.Date = normalizeOptionalText(date)
	record.Time = normalizeOptionalText(matchTime)
	if err := s.matchRepo.UpdateSchedule(ctx, matchID, record.Date, record.Time); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to reschedule match %s: %w", matchID, err)
	}

	s.broadcastView(ctx, record.TournamentID)
	return record, nil
}

func (s *matchService) Delete(ctx context.Context, matchID string, currentUserID int) error {
	record, err := s.ownedMatch(ctx, matchID, currentUserID)
	if err != nil {
		return err
	}

	if err := s.matchRepo.Delete(ctx, matchID); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match %s: %w", matchID, err)
	}

	s.broadcastView(ctx, record.TournamentID)
	return nil
}

func (s *matchService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.MatchRecord, error) {
	records, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list match records for tournament %d: %w", tournamentID, err)
	}
	return records, nil
}

// broadcastView pushes a freshly recomputed snapshot to the tournament's
// websocket room. Failures only cost liveness, never the write itself.
func (s *matchService) broadcastView(ctx context.Context, tournamentID int) {
	if s.hub == nil {
		return
	}
	view, err := s.viewService.GetView(ctx, tournamentID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to rebuild view for broadcast",
			slog.Int("tournament_id", tournamentID),
			slog.Any("error", err),
		)
		return
	}
	roomID := RoomIDForTournament(tournamentID)
	s.hub.BroadcastToRoom(roomID, brackets.WebSocketMessage{
		Type:    "VIEW_UPDATED",
		Payload: view,
		RoomID:  roomID,
	})
}

// RoomIDForTournament names the websocket room carrying a tournament's live
// view updates.
func RoomIDForTournament(tournamentID int) string {
	return fmt.Sprintf("tournament_%d", tournamentID)
}

func (s *matchService) ownedMatch(ctx context.Context, matchID string, currentUserID int) (*models.MatchRecord, error) {
	record, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %s: %w", matchID, err)
	}
	if _, err := s.ownedTournament(ctx, record.TournamentID, currentUserID); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *matchService) ownedTournament(ctx context.Context, tournamentID, currentUserID int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", tournamentID, err)
	}
	if tournament.OrganizerID != currentUserID {
		return nil, ErrForbiddenOperation
	}
	return tournament, nil
}
