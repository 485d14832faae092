package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cupstage/cupstage/brackets"
	"github.com/cupstage/cupstage/models"
	"github.com/cupstage/cupstage/repositories"
	"github.com/cupstage/cupstage/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type CreateTournamentInput struct {
	Name             string                  `json:"name"`
	Description      *string                 `json:"description"`
	Format           models.TournamentFormat `json:"format"`
	ParticipantCount int                     `json:"participant_count"`
}

type UpdateTournamentInput struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	ParticipantCount *int    `json:"participant_count"`
}

type TournamentService interface {
	CreateTournament(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error)
	GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error)
	ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]*models.Tournament, error)
	UpdateTournament(ctx context.Context, id, currentUserID int, input UpdateTournamentInput) (*models.Tournament, error)
	UpdateStatus(ctx context.Context, id, currentUserID int, status models.TournamentStatus) (*models.Tournament, error)
	UploadLogo(ctx context.Context, id, currentUserID int, contentType string, body io.Reader) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, id, currentUserID int) error
}

type tournamentService struct {
	tournamentRepo  repositories.TournamentRepository
	participantRepo repositories.ParticipantRepository
	matchRepo       repositories.MatchRecordRepository
	uploader        storage.FileUploader
	logger          *slog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	participantRepo repositories.ParticipantRepository,
	matchRepo repositories.MatchRecordRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo:  tournamentRepo,
		participantRepo: participantRepo,
		matchRepo:       matchRepo,
		uploader:        uploader,
		logger:          logger,
	}
}

func (s *tournamentService) CreateTournament(ctx context.Context, organizerID int, input CreateTournamentInput) (*models.Tournament, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameRequired
	}

	switch input.Format {
	case models.FormatElimination:
		// The bracket size is fixed at creation time; reject impossible
		// configurations here rather than at render time.
		if _, err := brackets.GenerateSkeleton(input.ParticipantCount); err != nil {
			return nil, err
		}
	case models.FormatLeague:
		input.ParticipantCount = 0
	default:
		return nil, ErrTournamentInvalidFormat
	}

	tournament := &models.Tournament{
		Name:             name,
		Description:      normalizeOptionalText(input.Description),
		Format:           input.Format,
		ParticipantCount: input.ParticipantCount,
		OrganizerID:      organizerID,
		Status:           models.StatusDraft,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament created",
		slog.Int("tournament_id", tournament.ID),
		slog.String("format", string(tournament.Format)),
		slog.Int("organizer_id", organizerID),
	)
	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) GetTournamentByID(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		participants, err := s.participantRepo.ListByTournament(gCtx, id)
		if err != nil {
			return err
		}
		tournament.Participants = participantsToValues(participants)
		return nil
	})
	g.Go(func() error {
		records, err := s.matchRepo.ListByTournament(gCtx, id)
		if err != nil {
			return err
		}
		tournament.Matches = matchRecordsToValues(records)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load tournament %d details: %w", id, err)
	}

	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, filter repositories.ListTournamentsFilter) ([]*models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	for _, t := range tournaments {
		s.populateLogoURL(t)
	}
	return tournaments, nil
}

func (s *tournamentService) UpdateTournament(ctx context.Context, id, currentUserID int, input UpdateTournamentInput) (*models.Tournament, error) {
	tournament, err := s.getOwned(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTournamentNameRequired
		}
		tournament.Name = name
	}
	if input.Description != nil {
		tournament.Description = normalizeOptionalText(input.Description)
	}
	if input.ParticipantCount != nil && tournament.Format == models.FormatElimination {
		// Resizing the bracket is only sane before play starts. Records
		// pointing at slots of the old skeleton become harmless orphans.
		if tournament.Status == models.StatusActive || tournament.Status == models.StatusCompleted {
			return nil, ErrTournamentInvalidStatusTransition
		}
		if _, err := brackets.GenerateSkeleton(*input.ParticipantCount); err != nil {
			return nil, err
		}
		tournament.ParticipantCount = *input.ParticipantCount
	}

	if err := s.tournamentRepo.UpdateDetails(ctx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, ErrTournamentNameConflict
		}
		return nil, fmt.Errorf("failed to update tournament %d: %w", id, err)
	}
	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) UpdateStatus(ctx context.Context, id, currentUserID int, status models.TournamentStatus) (*models.Tournament, error) {
	if !isValidTournamentStatus(status) {
		return nil, ErrTournamentInvalidStatus
	}

	tournament, err := s.getOwned(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}
	if !isValidStatusTransition(tournament.Status, status) {
		return nil, ErrTournamentInvalidStatusTransition
	}

	// Going active on an elimination tournament requires a full bracket.
	if status == models.StatusActive && tournament.Format == models.FormatElimination {
		count, err := s.participantRepo.CountByTournament(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to count participants for tournament %d: %w", id, err)
		}
		if count != tournament.ParticipantCount {
			return nil, fmt.Errorf("%w: have %d, bracket needs %d", ErrBracketNotFilled, count, tournament.ParticipantCount)
		}
	}

	if err := s.tournamentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update status of tournament %d: %w", id, err)
	}
	tournament.Status = status

	s.logger.InfoContext(ctx, "tournament status changed",
		slog.Int("tournament_id", id),
		slog.String("status", string(status)),
	)
	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) UploadLogo(ctx context.Context, id, currentUserID int, contentType string, body io.Reader) (*models.Tournament, error) {
	if s.uploader == nil {
		return nil, ErrLogoStorageUnavailable
	}

	tournament, err := s.getOwned(ctx, id, currentUserID)
	if err != nil {
		return nil, err
	}

	ext, err := GetExtensionFromContentType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	key := fmt.Sprintf("tournaments/%d/logo-%s%s", id, uuid.NewString(), ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, body); err != nil {
		return nil, fmt.Errorf("failed to upload tournament logo: %w", err)
	}

	oldKey := tournament.LogoKey
	if err := s.tournamentRepo.UpdateLogoKey(ctx, id, &key); err != nil {
		return nil, fmt.Errorf("failed to persist logo key for tournament %d: %w", id, err)
	}
	tournament.LogoKey = &key

	if oldKey != nil && *oldKey != "" {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete old tournament logo",
				slog.Int("tournament_id", id),
				slog.String("key", *oldKey),
				slog.Any("error", err),
			)
		}
	}

	s.populateLogoURL(tournament)
	return tournament, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id, currentUserID int) error {
	if _, err := s.getOwned(ctx, id, currentUserID); err != nil {
		return err
	}
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament %d: %w", id, err)
	}
	return nil
}

func (s *tournamentService) getOwned(ctx context.Context, id, currentUserID int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", id, err)
	}
	if tournament.OrganizerID != currentUserID {
		return nil, ErrForbiddenOperation
	}
	return tournament, nil
}

func (s *tournamentService) populateLogoURL(t *models.Tournament) {
	if t == nil || t.LogoKey == nil || *t.LogoKey == "" || s.uploader == nil {
		return
	}
	if url := s.uploader.GetPublicURL(*t.LogoKey); url != "" {
		t.LogoURL = &url
	}
}
