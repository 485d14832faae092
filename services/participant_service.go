package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cupstage/cupstage/models"
	"github.com/cupstage/cupstage/repositories"
	"github.com/google/uuid"
)

type RegisterParticipantInput struct {
	Name string `json:"name"`
	Seed *int   `json:"seed"`
}

type ParticipantService interface {
	Register(ctx context.Context, tournamentID, currentUserID int, input RegisterParticipantInput) (*models.Participant, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.Participant, error)
	Remove(ctx context.Context, tournamentID, currentUserID int, participantID string) error
}

type participantService struct {
	participantRepo repositories.ParticipantRepository
	tournamentRepo  repositories.TournamentRepository
}

func NewParticipantService(
	participantRepo repositories.ParticipantRepository,
	tournamentRepo repositories.TournamentRepository,
) ParticipantService {
	return &participantService{
		participantRepo: participantRepo,
		tournamentRepo:  tournamentRepo,
	}
}

func (s *participantService) Register(ctx context.Context, tournamentID, currentUserID int, input RegisterParticipantInput) (*models.Participant, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: participant name is required", ErrValidationFailed)
	}

	tournament, err := s.ownedTournament(ctx, tournamentID, currentUserID)
	if err != nil {
		return nil, err
	}
	if tournament.Status != models.StatusRegistration {
		return nil, ErrRegistrationNotOpen
	}

	if tournament.Format == models.FormatElimination {
		count, err := s.participantRepo.CountByTournament(ctx, tournamentID)
		if err != nil {
			return nil, fmt.Errorf("failed to count participants for tournament %d: %w", tournamentID, err)
		}
		if count >= tournament.ParticipantCount {
			return nil, ErrTournamentFull
		}
	}

	participant := &models.Participant{
		ID:           uuid.NewString(),
		TournamentID: tournamentID,
		Name:         name,
		Seed:         input.Seed,
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		if errors.Is(err, repositories.ErrParticipantNameConflict) {
			return nil, fmt.Errorf("%w: %q is already registered", ErrValidationFailed, name)
		}
		return nil, fmt.Errorf("failed to register participant: %w", err)
	}
	return participant, nil
}

func (s *participantService) ListByTournament(ctx context.Context, tournamentID int) ([]*models.Participant, error) {
	participants, err := s.participantRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants for tournament %d: %w", tournamentID, err)
	}
	return participants, nil
}

func (s *participantService) Remove(ctx context.Context, tournamentID, currentUserID int, participantID string) error {
	tournament, err := s.ownedTournament(ctx, tournamentID, currentUserID)
	if err != nil {
		return err
	}
	// Once play has started the entrant list is frozen; match records
	// already denormalize names, so history survives removals before that.
	if tournament.Status == models.StatusActive || tournament.Status == models.StatusCompleted {
		return ErrForbiddenOperation
	}

	if err := s.participantRepo.Delete(ctx, participantID); err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}
		return fmt.Errorf("failed to remove participant %s: %w", participantID, err)
	}
	return nil
}

func (s *participantService) ownedTournament(ctx context.Context, tournamentID, currentUserID int) (*models.Tournament, error) {
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
