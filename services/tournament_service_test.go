package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cupstage/cupstage/brackets"
	"github.com/cupstage/cupstage/models"
)

func newTournamentServiceFixture(
	tournamentRepo *fakeTournamentRepo,
	participantRepo *fakeParticipantRepo,
) TournamentService {
	return NewTournamentService(tournamentRepo, participantRepo, newFakeMatchRepo(), nil, testLogger())
}

func TestCreateTournamentElimination(t *testing.T) {
	service := newTournamentServiceFixture(newFakeTournamentRepo(), newFakeParticipantRepo())

	tournament, err := service.CreateTournament(context.Background(), organizerID, CreateTournamentInput{
		Name:             "  Spring Cup  ",
		Description:      strPtr("  knockout  "),
		Format:           models.FormatElimination,
		ParticipantCount: 8,
	})
	require.NoError(t, err)

	assert.NotZero(t, tournament.ID)
	assert.Equal(t, "Spring Cup", tournament.Name)
	require.NotNil(t, tournament.Description)
	assert.Equal(t, "knockout", *tournament.Description)
	assert.Equal(t, 8, tournament.ParticipantCount)
	assert.Equal(t, models.StatusDraft, tournament.Status)
	assert.Equal(t, organizerID, tournament.OrganizerID)
}

func TestCreateTournamentRejectsBadBracketSize(t *testing.T) {
	service := newTournamentServiceFixture(newFakeTournamentRepo(), newFakeParticipantRepo())

	for _, count := range []int{0, 1, 3, 6} {
		_, err := service.CreateTournament(context.Background(), organizerID, CreateTournamentInput{
			Name:             "Spring Cup",
			Format:           models.FormatElimination,
			ParticipantCount: count,
		})
		assert.ErrorIs(t, err, brackets.ErrInvalidParticipantCount, "count %d", count)
	}
}

func TestCreateTournamentLeagueIgnoresParticipantCount(t *testing.T) {
	service := newTournamentServiceFixture(newFakeTournamentRepo(), newFakeParticipantRepo())

	tournament, err := service.CreateTournament(context.Background(), organizerID, CreateTournamentInput{
		Name:             "City League",
		Format:           models.FormatLeague,
		ParticipantCount: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, tournament.ParticipantCount)
}

func TestCreateTournamentValidation(t *testing.T) {
	service := newTournamentServiceFixture(newFakeTournamentRepo(), newFakeParticipantRepo())

	_, err := service.CreateTournament(context.Background(), organizerID, CreateTournamentInput{
		Name:   "   ",
		Format: models.FormatLeague,
	})
	assert.ErrorIs(t, err, ErrTournamentNameRequired)

	_, err = service.CreateTournament(context.Background(), organizerID, CreateTournamentInput{
		Name:   "Spring Cup",
		Format: models.TournamentFormat("swiss"),
	})
	assert.ErrorIs(t, err, ErrTournamentInvalidFormat)
}

func TestUpdateStatusFollowsLifecycle(t *testing.T) {
	repo := newFakeTournamentRepo(&models.Tournament{
		ID:          1,
		Name:        "City League",
		Format:      models.FormatLeague,
		OrganizerID: organizerID,
		Status:      models.StatusDraft,
	})
	service := newTournamentServiceFixture(repo, newFakeParticipantRepo())
	ctx := context.Background()

	tournament, err := service.UpdateStatus(ctx, 1, organizerID, models.StatusRegistration)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRegistration, tournament.Status)

	tournament, err = service.UpdateStatus(ctx, 1, organizerID, models.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, tournament.Status)

	// Completed tournaments never come back.
	_, err = service.UpdateStatus(ctx, 1, organizerID, models.StatusCompleted)
	require.NoError(t, err)
	_, err = service.UpdateStatus(ctx, 1, organizerID, models.StatusActive)
	assert.ErrorIs(t, err, ErrTournamentInvalidStatusTransition)
}

func TestUpdateStatusRejectsSkippedStage(t *testing.T) {
	repo := newFakeTournamentRepo(&models.Tournament{
		ID:          1,
		Name:        "City League",
		Format:      models.FormatLeague,
		OrganizerID: organizerID,
		Status:      models.StatusDraft,
	})
	service := newTournamentServiceFixture(repo, newFakeParticipantRepo())

	_, err := service.UpdateStatus(context.Background(), 1, organizerID, models.StatusActive)
	assert.ErrorIs(t, err, ErrTournamentInvalidStatusTransition)
}

func TestUpdateStatusActiveRequiresFullBracket(t *testing.T) {
	repo := newFakeTournamentRepo(&models.Tournament{
		ID:               1,
		Name:             "Spring Cup",
		Format:           models.FormatElimination,
		ParticipantCount: 4,
		OrganizerID:      organizerID,
		Status:           models.StatusRegistration,
	})
	participantRepo := newFakeParticipantRepo(
		&models.Participant{ID: "p1", TournamentID: 1, Name: "Alpha"},
		&models.Participant{ID: "p2", TournamentID: 1, Name: "Bravo"},
	)
	service := newTournamentServiceFixture(repo, participantRepo)
	ctx := context.Background()

	_, err := service.UpdateStatus(ctx, 1, organizerID, models.StatusActive)
	assert.ErrorIs(t, err, ErrBracketNotFilled)

	require.NoError(t, participantRepo.Create(ctx, &models.Participant{ID: "p3", TournamentID: 1, Name: "Charlie"}))
	require.NoError(t, participantRepo.Create(ctx, &models.Participant{ID: "p4", TournamentID: 1, Name: "Delta"}))

	tournament, err := service.UpdateStatus(ctx, 1, organizerID, models.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, tournament.Status)
}

func TestUpdateTournamentBlocksBracketResizeAfterStart(t *testing.T) {
	repo := newFakeTournamentRepo(&models.Tournament{
		ID:               1,
		Name:             "Spring Cup",
		Format:           models.FormatElimination,
		ParticipantCount: 4,
		OrganizerID:      organizerID,
		Status:           models.StatusActive,
	})
	service := newTournamentServiceFixture(repo, newFakeParticipantRepo())

	_, err := service.UpdateTournament(context.Background(), 1, organizerID, UpdateTournamentInput{
		ParticipantCount: intPtr(8),
	})
	assert.ErrorIs(t, err, ErrTournamentInvalidStatusTransition)
}

func TestUpdateTournamentOwnership(t *testing.T) {
	repo := newFakeTournamentRepo(&models.Tournament{
		ID:          1,
		Name:        "Spring Cup",
		Format:      models.FormatLeague,
		OrganizerID: organizerID,
		Status:      models.StatusDraft,
	})
	service := newTournamentServiceFixture(repo, newFakeParticipantRepo())

	_, err := service.UpdateTournament(context.Background(), 1, organizerID+1, UpdateTournamentInput{
		Name: strPtr("Renamed"),
	})
	assert.ErrorIs(t, err, ErrForbiddenOperation)
}

func TestUploadLogoWithoutStorage(t *testing.T) {
	repo := newFakeTournamentRepo(&models.Tournament{
		ID:          1,
		Name:        "Spring Cup",
		Format:      models.FormatLeague,
		OrganizerID: organizerID,
		Status:      models.StatusDraft,
	})
	service := newTournamentServiceFixture(repo, newFakeParticipantRepo())

	_, err := service.UploadLogo(context.Background(), 1, organizerID, "image/png", nil)
	assert.ErrorIs(t, err, ErrLogoStorageUnavailable)
}

func TestDeleteTournament(t *testing.T) {
	repo := newFakeTournamentRepo(&models.Tournament{
		ID:          1,
		Name:        "Spring Cup",
		Format:      models.FormatLeague,
		OrganizerID: organizerID,
		Status:      models.StatusDraft,
	})
	service := newTournamentServiceFixture(repo, newFakeParticipantRepo())
	ctx := context.Background()

	require.NoError(t, service.DeleteTournament(ctx, 1, organizerID))
	_, err := service.GetTournamentByID(ctx, 1)
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}
