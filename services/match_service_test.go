package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cupstage/cupstage/brackets"
	"github.com/cupstage/cupstage/models"
)

const organizerID = 10

func newMatchServiceFixture(t *models.Tournament, records ...*models.MatchRecord) (MatchService, *fakeMatchRepo) {
	tournamentRepo := newFakeTournamentRepo(t)
	matchRepo := newFakeMatchRepo(records...)
	viewService := NewTournamentViewService(tournamentRepo, matchRepo)
	service := NewMatchService(matchRepo, tournamentRepo, viewService, brackets.NewHub(), testLogger())
	return service, matchRepo
}

func eliminationTournament() *models.Tournament {
	return &models.Tournament{
		ID:               1,
		Name:             "Spring Cup",
		Format:           models.FormatElimination,
		ParticipantCount: 4,
		OrganizerID:      organizerID,
		Status:           models.StatusActive,
	}
}

func leagueTournament() *models.Tournament {
	return &models.Tournament{
		ID:          1,
		Name:        "City League",
		Format:      models.FormatLeague,
		OrganizerID: organizerID,
		Status:      models.StatusActive,
	}
}

func TestScheduleCreatesRecord(t *testing.T) {
	service, matchRepo := newMatchServiceFixture(eliminationTournament())

	record, err := service.Schedule(context.Background(), 1, organizerID, ScheduleMatchInput{
		BracketSlotID: intPtr(1),
		HomeID:        strPtr("a"),
		AwayID:        strPtr("b"),
		HomeName:      "  Alpha  ",
		AwayName:      "Bravo",
		Date:          strPtr("2026-04-01"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "Alpha", record.HomeName)
	require.NotNil(t, record.Date)
	assert.Equal(t, "2026-04-01", *record.Date)

	stored, err := matchRepo.GetByID(context.Background(), record.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.BracketSlotID)
	assert.Equal(t, 1, *stored.BracketSlotID)
}

func TestScheduleRequiresNames(t *testing.T) {
	service, _ := newMatchServiceFixture(eliminationTournament())

	_, err := service.Schedule(context.Background(), 1, organizerID, ScheduleMatchInput{
		HomeName: "Alpha",
		AwayName: "   ",
	})
	assert.ErrorIs(t, err, ErrMatchNamesRequired)
}

func TestScheduleRejectsSlotOutsideBracket(t *testing.T) {
	service, _ := newMatchServiceFixture(eliminationTournament())

	for _, slot := range []int{0, -1, 4, 99} {
		_, err := service.Schedule(context.Background(), 1, organizerID, ScheduleMatchInput{
			BracketSlotID: intPtr(slot),
			HomeName:      "Alpha",
			AwayName:      "Bravo",
		})
		assert.ErrorIs(t, err, ErrValidationFailed, "slot %d", slot)
	}
}

func TestScheduleRejectsSlotOnLeague(t *testing.T) {
	service, _ := newMatchServiceFixture(leagueTournament())

	_, err := service.Schedule(context.Background(), 1, organizerID, ScheduleMatchInput{
		BracketSlotID: intPtr(1),
		HomeName:      "Alpha",
		AwayName:      "Bravo",
	})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestScheduleForbiddenForNonOrganizer(t *testing.T) {
	service, _ := newMatchServiceFixture(eliminationTournament())

	_, err := service.Schedule(context.Background(), 1, organizerID+1, ScheduleMatchInput{
		HomeName: "Alpha",
		AwayName: "Bravo",
	})
	assert.ErrorIs(t, err, ErrForbiddenOperation)
}

func TestScheduleTournamentNotFound(t *testing.T) {
	service, _ := newMatchServiceFixture(eliminationTournament())

	_, err := service.Schedule(context.Background(), 99, organizerID, ScheduleMatchInput{
		HomeName: "Alpha",
		AwayName: "Bravo",
	})
	assert.ErrorIs(t, err, ErrTournamentNotFound)
}

func TestReportResultStoresRawText(t *testing.T) {
	seed := &models.MatchRecord{
		ID: "m1", TournamentID: 1, BracketSlotID: intPtr(1),
		HomeName: "Alpha", AwayName: "Bravo",
	}
	service, matchRepo := newMatchServiceFixture(eliminationTournament(), seed)

	record, err := service.ReportResult(context.Background(), "m1", organizerID, ReportResultInput{Result: " 2-1 "})
	require.NoError(t, err)
	require.NotNil(t, record.Result)
	assert.Equal(t, "2-1", *record.Result)

	stored, err := matchRepo.GetByID(context.Background(), "m1")
	require.NoError(t, err)
	require.NotNil(t, stored.Result)
	assert.Equal(t, "2-1", *stored.Result)
}

func TestReportResultEmptyClearsResult(t *testing.T) {
	seed := &models.MatchRecord{
		ID: "m1", TournamentID: 1,
		HomeName: "Alpha", AwayName: "Bravo",
		Result: strPtr("2-1"),
	}
	service, matchRepo := newMatchServiceFixture(leagueTournament(), seed)

	record, err := service.ReportResult(context.Background(), "m1", organizerID, ReportResultInput{Result: "  "})
	require.NoError(t, err)
	assert.Nil(t, record.Result)

	stored, err := matchRepo.GetByID(context.Background(), "m1")
	require.NoError(t, err)
	assert.Nil(t, stored.Result)
}

func TestReportResultMatchNotFound(t *testing.T) {
	service, _ := newMatchServiceFixture(eliminationTournament())

	_, err := service.ReportResult(context.Background(), "missing", organizerID, ReportResultInput{Result: "1-0"})
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestRescheduleUpdatesDateAndTime(t *testing.T) {
	seed := &models.MatchRecord{
		ID: "m1", TournamentID: 1,
		HomeName: "Alpha", AwayName: "Bravo",
		Date: strPtr("2026-04-01"),
	}
	service, matchRepo := newMatchServiceFixture(leagueTournament(), seed)

	record, err := service.Reschedule(context.Background(), "m1", organizerID, strPtr("2026-04-08"), strPtr("18:30"))
	require.NoError(t, err)
	require.NotNil(t, record.Date)
	assert.Equal(t, "2026-04-08", *record.Date)
	require.NotNil(t, record.Time)
	assert.Equal(t, "18:30", *record.Time)

	stored, err := matchRepo.GetByID(context.Background(), "m1")
	require.NoError(t, err)
	require.NotNil(t, stored.Date)
	assert.Equal(t, "2026-04-08", *stored.Date)
}

func TestDeleteRemovesRecord(t *testing.T) {
	seed := &models.MatchRecord{
		ID: "m1", TournamentID: 1,
		HomeName: "Alpha", AwayName: "Bravo",
	}
	service, matchRepo := newMatchServiceFixture(leagueTournament(), seed)

	err := service.Delete(context.Background(), "m1", organizerID)
	require.NoError(t, err)

	_, err = matchRepo.GetByID(context.Background(), "m1")
	assert.Error(t, err)
}
