package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/cupstage/cupstage/models"
	"github.com/cupstage/cupstage/repositories"
)

// In-memory repository stand-ins for service tests. They mimic the Postgres
// implementations closely enough for the service layer: copies out, sentinel
// errors on misses.

type fakeTournamentRepo struct {
	tournaments map[int]*models.Tournament
	nextID      int
}

func newFakeTournamentRepo(seed ...*models.Tournament) *fakeTournamentRepo {
	repo := &fakeTournamentRepo{tournaments: make(map[int]*models.Tournament), nextID: 1}
	for _, t := range seed {
		copied := *t
		repo.tournaments[t.ID] = &copied
		if t.ID >= repo.nextID {
			repo.nextID = t.ID + 1
		}
	}
	return repo
}

func (r *fakeTournamentRepo) Create(_ context.Context, t *models.Tournament) error {
	t.ID = r.nextID
	r.nextID++
	copied := *t
	r.tournaments[t.ID] = &copied
	return nil
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	copied := *t
	return &copied, nil
}

func (r *fakeTournamentRepo) List(_ context.Context, _ repositories.ListTournamentsFilter) ([]*models.Tournament, error) {
	list := make([]*models.Tournament, 0, len(r.tournaments))
	for _, t := range r.tournaments {
		copied := *t
		list = append(list, &copied)
	}
	return list, nil
}

func (r *fakeTournamentRepo) UpdateDetails(_ context.Context, t *models.Tournament) error {
	stored, ok := r.tournaments[t.ID]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	stored.Name = t.Name
	stored.Description = t.Description
	stored.ParticipantCount = t.ParticipantCount
	return nil
}

func (r *fakeTournamentRepo) UpdateStatus(_ context.Context, id int, status models.TournamentStatus) error {
	t, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status = status
	return nil
}

func (r *fakeTournamentRepo) UpdateLogoKey(_ context.Context, id int, logoKey *string) error {
	t, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.LogoKey = logoKey
	return nil
}

func (r *fakeTournamentRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

type fakeMatchRepo struct {
	records map[string]*models.MatchRecord
	order   []string
}

func newFakeMatchRepo(seed ...*models.MatchRecord) *fakeMatchRepo {
	repo := &fakeMatchRepo{records: make(map[string]*models.MatchRecord)}
	for _, m := range seed {
		copied := *m
		repo.records[m.ID] = &copied
		repo.order = append(repo.order, m.ID)
	}
	return repo
}

func (r *fakeMatchRepo) Create(_ context.Context, _ repositories.SQLExecutor, m *models.MatchRecord) error {
	copied := *m
	r.records[m.ID] = &copied
	r.order = append(r.order, m.ID)
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id string) (*models.MatchRecord, error) {
	m, ok := r.records[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *fakeMatchRepo) ListByTournament(_ context.Context, tournamentID int) ([]*models.MatchRecord, error) {
	var list []*models.MatchRecord
	for _, id := range r.order {
		m := r.records[id]
		if m.TournamentID != tournamentID {
			continue
		}
		copied := *m
		list = append(list, &copied)
	}
	return list, nil
}

func (r *fakeMatchRepo) UpdateResult(_ context.Context, id string, result *string) error {
	m, ok := r.records[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.Result = result
	return nil
}

func (r *fakeMatchRepo) UpdateSchedule(_ context.Context, id string, date, matchTime *string) error {
	m, ok := r.records[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.Date = date
	m.Time = matchTime
	return nil
}

func (r *fakeMatchRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.records, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeParticipantRepo struct {
	participants map[string]*models.Participant
	order        []string
}

func newFakeParticipantRepo(seed ...*models.Participant) *fakeParticipantRepo {
	repo := &fakeParticipantRepo{participants: make(map[string]*models.Participant)}
	for _, p := range seed {
		copied := *p
		repo.participants[p.ID] = &copied
		repo.order = append(repo.order, p.ID)
	}
	return repo
}

func (r *fakeParticipantRepo) Create(_ context.Context, p *models.Participant) error {
	for _, stored := range r.participants {
		if stored.TournamentID == p.TournamentID && stored.Name == p.Name {
			return repositories.ErrParticipantNameConflict
		}
	}
	copied := *p
	r.participants[p.ID] = &copied
	r.order = append(r.order, p.ID)
	return nil
}

func (r *fakeParticipantRepo) ListByTournament(_ context.Context, tournamentID int) ([]*models.Participant, error) {
	var list []*models.Participant
	for _, id := range r.order {
		p := r.participants[id]
		if p.TournamentID != tournamentID {
			continue
		}
		copied := *p
		list = append(list, &copied)
	}
	return list, nil
}

func (r *fakeParticipantRepo) CountByTournament(_ context.Context, tournamentID int) (int, error) {
	count := 0
	for _, p := range r.participants {
		if p.TournamentID == tournamentID {
			count++
		}
	}
	return count, nil
}

func (r *fakeParticipantRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.participants[id]; !ok {
		return repositories.ErrParticipantNotFound
	}
	delete(r.participants, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
