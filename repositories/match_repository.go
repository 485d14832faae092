package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cupstage/cupstage/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound       = errors.New("match record not found")
	ErrMatchSlotConflict   = errors.New("bracket slot already has a match record")
	ErrMatchTournament     = errors.New("match references an unknown tournament")
	ErrMatchParticipantRef = errors.New("match references an unknown participant")
)

// MatchRecordRepository is the match store: the single source of raw match
// records the bracket and standings projections fold over.
type MatchRecordRepository interface {
	Create(ctx context.Context, exec SQLExecutor, record *models.MatchRecord) error
	GetByID(ctx context.Context, id string) (*models.MatchRecord, error)
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.MatchRecord, error)
	UpdateResult(ctx context.Context, id string, result *string) error
	UpdateSchedule(ctx context.Context, id string, date, matchTime *string) error
	Delete(ctx context.Context, id string) error
}

type postgresMatchRecordRepository struct {
	db *sql.DB
}

func NewPostgresMatchRecordRepository(db *sql.DB) MatchRecordRepository {
	return &postgresMatchRecordRepository{db: db}
}

const matchColumns = `id, tournament_id, bracket_slot_id, home_id, away_id, home_name, away_name, result, match_date, match_time, created_at`

func (r *postgresMatchRecordRepository) Create(ctx context.Context, exec SQLExecutor, m *models.MatchRecord) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO match_records
			(id, tournament_id, bracket_slot_id, home_id, away_id, home_name, away_name, result, match_date, match_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at`

	err := exec.QueryRowContext(ctx, query,
		m.ID,
		m.TournamentID,
		m.BracketSlotID,
		m.HomeID,
		m.AwayID,
		m.HomeName,
		m.AwayName,
		m.Result,
		m.Date,
		m.Time,
	).Scan(&m.CreatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRecordRepository) GetByID(ctx context.Context, id string) (*models.MatchRecord, error) {
	query := `SELECT ` + matchColumns + ` FROM match_records WHERE id = $1`

	m := &models.MatchRecord{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID,
		&m.TournamentID,
		&m.BracketSlotID,
		&m.HomeID,
		&m.AwayID,
		&m.HomeName,
		&m.AwayName,
		&m.Result,
		&m.Date,
		&m.Time,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match record %s: %w", id, err)
	}
	return m, nil
}

func (r *postgresMatchRecordRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.MatchRecord, error) {
	query := `SELECT ` + matchColumns + ` FROM match_records WHERE tournament_id = $1 ORDER BY bracket_slot_id NULLS LAST, created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query match records for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	records := make([]*models.MatchRecord, 0)
	for rows.Next() {
		m := &models.MatchRecord{}
		if scanErr := rows.Scan(
			&m.ID,
			&m.TournamentID,
			&m.BracketSlotID,
			&m.HomeID,
			&m.AwayID,
			&m.HomeName,
			&m.AwayName,
			&m.Result,
			&m.Date,
			&m.Time,
			&m.CreatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match record row: %w", scanErr)
		}
		records = append(records, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match record rows iteration: %w", err)
	}
	return records, nil
}

func (r *postgresMatchRecordRepository) UpdateResult(ctx context.Context, id string, result *string) error {
	query := `UPDATE match_records SET result = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, result, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(res, ErrMatchNotFound)
}

func (r *postgresMatchRecordRepository) UpdateSchedule(ctx context.Context, id string, date, matchTime *string) error {
	query := `UPDATE match_records SET match_date = $1, match_time = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, date, matchTime, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(res, ErrMatchNotFound)
}

func (r *postgresMatchRecordRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM match_records WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(res, ErrMatchNotFound)
}

func (r *postgresMatchRecordRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "match_records_tournament_slot_key":
			return ErrMatchSlotConflict
		case "match_records_tournament_id_fkey":
			return ErrMatchTournament
		case "match_records_home_id_fkey", "match_records_away_id_fkey":
			return ErrMatchParticipantRef
		}
	}
	return err
}
