package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/db"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/domain"
)

// PostgresScheduleRepo implements ScheduleRepo on PostgreSQL through lib/pq.
// Times are stored as TIMESTAMPTZ and returned in UTC.
type PostgresScheduleRepo struct {
	db db.DBTX
}

// NewPostgresScheduleRepo creates a new PostgresScheduleRepo.
func NewPostgresScheduleRepo(db db.DBTX) *PostgresScheduleRepo {
	return &PostgresScheduleRepo{db: db}
}

func (r *PostgresScheduleRepo) Create(ctx context.Context, e *domain.ScheduleEntry) error {
	query := `INSERT INTO schedules (` + scheduleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Title, e.Description,
		e.Start.UTC(), e.End.UTC(), e.Completed,
		e.CreatedAt.UTC(), e.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting schedule: %w", err)
	}
	return nil
}

func (r *PostgresScheduleRepo) GetByID(ctx context.Context, id string) (*domain.ScheduleEntry, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1`
	e, err := scanPostgresSchedule(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("schedule %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning schedule: %w", err)
	}
	return e, nil
}

func (r *PostgresScheduleRepo) List(ctx context.Context) ([]*domain.ScheduleEntry, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules ORDER BY start_time, created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing schedules: %w", err)
	}
	defer rows.Close()
	return scanPostgresSchedules(rows)
}

func (r *PostgresScheduleRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.ScheduleEntry, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time, created_at`
	rows, err := r.db.QueryContext(ctx, query, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("listing schedules between: %w", err)
	}
	defer rows.Close()
	return scanPostgresSchedules(rows)
}

func (r *PostgresScheduleRepo) Update(ctx context.Context, e *domain.ScheduleEntry) error {
	query := `UPDATE schedules
		SET title = $1, description = $2, start_time = $3, end_time = $4, completed = $5, updated_at = $6
		WHERE id = $7`
	res, err := r.db.ExecContext(ctx, query,
		e.Title, e.Description, e.Start.UTC(), e.End.UTC(), e.Completed, e.UpdatedAt.UTC(), e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating schedule: %w", err)
	}
	return affectedOrNotFound(res, "schedule "+e.ID)
}

func (r *PostgresScheduleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting schedule: %w", err)
	}
	return affectedOrNotFound(res, "schedule "+id)
}

func (r *PostgresScheduleRepo) DeleteBetween(ctx context.Context, from, to time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM schedules WHERE start_time >= $1 AND start_time < $2`, from.UTC(), to.UTC())
	if err != nil {
		return 0, fmt.Errorf("deleting schedules between: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking deleted rows: %w", err)
	}
	return int(n), nil
}

func scanPostgresSchedule(row rowScanner) (*domain.ScheduleEntry, error) {
	var e domain.ScheduleEntry
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Start, &e.End, &e.Completed, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.Start = e.Start.UTC()
	e.End = e.End.UTC()
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return &e, nil
}

func scanPostgresSchedules(rows *sql.Rows) ([]*domain.ScheduleEntry, error) {
	var entries []*domain.ScheduleEntry
	for rows.Next() {
		e, err := scanPostgresSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning schedule row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schedules: %w", err)
	}
	return entries, nil
}
