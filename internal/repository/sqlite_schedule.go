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

const scheduleColumns = `id, title, description, start_time, end_time, completed, created_at, updated_at`

// SQLiteScheduleRepo implements ScheduleRepo using a SQLite database.
type SQLiteScheduleRepo struct {
	db db.DBTX
}

// NewSQLiteScheduleRepo creates a new SQLiteScheduleRepo.
func NewSQLiteScheduleRepo(db db.DBTX) *SQLiteScheduleRepo {
	return &SQLiteScheduleRepo{db: db}
}

func (r *SQLiteScheduleRepo) Create(ctx context.Context, e *domain.ScheduleEntry) error {
	query := `INSERT INTO schedules (` + scheduleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Title,
		e.Description,
		timeToString(e.Start),
		timeToString(e.End),
		boolToInt(e.Completed),
		timeToString(e.CreatedAt),
		timeToString(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting schedule: %w", err)
	}
	return nil
}

func (r *SQLiteScheduleRepo) GetByID(ctx context.Context, id string) (*domain.ScheduleEntry, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	e, err := scanSQLiteSchedule(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("schedule %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning schedule: %w", err)
	}
	return e, nil
}

func (r *SQLiteScheduleRepo) List(ctx context.Context) ([]*domain.ScheduleEntry, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules ORDER BY start_time, created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing schedules: %w", err)
	}
	defer rows.Close()
	return scanSQLiteSchedules(rows)
}

func (r *SQLiteScheduleRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.ScheduleEntry, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules
		WHERE start_time >= ? AND start_time < ?
		ORDER BY start_time, created_at`
	rows, err := r.db.QueryContext(ctx, query, timeToString(from), timeToString(to))
	if err != nil {
		return nil, fmt.Errorf("listing schedules between: %w", err)
	}
	defer rows.Close()
	return scanSQLiteSchedules(rows)
}

func (r *SQLiteScheduleRepo) Update(ctx context.Context, e *domain.ScheduleEntry) error {
	query := `UPDATE schedules
		SET title = ?, description = ?, start_time = ?, end_time = ?, completed = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.Title,
		e.Description,
		timeToString(e.Start),
		timeToString(e.End),
		boolToInt(e.Completed),
		timeToString(e.UpdatedAt),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating schedule: %w", err)
	}
	return affectedOrNotFound(res, "schedule "+e.ID)
}

func (r *SQLiteScheduleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting schedule: %w", err)
	}
	return affectedOrNotFound(res, "schedule "+id)
}

func (r *SQLiteScheduleRepo) DeleteBetween(ctx context.Context, from, to time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM schedules WHERE start_time >= ? AND start_time < ?`,
		timeToString(from), timeToString(to))
	if err != nil {
		return 0, fmt.Errorf("deleting schedules between: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking deleted rows: %w", err)
	}
	return int(n), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteSchedule(row rowScanner) (*domain.ScheduleEntry, error) {
	var e domain.ScheduleEntry
	var startStr, endStr, createdStr, updatedStr string
	var completed int

	if err := row.Scan(&e.ID, &e.Title, &e.Description, &startStr, &endStr, &completed, &createdStr, &updatedStr); err != nil {
		return nil, err
	}
	e.Completed = intToBool(completed)

	var err error
	if e.Start, err = parseStoredTime("start_time", startStr); err != nil {
		return nil, err
	}
	if e.End, err = parseStoredTime("end_time", endStr); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseStoredTime("created_at", createdStr); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseStoredTime("updated_at", updatedStr); err != nil {
		return nil, err
	}
	return &e, nil
}

func scanSQLiteSchedules(rows *sql.Rows) ([]*domain.ScheduleEntry, error) {
	var entries []*domain.ScheduleEntry
	for rows.Next() {
		e, err := scanSQLiteSchedule(rows)
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
