package repository

import (
	"context"
	"time"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/db"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/domain"
)

// ScheduleRepo persists schedule entries. List results are ordered by start time.
type ScheduleRepo interface {
	Create(ctx context.Context, e *domain.ScheduleEntry) error
	GetByID(ctx context.Context, id string) (*domain.ScheduleEntry, error)
	List(ctx context.Context) ([]*domain.ScheduleEntry, error)
	// ListBetween returns entries whose start falls in [from, to).
	ListBetween(ctx context.Context, from, to time.Time) ([]*domain.ScheduleEntry, error)
	Update(ctx context.Context, e *domain.ScheduleEntry) error
	Delete(ctx context.Context, id string) error
	// DeleteBetween removes entries whose start falls in [from, to) and
	// returns how many were removed.
	DeleteBetween(ctx context.Context, from, to time.Time) (int, error)
}

// ScheduleRepoFactory builds a repository bound to a connection or transaction.
// Services use it to obtain tx-scoped repos inside a UnitOfWork.
type ScheduleRepoFactory func(tx db.DBTX) ScheduleRepo

// SQLiteFactory returns a factory producing SQLite repositories.
func SQLiteFactory() ScheduleRepoFactory {
	return func(tx db.DBTX) ScheduleRepo { return NewSQLiteScheduleRepo(tx) }
}

// PostgresFactory returns a factory producing Postgres repositories.
func PostgresFactory() ScheduleRepoFactory {
	return func(tx db.DBTX) ScheduleRepo { return NewPostgresScheduleRepo(tx) }
}
