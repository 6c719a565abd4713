package testutil

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/db"
)

// NewTestDB opens a migrated in-memory SQLite database that is closed with
// the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewTxUnitOfWork(database)
}

// FailingUoW is a real transaction whose writes starting with Statement
// (e.g. "UPDATE" or "DELETE") return Err instead of running.
type FailingUoW struct {
	DB        *sql.DB
	Statement string
	Err       error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewTxUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, failingTx{DBTX: tx, prefix: strings.ToUpper(u.Statement), err: u.Err})
	})
}

type failingTx struct {
	db.DBTX
	prefix string
	err    error
}

func (f failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), f.prefix) {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
