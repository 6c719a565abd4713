package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all SQLite schema migrations. Statements are idempotent and
// re-run on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// MigratePostgres runs the Postgres flavour of the schema.
func MigratePostgres(db *sql.DB) error {
	for i, stmt := range postgresMigrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("postgres migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS schedules (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL CHECK(length(trim(title)) > 0),
		description TEXT NOT NULL DEFAULT '',
		start_time  TEXT NOT NULL,
		end_time    TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_schedules_start ON schedules(start_time)`,

	// Completion tracking was added after the first release.
	`ALTER TABLE schedules ADD COLUMN completed INTEGER NOT NULL DEFAULT 0`,
}

var postgresMigrations = []string{
	`CREATE TABLE IF NOT EXISTS schedules (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL CHECK(length(trim(title)) > 0),
		description TEXT NOT NULL DEFAULT '',
		start_time  TIMESTAMPTZ NOT NULL,
		end_time    TIMESTAMPTZ NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_schedules_start ON schedules(start_time)`,

	`ALTER TABLE schedules ADD COLUMN IF NOT EXISTS completed BOOLEAN NOT NULL DEFAULT FALSE`,
}
