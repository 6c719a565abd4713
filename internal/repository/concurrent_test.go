package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/db"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across every pooled connection.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "concurrent_test.db")
	database, err := db.OpenDB(dbPath)
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// The watcher reads the schedule while the assistant writes to it.
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()
	repo := NewSQLiteScheduleRepo(database)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20; i++ {
			e := testutil.NewTestEntry(fmt.Sprintf("Entry-%d", i),
				testutil.WithStart(testutil.At(0, 0, 0).Add(time.Duration(i)*time.Hour)))
			if err := repo.Create(ctx, e); err != nil {
				t.Errorf("writer: create entry %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				entries, err := repo.ListBetween(ctx, testutil.At(0, 0, 0), testutil.At(1, 0, 0))
				if err != nil {
					t.Errorf("reader %d: list between: %v", reader, err)
					return
				}
				for _, e := range entries {
					if e.ID == "" || e.Title == "" {
						t.Errorf("reader %d: got half-written entry", reader)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 20)
}
