package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/domain"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/extract"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/reconcile"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/repository"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/testutil"
)

func setupService(t *testing.T, observers ...UseCaseObserver) ScheduleService {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewScheduleService(
		repository.NewSQLiteScheduleRepo(database),
		repository.SQLiteFactory(),
		testutil.NewTestUoW(database),
		observers...,
	)
}

func draft(title string, start time.Time) domain.EntryDraft {
	return domain.EntryDraft{Title: title, Start: start}
}

func TestInsert_DefaultsToOneHour(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	e, err := svc.Insert(ctx, draft("  Standup ", testutil.At(0, 9, 0)))
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "Standup", e.Title)
	assert.Equal(t, testutil.At(0, 10, 0), e.End)
	assert.False(t, e.Completed)

	got, err := svc.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, got.Start.Equal(e.Start))
}

func TestInsert_RejectsInvalidDraft(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Insert(context.Background(), draft("", testutil.At(0, 9, 0)))
	assert.ErrorIs(t, err, domain.ErrInvalidEntry)
}

func TestUpdate_PatchesFields(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	e, err := svc.Insert(ctx, draft("Gym", testutil.At(0, 18, 0)))
	require.NoError(t, err)

	title := "Gym session"
	end := testutil.At(0, 20, 0)
	updated, err := svc.Update(ctx, e.ID, domain.EntryPatch{Title: &title, End: &end})
	require.NoError(t, err)
	assert.Equal(t, e.ID, updated.ID)

	got, err := svc.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gym session", got.Title)
	assert.Equal(t, 2*time.Hour, got.Duration())
}

func TestUpdate_MissingEntry(t *testing.T) {
	svc := setupService(t)
	title := "x"

	_, err := svc.Update(context.Background(), "nope", domain.EntryPatch{Title: &title})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdate_InvalidPatchLeavesEntry(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	e, err := svc.Insert(ctx, draft("Gym", testutil.At(0, 18, 0)))
	require.NoError(t, err)

	end := testutil.At(0, 17, 0)
	_, err = svc.Update(ctx, e.ID, domain.EntryPatch{End: &end})
	assert.ErrorIs(t, err, domain.ErrInvalidEntry)

	got, err := svc.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, testutil.At(0, 19, 0), got.End)
}

func TestUpdate_RollsBackOnWriteFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteScheduleRepo(database)
	ctx := context.Background()
	e := testutil.NewTestEntry("Read")
	require.NoError(t, repo.Create(ctx, e))

	svc := NewScheduleService(repo, repository.SQLiteFactory(), &testutil.FailingUoW{
		DB: database, Statement: "UPDATE", Err: errors.New("disk I/O error"),
	})
	title := "Write"
	_, err := svc.Update(ctx, e.ID, domain.EntryPatch{Title: &title})
	require.Error(t, err)

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Read", got.Title)
}

func TestClearDay_FailureKeepsEntries(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteScheduleRepo(database)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, testutil.NewTestEntry("Gym")))

	svc := NewScheduleService(repo, repository.SQLiteFactory(), &testutil.FailingUoW{
		DB: database, Statement: "DELETE", Err: errors.New("database is locked"),
	})
	n, err := svc.ClearDay(ctx, testutil.Anchor)
	require.Error(t, err)
	assert.Zero(t, n)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSetCompleted(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	e, err := svc.Insert(ctx, draft("Report", testutil.At(0, 13, 0)))
	require.NoError(t, err)

	done, err := svc.SetCompleted(ctx, e.ID, true)
	require.NoError(t, err)
	assert.True(t, done.Completed)

	undone, err := svc.SetCompleted(ctx, e.ID, false)
	require.NoError(t, err)
	assert.False(t, undone.Completed)
}

func TestListDay_UsesDayLocation(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	wib := time.FixedZone("WIB", 7*3600)

	// 2024-06-20 23:30 WIB is 16:30 UTC the same day; 2024-06-21 01:00 WIB
	// is still 2024-06-20 in UTC.
	_, err := svc.Insert(ctx, draft("late", time.Date(2024, 6, 20, 23, 30, 0, 0, wib)))
	require.NoError(t, err)
	_, err = svc.Insert(ctx, draft("early", time.Date(2024, 6, 21, 1, 0, 0, 0, wib)))
	require.NoError(t, err)

	got, err := svc.ListDay(ctx, time.Date(2024, 6, 21, 12, 0, 0, 0, wib))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "early", got[0].Title)

	got, err = svc.ListDay(ctx, time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestDeleteAndClearDay(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	a, err := svc.Insert(ctx, draft("a", testutil.At(0, 8, 0)))
	require.NoError(t, err)
	_, err = svc.Insert(ctx, draft("b", testutil.At(0, 9, 0)))
	require.NoError(t, err)
	_, err = svc.Insert(ctx, draft("c", testutil.At(1, 9, 0)))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.ErrorIs(t, svc.Delete(ctx, a.ID), repository.ErrNotFound)

	n, err := svc.ClearDay(ctx, testutil.At(0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "c", all[0].Title)
}

func TestReconcileTwiceAgainstSQLite(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	r := reconcile.New(svc)
	c, ok := extract.NewCandidate("Meeting", "", testutil.At(0, 14, 0), extract.SourceMarker)
	require.True(t, ok)

	first := r.Apply(ctx, []extract.Candidate{c})
	second := r.Apply(ctx, []extract.Candidate{c})

	assert.Len(t, first.Inserted, 1)
	assert.Empty(t, first.Updated)
	assert.Empty(t, second.Inserted)
	assert.Len(t, second.Updated, 1)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestReconcileSameBatchDuplicatesAgainstSQLite(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	c, ok := extract.NewCandidate("class", "", testutil.At(1, 9, 0), extract.SourceMarker)
	require.True(t, ok)

	sum := reconcile.New(svc).Apply(ctx, []extract.Candidate{c, c})

	assert.Len(t, sum.Inserted, 1)
	assert.Len(t, sum.Updated, 1)
	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	svc := setupService(t, obs)

	_, err := svc.Insert(context.Background(), draft("Lunch", testutil.At(0, 12, 0)))
	require.NoError(t, err)
	_, err = svc.Insert(context.Background(), draft("", testutil.At(0, 12, 0)))
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "use_case=insert-entry")
	assert.Contains(t, out, "success=true")
	assert.Contains(t, out, "success=false")
	assert.Contains(t, out, "level=ERROR")
}

func TestLogUseCaseObserver_NotFoundIsWarning(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	svc := setupService(t, obs)

	err := svc.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)

	out := buf.String()
	assert.Contains(t, out, "use_case=delete-entry")
	assert.Contains(t, out, "level=WARN")
	assert.NotContains(t, out, "level=ERROR")
}

func TestNewLogUseCaseObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
