package reconcile_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/domain"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/extract"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/reconcile"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/testutil"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/testutil/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(t *testing.T, title string, start time.Time) extract.Candidate {
	t.Helper()
	c, ok := extract.NewCandidate(title, "", start, extract.SourceMarker)
	require.True(t, ok)
	return c
}

func TestApply_InsertsNewEntry(t *testing.T) {
	store := storetest.New()
	r := reconcile.New(store)

	sum := r.Apply(context.Background(), []extract.Candidate{candidate(t, "Meeting", testutil.At(0, 14, 0))})

	require.Len(t, sum.Inserted, 1)
	assert.Empty(t, sum.Updated)
	assert.Empty(t, sum.Failed)
	e := store.Entries()[0]
	assert.Equal(t, "Meeting", e.Title)
	assert.False(t, e.Completed)
	assert.Equal(t, time.Hour, e.Duration())
}

func TestApply_SameCandidateTwiceIsIdempotent(t *testing.T) {
	store := storetest.New()
	r := reconcile.New(store)
	ctx := context.Background()
	c := candidate(t, "Meeting", testutil.At(0, 14, 0))

	first := r.Apply(ctx, []extract.Candidate{c})
	second := r.Apply(ctx, []extract.Candidate{c})

	assert.Len(t, first.Inserted, 1)
	assert.Empty(t, first.Updated)
	assert.Empty(t, second.Inserted)
	assert.Len(t, second.Updated, 1)
	assert.Len(t, store.Entries(), 1)
	assert.Equal(t, first.Inserted[0].ID, second.Updated[0].ID)
}

func TestApply_UpdateKeepsIDAndCompleted(t *testing.T) {
	existing := testutil.NewTestEntry("Old title",
		testutil.WithStart(testutil.At(0, 14, 0)),
		testutil.WithEnd(testutil.At(0, 16, 0)),
		testutil.WithDescription("old"),
		testutil.WithCompleted(),
	)
	store := storetest.New(existing)
	r := reconcile.New(store)

	sum := r.Apply(context.Background(), []extract.Candidate{candidate(t, "New title", testutil.At(0, 14, 0))})

	require.Len(t, sum.Updated, 1)
	e := store.Entries()[0]
	assert.Equal(t, existing.ID, e.ID)
	assert.Equal(t, "New title", e.Title)
	assert.Empty(t, e.Description)
	assert.Equal(t, testutil.At(0, 15, 0), e.End)
	assert.True(t, e.Completed)
}

func TestApply_SameBatchSameStartUpdatesEarlierInsert(t *testing.T) {
	store := storetest.New()
	r := reconcile.New(store)
	start := testutil.At(1, 9, 0)

	// Dedupe would normally drop the exact repeat; the reconciler must still
	// collapse same-start candidates written earlier in the batch.
	sum := r.Apply(context.Background(), []extract.Candidate{
		candidate(t, "class", start),
		candidate(t, "class", start),
		candidate(t, "lecture", start),
	})

	assert.Len(t, sum.Inserted, 1)
	assert.Len(t, sum.Updated, 2)
	require.Len(t, store.Entries(), 1)
	assert.Equal(t, "lecture", store.Entries()[0].Title)
	assert.Equal(t, 1, store.InsertCalls)
}

func TestApply_MatchesInstantAcrossZones(t *testing.T) {
	existing := testutil.NewTestEntry("Call", testutil.WithStart(testutil.At(0, 7, 0)))
	store := storetest.New(existing)
	r := reconcile.New(store)
	wib := time.FixedZone("WIB", 7*3600)

	sum := r.Apply(context.Background(), []extract.Candidate{
		candidate(t, "Call", testutil.At(0, 7, 0).In(wib)),
	})

	assert.Len(t, sum.Updated, 1)
	assert.Len(t, store.Entries(), 1)
}

func TestApply_VanishedEntryIsReinserted(t *testing.T) {
	existing := testutil.NewTestEntry("Gone", testutil.WithStart(testutil.At(0, 14, 0)))
	store := storetest.New(existing)
	store.FailUpdate = func(id string) error {
		store.Remove(id)
		return nil
	}
	r := reconcile.New(store)

	sum := r.Apply(context.Background(), []extract.Candidate{candidate(t, "Back", testutil.At(0, 14, 0))})

	assert.Empty(t, sum.Failed)
	assert.Empty(t, sum.Updated)
	require.Len(t, sum.Inserted, 1)
	require.Len(t, store.Entries(), 1)
	assert.Equal(t, "Back", store.Entries()[0].Title)
	assert.NotEqual(t, existing.ID, store.Entries()[0].ID)
}

func TestApply_PerCandidateFailuresDoNotAbort(t *testing.T) {
	store := storetest.New()
	boom := errors.New("disk full")
	store.FailInsert = func(d domain.EntryDraft) error {
		if d.Title == "bad" {
			return boom
		}
		return nil
	}
	r := reconcile.New(store)

	sum := r.Apply(context.Background(), []extract.Candidate{
		candidate(t, "first", testutil.At(0, 8, 0)),
		candidate(t, "bad", testutil.At(0, 9, 0)),
		candidate(t, "last", testutil.At(0, 10, 0)),
	})

	assert.Len(t, sum.Inserted, 2)
	require.Len(t, sum.Failed, 1)
	assert.Equal(t, "bad", sum.Failed[0].Candidate.Title)
	assert.ErrorIs(t, sum.Failed[0].Err, boom)
	assert.Len(t, store.Entries(), 2)
}

func TestApply_SnapshotFailureWritesNothing(t *testing.T) {
	store := storetest.New()
	outage := errors.New("connection refused")
	store.FailList = func() error { return outage }
	r := reconcile.New(store)

	sum := r.Apply(context.Background(), []extract.Candidate{
		candidate(t, "a1", testutil.At(0, 8, 0)),
		candidate(t, "a2", testutil.At(0, 9, 0)),
	})

	assert.ErrorIs(t, sum.SnapshotErr, outage)
	assert.Len(t, sum.Failed, 2)
	assert.Zero(t, store.Writes())
}

func TestApply_ListsOnce(t *testing.T) {
	store := storetest.New()
	r := reconcile.New(store)

	r.Apply(context.Background(), []extract.Candidate{
		candidate(t, "a1", testutil.At(0, 8, 0)),
		candidate(t, "a2", testutil.At(0, 9, 0)),
		candidate(t, "a3", testutil.At(0, 10, 0)),
	})

	assert.Equal(t, 1, store.ListCalls)
}

func TestApply_NoCandidatesTouchesNothing(t *testing.T) {
	store := storetest.New()
	r := reconcile.New(store)

	sum := r.Apply(context.Background(), nil)

	assert.Zero(t, sum.Candidates)
	assert.Zero(t, store.ListCalls)
	assert.Zero(t, store.Writes())
}

type recordingObserver struct {
	events []string
}

func (o *recordingObserver) OnInsert(c extract.Candidate, _ *domain.ScheduleEntry) {
	o.events = append(o.events, "insert:"+c.Title)
}
func (o *recordingObserver) OnUpdate(c extract.Candidate, _ *domain.ScheduleEntry) {
	o.events = append(o.events, "update:"+c.Title)
}
func (o *recordingObserver) OnFailure(c extract.Candidate, _ error) {
	o.events = append(o.events, "fail:"+c.Title)
}

func TestApply_NotifiesObserverInOrder(t *testing.T) {
	store := storetest.New()
	store.FailInsert = func(d domain.EntryDraft) error {
		if d.Title == "c" {
			return errors.New("nope")
		}
		return nil
	}
	obs := &recordingObserver{}
	r := reconcile.New(store, reconcile.WithObserver(obs))

	r.Apply(context.Background(), []extract.Candidate{
		candidate(t, "a", testutil.At(0, 8, 0)),
		candidate(t, "b", testutil.At(0, 8, 0)),
		candidate(t, "c", testutil.At(0, 9, 0)),
	})

	assert.Equal(t, []string{"insert:a", "update:b", "fail:c"}, obs.events)
}
