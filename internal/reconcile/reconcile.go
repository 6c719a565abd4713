// Package reconcile maps extracted candidates onto the stored schedule,
// updating an entry that starts at the same instant or inserting a new one.
package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/domain"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/extract"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/repository"
)

// Store is the schedule collection as seen by the reconciler. It never deletes.
type Store interface {
	List(ctx context.Context) ([]*domain.ScheduleEntry, error)
	Insert(ctx context.Context, d domain.EntryDraft) (*domain.ScheduleEntry, error)
	Update(ctx context.Context, id string, p domain.EntryPatch) (*domain.ScheduleEntry, error)
}

// Failure records a candidate the store rejected.
type Failure struct {
	Candidate extract.Candidate
	Err       error
}

// Summary reports what one batch did to the store.
type Summary struct {
	Candidates  int
	Inserted    []*domain.ScheduleEntry
	Updated     []*domain.ScheduleEntry
	Failed      []Failure
	SnapshotErr error
}

// Written returns the inserted and updated entries, inserts first.
func (s Summary) Written() []*domain.ScheduleEntry {
	out := make([]*domain.ScheduleEntry, 0, len(s.Inserted)+len(s.Updated))
	out = append(out, s.Inserted...)
	return append(out, s.Updated...)
}

// Observer receives one event per candidate decision.
type Observer interface {
	OnInsert(c extract.Candidate, e *domain.ScheduleEntry)
	OnUpdate(c extract.Candidate, e *domain.ScheduleEntry)
	OnFailure(c extract.Candidate, err error)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnInsert(extract.Candidate, *domain.ScheduleEntry) {}
func (NoopObserver) OnUpdate(extract.Candidate, *domain.ScheduleEntry) {}
func (NoopObserver) OnFailure(extract.Candidate, error)                {}

// Reconciler applies candidates to a Store.
type Reconciler struct {
	store    Store
	observer Observer
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithObserver sets the observer notified of each decision.
func WithObserver(o Observer) Option {
	return func(r *Reconciler) {
		if o != nil {
			r.observer = o
		}
	}
}

// New creates a Reconciler over store.
func New(store Store, opts ...Option) *Reconciler {
	r := &Reconciler{store: store, observer: NoopObserver{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Apply reconciles candidates sequentially, in order. The store is listed once;
// entries written during the batch join that working set, so a later
// candidate with the same start updates what an earlier one inserted. Store
// failures are recorded per candidate and never abort the batch. If the
// snapshot cannot be read, nothing is written and every candidate fails.
func (r *Reconciler) Apply(ctx context.Context, candidates []extract.Candidate) Summary {
	sum := Summary{Candidates: len(candidates)}
	if len(candidates) == 0 {
		return sum
	}

	working, err := r.store.List(ctx)
	if err != nil {
		sum.SnapshotErr = fmt.Errorf("listing schedule: %w", err)
		for _, c := range candidates {
			sum.Failed = append(sum.Failed, Failure{Candidate: c, Err: sum.SnapshotErr})
			r.observer.OnFailure(c, sum.SnapshotErr)
		}
		return sum
	}

	for _, c := range candidates {
		idx := findByStart(working, c)
		if idx >= 0 {
			updated, err := r.update(ctx, working[idx], c)
			switch {
			case err == nil:
				working[idx] = updated
				sum.Updated = append(sum.Updated, updated)
				r.observer.OnUpdate(c, updated)
				continue
			case errors.Is(err, repository.ErrNotFound):
				// Deleted since the snapshot; fall through to insert.
				working = append(working[:idx], working[idx+1:]...)
			default:
				sum.Failed = append(sum.Failed, Failure{Candidate: c, Err: err})
				r.observer.OnFailure(c, err)
				continue
			}
		}

		inserted, err := r.store.Insert(ctx, c.Draft())
		if err != nil {
			sum.Failed = append(sum.Failed, Failure{Candidate: c, Err: err})
			r.observer.OnFailure(c, err)
			continue
		}
		working = append(working, inserted)
		sum.Inserted = append(sum.Inserted, inserted)
		r.observer.OnInsert(c, inserted)
	}
	return sum
}

func (r *Reconciler) update(ctx context.Context, e *domain.ScheduleEntry, c extract.Candidate) (*domain.ScheduleEntry, error) {
	title, desc, end := c.Title, c.Description, c.End
	return r.store.Update(ctx, e.ID, domain.EntryPatch{
		Title:       &title,
		Description: &desc,
		End:         &end,
	})
}

// findByStart returns the index of the first entry starting at exactly
// c.Start, or -1.
func findByStart(entries []*domain.ScheduleEntry, c extract.Candidate) int {
	for i, e := range entries {
		if e.Start.Equal(c.Start) {
			return i
		}
	}
	return -1
}
