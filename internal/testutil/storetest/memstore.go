// Package storetest provides an in-memory schedule store with fault injection
// for pipeline tests.
package storetest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/domain"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/repository"
	"github.com/google/uuid"
)

// MemStore keeps entries in memory and counts every call. Set the Fail*
// hooks to inject errors; a hook returning nil lets the call proceed. Hooks
// run without the store lock held, so they may call Remove.
type MemStore struct {
	mu      sync.Mutex
	entries map[string]*domain.ScheduleEntry
	Now     time.Time

	ListCalls   int
	InsertCalls int
	UpdateCalls int

	FailList   func() error
	FailInsert func(d domain.EntryDraft) error
	FailUpdate func(id string) error
}

// New returns an empty MemStore seeded with entries.
func New(entries ...*domain.ScheduleEntry) *MemStore {
	s := &MemStore{entries: make(map[string]*domain.ScheduleEntry)}
	for _, e := range entries {
		cp := *e
		s.entries[e.ID] = &cp
	}
	return s
}

func (s *MemStore) List(ctx context.Context) ([]*domain.ScheduleEntry, error) {
	s.mu.Lock()
	s.ListCalls++
	hook := s.FailList
	s.mu.Unlock()
	if hook != nil {
		if err := hook(); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

func (s *MemStore) Insert(ctx context.Context, d domain.EntryDraft) (*domain.ScheduleEntry, error) {
	s.mu.Lock()
	s.InsertCalls++
	hook := s.FailInsert
	s.mu.Unlock()
	if hook != nil {
		if err := hook(d); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := domain.NewEntry(uuid.New().String(), d, s.Now)
	if err != nil {
		return nil, err
	}
	s.entries[e.ID] = e
	cp := *e
	return &cp, nil
}

func (s *MemStore) Update(ctx context.Context, id string, p domain.EntryPatch) (*domain.ScheduleEntry, error) {
	s.mu.Lock()
	s.UpdateCalls++
	hook := s.FailUpdate
	s.mu.Unlock()
	if hook != nil {
		if err := hook(id); err != nil {
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, fmt.Errorf("schedule %s: %w", id, repository.ErrNotFound)
	}
	if err := e.Apply(p, s.Now); err != nil {
		return nil, err
	}
	cp := *e
	return &cp, nil
}

// Remove deletes an entry behind the reconciler's back.
func (s *MemStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Entries returns a start-ordered copy of the stored entries.
func (s *MemStore) Entries() []*domain.ScheduleEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Writes returns the number of insert and update calls.
func (s *MemStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.InsertCalls + s.UpdateCalls
}

func (s *MemStore) snapshot() []*domain.ScheduleEntry {
	out := make([]*domain.ScheduleEntry, 0, len(s.entries))
	for _, e := range s.entries {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start.Equal(out[j].Start) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out
}
