package testutil

import (
	"time"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/domain"
	"github.com/google/uuid"
)

// Anchor is the fixed "now" used across tests: Thursday 2024-06-20 09:30 UTC.
var Anchor = time.Date(2024, 6, 20, 9, 30, 0, 0, time.UTC)

// At returns the given wall-clock time on the anchor day, offset by days.
func At(days, hour, minute int) time.Time {
	y, m, d := Anchor.Date()
	return time.Date(y, m, d+days, hour, minute, 0, 0, Anchor.Location())
}

// Entry options
type EntryOption func(*domain.ScheduleEntry)

func WithDescription(desc string) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.Description = desc
	}
}

func WithStart(start time.Time) EntryOption {
	return func(e *domain.ScheduleEntry) {
		d := e.Duration()
		e.Start = start
		e.End = start.Add(d)
	}
}

func WithEnd(end time.Time) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.End = end
	}
}

func WithCompleted() EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.Completed = true
	}
}

func WithID(id string) EntryOption {
	return func(e *domain.ScheduleEntry) {
		e.ID = id
	}
}

// NewTestEntry returns a one-hour entry starting at 10:00 on the anchor day.
func NewTestEntry(title string, opts ...EntryOption) *domain.ScheduleEntry {
	start := At(0, 10, 0)
	e := &domain.ScheduleEntry{
		ID:        uuid.New().String(),
		Title:     title,
		Start:     start,
		End:       start.Add(domain.DefaultDuration),
		CreatedAt: Anchor,
		UpdatedAt: Anchor,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
