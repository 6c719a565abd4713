package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultDuration is the length of every entry created without an explicit end.
const DefaultDuration = time.Hour

// ErrInvalidEntry is returned when an entry violates its invariants.
var ErrInvalidEntry = errors.New("invalid schedule entry")

// ScheduleEntry is a single calendar entry owned by the schedule store.
type ScheduleEntry struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EntryDraft carries the fields needed to create an entry. The store assigns
// the ID and timestamps.
type EntryDraft struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}

// EntryPatch describes a partial update. Nil fields are left untouched.
type EntryPatch struct {
	Title       *string
	Description *string
	Start       *time.Time
	End         *time.Time
	Completed   *bool
}

// NewEntry builds an entry from a draft. A zero End defaults to
// Start + DefaultDuration.
func NewEntry(id string, d EntryDraft, now time.Time) (*ScheduleEntry, error) {
	end := d.End
	if end.IsZero() {
		end = d.Start.Add(DefaultDuration)
	}
	e := &ScheduleEntry{
		ID:          id,
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Start:       d.Start,
		End:         end,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks the entry invariants: non-empty title and End after Start.
func (e *ScheduleEntry) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidEntry)
	}
	if e.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidEntry)
	}
	if !e.End.After(e.Start) {
		return fmt.Errorf("%w: end %s must be after start %s",
			ErrInvalidEntry, e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
	}
	return nil
}

// Apply mutates the entry with the non-nil fields of p. The entry is left
// unchanged if the result would be invalid.
func (e *ScheduleEntry) Apply(p EntryPatch, now time.Time) error {
	next := *e
	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		next.Description = strings.TrimSpace(*p.Description)
	}
	if p.Start != nil {
		next.Start = *p.Start
	}
	if p.End != nil {
		next.End = *p.End
	}
	if p.Completed != nil {
		next.Completed = *p.Completed
	}
	if err := next.Validate(); err != nil {
		return err
	}
	next.UpdatedAt = now
	*e = next
	return nil
}

// Duration returns End - Start.
func (e *ScheduleEntry) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// StartsOn reports whether the entry starts on the calendar day of day,
// evaluated in day's location.
func (e *ScheduleEntry) StartsOn(day time.Time) bool {
	s := e.Start.In(day.Location())
	y1, m1, d1 := s.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
