// Package ics exports schedule entries as an iCalendar file and reads VEVENTs
// back as schedule candidates.
package ics

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/domain"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/extract"
)

const productID = "-//smartsched//Smart Scheduler//EN"

// Export writes entries as one VCALENDAR. The entry id is the VEVENT UID.
func Export(w io.Writer, entries []*domain.ScheduleEntry, now time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, e := range entries {
		ev := cal.AddEvent(e.ID)
		ev.SetDtStampTime(now.UTC())
		ev.SetCreatedTime(e.CreatedAt.UTC())
		ev.SetModifiedAt(e.UpdatedAt.UTC())
		ev.SetStartAt(e.Start.UTC())
		ev.SetEndAt(e.End.UTC())
		ev.SetSummary(e.Title)
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
		if e.Completed {
			ev.SetStatus(ical.ObjectStatusCompleted)
		} else {
			ev.SetStatus(ical.ObjectStatusConfirmed)
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// ParseResult holds the candidates read from a calendar and how many
// VEVENTs were skipped.
type ParseResult struct {
	Candidates []extract.Candidate
	Skipped    int
}

// Parse reads every timed VEVENT with a summary. All-day events and events
// without a usable start are skipped. Starts are converted to loc; the
// event's own end is kept when it is after the start.
func Parse(r io.Reader, loc *time.Location) (ParseResult, error) {
	var res ParseResult
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return res, fmt.Errorf("parsing calendar: %w", err)
	}
	if loc == nil {
		loc = time.Local
	}

	for _, ve := range cal.Events() {
		c, err := candidateFrom(ve, loc)
		if err != nil {
			res.Skipped++
			continue
		}
		res.Candidates = append(res.Candidates, c)
	}
	return res, nil
}

var (
	errNoSummary = errors.New("missing SUMMARY")
	errNoStart   = errors.New("missing or invalid DTSTART")
	errAllDay    = errors.New("all-day event")
)

func candidateFrom(ve *ical.VEvent, loc *time.Location) (extract.Candidate, error) {
	var summary, desc string
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		summary = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		desc = p.Value
	}

	dt := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dt == nil {
		return extract.Candidate{}, errNoStart
	}
	if !strings.Contains(dt.Value, "T") {
		return extract.Candidate{}, errAllDay
	}
	start, err := ve.GetStartAt()
	if err != nil || start.IsZero() {
		return extract.Candidate{}, errNoStart
	}

	c, ok := extract.NewCandidate(summary, desc, start.In(loc), extract.SourceICS)
	if !ok {
		return extract.Candidate{}, errNoSummary
	}
	if end, err := ve.GetEndAt(); err == nil && end.After(start) {
		c.End = end.In(loc)
	}
	return c, nil
}
