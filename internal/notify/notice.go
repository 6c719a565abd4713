// Package notify computes schedule reminders and delivers them on a cron tick.
package notify

import (
	"fmt"
	"sort"
	"time"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/domain"
)

// Kind classifies a notice by how far ahead of the start it fires.
type Kind string

const (
	KindReminder Kind = "reminder"
	KindUpcoming Kind = "upcoming"
	KindStart    Kind = "start"
)

// DefaultLeads fires a reminder 15 minutes ahead, an upcoming notice 5
// minutes ahead and a start notice at the start.
var DefaultLeads = []time.Duration{15 * time.Minute, 5 * time.Minute, 0}

// KindFor maps a lead to its notice kind.
func KindFor(lead time.Duration) Kind {
	switch {
	case lead <= 0:
		return KindStart
	case lead <= 5*time.Minute:
		return KindUpcoming
	default:
		return KindReminder
	}
}

// Notice is one reminder for one entry.
type Notice struct {
	Kind  Kind
	Entry *domain.ScheduleEntry
	Lead  time.Duration
	At    time.Time
}

// Message renders the notice text.
func (n Notice) Message() string {
	switch n.Kind {
	case KindStart:
		return fmt.Sprintf("🔔 %s is starting now.", n.Entry.Title)
	case KindUpcoming:
		return fmt.Sprintf("⏰ %s starts in %s.", n.Entry.Title, minutes(n.Lead))
	default:
		return fmt.Sprintf("📅 Reminder: %s at %s (in %s).",
			n.Entry.Title, n.Entry.Start.In(n.At.Location()).Format("15:04"), minutes(n.Lead))
	}
}

func minutes(d time.Duration) string {
	m := int(d.Round(time.Minute) / time.Minute)
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}

// Plan returns the notices still ahead for e as of now. Completed entries
// and entries that already started get none; a lead longer than the time
// left before the start is dropped.
func Plan(e *domain.ScheduleEntry, now time.Time, leads []time.Duration) []Notice {
	if e.Completed || e.Start.Before(now) {
		return nil
	}
	var out []Notice
	for _, lead := range leads {
		at := e.Start.Add(-lead)
		if at.Before(now) {
			continue
		}
		out = append(out, Notice{Kind: KindFor(lead), Entry: e, Lead: lead, At: at.In(now.Location())})
	}
	sortNotices(out)
	return out
}

// Due returns notices firing in (since, until], ordered by time.
func Due(entries []*domain.ScheduleEntry, since, until time.Time, leads []time.Duration) []Notice {
	var out []Notice
	for _, e := range entries {
		if e.Completed {
			continue
		}
		for _, lead := range leads {
			at := e.Start.Add(-lead)
			if at.After(since) && !at.After(until) {
				out = append(out, Notice{Kind: KindFor(lead), Entry: e, Lead: lead, At: at.In(until.Location())})
			}
		}
	}
	sortNotices(out)
	return out
}

// MaxLead returns the longest lead, or zero.
func MaxLead(leads []time.Duration) time.Duration {
	var m time.Duration
	for _, l := range leads {
		if l > m {
			m = l
		}
	}
	return m
}

func sortNotices(ns []Notice) {
	sort.SliceStable(ns, func(i, j int) bool {
		return ns[i].At.Before(ns[j].At)
	})
}
