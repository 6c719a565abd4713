package extract

import (
	"strings"
	"time"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/domain"
)

// Candidate sources that are not free-text rule kinds.
const (
	SourceMarker = "marker"
	SourceICS    = "ics"
)

// Candidate is a schedule mention extracted from text, not yet persisted.
// Source names the rule or grammar that produced it and is never stored.
type Candidate struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	Source      string
}

// NewCandidate trims title and gives the candidate the default one-hour
// duration. It reports false when the title is empty.
func NewCandidate(title, description string, start time.Time, source string) (Candidate, bool) {
	title = strings.TrimSpace(title)
	if title == "" || start.IsZero() {
		return Candidate{}, false
	}
	return Candidate{
		Title:       title,
		Description: strings.TrimSpace(description),
		Start:       start,
		End:         start.Add(domain.DefaultDuration),
		Source:      source,
	}, true
}

// Draft converts the candidate into a store draft.
func (c Candidate) Draft() domain.EntryDraft {
	return domain.EntryDraft{
		Title:       c.Title,
		Description: c.Description,
		Start:       c.Start,
		End:         c.End,
	}
}

type candidateKey struct {
	title string
	start int64
}

// Dedupe drops candidates whose (title, start) repeats an earlier one and
// returns the survivors in their original order plus the number dropped.
func Dedupe(cs []Candidate) ([]Candidate, int) {
	seen := make(map[candidateKey]bool, len(cs))
	out := make([]Candidate, 0, len(cs))
	for _, c := range cs {
		k := candidateKey{title: c.Title, start: c.Start.UnixNano()}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out, len(cs) - len(out)
}
