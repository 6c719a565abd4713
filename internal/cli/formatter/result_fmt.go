package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/assistant"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/reconcile"
)

// FormatResult renders a submission result: the narrative (timetables
// aligned), the status line and the entries that were written.
func FormatResult(res *assistant.Result, loc *time.Location) string {
	var b strings.Builder
	if res.Outcome == assistant.OutcomeUnreachable {
		b.WriteString(StyleFailed.Render(res.Text))
		b.WriteString("\n")
		return b.String()
	}

	if res.Narrative != "" {
		b.WriteString(RenderNarrative(res.Narrative))
		b.WriteString("\n\n")
	}
	b.WriteString(statusStyle(res).Render(statusLine(res)))
	b.WriteString("\n")

	for _, e := range res.Summary.Inserted {
		fmt.Fprintf(&b, "  %s %s %s\n", StyleOK.Render("+"), whenIn(e.Start, loc), e.Title)
	}
	for _, e := range res.Summary.Updated {
		fmt.Fprintf(&b, "  %s %s %s\n", StyleWarn.Render("~"), whenIn(e.Start, loc), e.Title)
	}
	for _, f := range res.Summary.Failed {
		fmt.Fprintf(&b, "  %s %s %s %s\n", StyleFailed.Render("!"), whenIn(f.Candidate.Start, loc),
			f.Candidate.Title, Dim(f.Err.Error()))
	}
	return b.String()
}

func statusLine(res *assistant.Result) string {
	if res.Outcome == assistant.OutcomeNoCandidates {
		return reconcile.NoScheduleMessage
	}
	return res.Summary.StatusLine()
}

func statusStyle(res *assistant.Result) lipgloss.Style {
	switch {
	case res.Outcome == assistant.OutcomeNoCandidates:
		return StyleWarn
	case len(res.Summary.Failed) == 0:
		return StyleOK
	case len(res.Summary.Written()) == 0:
		return StyleFailed
	default:
		return StyleWarn
	}
}

func whenIn(t time.Time, loc *time.Location) string {
	return Dim(t.In(loc).Format("02/01 15:04"))
}
