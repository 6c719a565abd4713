package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/domain"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/notify"
)

// FormatEntries renders entries as a table in loc, with days relative to now.
func FormatEntries(entries []*domain.ScheduleEntry, now time.Time) string {
	if len(entries) == 0 {
		return Dim("No schedule entries.") + "\n"
	}

	headers := []string{"ID", "DAY", "DATE", "TIME", "TITLE", "STATUS"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		start := e.Start.In(now.Location())
		rows = append(rows, []string{
			TruncID(e.ID),
			RelativeDayFrom(start, now),
			start.Format("02/01/2006"),
			timeRange(e, now.Location()),
			entryTitle(e),
			CompletedPill(e.Completed),
		})
	}
	return RenderTable(headers, rows)
}

// FormatDay renders one day's entries under a day heading.
func FormatDay(day time.Time, entries []*domain.ScheduleEntry) string {
	var b strings.Builder
	b.WriteString(Header(DayTitle(day)))
	b.WriteString("\n")
	if len(entries) == 0 {
		b.WriteString(Dim("Nothing scheduled.") + "\n")
		return b.String()
	}

	headers := []string{"TIME", "TITLE", "STATUS", "ID"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			timeRange(e, day.Location()),
			entryTitle(e),
			CompletedPill(e.Completed),
			TruncID(e.ID),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

// FormatEntryDetail renders a single entry with all of its fields.
func FormatEntryDetail(e *domain.ScheduleEntry, loc *time.Location) string {
	start := e.Start.In(loc)
	lines := []string{
		fmt.Sprintf("%s %s", Dim("ID:         "), e.ID),
		fmt.Sprintf("%s %s", Dim("Title:      "), Bold(e.Title)),
		fmt.Sprintf("%s %s", Dim("When:       "), DayTitle(start)+" "+timeRange(e, loc)),
		fmt.Sprintf("%s %s", Dim("Duration:   "), FormatDuration(e.Duration())),
		fmt.Sprintf("%s %s", Dim("Status:     "), CompletedPill(e.Completed)),
	}
	if e.Description != "" {
		lines = append(lines, fmt.Sprintf("%s %s", Dim("Description:"), e.Description))
	}
	return strings.Join(lines, "\n") + "\n"
}

// FormatNotice renders a reminder line.
func FormatNotice(n notify.Notice) string {
	style := StyleTime
	switch n.Kind {
	case notify.KindStart:
		style = StyleOK
	case notify.KindUpcoming:
		style = StyleWarn
	}
	return fmt.Sprintf("%s %s", Dim(n.At.Format("15:04")), style.Render(n.Message()))
}

func timeRange(e *domain.ScheduleEntry, loc *time.Location) string {
	return e.Start.In(loc).Format("15:04") + "–" + e.End.In(loc).Format("15:04")
}

func entryTitle(e *domain.ScheduleEntry) string {
	if e.Completed {
		return StyleDim.Strikethrough(true).Render(e.Title)
	}
	return StyleTitle.Render(e.Title)
}
