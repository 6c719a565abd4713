package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/domain"
)

const (
	promptDateLayout = "02/01/2006"
	promptTimeLayout = "15:04"
	// maxContextEntries bounds the schedule listing sent with each prompt.
	maxContextEntries = 30
)

const scheduleSystemPrompt = `You are a friendly scheduling assistant that helps the user manage a daily calendar.

Answer the user briefly and helpfully. Whenever the user asks to add, move or
plan an activity, append one line per activity in exactly this format, on its
own line, with nothing else on the line:

MARKER: title: <short activity name> time: <HH:MM, 24-hour> date: <DD/MM/YYYY>

Rules:
1. Use the reference date below to resolve words like "today" and "tomorrow".
2. Use 24-hour times. 2 pm is 14:00.
3. Emit a marker only for activities the user actually wants scheduled.
4. To change an existing entry, emit a marker with the same date and time as that entry.
5. Never wrap marker lines in code fences.`

const suggestSystemPrompt = `You are a scheduling assistant that designs balanced, productive days.

Propose a plan for the requested day as a short list of "HH:MM - activity"
lines, then repeat every activity as a marker line in exactly this format:

MARKER: title: <short activity name> time: <HH:MM, 24-hour> date: <DD/MM/YYYY>

Focus on productivity and a healthy balance of work, meals and rest.`

// buildSchedulePrompt renders the user prompt for a chat submission.
func buildSchedulePrompt(entries []*domain.ScheduleEntry, contextErr error, anchor time.Time, utterance string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reference date: %s (%s), current time %s.\n\n",
		anchor.Format(promptDateLayout), anchor.Weekday(), anchor.Format(promptTimeLayout))
	b.WriteString(formatScheduleContext(entries, contextErr, anchor.Location()))
	fmt.Fprintf(&b, "\nUser says: %q\n", utterance)
	return b.String()
}

// buildSuggestPrompt renders the canned request for an alternative day plan.
func buildSuggestPrompt(entries []*domain.ScheduleEntry, contextErr error, day time.Time) string {
	var b strings.Builder
	b.WriteString(suggestRequest(day))
	b.WriteString("\n\n")
	b.WriteString(formatScheduleContext(entries, contextErr, day.Location()))
	return b.String()
}

func suggestRequest(day time.Time) string {
	return fmt.Sprintf("Create a productive alternative schedule for %s %s.",
		day.Weekday(), day.Format(promptDateLayout))
}

// formatScheduleContext lists existing entries as "title on DD/MM/YYYY HH:MM".
func formatScheduleContext(entries []*domain.ScheduleEntry, err error, loc *time.Location) string {
	if err != nil || len(entries) == 0 {
		return "Current schedule: none.\n"
	}
	var b strings.Builder
	b.WriteString("Current schedule:\n")
	shown := entries
	if len(shown) > maxContextEntries {
		shown = shown[len(shown)-maxContextEntries:]
	}
	for _, e := range shown {
		start := e.Start.In(loc)
		status := ""
		if e.Completed {
			status = " (done)"
		}
		fmt.Fprintf(&b, "- %s on %s %s%s\n", e.Title,
			start.Format(promptDateLayout), start.Format(promptTimeLayout), status)
	}
	return b.String()
}
