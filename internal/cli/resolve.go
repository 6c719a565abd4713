package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/extract"
)

const dateLayout = "02/01/2006"

// resolveEntryID accepts a full entry ID or an unambiguous prefix of one.
func resolveEntryID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("entry ID is required")
	}

	entries, err := app.Schedules.List(ctx)
	if err != nil {
		return "", err
	}

	for _, e := range entries {
		if e.ID == input {
			return e.ID, nil
		}
	}

	var matches []string
	for _, e := range entries {
		if strings.HasPrefix(e.ID, strings.ToLower(input)) {
			matches = append(matches, e.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("entry not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("entry ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// parseDay turns a --date value into midnight of that day in the app's zone.
// Empty means today.
func parseDay(app *App, value string) (time.Time, error) {
	now := app.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}
	day, ok := extract.ParseDate(value, now)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date %q (use DD/MM/YYYY)", value)
	}
	return day, nil
}

// parseClock parses a --time value such as "14:00", "9.30" or "7pm".
func parseClock(value string) (extract.Clock, error) {
	c, ok := extract.ParseClock(value)
	if !ok {
		return extract.Clock{}, fmt.Errorf("invalid time %q (use HH:MM)", value)
	}
	return c, nil
}
