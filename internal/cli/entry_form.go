package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
)

// errFormAborted is returned when the user leaves a form without submitting.
var errFormAborted = errors.New("cancelled")

// entryValues holds the raw text of an entry being added or edited.
type entryValues struct {
	Title string
	Date  string
	Time  string
	Desc  string
}

// start resolves Date and Time to an instant in the app's zone. Empty
// values fall back to the calendar day and clock of fallback.
func (v entryValues) start(app *App, fallback time.Time) (time.Time, error) {
	fallback = fallback.In(app.location())

	day := time.Date(fallback.Year(), fallback.Month(), fallback.Day(), 0, 0, 0, 0, fallback.Location())
	if strings.TrimSpace(v.Date) != "" {
		d, err := parseDay(app, v.Date)
		if err != nil {
			return time.Time{}, err
		}
		day = d
	}

	if strings.TrimSpace(v.Time) == "" {
		return time.Date(day.Year(), day.Month(), day.Day(),
			fallback.Hour(), fallback.Minute(), 0, 0, day.Location()), nil
	}
	c, err := parseClock(v.Time)
	if err != nil {
		return time.Time{}, err
	}
	return c.On(day), nil
}

// newEntryForm builds the add/edit form over v.
func newEntryForm(app *App, title string, v *entryValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&v.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Date").
				Description("DD/MM/YYYY, today or tomorrow").
				Placeholder("today").
				Value(&v.Date).
				Validate(func(s string) error {
					_, err := parseDay(app, s)
					return err
				}),
			huh.NewInput().
				Title("Time").
				Description("24-hour HH:MM").
				Placeholder("14:00").
				Value(&v.Time).
				Validate(func(s string) error {
					_, err := parseClock(s)
					return err
				}),
			huh.NewInput().
				Title("Description").
				Value(&v.Desc),
		).Title(title),
	).WithTheme(formTheme()).WithShowHelp(false)
}

// runEntryForm shows the entry form and maps an abort to errFormAborted.
func runEntryForm(app *App, title string, v *entryValues) error {
	err := newEntryForm(app, title, v).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return errFormAborted
	}
	return err
}
