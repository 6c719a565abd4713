package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/cli/formatter"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/domain"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schedule",
		Aliases: []string{"s"},
		Short:   "Manage schedule entries directly",
	}

	cmd.AddCommand(
		newScheduleListCmd(app),
		newScheduleShowCmd(app),
		newScheduleAddCmd(app),
		newScheduleEditCmd(app),
		newScheduleDoneCmd(app, true),
		newScheduleDoneCmd(app, false),
		newScheduleDeleteCmd(app),
		newScheduleClearCmd(app),
	)

	return cmd
}

func newScheduleListCmd(app *App) *cobra.Command {
	var date string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a day's entries, or every entry with --all",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if all {
				entries, err := app.Schedules.List(ctx)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintln(out, "No entries. Add one with 'smartsched schedule add' or 'smartsched ask'.")
					return nil
				}
				fmt.Fprint(out, formatter.FormatEntries(entries, app.now()))
				return nil
			}

			day, err := parseDay(app, date)
			if err != nil {
				return err
			}
			entries, err := app.Schedules.ListDay(ctx, day)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatDay(day, entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to list (DD/MM/YYYY, today or tomorrow; default today)")
	cmd.Flags().BoolVar(&all, "all", false, "List every entry")
	return cmd
}

func newScheduleShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveEntryID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Schedules.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			detail := strings.TrimSuffix(formatter.FormatEntryDetail(e, app.location()), "\n")
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox("Entry", detail))
			return nil
		},
	}
}

func newScheduleAddCmd(app *App) *cobra.Command {
	var v entryValues
	var length time.Duration

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entry (opens a form when --title or --time is missing)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(v.Title) == "" || strings.TrimSpace(v.Time) == "" {
				if !app.interactive() {
					return fmt.Errorf("--title and --time are required")
				}
				if err := runEntryForm(app, "New entry", &v); err != nil {
					return cancelled(cmd, err)
				}
			}
			if length < 0 {
				return fmt.Errorf("--duration must be positive")
			}

			start, err := v.start(app, app.now())
			if err != nil {
				return err
			}
			d := domain.EntryDraft{Title: v.Title, Description: v.Desc, Start: start}
			if length > 0 {
				d.End = start.Add(length)
			}

			e, err := app.Schedules.Insert(cmd.Context(), d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s on %s [%s]\n",
				formatter.Bold(e.Title), describeStart(app, e), formatter.TruncID(e.ID))
			return nil
		},
	}

	addEntryFlags(cmd, &v)
	cmd.Flags().DurationVar(&length, "duration", 0, "Length, e.g. 90m (default 1h)")
	return cmd
}

func newScheduleEditCmd(app *App) *cobra.Command {
	var v entryValues

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an entry (opens a form when no field flag is given)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveEntryID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Schedules.Get(ctx, id)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			titleSet, descSet := flags.Changed("title"), flags.Changed("desc")
			dateSet, timeSet := flags.Changed("date"), flags.Changed("time")
			if !titleSet && !descSet && !dateSet && !timeSet {
				if !app.interactive() {
					return fmt.Errorf("nothing to change: pass --title, --desc, --date or --time")
				}
				start := e.Start.In(app.location())
				v = entryValues{
					Title: e.Title,
					Date:  start.Format(dateLayout),
					Time:  start.Format("15:04"),
					Desc:  e.Description,
				}
				if err := runEntryForm(app, "Edit entry", &v); err != nil {
					return cancelled(cmd, err)
				}
				titleSet, descSet, dateSet, timeSet = true, true, true, true
			}

			var patch domain.EntryPatch
			if titleSet {
				patch.Title = &v.Title
			}
			if descSet {
				patch.Description = &v.Desc
			}
			if dateSet || timeSet {
				start, err := v.start(app, e.Start)
				if err != nil {
					return err
				}
				end := start.Add(e.Duration())
				patch.Start, patch.End = &start, &end
			}

			updated, err := app.Schedules.Update(ctx, id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s on %s\n",
				formatter.Bold(updated.Title), describeStart(app, updated))
			return nil
		},
	}

	addEntryFlags(cmd, &v)
	return cmd
}

func newScheduleDoneCmd(app *App, completed bool) *cobra.Command {
	use, short, verb := "done <id>", "Mark an entry as completed", "done"
	if !completed {
		use, short, verb = "undone <id>", "Mark an entry as not completed", "not done"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveEntryID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Schedules.SetCompleted(cmd.Context(), id, completed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as %s.\n", formatter.Bold(e.Title), verb)
			return nil
		},
	}
}

func newScheduleDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveEntryID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Schedules.Get(ctx, id)
			if err != nil {
				return err
			}
			if err := app.Schedules.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", formatter.Bold(e.Title))
			return nil
		},
	}
}

func newScheduleClearCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every entry on a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(app, date)
			if err != nil {
				return err
			}
			n, err := app.Schedules.ClearDay(cmd.Context(), day)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d %s from %s.\n", n, plural(n, "entry", "entries"), formatter.DayTitle(day))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to clear (DD/MM/YYYY, today or tomorrow)")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func addEntryFlags(cmd *cobra.Command, v *entryValues) {
	cmd.Flags().StringVar(&v.Title, "title", "", "Entry title")
	cmd.Flags().StringVar(&v.Date, "date", "", "Date (DD/MM/YYYY, today or tomorrow; default today)")
	cmd.Flags().StringVar(&v.Time, "time", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&v.Desc, "desc", "", "Description")
}

// cancelled reports a form abort as a message rather than an error.
func cancelled(cmd *cobra.Command, err error) error {
	if errors.Is(err, errFormAborted) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}
	return err
}

func describeStart(app *App, e *domain.ScheduleEntry) string {
	start := e.Start.In(app.location())
	return fmt.Sprintf("%s at %s", start.Format(dateLayout), start.Format("15:04"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
