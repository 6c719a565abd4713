package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/cli/formatter"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/notify"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print reminders for upcoming entries until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			notifier := notify.Multi{
				notify.WriterNotifier{W: out, Render: formatter.FormatNotice},
				notify.LogNotifier{Logger: app.logger()},
			}
			w := notify.NewWatcher(app.Schedules, notifier,
				notify.WithLeads(app.Leads),
				notify.WithSpec(app.WatchSpec),
				notify.WithClock(app.now),
				notify.WithLogger(app.logger()),
			)

			if !quiet {
				day, _ := parseDay(app, "")
				entries, err := app.Schedules.ListDay(ctx, day)
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.FormatDay(day, entries))
				fmt.Fprintln(out, formatter.Dim("Watching for reminders. Press Ctrl+C to stop."))
			}
			return w.Run(ctx)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print reminders")
	return cmd
}
