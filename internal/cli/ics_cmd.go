package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/cli/formatter"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/ics"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/reconcile"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every entry to an iCalendar (.ics) file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Schedules.List(cmd.Context())
			if err != nil {
				return err
			}

			if outPath == "" || outPath == "-" {
				return ics.Export(cmd.OutOrStdout(), entries, app.now())
			}

			f, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			if err := ics.Export(f, entries, app.now()); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d %s to %s\n", len(entries), plural(len(entries), "entry", "entries"), outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.ics>",
		Short: "Add the events of an iCalendar file; events at an existing start time update it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
			}

			parsed, err := ics.Parse(r, app.location())
			if err != nil {
				return err
			}

			sum := reconcile.New(app.Schedules).Apply(cmd.Context(), parsed.Candidates)
			out := cmd.OutOrStdout()
			if len(parsed.Candidates) == 0 {
				fmt.Fprintln(out, formatter.StyleWarn.Render("No importable events found."))
			} else {
				fmt.Fprintln(out, sum.StatusLine())
			}
			if parsed.Skipped > 0 {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("Skipped %d %s (all-day, untitled or without a start).",
					parsed.Skipped, plural(parsed.Skipped, "event", "events"))))
			}
			for _, f := range sum.Failed {
				fmt.Fprintf(out, "  %s %s %s\n", formatter.StyleFailed.Render("!"), f.Candidate.Title, formatter.Dim(f.Err.Error()))
			}
			if sum.SnapshotErr != nil {
				return sum.SnapshotErr
			}
			return nil
		},
	}
	return cmd
}
