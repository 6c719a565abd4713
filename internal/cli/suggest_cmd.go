package cli

import (
	"fmt"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newSuggestCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Ask the assistant for an alternative plan for a day and save it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asst, err := app.requireAssistant()
			if err != nil {
				return err
			}
			day, err := parseDay(app, date)
			if err != nil {
				return err
			}

			stop := startSpinner(cmd, app, "Planning "+formatter.DayTitle(day)+"...")
			res, err := asst.Suggest(cmd.Context(), day)
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header("Suggested plan for "+formatter.DayTitle(day)))
			fmt.Fprint(out, formatter.FormatResult(res, app.location()))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to plan (DD/MM/YYYY, today or tomorrow; default today)")
	return cmd
}
