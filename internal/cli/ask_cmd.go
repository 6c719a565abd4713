package cli

import (
	"fmt"
	"strings"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/assistant"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/cli/formatter"
	"github.com/spf13/cobra"
)

var errAssistantDisabled = fmt.Errorf("the assistant is disabled. Manage entries with:\n" +
	"  smartsched schedule add --title \"Meeting\" --time 14:00\n" +
	"  smartsched schedule list\n\n" +
	"Enable with: SMARTSCHED_LLM_ENABLED=true")

func newAskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   `ask "<message>"`,
		Short: "Send one message to the assistant and save any schedule it contains",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asst, err := app.requireAssistant()
			if err != nil {
				return err
			}

			utterance := strings.Join(args, " ")
			stop := startSpinner(cmd, app, "Thinking...")
			res, err := asst.Submit(cmd.Context(), utterance)
			stop()
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResult(res, app.location()))
			if res.Outcome == assistant.OutcomeUnreachable {
				app.logger().Warn("assistant unreachable", "err", res.Err)
			}
			return nil
		},
	}
	return cmd
}

// startSpinner shows a spinner on stderr while interactive and returns its
// stop function.
func startSpinner(cmd *cobra.Command, app *App, msg string) func() {
	if !app.interactive() {
		return func() {}
	}
	return formatter.StartSpinner(cmd.ErrOrStderr(), msg)
}
