package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/assistant"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant; schedules mentioned are saved as you go",
		Long: "Opens an interactive chat when stdin is a terminal. Otherwise each\n" +
			"non-empty line of stdin is submitted in turn.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asst, err := app.requireAssistant()
			if err != nil {
				return err
			}
			if app.interactive() {
				p := tea.NewProgram(newChatView(cmd.Context(), app),
					tea.WithContext(cmd.Context()),
					tea.WithOutput(cmd.OutOrStdout()),
				)
				_, err := p.Run()
				if errors.Is(err, tea.ErrProgramKilled) {
					return nil
				}
				return err
			}
			return chatLines(cmd, app, asst)
		},
	}
	return cmd
}

// chatLines submits stdin line by line, printing each result.
func chatLines(cmd *cobra.Command, app *App, asst *assistant.Assistant) error {
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch strings.ToLower(line) {
		case "/quit", "/exit", "/q":
			return nil
		}

		res, err := asst.Submit(cmd.Context(), line)
		if err != nil {
			if errors.Is(err, assistant.ErrEmptyUtterance) {
				continue
			}
			return err
		}
		fmt.Fprintf(out, "%s%s\n", formatter.Dim("You: "), line)
		fmt.Fprintln(out, formatter.FormatResult(res, app.location()))
	}
	return scanner.Err()
}
