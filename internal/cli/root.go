package cli

import (
	"io"
	"time"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/assistant"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/service"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// App holds the services and settings used by CLI commands.
type App struct {
	Schedules service.ScheduleService
	// Assistant is nil when the generator is disabled or misconfigured;
	// AssistantErr then says why.
	Assistant    *assistant.Assistant
	AssistantErr error

	Location *time.Location
	Now      func() time.Time

	// Leads and WatchSpec configure the reminder watcher.
	Leads     []time.Duration
	WatchSpec string

	Logger *log.Logger

	// HistoryPath is where chat input is remembered. Empty disables history.
	HistoryPath string

	// IsInteractive reports whether stdin is a terminal. Forms and the chat
	// view are only used then. Nil means never.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "smartsched" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "smartsched",
		Short:         "Natural-language schedule assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAskCmd(app),
		newChatCmd(app),
		newSuggestCmd(app),
		newScheduleCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newWatchCmd(app),
		newAuthCmd(app),
	)

	return root
}

func (a *App) location() *time.Location {
	if a.Location == nil {
		return time.Local
	}
	return a.Location
}

// now returns the current instant in the user's zone.
func (a *App) now() time.Time {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	return now().In(a.location())
}

// requireAssistant returns the assistant or the reason it is unavailable.
func (a *App) requireAssistant() (*assistant.Assistant, error) {
	if a.Assistant != nil {
		return a.Assistant, nil
	}
	if a.AssistantErr != nil {
		return nil, a.AssistantErr
	}
	return nil, errAssistantDisabled
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *log.Logger {
	if a.Logger == nil {
		return log.New(io.Discard)
	}
	return a.Logger
}
