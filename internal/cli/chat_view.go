package cli

import (
	"context"
	"strings"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/assistant"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// chatReplyMsg carries the outcome of one submission back to the view.
type chatReplyMsg struct {
	res *assistant.Result
	err error
}

// chatView is the interactive conversation with the assistant. One
// submission runs at a time; input is ignored until its reply arrives.
type chatView struct {
	ctx     context.Context
	app     *App
	input   textinput.Model
	spinner spinner.Model
	history *historyCursor

	messages []string
	waiting  bool
}

func newChatView(ctx context.Context, app *App) *chatView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 1000
	ti.Placeholder = "e.g. meeting tomorrow at 2pm"

	v := &chatView{
		ctx:     ctx,
		app:     app,
		input:   ti,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(formatter.StyleAccent)),
		history: newHistoryCursor(loadHistory(app.HistoryPath)),
	}
	v.messages = append(v.messages, chatWelcome())
	return v
}

func chatWelcome() string {
	return formatter.Header("Smart Scheduler") + "\n" +
		formatter.Dim("Tell me about your plans. /today shows today's schedule, /quit leaves.") + "\n"
}

// ── tea.Model interface ──────────────────────────────────────────────────────

func (v *chatView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *chatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chatReplyMsg:
		v.waiting = false
		if msg.err != nil {
			v.messages = append(v.messages, formatter.StyleFailed.Render("Error: "+msg.err.Error()))
		} else {
			v.messages = append(v.messages, formatter.FormatResult(msg.res, v.app.location()))
		}
		return v, nil

	case spinner.TickMsg:
		if !v.waiting {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return v, tea.Quit
		case tea.KeyEnter:
			if v.waiting {
				return v, nil
			}
			input := strings.TrimSpace(v.input.Value())
			v.input.Reset()
			if input == "" {
				return v, nil
			}
			return v.handleInput(input)
		case tea.KeyUp:
			if line, ok := v.history.prev(); ok {
				v.input.SetValue(line)
				v.input.CursorEnd()
			}
			return v, nil
		case tea.KeyDown:
			v.input.SetValue(v.history.next())
			v.input.CursorEnd()
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *chatView) View() string {
	var b strings.Builder

	for _, msg := range v.messages {
		b.WriteString(msg)
		b.WriteString("\n")
	}

	if v.waiting {
		b.WriteString(v.spinner.View())
		b.WriteString(formatter.Dim(" Thinking..."))
		return b.String()
	}

	prompt := formatter.StyleAccent.Render("you") + formatter.Dim("> ")
	b.WriteString(prompt)
	b.WriteString(v.input.View())

	return b.String()
}

// ── input handling ───────────────────────────────────────────────────────────

func (v *chatView) handleInput(input string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(input) {
	case "/quit", "/exit", "/q", "quit", "exit":
		return v, tea.Quit
	case "/today":
		v.messages = append(v.messages, v.today())
		return v, nil
	}

	v.history.add(input)
	appendHistory(v.app.HistoryPath, input)
	v.messages = append(v.messages, formatter.Dim("You: ")+input)
	v.waiting = true
	return v, tea.Batch(v.spinner.Tick, v.submit(input))
}

func (v *chatView) submit(input string) tea.Cmd {
	return func() tea.Msg {
		res, err := v.app.Assistant.Submit(v.ctx, input)
		return chatReplyMsg{res: res, err: err}
	}
}

func (v *chatView) today() string {
	day, _ := parseDay(v.app, "")
	entries, err := v.app.Schedules.ListDay(v.ctx, day)
	if err != nil {
		return formatter.StyleFailed.Render("Error: " + err.Error())
	}
	return formatter.FormatDay(day, entries)
}
