package notify

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Notifier delivers a notice.
type Notifier interface {
	Notify(ctx context.Context, n Notice) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notice) error

func (f NotifierFunc) Notify(ctx context.Context, n Notice) error { return f(ctx, n) }

// LogNotifier writes notices to a charm logger.
type LogNotifier struct {
	Logger *log.Logger
}

func (l LogNotifier) Notify(_ context.Context, n Notice) error {
	l.Logger.Info("schedule_notice",
		"kind", n.Kind,
		"id", n.Entry.ID,
		"title", n.Entry.Title,
		"start", n.Entry.Start,
		"lead", n.Lead)
	return nil
}

// WriterNotifier prints one line per notice, e.g. to the terminal.
type WriterNotifier struct {
	W      io.Writer
	Render func(Notice) string
}

func (w WriterNotifier) Notify(_ context.Context, n Notice) error {
	line := n.Message()
	if w.Render != nil {
		line = w.Render(n)
	}
	_, err := fmt.Fprintln(w.W, line)
	return err
}

// Multi fans a notice out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notice) error {
	var errs []error
	for _, nt := range m {
		if err := nt.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
