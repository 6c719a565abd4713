package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/domain"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/logger"
)

// DefaultSpec ticks the watcher once a minute.
const DefaultSpec = "@every 1m"

// Source lists entries whose start falls in [from, to).
type Source interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]*domain.ScheduleEntry, error)
}

// Watcher delivers notices that became due since its previous tick.
type Watcher struct {
	source   Source
	notifier Notifier
	leads    []time.Duration
	spec     string
	now      func() time.Time
	log      *log.Logger

	mu   sync.Mutex
	last time.Time
	cron *cron.Cron
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithLeads replaces DefaultLeads.
func WithLeads(leads []time.Duration) WatcherOption {
	return func(w *Watcher) {
		if len(leads) > 0 {
			w.leads = leads
		}
	}
}

// WithSpec sets the cron spec of the tick.
func WithSpec(spec string) WatcherOption {
	return func(w *Watcher) {
		if spec != "" {
			w.spec = spec
		}
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) WatcherOption {
	return func(w *Watcher) {
		if now != nil {
			w.now = now
		}
	}
}

// WithLogger sets the logger for tick failures.
func WithLogger(l *log.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// NewWatcher creates a watcher. Nothing before the first tick is delivered.
func NewWatcher(source Source, notifier Notifier, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		source:   source,
		notifier: notifier,
		leads:    DefaultLeads,
		spec:     DefaultSpec,
		now:      time.Now,
		log:      logger.Get(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.last = w.now()
	return w
}

// Tick delivers every notice due in (last tick, now] and returns how many
// were sent. A failed listing leaves the window open for the next tick.
func (w *Watcher) Tick(ctx context.Context) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	if !now.After(w.last) {
		return 0, nil
	}
	// A notice at t belongs to an entry starting in [t, t+maxLead].
	entries, err := w.source.ListBetween(ctx, w.last, now.Add(MaxLead(w.leads)+time.Nanosecond))
	if err != nil {
		return 0, fmt.Errorf("listing upcoming entries: %w", err)
	}

	sent := 0
	for _, n := range Due(entries, w.last, now, w.leads) {
		if err := w.notifier.Notify(ctx, n); err != nil {
			w.log.Warn("notice delivery failed", "kind", n.Kind, "id", n.Entry.ID, "err", err)
			continue
		}
		sent++
	}
	w.last = now
	return sent, nil
}

// Start schedules Tick on the cron spec. Stop ends it.
func (w *Watcher) Start(ctx context.Context) error {
	c := cron.New()
	_, err := c.AddFunc(w.spec, func() {
		if _, err := w.Tick(ctx); err != nil {
			w.log.Error("watcher tick failed", "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid watcher spec %q: %w", w.spec, err)
	}
	w.mu.Lock()
	w.cron = c
	w.mu.Unlock()
	c.Start()
	return nil
}

// Stop halts the cron schedule and waits for a running tick to finish.
func (w *Watcher) Stop() {
	w.mu.Lock()
	c := w.cron
	w.cron = nil
	w.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}

// Run starts the watcher and blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	w.Stop()
	return nil
}
