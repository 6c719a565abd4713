// Package assistant runs one chat submission end to end: it asks the
// generator for a reply, extracts schedule candidates and reconciles them
// into the store.
package assistant

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/domain"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/extract"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/llm"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/logger"
	"github.com/FAJRIKUN-MAKALALAG/smart-scheduler-ai-project/internal/reconcile"
)

// ErrEmptyUtterance is returned when a submission has no text.
var ErrEmptyUtterance = errors.New("utterance is empty")

// UnreachableMessage is the whole result when the generator cannot be used.
const UnreachableMessage = "❌ Could not reach the assistant. Please try again in a moment."

// Stage is a step of the submission state machine.
type Stage string

const (
	StageReceived       Stage = "received"
	StageMarkerParse    Stage = "marker-parse"
	StageFreeTextParse  Stage = "free-text-parse"
	StageReconciliation Stage = "reconciliation"
	StageNoCandidates   Stage = "no-candidates"
	StageDone           Stage = "done"
)

// Outcome summarizes how a submission ended.
type Outcome string

const (
	OutcomeReconciled   Outcome = "reconciled"
	OutcomeNoCandidates Outcome = "no-candidates"
	OutcomeUnreachable  Outcome = "unreachable"
)

// Result is what a submission shows the user.
type Result struct {
	// Text is the narrative followed by a status line.
	Text string
	// Narrative is the generator's text without the lines that parsed as
	// markers.
	Narrative string
	Outcome   Outcome
	Stages    []Stage

	Extraction extract.Extraction
	Summary    reconcile.Summary
	// Entries holds the inserted then updated entries.
	Entries []*domain.ScheduleEntry
	// Err is the generator error behind OutcomeUnreachable.
	Err error
}

// Assistant owns the submission pipeline. It handles one submission at a
// time; callers serialize Submit and Suggest.
type Assistant struct {
	client     llm.LLMClient
	store      reconcile.Store
	extractor  *extract.Extractor
	reconciler *reconcile.Reconciler
	now        func() time.Time
	loc        *time.Location
	log        *log.Logger
	recObs     reconcile.Observer
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithClock sets the anchor time source.
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) {
		if now != nil {
			a.now = now
		}
	}
}

// WithLocation sets the zone relative dates resolve in.
func WithLocation(loc *time.Location) Option {
	return func(a *Assistant) {
		if loc != nil {
			a.loc = loc
		}
	}
}

// WithExtractor replaces the default-vocabulary extractor.
func WithExtractor(x *extract.Extractor) Option {
	return func(a *Assistant) {
		if x != nil {
			a.extractor = x
		}
	}
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(a *Assistant) {
		if l != nil {
			a.log = l
		}
	}
}

// WithObserver sets the observer notified of each reconciliation decision.
func WithObserver(o reconcile.Observer) Option {
	return func(a *Assistant) {
		a.recObs = o
	}
}

// New creates an Assistant writing through store.
func New(client llm.LLMClient, store reconcile.Store, opts ...Option) *Assistant {
	a := &Assistant{
		client:    client,
		store:     store,
		extractor: extract.New(nil),
		now:       time.Now,
		loc:       time.Local,
		log:       logger.Get(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.reconciler = reconcile.New(store, reconcile.WithObserver(logObserver{a.log, a.recObs}))
	return a
}

// Submit runs one chat submission. Generator failures end the submission
// with UnreachableMessage and no store writes; the returned error is only
// for invalid input.
func (a *Assistant) Submit(ctx context.Context, utterance string) (*Result, error) {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return nil, ErrEmptyUtterance
	}
	anchor := a.now().In(a.loc)

	entries, listErr := a.scheduleContext(ctx)
	req := llm.GenerateRequest{
		Task:         llm.TaskSchedule,
		SystemPrompt: scheduleSystemPrompt,
		UserPrompt:   buildSchedulePrompt(entries, listErr, anchor, utterance),
	}
	return a.run(ctx, req, utterance, anchor), nil
}

// Suggest asks the generator for a productive plan for day and stores the
// marker lines it returns.
func (a *Assistant) Suggest(ctx context.Context, day time.Time) (*Result, error) {
	day = day.In(a.loc)
	y, m, d := day.Date()
	now := a.now().In(a.loc)
	anchor := time.Date(y, m, d, now.Hour(), now.Minute(), 0, 0, a.loc)

	entries, listErr := a.scheduleContext(ctx)
	req := llm.GenerateRequest{
		Task:         llm.TaskSuggest,
		SystemPrompt: suggestSystemPrompt,
		UserPrompt:   buildSuggestPrompt(entries, listErr, anchor),
	}
	return a.run(ctx, req, suggestRequest(anchor), anchor), nil
}

func (a *Assistant) run(ctx context.Context, req llm.GenerateRequest, utterance string, anchor time.Time) *Result {
	res := &Result{Stages: []Stage{StageReceived}}

	resp, err := a.client.Generate(ctx, req)
	if err != nil {
		a.log.Warn("generator unavailable", "task", req.Task, "err", err)
		res.Outcome = OutcomeUnreachable
		res.Err = err
		res.Text = UnreachableMessage
		res.Stages = append(res.Stages, StageDone)
		return res
	}
	res.Stages = append(res.Stages, StageMarkerParse)
	ex := a.extractor.Extract(resp.Text, utterance, anchor)
	res.Extraction = ex
	res.Narrative = extract.Narrative(resp.Text, ex.MarkerLines)
	if ex.Path != extract.PathMarkers {
		res.Stages = append(res.Stages, StageFreeTextParse)
	}
	a.log.Debug("extraction",
		"path", ex.Path,
		"candidates", len(ex.Candidates),
		"malformed", ex.Malformed,
		"duplicates", ex.Duplicates,
		"rules", ex.Rules)

	if len(ex.Candidates) == 0 {
		res.Outcome = OutcomeNoCandidates
		res.Stages = append(res.Stages, StageNoCandidates, StageDone)
		res.Text = joinStatus(res.Narrative, reconcile.NoScheduleMessage)
		return res
	}

	res.Stages = append(res.Stages, StageReconciliation)
	res.Summary = a.reconciler.Apply(ctx, ex.Candidates)
	res.Entries = res.Summary.Written()
	res.Outcome = OutcomeReconciled
	res.Stages = append(res.Stages, StageDone)
	res.Text = joinStatus(res.Narrative, res.Summary.StatusLine())
	return res
}

// scheduleContext lists the store for the prompt. A failure degrades to an
// empty context and is logged.
func (a *Assistant) scheduleContext(ctx context.Context) ([]*domain.ScheduleEntry, error) {
	entries, err := a.store.List(ctx)
	if err != nil {
		a.log.Warn("listing schedule for prompt context", "err", err)
	}
	return entries, err
}

func joinStatus(narrative, status string) string {
	if narrative == "" {
		return status
	}
	return narrative + "\n\n" + status
}

// logObserver logs each reconciliation decision and forwards it.
type logObserver struct {
	log  *log.Logger
	next reconcile.Observer
}

func (o logObserver) OnInsert(c extract.Candidate, e *domain.ScheduleEntry) {
	o.log.Debug("schedule inserted", "id", e.ID, "title", c.Title, "start", c.Start, "source", c.Source)
	if o.next != nil {
		o.next.OnInsert(c, e)
	}
}

func (o logObserver) OnUpdate(c extract.Candidate, e *domain.ScheduleEntry) {
	o.log.Debug("schedule updated", "id", e.ID, "title", c.Title, "start", c.Start, "source", c.Source)
	if o.next != nil {
		o.next.OnUpdate(c, e)
	}
}

func (o logObserver) OnFailure(c extract.Candidate, err error) {
	o.log.Warn("schedule write failed", "title", c.Title, "start", c.Start, "err", err)
	if o.next != nil {
		o.next.OnFailure(c, err)
	}
}
