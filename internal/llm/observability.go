package llm

import (
	"github.com/charmbracelet/log"
)

// LLMCallEvent describes one Generate call, retries included.
type LLMCallEvent struct {
	Task      TaskType
	Provider  Provider
	Model     string
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string

	// ResponseChars is the length of the generated text on success.
	ResponseChars int
}

// Observer is told about every finished Generate call.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes one "llm_call" line per event.
type LogObserver struct {
	logger *log.Logger
}

func NewLogObserver(l *log.Logger) *LogObserver {
	return &LogObserver{logger: l}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	l := o.logger.With(
		"task", event.Task,
		"provider", event.Provider,
		"model", event.Model,
		"latency_ms", event.LatencyMs,
	)
	if event.Attempts > 1 {
		l = l.With("attempts", event.Attempts)
	}
	if !event.Success {
		l.Warn("llm_call", "status", "err:"+event.ErrorCode)
		return
	}
	l.Info("llm_call", "status", "ok", "chars", event.ResponseChars)
}

type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
