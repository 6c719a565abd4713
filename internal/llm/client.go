package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the provider is reachable.
	Available(ctx context.Context) bool
}

// call is one fully resolved provider request.
type call struct {
	system      string
	prompt      string
	temperature float64
	maxTokens   int
}

// backend performs a single HTTP exchange with one provider.
type backend interface {
	generate(ctx context.Context, c call) (text, model string, err error)
	available(ctx context.Context) bool
}

// client wraps a backend with per-attempt timeouts, retries and observation.
type client struct {
	cfg      LLMConfig
	backend  backend
	observer Observer
}

// NewClient creates an LLMClient for cfg.Provider.
func NewClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	cfg = cfg.Normalize()
	switch cfg.Provider {
	case ProviderOllama:
		return NewOllamaClient(cfg, observer), nil
	case ProviderGemini:
		return NewGeminiClient(cfg, observer)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

func newClient(cfg LLMConfig, b backend, observer Observer) *client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &client{cfg: cfg, backend: b, observer: observer}
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		},
	}
}

func (c *client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	taskCfg := c.cfg.Tasks[req.Task]
	body := call{
		system:      req.SystemPrompt,
		prompt:      req.UserPrompt,
		temperature: taskCfg.Temperature,
		maxTokens:   taskCfg.MaxTokens,
	}
	if req.Temperature != nil {
		body.temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		body.maxTokens = *req.MaxTokens
	}
	timeout := time.Duration(c.cfg.TaskTimeout(req.Task)) * time.Millisecond

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries

	for i := 0; i < attempts; i++ {
		text, model, err := c.attempt(ctx, timeout, body)
		if err == nil {
			event := c.event(req.Task, start, i+1)
			event.Success = true
			event.ResponseChars = len(text)
			c.observer.OnCallComplete(event)
			if model == "" {
				model = c.cfg.Model
			}
			return &GenerateResponse{Text: text, Model: model, LatencyMs: event.LatencyMs}, nil
		}
		lastErr = err

		// The caller gave up; do not retry.
		if ctx.Err() != nil {
			attempts = i + 1
			break
		}
	}

	err := classify(ctx, lastErr)
	event := c.event(req.Task, start, attempts)
	event.ErrorCode = errorCode(err)
	c.observer.OnCallComplete(event)
	return nil, err
}

func (c *client) event(task TaskType, start time.Time, attempts int) LLMCallEvent {
	return LLMCallEvent{
		Task:      task,
		Provider:  c.cfg.Provider,
		Model:     c.cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(),
		Attempts:  attempts,
	}
}

func (c *client) attempt(ctx context.Context, timeout time.Duration, body call) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, model, err := c.backend.generate(ctx, body)
	if err != nil {
		if ctx.Err() != nil {
			return "", "", fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return "", "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", "", ErrEmptyResponse
	}
	return text, model, nil
}

func (c *client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.backend.available(ctx)
}

func classify(ctx context.Context, err error) error {
	switch {
	case ctx.Err() != nil, errors.Is(err, ErrTimeout):
		return ErrTimeout
	case isConnectionError(err):
		return ErrUnavailable
	case errors.Is(err, ErrEmptyResponse):
		return ErrEmptyResponse
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrEmptyResponse):
		return "EMPTY"
	default:
		return "UNKNOWN"
	}
}
