package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskSchedule TaskType = "schedule"
	TaskSuggest  TaskType = "suggest"
)

// Provider names a generator backend.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderGemini Provider = "gemini"
)

const (
	defaultOllamaEndpoint = "http://localhost:11434"
	defaultOllamaModel    = "llama3.2"
	defaultGeminiEndpoint = "https://generativelanguage.googleapis.com"
	defaultGeminiModel    = "gemini-2.0-flash"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the generator client. The API key is
// passed in explicitly; the client never reads credentials on its own.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Provider   Provider
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults. Endpoint and
// model are left empty and resolved per provider by Normalize.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    true,
		Provider:   ProviderOllama,
		TimeoutMs:  30000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskSchedule: {Temperature: 0.7, MaxTokens: 600, TimeoutMs: 30000},
			TaskSuggest:  {Temperature: 0.6, MaxTokens: 800, TimeoutMs: 45000},
		},
	}
}

// Normalize fills the provider's default endpoint and model when unset and
// trims a trailing slash from the endpoint.
func (c LLMConfig) Normalize() LLMConfig {
	c.Provider = Provider(strings.ToLower(strings.TrimSpace(string(c.Provider))))
	if c.Provider == "" {
		c.Provider = ProviderOllama
	}
	switch c.Provider {
	case ProviderGemini:
		if c.Endpoint == "" {
			c.Endpoint = defaultGeminiEndpoint
		}
		if c.Model == "" {
			c.Model = defaultGeminiModel
		}
	case ProviderOllama:
		if c.Endpoint == "" {
			c.Endpoint = defaultOllamaEndpoint
		}
		if c.Model == "" {
			c.Model = defaultOllamaModel
		}
	}
	c.Endpoint = strings.TrimRight(c.Endpoint, "/")
	if c.Tasks == nil {
		c.Tasks = DefaultConfig().Tasks
	}
	return c
}

// ApplyEnv overrides cfg with any SMARTSCHED_LLM_* environment variables.
func ApplyEnv(cfg LLMConfig) LLMConfig {
	if v := os.Getenv("SMARTSCHED_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("SMARTSCHED_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("SMARTSCHED_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(v)
	}
	if v := os.Getenv("SMARTSCHED_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("SMARTSCHED_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("SMARTSCHED_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("SMARTSCHED_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("SMARTSCHED_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskSchedule, "SMARTSCHED_LLM_SCHEDULE_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskSuggest, "SMARTSCHED_LLM_SUGGEST_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	if cfg.Tasks == nil {
		cfg.Tasks = make(map[TaskType]TaskConfig)
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
