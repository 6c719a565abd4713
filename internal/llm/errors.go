package llm

import "errors"

var (
	// ErrUnavailable indicates the generator endpoint is unreachable.
	ErrUnavailable = errors.New("llm provider unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrEmptyResponse indicates the provider answered without any text.
	ErrEmptyResponse = errors.New("llm returned an empty response")

	// ErrMissingAPIKey indicates a provider that needs a key was configured
	// without one.
	ErrMissingAPIKey = errors.New("llm api key is not configured")

	// ErrUnknownProvider indicates an unsupported provider name.
	ErrUnknownProvider = errors.New("unknown llm provider")

	// ErrDisabled indicates the generator is turned off in configuration.
	ErrDisabled = errors.New("llm is disabled")
)
