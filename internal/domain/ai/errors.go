package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrMissingAPIKey is returned when no provider credential is configured.
var ErrMissingAPIKey = errors.New("ai api key is not configured")

// ErrEmptySummary is returned when the model produced no usable text.
var ErrEmptySummary = errors.New("empty summary returned by model")

// SummarizationError wraps every failure of a summarization call.
// It is fatal to the request that triggered it.
type SummarizationError struct {
	Err error
}

func (e *SummarizationError) Error() string {
	return "summarization failed: " + e.Err.Error()
}

func (e *SummarizationError) Unwrap() error { return e.Err }
