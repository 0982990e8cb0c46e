package search

import (
	"errors"
	"fmt"
)

// ErrDisabled means no credential is configured, so no request was attempted.
var ErrDisabled = errors.New("search disabled: api key is not configured")

// TransportError is a network or HTTP status failure. It is retryable.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("search transport error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("search transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// SearchError is a response that could not be interpreted, e.g. malformed JSON.
// It is not retried.
type SearchError struct {
	Err error
}

func (e *SearchError) Error() string {
	return "search response error: " + e.Err.Error()
}

func (e *SearchError) Unwrap() error { return e.Err }
