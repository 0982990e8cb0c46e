package analysis

import "github.com/bryanwahyu/content-analyzer/internal/domain/search"

// Metadata is caller-supplied key/value data echoed back untouched.
type Metadata map[string]any

// Request is one inbound analysis call, already shape-checked at the boundary.
type Request struct {
	Content  string
	Metadata Metadata
}

// Response is the successful result of an analysis.
// AlternativeSources never holds two entries with the same URL.
type Response struct {
	Summary            string          `json:"summary"`
	Metadata           Metadata        `json:"metadata"`
	AlternativeSources []search.Result `json:"alternative_sources"`
}
