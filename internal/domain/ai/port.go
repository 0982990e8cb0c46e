package ai

import "context"

// Client produces a condensed synopsis of text.
// Implementations return a trimmed, non-empty summary or a *SummarizationError.
type Client interface {
	Summarize(ctx context.Context, text string, maxTokens int) (string, error)
}
