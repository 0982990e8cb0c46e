package search

import "context"

// Provider issues exactly one outbound search request per call.
type Provider interface {
	Search(ctx context.Context, query string, count int) ([]Result, error)
}
