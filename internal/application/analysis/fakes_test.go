package analysis_test

import (
	"context"
	"sync"
	"time"

	"github.com/bryanwahyu/content-analyzer/internal/domain/search"
)

func strPtr(s string) *string { return &s }

func result(title, url string) search.Result {
	return search.Result{Title: strPtr(title), URL: strPtr(url), Snippet: strPtr(title + " snippet")}
}

// fakeProvider replays a scripted sequence of responses, one per call.
type fakeProvider struct {
	mu       sync.Mutex
	calls    int
	queries  []string
	counts   []int
	script   []providerStep
	fallback providerStep
}

type providerStep struct {
	results []search.Result
	err     error
}

func (p *fakeProvider) Search(_ context.Context, query string, count int) ([]search.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queries = append(p.queries, query)
	p.counts = append(p.counts, count)
	step := p.fallback
	if p.calls < len(p.script) {
		step = p.script[p.calls]
	}
	p.calls++
	return step.results, step.err
}

type fakeSummarizer struct {
	summary   string
	err       error
	gotText   string
	gotTokens int
	calls     int
}

func (s *fakeSummarizer) Summarize(_ context.Context, text string, maxTokens int) (string, error) {
	s.calls++
	s.gotText = text
	s.gotTokens = maxTokens
	return s.summary, s.err
}

type fakeFinder struct {
	results []search.Result
	err     error
	query   string
	max     int
	limit   int
	calls   int
}

func (f *fakeFinder) Find(_ context.Context, query string, maxResults, retryLimit int) ([]search.Result, error) {
	f.calls++
	f.query = query
	f.max = maxResults
	f.limit = retryLimit
	return f.results, f.err
}

type recorder struct {
	outcomes  []string
	attempts  []string
	sources   []int
	summarize []bool
	durations []time.Duration
}

func (r *recorder) AnalysisOutcome(o string) { r.outcomes = append(r.outcomes, o) }
func (r *recorder) ObserveSummarize(d time.Duration, ok bool) {
	r.durations = append(r.durations, d)
	r.summarize = append(r.summarize, ok)
}
func (r *recorder) SearchAttempt(res string) { r.attempts = append(r.attempts, res) }
func (r *recorder) ObserveSources(n int)     { r.sources = append(r.sources, n) }

// stepClock advances by step on every Now call.
type stepClock struct {
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}
