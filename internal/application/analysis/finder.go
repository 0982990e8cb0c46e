package analysis

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/bryanwahyu/content-analyzer/internal/domain/search"
	"github.com/bryanwahyu/content-analyzer/internal/logging"
)

// Finder looks up alternative sources for a query with a bounded number of attempts.
type Finder struct {
	provider search.Provider
	logger   logrus.FieldLogger
	metrics  Recorder
}

// NewFinder builds a Finder. logger and metrics may be nil.
func NewFinder(provider search.Provider, logger logrus.FieldLogger, metrics Recorder) *Finder {
	if logger == nil {
		logger = logging.Discard()
	}
	if metrics == nil {
		metrics = noopRecorder{}
	}
	return &Finder{provider: provider, logger: logger, metrics: metrics}
}

// Find issues at most retryLimit provider requests. Transport failures are
// retried immediately; running out of attempts yields an empty slice and no error.
// A malformed response (*search.SearchError) or a cancelled context is returned as an error.
func (f *Finder) Find(ctx context.Context, query string, maxResults, retryLimit int) ([]search.Result, error) {
	log := logging.WithRequestID(ctx, f.logger)

	for attempt := 0; attempt < retryLimit; attempt++ {
		results, err := f.provider.Search(ctx, query, maxResults)
		if err == nil {
			f.metrics.SearchAttempt(AttemptSuccess)
			return Dedupe(results), nil
		}

		if errors.Is(err, search.ErrDisabled) {
			f.metrics.SearchAttempt(AttemptDisabled)
			log.Debug("search disabled, skipping alternative sources")
			return []search.Result{}, nil
		}

		var transportErr *search.TransportError
		if !errors.As(err, &transportErr) {
			f.metrics.SearchAttempt(AttemptMalformed)
			return nil, err
		}
		f.metrics.SearchAttempt(AttemptTransport)

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		log.WithError(err).WithFields(logrus.Fields{
			"attempt":     attempt + 1,
			"retry_limit": retryLimit,
		}).Warn("search api request failed, retrying")
	}

	log.WithField("query", query).Error("search retry limit reached")
	return []search.Result{}, nil
}

// Dedupe keeps the first result for each URL, preserving order.
// Results without a URL share one key.
func Dedupe(results []search.Result) []search.Result {
	type key struct {
		present bool
		url     string
	}
	seen := make(map[key]struct{}, len(results))
	out := make([]search.Result, 0, len(results))
	for _, r := range results {
		k := key{}
		if r.URL != nil {
			k = key{present: true, url: *r.URL}
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}
