package analysis

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/bryanwahyu/content-analyzer/internal/application"
	domain "github.com/bryanwahyu/content-analyzer/internal/domain/analysis"
	"github.com/bryanwahyu/content-analyzer/internal/domain/ai"
	"github.com/bryanwahyu/content-analyzer/internal/domain/search"
	"github.com/bryanwahyu/content-analyzer/internal/logging"
)

// SourceFinder looks up alternative sources for a summary.
type SourceFinder interface {
	Find(ctx context.Context, query string, maxResults, retryLimit int) ([]search.Result, error)
}

// Settings are the per-process knobs of the pipeline.
type Settings struct {
	MaxTokens         int
	SearchResultCount int
	SearchRetryLimit  int
}

// Service runs normalize → summarize → find for one request.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	Summarizer ai.Client
	Finder     SourceFinder
	Settings   Settings
	Logger     logrus.FieldLogger
	Metrics    Recorder
	Clock      application.Clock
}

// Analyze returns a *domain.ValidationError for empty content and an
// *ai.SummarizationError when no summary could be produced. Search failures
// never fail the call; they degrade to an empty source list.
func (s *Service) Analyze(ctx context.Context, req domain.Request) (*domain.Response, error) {
	log := logging.WithRequestID(ctx, s.logger())
	rec := s.recorder()

	text := Normalize(req.Content)
	if text == "" {
		rec.AnalysisOutcome(OutcomeRejected)
		return nil, domain.NewValidationError(domain.MsgNoContent)
	}

	start := s.clock().Now()
	summary, err := s.Summarizer.Summarize(ctx, text, s.Settings.MaxTokens)
	summary = Normalize(summary)
	if err == nil && summary == "" {
		err = &ai.SummarizationError{Err: ai.ErrEmptySummary}
	}
	rec.ObserveSummarize(s.clock().Now().Sub(start), err == nil)
	if err != nil {
		var sumErr *ai.SummarizationError
		if !errors.As(err, &sumErr) {
			err = &ai.SummarizationError{Err: err}
		}
		log.WithError(err).Error("error summarizing text")
		rec.AnalysisOutcome(OutcomeFailed)
		return nil, err
	}

	outcome := OutcomeSuccess
	sources, err := s.Finder.Find(ctx, summary, s.Settings.SearchResultCount, s.Settings.SearchRetryLimit)
	if err != nil {
		log.WithError(err).Error("error fetching alternative sources")
		outcome = OutcomeDegraded
		sources = nil
	}
	if sources == nil {
		sources = []search.Result{}
	}

	metadata := req.Metadata
	if metadata == nil {
		metadata = domain.Metadata{}
	}

	rec.ObserveSources(len(sources))
	rec.AnalysisOutcome(outcome)
	return &domain.Response{
		Summary:            summary,
		Metadata:           metadata,
		AlternativeSources: sources,
	}, nil
}

func (s *Service) logger() logrus.FieldLogger {
	if s.Logger == nil {
		return logging.Discard()
	}
	return s.Logger
}

func (s *Service) recorder() Recorder {
	if s.Metrics == nil {
		return noopRecorder{}
	}
	return s.Metrics
}

func (s *Service) clock() application.Clock {
	if s.Clock == nil {
		return application.SystemClock{}
	}
	return s.Clock
}
