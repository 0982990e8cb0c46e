package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	domain "github.com/bryanwahyu/content-analyzer/internal/domain/analysis"
	"github.com/bryanwahyu/content-analyzer/internal/domain/ai"
	"github.com/bryanwahyu/content-analyzer/internal/logging"
	"github.com/bryanwahyu/content-analyzer/internal/middleware"
	"github.com/bryanwahyu/content-analyzer/internal/observability/metrics"
	"github.com/bryanwahyu/content-analyzer/internal/requestid"
	"github.com/bryanwahyu/content-analyzer/internal/respond"
)

// MsgSummarizeFailed is returned when no summary could be produced.
const MsgSummarizeFailed = "Failed to summarize content"

// Analyzer runs the analysis pipeline for one request.
type Analyzer interface {
	Analyze(ctx context.Context, req domain.Request) (*domain.Response, error)
}

// Options configures the ambient parts of the router.
type Options struct {
	Logger         logrus.FieldLogger
	Metrics        *metrics.Metrics
	AllowedOrigins []string
	Checkers       map[string]middleware.HealthChecker
}

type Router struct {
	analyzer Analyzer
	logger   logrus.FieldLogger
}

func NewRouter(analyzer Analyzer, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := &Router{analyzer: analyzer, logger: logger}
	mux := chi.NewRouter()

	mux.Use(requestid.Middleware)
	mux.Use(middleware.Logging(logger))
	if opts.Metrics != nil {
		mux.Use(middleware.Metrics(opts.Metrics))
	}
	mux.Use(middleware.Recover(logger))
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", requestid.Header},
		ExposedHeaders: []string{requestid.Header},
		MaxAge:         300,
	}))

	mux.Get("/health", middleware.LivenessHandler)
	mux.Get("/healthz", middleware.HealthHandler(opts.Checkers))
	if opts.Metrics != nil {
		mux.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	mux.Post("/analyze", r.wrap(r.handleAnalyze))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			r.writeError(w, req, err)
		}
	}
}

// writeError maps pipeline errors to status codes. Only fixed messages reach
// the client; details go to the log.
func (r *Router) writeError(w http.ResponseWriter, req *http.Request, err error) {
	log := logging.WithRequestID(req.Context(), r.logger).WithField("path", req.URL.Path)

	var validationErr *domain.ValidationError
	var summarizeErr *ai.SummarizationError
	switch {
	case errors.As(err, &validationErr):
		log.WithField("reason", validationErr.Message).Info("rejected request")
		_ = respond.Error(w, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &summarizeErr):
		log.WithError(err).Error("failed to summarize content")
		_ = respond.Error(w, http.StatusInternalServerError, MsgSummarizeFailed)
	default:
		log.WithError(err).Error("unhandled error")
		_ = respond.Error(w, http.StatusInternalServerError, middleware.MsgUnexpected)
	}
}

// POST /analyze
// Body: {"content": "<text>", "metadata": {...}}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	in, err := decodeAnalyzeRequest(req.Body)
	if err != nil {
		return err
	}

	out, err := r.analyzer.Analyze(req.Context(), in)
	if err != nil {
		return err
	}

	if err := respond.JSON(w, http.StatusOK, out); err != nil {
		logging.WithRequestID(req.Context(), r.logger).WithError(err).Warn("failed to write analyze response")
	}
	return nil
}
