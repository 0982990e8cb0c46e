package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/content-analyzer/internal/middleware"
	"github.com/bryanwahyu/content-analyzer/internal/requestid"
)

func TestRecover_WritesGenericError(t *testing.T) {
	logger, hook := test.NewNullLogger()
	h := middleware.Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("database password leaked")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error": "An unexpected error occurred"}`, rec.Body.String())

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Equal(t, "database password leaked", entry.Data["panic"])
}

func TestRecover_KeepsWrittenResponse(t *testing.T) {
	logger, _ := test.NewNullLogger()
	h := middleware.Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		panic("late")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRecover_RepanicsAbortHandler(t *testing.T) {
	logger, _ := test.NewNullLogger()
	h := middleware.Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestLogging_RecordsStatusAndRequestID(t *testing.T) {
	logger, hook := test.NewNullLogger()
	h := requestid.Middleware(middleware.Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/pot", nil)
	req.Header.Set(requestid.Header, "req-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "http request", entry.Message)
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
	assert.Equal(t, int64(15), entry.Data["bytes"])
	assert.Equal(t, "/pot", entry.Data["path"])
	assert.Equal(t, "req-42", entry.Data["request_id"])
}

type observed struct {
	started  int
	method   string
	route    string
	status   int
	duration time.Duration
}

func (o *observed) RequestStarted() { o.started++ }

func (o *observed) RequestFinished(method, route string, status int, d time.Duration) {
	o.method, o.route, o.status, o.duration = method, route, status, d
}

func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	obs := &observed{}
	r := chi.NewRouter()
	r.Use(middleware.Metrics(obs))
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/7", nil))

	assert.Equal(t, 1, obs.started)
	assert.Equal(t, http.MethodGet, obs.method)
	assert.Equal(t, "/items/{id}", obs.route)
	assert.Equal(t, http.StatusNoContent, obs.status)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/123", nil))
	assert.Equal(t, "unmatched", obs.route)
	assert.Equal(t, http.StatusNotFound, obs.status)
}

type checkerFunc func(ctx context.Context) error

func (f checkerFunc) Check(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		checkers   map[string]middleware.HealthChecker
		wantCode   int
		wantStatus string
	}{
		{
			name:       "no checkers",
			wantCode:   http.StatusOK,
			wantStatus: "healthy",
		},
		{
			name: "all configured",
			checkers: map[string]middleware.HealthChecker{
				"summarizer": middleware.CredentialChecker{Name: "openai", Configured: true},
			},
			wantCode:   http.StatusOK,
			wantStatus: "healthy",
		},
		{
			name: "one failing",
			checkers: map[string]middleware.HealthChecker{
				"summarizer": middleware.CredentialChecker{Name: "openai", Configured: true},
				"other":      checkerFunc(func(context.Context) error { return errors.New("down") }),
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "unhealthy",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			middleware.HealthHandler(tt.checkers)(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			var got middleware.HealthStatus
			require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&got))
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Len(t, got.Checks, len(tt.checkers))
		})
	}
}

func TestCredentialChecker(t *testing.T) {
	err := middleware.CredentialChecker{Name: "openai"}.Check(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai")
}
