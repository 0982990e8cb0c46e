// Package metrics holds the Prometheus collectors of the service.
// Collectors are registered on a caller-supplied registry so tests stay isolated.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "content_analyzer"

// Metrics implements analysis.Recorder and the HTTP middleware hooks.
type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	httpInFlight    prometheus.Gauge
	analyses        *prometheus.CounterVec
	summarizeTime   *prometheus.HistogramVec
	searchAttempts  *prometheus.CounterVec
	sourcesReturned prometheus.Histogram
}

// New registers all collectors on reg.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpInFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests being served",
		}),
		analyses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Analysis requests by outcome (success, degraded, rejected, failed)",
		}, []string{"outcome"}),
		summarizeTime: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "summarize_duration_seconds",
			Help:      "Duration of summarization calls",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40},
		}, []string{"ok"}),
		searchAttempts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_attempts_total",
			Help:      "Outbound search attempts by result",
		}, []string{"result"}),
		sourcesReturned: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "alternative_sources",
			Help:      "Number of alternative sources returned per analysis",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 20, 50},
		}),
	}
}

func (m *Metrics) AnalysisOutcome(outcome string) {
	m.analyses.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveSummarize(d time.Duration, ok bool) {
	m.summarizeTime.WithLabelValues(strconv.FormatBool(ok)).Observe(d.Seconds())
}

func (m *Metrics) SearchAttempt(result string) {
	m.searchAttempts.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveSources(n int) {
	m.sourcesReturned.Observe(float64(n))
}

// RequestStarted / RequestFinished bracket one HTTP request.
func (m *Metrics) RequestStarted() { m.httpInFlight.Inc() }

func (m *Metrics) RequestFinished(method, route string, status int, d time.Duration) {
	m.httpInFlight.Dec()
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
