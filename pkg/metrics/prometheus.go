// Package metrics provides Prometheus metrics for the contest scoring service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus metric for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Business metrics
	submissionsTotal   prometheus.Counter
	submissionsDupe    prometheus.Counter
	deletionsTotal     prometheus.Counter
	feedbackFailures   prometheus.Counter
	storeErrors        *prometheus.CounterVec
	contestantCount    prometheus.Gauge
	averageScore       prometheus.Gauge
	submissionDuration prometheus.Histogram

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scoreboard",
		subsystem:        "contest",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.submissionsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_total",
		Help:      "Total number of persisted score submissions.",
	})
	m.submissionsDupe = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_duplicate_total",
		Help:      "Submissions rejected because the entry was already in flight.",
	})
	m.deletionsTotal = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "deletions_total",
		Help:      "Total number of deleted contestants.",
	})
	m.feedbackFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feedback_failures_total",
		Help:      "Feedback generation calls that degraded to the fallback text.",
	})
	m.storeErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_errors_total",
		Help:      "Hard store failures by operation.",
	}, []string{"operation"})
	m.contestantCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "contestants",
		Help:      "Number of contestants currently persisted.",
	})
	m.averageScore = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "average_score",
		Help:      "Average total score across persisted contestants.",
	})
	m.submissionDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submission_duration_ms",
		Help:      "End-to-end submission latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	})
	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// GetRegistry returns the registry metrics are served from.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordSubmission counts one persisted submission and its latency.
func RecordSubmission(durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.submissionsTotal.Inc()
	globalManager.submissionDuration.Observe(durationMs)
}

// RecordDuplicateSubmission counts a rejected in-flight duplicate.
func RecordDuplicateSubmission() {
	if !globalManager.enabled {
		return
	}
	globalManager.submissionsDupe.Inc()
}

// RecordDeletion counts one deleted contestant.
func RecordDeletion() {
	if !globalManager.enabled {
		return
	}
	globalManager.deletionsTotal.Inc()
}

// RecordFeedbackFailure counts a feedback call that degraded to fallback.
func RecordFeedbackFailure() {
	if !globalManager.enabled {
		return
	}
	globalManager.feedbackFailures.Inc()
}

// RecordStoreError counts a hard store failure for operation.
func RecordStoreError(operation string) {
	if !globalManager.enabled {
		return
	}
	globalManager.storeErrors.WithLabelValues(operation).Inc()
}

// UpdateContestantCount sets the persisted-contestant gauge.
func UpdateContestantCount(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.contestantCount.Set(float64(n))
}

// UpdateAverageScore sets the average-score gauge.
func UpdateAverageScore(avg float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.averageScore.Set(avg)
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records HTTP request latency.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}
