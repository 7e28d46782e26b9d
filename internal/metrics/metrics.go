package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the dashboard API.
type Metrics struct {
	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Report metrics
	SummaryComputations prometheus.Counter
	RowsAggregated      prometheus.Histogram
	CacheHits           prometheus.Counter
	CacheMisses         prometheus.Counter

	// Ad normalization metrics
	AdsNormalized     prometheus.Counter
	DuplicatesDropped prometheus.Counter

	// Storage metrics
	StorageErrors *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"path"},
		),
		SummaryComputations: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "summary_computations_total",
				Help:      "Weekly summaries computed from daily rows",
			},
		),
		RowsAggregated: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "summary_rows_aggregated",
				Help:      "Number of daily rows per summary computation",
				Buckets:   []float64{1, 3, 7, 14, 31, 92},
			},
		),
		CacheHits: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "summary_cache_hits_total",
				Help:      "Summary cache hits",
			},
		),
		CacheMisses: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "summary_cache_misses_total",
				Help:      "Summary cache misses",
			},
		),
		AdsNormalized: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ads_normalized_total",
				Help:      "Canonical ad entries produced by the normalizer",
			},
		),
		DuplicatesDropped: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ad_duplicates_dropped_total",
				Help:      "Carousel-variant rows discarded during deduplication",
			},
		),
		StorageErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "storage_errors_total",
				Help:      "Storage layer failures by operation",
			},
			[]string{"operation"},
		),
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_hits_total",
				Help:      "Requests rejected by rate limiting",
			},
			[]string{"path"},
		),
	}
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records a completed HTTP request.  Safe on nil.
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(path).Observe(duration.Seconds())
}

// RecordSummary records one summary computation over n rows.  Safe on nil.
func (m *Metrics) RecordSummary(rows int) {
	if m == nil {
		return
	}
	m.SummaryComputations.Inc()
	m.RowsAggregated.Observe(float64(rows))
}

// RecordCache records a cache hit or miss.  Safe on nil.
func (m *Metrics) RecordCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHits.Inc()
	} else {
		m.CacheMisses.Inc()
	}
}

// RecordNormalization records normalizer output.  Safe on nil.
func (m *Metrics) RecordNormalization(ads, duplicates int) {
	if m == nil {
		return
	}
	m.AdsNormalized.Add(float64(ads))
	m.DuplicatesDropped.Add(float64(duplicates))
}

// RecordStorageError records a storage failure for an operation.  Safe on nil.
func (m *Metrics) RecordStorageError(operation string) {
	if m == nil {
		return
	}
	m.StorageErrors.WithLabelValues(operation).Inc()
}

// RecordRateLimitHit records a rejected request.  Safe on nil.
func (m *Metrics) RecordRateLimitHit(path string) {
	if m == nil {
		return
	}
	m.RateLimitHits.WithLabelValues(path).Inc()
}
