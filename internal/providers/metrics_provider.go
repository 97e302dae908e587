package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"exportlens/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	AddResponseBytes(endpoint string, n int)
	IncCacheHits()
	IncCacheMisses()
	IncUploads(platform, outcome string)
	IncFileErrors(platform, kind string)
	ObserveParseDuration(platform string, duration time.Duration)
	AddRowsParsed(platform string, rows int)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	responseBytes   *prometheus.CounterVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	uploadsTotal    *prometheus.CounterVec
	fileErrors      *prometheus.CounterVec
	parseDuration   *prometheus.HistogramVec
	rowsParsed      *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) AddResponseBytes(endpoint string, n int) {
	m.responseBytes.WithLabelValues(endpoint).Add(float64(n))
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncUploads(platform, outcome string) {
	m.uploadsTotal.WithLabelValues(platform, outcome).Inc()
}

func (m *MetricsProvider) IncFileErrors(platform, kind string) {
	m.fileErrors.WithLabelValues(platform, kind).Inc()
}

func (m *MetricsProvider) ObserveParseDuration(platform string, duration time.Duration) {
	m.parseDuration.WithLabelValues(platform).Observe(duration.Seconds())
}

func (m *MetricsProvider) AddRowsParsed(platform string, rows int) {
	m.rowsParsed.WithLabelValues(platform).Add(float64(rows))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "exportlens_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "exportlens_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		responseBytes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "exportlens_response_bytes_total",
			Help: "Bytes written in HTTP responses",
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "exportlens_session_hits_total",
			Help: "Session lookups that found a table",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "exportlens_session_misses_total",
			Help: "Session lookups that found no table",
		}),

		uploadsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "exportlens_uploads_total",
			Help: "Processed uploads by platform and outcome",
		}, []string{"platform", "outcome"}),

		fileErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "exportlens_file_errors_total",
			Help: "Uploaded files that failed to parse, by error kind",
		}, []string{"platform", "kind"}),

		parseDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "exportlens_parse_duration_seconds",
			Help:    "Time spent decoding and normalizing one upload",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"platform"}),

		rowsParsed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "exportlens_rows_parsed_total",
			Help: "Normalized rows produced",
		}, []string{"platform"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) AddResponseBytes(_ string, _ int)                 {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncUploads(_, _ string)                           {}
func (n *noopMetrics) IncFileErrors(_, _ string)                        {}
func (n *noopMetrics) ObserveParseDuration(_ string, _ time.Duration)   {}
func (n *noopMetrics) AddRowsParsed(_ string, _ int)                    {}
