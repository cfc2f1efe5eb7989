// Package metrics provides Prometheus metrics for the loanscope service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Scoring paths and outcomes used as label values.
const (
	PathLookup = "lookup"
	PathManual = "manual"
	PathBatch  = "batch"

	OutcomeSuccess         = "success"
	OutcomeInvalidInput    = "invalid_input"
	OutcomeMissingField    = "missing_field"
	OutcomeUpstreamFailure = "upstream_failure"
	OutcomeNotFound        = "not_found"
	OutcomeError           = "error"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Scoring
	scoringRequests  *prometheus.CounterVec
	upstreamLatency  prometheus.Histogram
	upstreamFailures *prometheus.CounterVec
	tierAssignments  *prometheus.CounterVec
	batchRuns        prometheus.Counter
	batchDuration    prometheus.Histogram

	// Ingestion
	rowsIngested  prometheus.Counter
	rowsDropped   prometheus.Counter
	clientsLoaded prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "loanscope",
		subsystem:        "eligibility",
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels, Buckets: buckets}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.scoringRequests = auto.NewCounterVec(
		m.counterOpts("scoring_requests_total", "Scoring requests by entry path and outcome"),
		[]string{"path", "outcome"},
	)
	m.upstreamLatency = auto.NewHistogram(
		m.histogramOpts("upstream_latency_milliseconds", "Latency of calls to the scoring service in milliseconds", m.histogramBuckets),
	)
	m.upstreamFailures = auto.NewCounterVec(
		m.counterOpts("upstream_failures_total", "Failed scoring service calls by category"),
		[]string{"category"},
	)
	m.tierAssignments = auto.NewCounterVec(
		m.counterOpts("tier_assignments_total", "Interpreted scores by risk tier"),
		[]string{"tier"},
	)
	m.batchRuns = auto.NewCounter(m.counterOpts("batch_runs_total", "Completed batch scoring runs"))
	m.batchDuration = auto.NewHistogram(
		m.histogramOpts("batch_duration_milliseconds", "Duration of batch scoring runs in milliseconds", m.histogramBuckets),
	)

	m.rowsIngested = auto.NewCounter(m.counterOpts("rows_ingested_total", "Client rows accepted from uploaded datasets"))
	m.rowsDropped = auto.NewCounter(m.counterOpts("rows_dropped_total", "Client rows dropped for missing or unparsable required values"))
	m.clientsLoaded = auto.NewGauge(m.gaugeOpts("clients_loaded", "Clients currently available for lookup"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by endpoint, method and type"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of failed operations in milliseconds", m.histogramBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}),
	)
}

// RecordScoring counts one scoring request.
func (m *Manager) RecordScoring(path, outcome string) {
	m.scoringRequests.WithLabelValues(path, outcome).Inc()
}

// RecordUpstreamLatency observes one scoring service round trip.
func (m *Manager) RecordUpstreamLatency(latencyMs float64) {
	m.upstreamLatency.Observe(latencyMs)
}

// RecordUpstreamFailure counts a failed scoring service call.
func (m *Manager) RecordUpstreamFailure(category string) {
	m.upstreamFailures.WithLabelValues(category).Inc()
}

// RecordTier counts an interpreted score.
func (m *Manager) RecordTier(tier string) {
	m.tierAssignments.WithLabelValues(tier).Inc()
}

// RecordBatchRun counts a batch run and its duration.
func (m *Manager) RecordBatchRun(durationMs float64) {
	m.batchRuns.Inc()
	m.batchDuration.Observe(durationMs)
}

// RecordIngest counts accepted and dropped rows of one upload.
func (m *Manager) RecordIngest(accepted, dropped int) {
	m.rowsIngested.Add(float64(accepted))
	m.rowsDropped.Add(float64(dropped))
}

// UpdateClientsLoaded sets the number of clients available for lookup.
func (m *Manager) UpdateClientsLoaded(count int) {
	m.clientsLoaded.Set(float64(count))
}

// RecordScoring counts one scoring request.
func RecordScoring(path, outcome string) { globalManager.RecordScoring(path, outcome) }

// RecordUpstreamLatency observes one scoring service round trip.
func RecordUpstreamLatency(latencyMs float64) { globalManager.RecordUpstreamLatency(latencyMs) }

// RecordUpstreamFailure counts a failed scoring service call.
func RecordUpstreamFailure(category string) { globalManager.RecordUpstreamFailure(category) }

// RecordTier counts an interpreted score.
func RecordTier(tier string) { globalManager.RecordTier(tier) }

// RecordBatchRun counts a batch run and its duration.
func RecordBatchRun(durationMs float64) { globalManager.RecordBatchRun(durationMs) }

// RecordIngest counts accepted and dropped rows of one upload.
func RecordIngest(accepted, dropped int) { globalManager.RecordIngest(accepted, dropped) }

// UpdateClientsLoaded sets the number of clients available for lookup.
func UpdateClientsLoaded(count int) { globalManager.UpdateClientsLoaded(count) }

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records how long a failed operation took.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
