// Package metrics provides Prometheus metrics for the tennis workout pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Ingestion - export file reading
	filesRead        prometheus.Counter
	exportReadErrors prometheus.Counter
	recordsSeen      prometheus.Counter

	// Pipeline throughput
	workoutsFiltered  prometheus.Counter
	duplicatesSkipped prometheus.Counter
	workoutsProcessed prometheus.Counter

	// Data quality
	undefinedMetricFields prometheus.Counter

	// Report generation
	reportsGenerated prometheus.Counter
	reportErrors     prometheus.Counter
	reportLatency    prometheus.Histogram

	// Batch runs
	batchDuration prometheus.Histogram

	// State and storage
	markerWrites         prometheus.Counter
	markerWriteErrors    prometheus.Counter
	processedHistorySize prometheus.Gauge
	sessionsStored       prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "tennishealth",
		subsystem:        "pipeline",
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

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.filesRead = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "files_read_total",
		Help:      "Total number of export files successfully read",
	})

	m.exportReadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "export_read_errors_total",
		Help:      "Total number of export files that could not be read or parsed",
	})

	m.recordsSeen = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "records_seen_total",
		Help:      "Total number of workout records observed in export files",
	})

	m.workoutsFiltered = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "workouts_filtered_total",
		Help:      "Total number of workout records that passed the tennis filter",
	})

	m.duplicatesSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicates_skipped_total",
		Help:      "Total number of already-processed workouts skipped (indicates re-export overlap)",
	})

	m.workoutsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "workouts_processed_total",
		Help:      "Total number of workouts fully processed and marked",
	})

	m.undefinedMetricFields = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "undefined_metric_fields_total",
		Help:      "Total number of derived metric fields left undefined for lack of data",
	})

	m.reportsGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reports_generated_total",
		Help:      "Total number of reports produced by the generator",
	})

	m.reportErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_errors_total",
		Help:      "Total number of report generation failures",
	})

	m.reportLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "report_latency_milliseconds",
		Help:      "Histogram of report generation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.batchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_duration_milliseconds",
		Help:      "Histogram of end-to-end batch run duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.markerWrites = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "marker_writes_total",
		Help:      "Total number of processed-marker state writes",
	})

	m.markerWriteErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "marker_write_errors_total",
		Help:      "Total number of failed processed-marker state writes",
	})

	m.processedHistorySize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "processed_history_size",
		Help:      "Current number of workout IDs held in the processed history",
	})

	m.sessionsStored = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_stored",
		Help:      "Current number of analyzed sessions held in the repository",
	})
}

// RecordFileRead increments the files read counter.
func RecordFileRead() {
	globalManager.filesRead.Inc()
}

// RecordExportReadError increments the export read error counter.
func RecordExportReadError() {
	globalManager.exportReadErrors.Inc()
}

// RecordRecordsSeen adds to the observed records counter.
func RecordRecordsSeen(count int) {
	globalManager.recordsSeen.Add(float64(count))
}

// RecordWorkoutsFiltered adds to the filtered workouts counter.
func RecordWorkoutsFiltered(count int) {
	globalManager.workoutsFiltered.Add(float64(count))
}

// RecordDuplicateSkipped increments the duplicates skipped counter.
func RecordDuplicateSkipped() {
	globalManager.duplicatesSkipped.Inc()
}

// RecordWorkoutProcessed increments the processed workouts counter.
func RecordWorkoutProcessed() {
	globalManager.workoutsProcessed.Inc()
}

// RecordUndefinedMetricFields adds to the undefined metric fields counter.
func RecordUndefinedMetricFields(count int) {
	globalManager.undefinedMetricFields.Add(float64(count))
}

// RecordReportGenerated increments the reports generated counter.
func RecordReportGenerated() {
	globalManager.reportsGenerated.Inc()
}

// RecordReportError increments the report errors counter.
func RecordReportError() {
	globalManager.reportErrors.Inc()
}

// RecordReportLatency records report generation latency in milliseconds.
func RecordReportLatency(latencyMs float64) {
	globalManager.reportLatency.Observe(latencyMs)
}

// RecordBatchDuration records a batch run duration in milliseconds.
func RecordBatchDuration(durationMs float64) {
	globalManager.batchDuration.Observe(durationMs)
}

// RecordMarkerWrite increments the marker writes counter.
func RecordMarkerWrite() {
	globalManager.markerWrites.Inc()
}

// RecordMarkerWriteError increments the marker write error counter.
func RecordMarkerWriteError() {
	globalManager.markerWriteErrors.Inc()
}

// UpdateProcessedHistorySize sets the current processed history size.
func UpdateProcessedHistorySize(size int) {
	globalManager.processedHistorySize.Set(float64(size))
}

// UpdateSessionsStored sets the current number of stored sessions.
func UpdateSessionsStored(count int) {
	globalManager.sessionsStored.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
