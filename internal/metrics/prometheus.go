package metrics

import (
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/anstrom/portmerge/internal/errors"
)

const (
	// Namespace for all portmerge metrics
	namespace = "portmerge"

	// Subsystems
	subsystemDocuments = "documents"
	subsystemRecords   = "records"
	subsystemRun       = "run"
)

// PrometheusMetrics holds all Prometheus metric collectors
type PrometheusMetrics struct {
	// Document metrics
	documentsTotal *prometheus.CounterVec

	// Record metrics
	recordsExtracted  *prometheus.CounterVec
	invalidAddresses  *prometheus.CounterVec
	duplicatesRemoved prometheus.Counter
	recordsFlagged    prometheus.Counter
	recordsWritten    *prometheus.CounterVec

	// Run metrics
	runDuration *prometheus.HistogramVec
	lastRun     prometheus.Gauge

	registry *prometheus.Registry
}

// NewPrometheusMetrics creates a new Prometheus metrics instance with all
// collectors registered on a private registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	pm := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
	}

	pm.initDocumentMetrics()
	pm.initRecordMetrics()
	pm.initRunMetrics()
	pm.registerMetrics()

	return pm
}

// initDocumentMetrics initializes scan document metrics
func (pm *PrometheusMetrics) initDocumentMetrics() {
	pm.documentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemDocuments,
			Name:      "processed_total",
			Help:      "Total number of scan documents by merge status",
		},
		[]string{"status"},
	)
}

// initRecordMetrics initializes record metrics
func (pm *PrometheusMetrics) initRecordMetrics() {
	pm.recordsExtracted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemRecords,
			Name:      "extracted_total",
			Help:      "Total number of records extracted by source",
		},
		[]string{"source"},
	)

	pm.invalidAddresses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemRecords,
			Name:      "invalid_address_total",
			Help:      "Total number of records with a missing or invalid IP by source",
		},
		[]string{"source"},
	)

	pm.duplicatesRemoved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemRecords,
			Name:      "duplicates_removed_total",
			Help:      "Total number of duplicate records removed",
		},
	)

	pm.recordsFlagged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemRecords,
			Name:      "flagged_total",
			Help:      "Total number of records flagged as dangerous",
		},
	)

	pm.recordsWritten = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemRecords,
			Name:      "written_total",
			Help:      "Total number of records written by sink",
		},
		[]string{"sink"},
	)
}

// initRunMetrics initializes run metrics
func (pm *PrometheusMetrics) initRunMetrics() {
	pm.runDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemRun,
			Name:      "duration_seconds",
			Help:      "Duration of merge runs in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1.0, 5.0, 10.0, 30.0, 60.0, 300.0},
		},
		[]string{"status"},
	)

	pm.lastRun = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystemRun,
			Name:      "last_completion_timestamp_seconds",
			Help:      "Unix time of the last completed run",
		},
	)
}

// registerMetrics registers all metrics with the Prometheus registry
func (pm *PrometheusMetrics) registerMetrics() {
	pm.registry.MustRegister(pm.documentsTotal)

	pm.registry.MustRegister(pm.recordsExtracted)
	pm.registry.MustRegister(pm.invalidAddresses)
	pm.registry.MustRegister(pm.duplicatesRemoved)
	pm.registry.MustRegister(pm.recordsFlagged)
	pm.registry.MustRegister(pm.recordsWritten)

	pm.registry.MustRegister(pm.runDuration)
	pm.registry.MustRegister(pm.lastRun)
}

// GetRegistry returns the Prometheus registry
func (pm *PrometheusMetrics) GetRegistry() *prometheus.Registry {
	return pm.registry
}

// IncrementDocuments increments the document counter
func (pm *PrometheusMetrics) IncrementDocuments(status string, count int) {
	pm.documentsTotal.WithLabelValues(status).Add(float64(count))
}

// IncrementRecordsExtracted increments the extracted record counter
func (pm *PrometheusMetrics) IncrementRecordsExtracted(source string, count int) {
	pm.recordsExtracted.WithLabelValues(source).Add(float64(count))
}

// IncrementInvalidAddresses increments the invalid address counter
func (pm *PrometheusMetrics) IncrementInvalidAddresses(source string, count int) {
	pm.invalidAddresses.WithLabelValues(source).Add(float64(count))
}

// IncrementDuplicatesRemoved increments the duplicate counter
func (pm *PrometheusMetrics) IncrementDuplicatesRemoved(count int) {
	pm.duplicatesRemoved.Add(float64(count))
}

// IncrementRecordsFlagged increments the flagged record counter
func (pm *PrometheusMetrics) IncrementRecordsFlagged(count int) {
	pm.recordsFlagged.Add(float64(count))
}

// IncrementRecordsWritten increments the written record counter
func (pm *PrometheusMetrics) IncrementRecordsWritten(sink string, count int) {
	pm.recordsWritten.WithLabelValues(sink).Add(float64(count))
}

// RecordRunDuration records a run duration and its completion time
func (pm *PrometheusMetrics) RecordRunDuration(status string, duration time.Duration) {
	pm.runDuration.WithLabelValues(status).Observe(duration.Seconds())
	pm.lastRun.SetToCurrentTime()
}

// WriteTextfile writes all metrics in the text exposition format to path,
// for pickup by the node exporter textfile collector.
func (pm *PrometheusMetrics) WriteTextfile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return errors.WrapSourceError(errors.CodeDirectoryCreate, "Failed to create metrics directory", dir, err)
		}
	}
	if err := prometheus.WriteToTextfile(path, pm.registry); err != nil {
		return errors.ErrOutputWrite(path, err)
	}
	return nil
}
