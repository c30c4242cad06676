// Package metrics records the statistics of merge runs.
package metrics

import "time"

// RunMetrics receives the counts of a pipeline run.
// This interface allows for easy mocking and testing of metrics functionality.
type RunMetrics interface {
	// IncrementDocuments counts scan documents by merge outcome.
	IncrementDocuments(status string, count int)

	// IncrementRecordsExtracted counts records produced by an extractor.
	IncrementRecordsExtracted(source string, count int)

	// IncrementInvalidAddresses counts records whose IP failed validation.
	IncrementInvalidAddresses(source string, count int)

	// IncrementDuplicatesRemoved counts records dropped by deduplication.
	IncrementDuplicatesRemoved(count int)

	// IncrementRecordsFlagged counts records marked dangerous.
	IncrementRecordsFlagged(count int)

	// IncrementRecordsWritten counts records handed to a sink.
	IncrementRecordsWritten(sink string, count int)

	// RecordRunDuration records the wall time of a run by outcome.
	RecordRunDuration(status string, duration time.Duration)
}

// Ensure that the implementations satisfy RunMetrics.
var (
	_ RunMetrics = (*PrometheusMetrics)(nil)
	_ RunMetrics = Nop{}
)
