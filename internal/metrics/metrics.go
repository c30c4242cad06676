package metrics

import "time"

// Document outcomes.
const (
	DocumentMerged  = "merged"
	DocumentFailed  = "failed"
	DocumentSkipped = "skipped"
)

// Run outcomes.
const (
	RunSuccess = "success"
	RunNoData  = "no_data"
	RunError   = "error"
)

// Nop discards all measurements.
type Nop struct{}

func (Nop) IncrementDocuments(string, int) {}
func (Nop) IncrementRecordsExtracted(string, int) {}
func (Nop) IncrementInvalidAddresses(string, int) {}
func (Nop) IncrementDuplicatesRemoved(int) {}
func (Nop) IncrementRecordsFlagged(int) {}
func (Nop) IncrementRecordsWritten(string, int) {}
func (Nop) RecordRunDuration(string, time.Duration) {}

// OrNop returns m, or Nop when m is nil.
func OrNop(m RunMetrics) RunMetrics {
	if m == nil {
		return Nop{}
	}
	return m
}
