// Package pipeline runs a merge: it discovers and merges scan documents,
// extracts records from them and from the inventory table, deduplicates and
// classifies the records and hands them to the sinks.
package pipeline

import (
	"time"

	"github.com/Ullaakut/nmap/v3"
	"github.com/google/uuid"

	"github.com/anstrom/portmerge/internal/address"
	"github.com/anstrom/portmerge/internal/errors"
	"github.com/anstrom/portmerge/internal/export"
	"github.com/anstrom/portmerge/internal/logging"
	"github.com/anstrom/portmerge/internal/metrics"
	"github.com/anstrom/portmerge/internal/nmapxml"
	"github.com/anstrom/portmerge/internal/normalize"
	"github.com/anstrom/portmerge/internal/progress"
	"github.com/anstrom/portmerge/internal/record"
	"github.com/anstrom/portmerge/internal/risk"
	"github.com/anstrom/portmerge/internal/tabular"
)

// Options selects the inputs of a run.
type Options struct {
	// ScanDir is searched, non-recursively, for scan documents.
	ScanDir string
	// ScanPattern is a filepath.Match pattern, applied case-insensitively.
	ScanPattern string
	// TablePath is the inventory table. Empty disables the table source.
	TablePath string
	// FallbackEncodings are tried when a text table is not UTF-8.
	FallbackEncodings []string
	// MergedXML receives the merged scan document. Empty disables it.
	MergedXML string
	// ExtraPorts and ExtraServices extend the dangerous sets.
	ExtraPorts    []int
	ExtraServices []string
}

// Result describes a finished run.
type Result struct {
	RunID string
	// Documents lists the discovered scan documents in merge order.
	Documents []string
	Merge     *nmapxml.MergeReport
	// MergedXML is the path the merged document was written to, if any.
	MergedXML string
	// TableErr is set when the table yielded nothing.
	TableErr     error
	TableRecords int
	ScanRecords  int
	// Records is the final, deduplicated and classified sequence.
	Records  []record.ScanRecord
	Removed  int
	Flagged  int
	Mode     string
	Targets  []string
	Duration time.Duration
}

// Pipeline runs merges with fixed options.
type Pipeline struct {
	opts     Options
	logger   *logging.Logger
	metrics  metrics.RunMetrics
	progress progress.Tracker
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithMetrics reports run statistics to m.
func WithMetrics(m metrics.RunMetrics) Option {
	return func(p *Pipeline) {
		p.metrics = metrics.OrNop(m)
	}
}

// WithProgress shows extraction progress through tracker.
func WithProgress(tracker progress.Tracker) Option {
	return func(p *Pipeline) {
		p.progress = progress.OrNop(tracker)
	}
}

// New creates a pipeline.
func New(opts Options, logger *logging.Logger, options ...Option) *Pipeline {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	p := &Pipeline{
		opts:     opts,
		logger:   logger,
		metrics:  metrics.Nop{},
		progress: progress.Nop{},
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Run performs one merge and writes the result to every sink. It fails with
// a NO_DATA error, without touching any sink, when neither source produced a
// record. Sink failures do not stop the remaining sinks; the first one is
// returned.
func (p *Pipeline) Run(sinks ...export.Sink) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.NewString()}
	logger := p.logger.WithRunID(result.RunID)

	logger.Info("Starting merge run",
		"scan_dir", p.opts.ScanDir,
		"table", p.opts.TablePath,
		"sinks", len(sinks))

	run := p.mergeDocuments(logger, result)

	tableRecords := p.extractTable(logger, result)
	scanRecords := nmapxml.NewExtractor(logger, p.progress).Extract(run)
	result.ScanRecords = len(scanRecords)
	p.countExtracted(record.SourceScan, scanRecords)

	all := make([]record.ScanRecord, 0, len(tableRecords)+len(scanRecords))
	all = append(all, tableRecords...)
	all = append(all, scanRecords...)

	if len(all) == 0 {
		err := errors.ErrNoData()
		logger.WithError(err).Error("No usable records found, nothing written")
		p.finish(result, start, metrics.RunNoData)
		return result, err
	}

	records, removed := normalize.NewDeduplicator(logger).Deduplicate(all)
	result.Removed = removed
	result.Mode = normalize.Mode(len(all), removed)
	p.metrics.IncrementDuplicatesRemoved(removed)

	classifier := risk.New(
		risk.WithExtraPorts(p.opts.ExtraPorts...),
		risk.WithExtraServices(p.opts.ExtraServices...),
	)
	result.Flagged = classifier.ClassifyAll(records)
	result.Records = records
	p.metrics.IncrementRecordsFlagged(result.Flagged)
	logger.Info("Risk classification finished", "flagged", result.Flagged, "records", len(records))

	firstErr := p.writeSinks(logger, result, sinks)

	status := metrics.RunSuccess
	if firstErr != nil {
		status = metrics.RunError
	}
	p.finish(result, start, status)

	logger.Info("Merge run finished",
		"records", len(result.Records),
		"removed", result.Removed,
		"flagged", result.Flagged,
		"duration", result.Duration)
	return result, firstErr
}

func (p *Pipeline) mergeDocuments(logger *logging.Logger, result *Result) *nmap.Run {
	documents, err := DiscoverDocuments(p.opts.ScanDir, p.opts.ScanPattern, p.opts.MergedXML)
	if err != nil {
		logger.WithError(err).Warn("Scan document discovery failed, continuing without scan documents",
			"scan_dir", p.opts.ScanDir)
	}
	result.Documents = documents

	run, report := nmapxml.NewMerger(logger).Merge(documents)
	result.Merge = report
	p.metrics.IncrementDocuments(metrics.DocumentMerged, len(report.Merged))
	p.metrics.IncrementDocuments(metrics.DocumentFailed, len(report.Failures))
	p.metrics.IncrementDocuments(metrics.DocumentSkipped, len(report.Skipped))

	if run != nil && p.opts.MergedXML != "" {
		if err := nmapxml.WriteDocument(run, p.opts.MergedXML); err != nil {
			logger.ErrorSource("Failed to write merged scan document", p.opts.MergedXML, err)
		} else {
			result.MergedXML = p.opts.MergedXML
			logger.InfoSource("Merged scan document written", p.opts.MergedXML, "hosts", report.Hosts)
		}
	}
	return run
}

func (p *Pipeline) extractTable(logger *logging.Logger, result *Result) []record.ScanRecord {
	if p.opts.TablePath == "" {
		logger.Info("No table configured, using scan documents only")
		return nil
	}

	extractor := tabular.NewExtractor(logger,
		tabular.WithFallbackEncodings(p.opts.FallbackEncodings...),
		tabular.WithProgress(p.progress),
	)
	records, err := extractor.Extract(p.opts.TablePath)
	if err != nil {
		result.TableErr = err
		logger.WithError(err).Warn("Table yielded no records, continuing with scan documents",
			"path", p.opts.TablePath)
	}
	result.TableRecords = len(records)
	p.countExtracted(record.SourceTable, records)
	return records
}

func (p *Pipeline) countExtracted(source record.Source, records []record.ScanRecord) {
	invalid := 0
	for i := range records {
		if !address.IsValid(records[i].IP) {
			invalid++
		}
	}
	p.metrics.IncrementRecordsExtracted(string(source), len(records))
	p.metrics.IncrementInvalidAddresses(string(source), invalid)
}

func (p *Pipeline) writeSinks(logger *logging.Logger, result *Result, sinks []export.Sink) error {
	var firstErr error
	for _, sink := range sinks {
		target := sink.Target()
		if err := sink.Write(result.Records); err != nil {
			if errors.GetCode(err) == errors.CodeUnknown {
				err = errors.ErrOutputWrite(target, err)
			}
			logger.ErrorSource("Failed to write records", target, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		result.Targets = append(result.Targets, target)
		p.metrics.IncrementRecordsWritten(target, len(result.Records))
		logger.InfoSource("Records written", target, "records", len(result.Records))
	}
	return firstErr
}

func (p *Pipeline) finish(result *Result, start time.Time, status string) {
	result.Duration = time.Since(start)
	p.metrics.RecordRunDuration(status, result.Duration)
}
