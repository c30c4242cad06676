package nmapxml

import (
	"github.com/Ullaakut/nmap/v3"

	"github.com/anstrom/portmerge/internal/errors"
	"github.com/anstrom/portmerge/internal/logging"
)

// Failure records a document that did not contribute to the merge.
type Failure struct {
	Path string
	Err  error
}

// MergeReport summarizes a merge.
type MergeReport struct {
	// Base is the path of the base document, empty when nothing was merged.
	Base string
	// Merged lists the documents whose hosts are in the result, base first.
	Merged []string
	// Failures lists documents that could not be parsed.
	Failures []Failure
	// Skipped lists documents never read because the base failed.
	Skipped []string
	// Hosts is the host count of the merged document.
	Hosts int
}

// BaseFailed reports whether the merge was abandoned because of the base document.
func (r *MergeReport) BaseFailed() bool {
	for _, f := range r.Failures {
		if errors.IsCode(f.Err, errors.CodeBaseDocument) {
			return true
		}
	}
	return false
}

// Merger unions scan documents into one.
type Merger struct {
	logger *logging.Logger
}

// NewMerger creates a merger that reports through logger.
func NewMerger(logger *logging.Logger) *Merger {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Merger{logger: logger.WithComponent("merger")}
}

// Merge loads paths in order and appends the hosts of every document after
// the first to the first. It returns nil when paths is empty or the first
// document cannot be parsed.
func (m *Merger) Merge(paths []string) (*nmap.Run, *MergeReport) {
	report := &MergeReport{}
	if len(paths) == 0 {
		m.logger.Warn("No scan documents found, skipping merge")
		return nil, report
	}

	m.logger.Info("Merging scan documents", "documents", len(paths))

	base := LoadDocument(paths[0])
	if !base.OK() {
		err := errors.ErrBaseDocument(base.Path, base.Err)
		report.Failures = append(report.Failures, Failure{Path: base.Path, Err: err})
		report.Skipped = append(report.Skipped, paths[1:]...)
		m.logger.ErrorSource("Base scan document could not be parsed, merge abandoned", base.Path, err,
			"skipped", len(report.Skipped))
		return nil, report
	}

	merged := base.Run
	report.Base = base.Path
	report.Merged = append(report.Merged, base.Path)

	for _, path := range paths[1:] {
		doc := LoadDocument(path)
		if !doc.OK() {
			err := errors.ErrDocumentParse(doc.Path, doc.Err)
			report.Failures = append(report.Failures, Failure{Path: doc.Path, Err: err})
			m.logger.ErrorSource("Failed to merge scan document", doc.Path, err)
			continue
		}
		merged.Hosts = append(merged.Hosts, doc.Run.Hosts...)
		report.Merged = append(report.Merged, doc.Path)
		m.logger.Debug("Grafted hosts", "path", doc.Path, "hosts", len(doc.Run.Hosts))
	}

	report.Hosts = len(merged.Hosts)
	m.logger.Info("Scan documents merged",
		"merged", len(report.Merged),
		"failed", len(report.Failures),
		"hosts", report.Hosts)

	return merged, report
}
