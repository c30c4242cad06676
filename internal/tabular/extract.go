package tabular

import (
	"os"
	"strings"

	"github.com/anstrom/portmerge/internal/address"
	"github.com/anstrom/portmerge/internal/errors"
	"github.com/anstrom/portmerge/internal/logging"
	"github.com/anstrom/portmerge/internal/progress"
	"github.com/anstrom/portmerge/internal/record"
)

// headerRows is the number of sheet rows above the first data row.
const headerRows = 1

// Extractor reads inventory tables into records.
type Extractor struct {
	logger    *logging.Logger
	progress  progress.Tracker
	aliases   []FieldAliases
	fallbacks []string
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFallbackEncodings sets the encodings tried when a text table is not UTF-8.
func WithFallbackEncodings(names ...string) Option {
	return func(e *Extractor) {
		e.fallbacks = names
	}
}

// WithAliases replaces the header vocabulary.
func WithAliases(aliases []FieldAliases) Option {
	return func(e *Extractor) {
		e.aliases = aliases
	}
}

// WithProgress reports row progress to tracker.
func WithProgress(tracker progress.Tracker) Option {
	return func(e *Extractor) {
		e.progress = progress.OrNop(tracker)
	}
}

// NewExtractor creates an extractor using DefaultAliases and no fallback encodings.
func NewExtractor(logger *logging.Logger, opts ...Option) *Extractor {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	e := &Extractor{
		logger:   logger.WithComponent("table-extractor"),
		progress: progress.Nop{},
		aliases:  DefaultAliases,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract reads the table at path and emits one record per non-blank row.
// A missing, unreadable or empty table returns a nil slice and a coded
// error; callers treat it as an absent source.
func (e *Extractor) Extract(path string) ([]record.ScanRecord, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.ErrSourceMissing(path, "No table configured")
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		srcErr := errors.ErrSourceMissing(path, "Table file does not exist")
		e.logger.ErrorSource("Table file does not exist", path, srcErr)
		return nil, srcErr
	}

	table, err := ReadTable(path, e.fallbacks)
	if err != nil {
		e.logger.ErrorSource("Failed to read table", path, err)
		return nil, err
	}

	if len(table.Rows) == 0 {
		e.logger.Warn("Table has no data rows", "path", path)
		return nil, errors.ErrSourceMissing(path, "Table has no data rows")
	}

	resolution := Resolve(table.Headers, e.aliases)
	e.logResolution(path, table, resolution)

	bar := e.progress.Start("Reading table rows", len(table.Rows))
	defer bar.Stop()

	records := make([]record.ScanRecord, 0, len(table.Rows))
	for i, row := range table.Rows {
		bar.Increment()
		if isBlank(row) {
			continue
		}

		rec := record.ScanRecord{
			IP:           resolution.Value(FieldIP, row),
			PortProtocol: record.NormalizePortProtocol(resolution.Value(FieldPortProtocol, row)),
			State:        resolution.Value(FieldState, row),
			Service:      resolution.Value(FieldService, row),
			Purpose:      resolution.Value(FieldPurpose, row),
		}
		if !address.IsValid(rec.IP) {
			e.logger.WarnAddress("Row address is missing or invalid", string(record.SourceTable), rec.IP,
				"path", path, "row", i+headerRows+1)
		}
		records = append(records, rec)
	}

	e.logger.InfoSource("Table records extracted", path, "rows", len(table.Rows), "records", len(records))
	return records, nil
}

func (e *Extractor) logResolution(path string, table *Table, resolution Resolution) {
	for _, fa := range e.aliases {
		col, ok := resolution[fa.Field]
		if !ok {
			e.logger.Warn("Column not found, field left empty", "path", path, "field", fa.Field.String())
			continue
		}
		e.logger.Debug("Column resolved",
			"path", path,
			"field", fa.Field.String(),
			"header", col.Header,
			"matcher", col.Matcher)
	}
	if table.Encoding != "" && table.Encoding != encodingUTF8 {
		e.logger.Info("Table decoded with fallback encoding", "path", path, "encoding", table.Encoding)
	}
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
