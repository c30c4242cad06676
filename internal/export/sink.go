// Package export writes the final record sequence to its destinations.
package export

import (
	"os"
	"path/filepath"

	"github.com/anstrom/portmerge/internal/errors"
	"github.com/anstrom/portmerge/internal/record"
)

// Sink persists an ordered, normalized and classified record sequence.
type Sink interface {
	// Write persists records with the columns of record.Columns, in order.
	Write(records []record.ScanRecord) error

	// Target describes where records go, for logs and the run summary.
	Target() string
}

// Ensure that the sinks implement Sink.
var (
	_ Sink = (*XLSXSink)(nil)
	_ Sink = (*CSVSink)(nil)
	_ Sink = (*TableSink)(nil)
)

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.WrapSourceError(errors.CodeDirectoryCreate, "Failed to create output directory", dir, err)
	}
	return nil
}
