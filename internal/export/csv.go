package export

import (
	"encoding/csv"
	"os"

	"github.com/anstrom/portmerge/internal/errors"
	"github.com/anstrom/portmerge/internal/record"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVSink writes records as comma separated text.
type CSVSink struct {
	Path string
	// BOM prefixes the file with a UTF-8 byte order mark so spreadsheet
	// tools detect the encoding of the Chinese headers.
	BOM bool
}

// NewCSVSink creates a CSV sink writing to path with a byte order mark.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{Path: path, BOM: true}
}

// Target returns the file path.
func (s *CSVSink) Target() string {
	return s.Path
}

// Write replaces the file at Path with a header row and one row per record.
func (s *CSVSink) Write(records []record.ScanRecord) (err error) {
	if err := ensureParentDir(s.Path); err != nil {
		return err
	}

	file, err := os.Create(s.Path) //nolint:gosec // output path comes from configuration
	if err != nil {
		return errors.ErrOutputWrite(s.Path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = errors.ErrOutputWrite(s.Path, closeErr)
		}
	}()

	if s.BOM {
		if _, err := file.Write(utf8BOM); err != nil {
			return errors.ErrOutputWrite(s.Path, err)
		}
	}

	w := csv.NewWriter(file)
	if err := w.Write(record.Columns()); err != nil {
		return errors.ErrOutputWrite(s.Path, err)
	}
	for i := range records {
		if err := w.Write(records[i].Values()); err != nil {
			return errors.ErrOutputWrite(s.Path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.ErrOutputWrite(s.Path, err)
	}
	return nil
}
