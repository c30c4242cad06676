package export

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/anstrom/portmerge/internal/errors"
	"github.com/anstrom/portmerge/internal/record"
)

// TableSink prints records as a console table.
type TableSink struct {
	out io.Writer
}

// NewTableSink creates a sink rendering to out.
func NewTableSink(out io.Writer) *TableSink {
	return &TableSink{out: out}
}

// Target returns "console".
func (s *TableSink) Target() string {
	return "console"
}

// Write renders all records in one table.
func (s *TableSink) Write(records []record.ScanRecord) error {
	table := tablewriter.NewWriter(s.out)
	table.Header(record.Columns())

	for i := range records {
		if err := table.Append(records[i].Values()); err != nil {
			return errors.ErrOutputWrite(s.Target(), err)
		}
	}

	if err := table.Render(); err != nil {
		return errors.ErrOutputWrite(s.Target(), err)
	}
	return nil
}
