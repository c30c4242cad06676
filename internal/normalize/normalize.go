// Package normalize canonicalizes record fields and removes duplicate records.
package normalize

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/anstrom/portmerge/internal/logging"
	"github.com/anstrom/portmerge/internal/record"
)

const keySeparator = "\x00"

// Deduplicator normalizes records and keeps the first record per identity key.
type Deduplicator struct {
	logger *logging.Logger
	fold   cases.Caser
}

// NewDeduplicator creates a Deduplicator.
func NewDeduplicator(logger *logging.Logger) *Deduplicator {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Deduplicator{
		logger: logger.WithComponent("dedup"),
		fold:   cases.Fold(),
	}
}

// Field collapses whitespace runs to one space, trims and case-folds v.
func (d *Deduplicator) Field(v string) string {
	return d.fold.String(strings.Join(strings.Fields(v), " "))
}

// Normalize rewrites the five identity fields of r in place.
func (d *Deduplicator) Normalize(r *record.ScanRecord) {
	r.IP = d.Field(r.IP)
	r.PortProtocol = record.NormalizePortProtocol(d.Field(r.PortProtocol))
	r.State = d.Field(r.State)
	r.Service = d.Field(r.Service)
	r.Purpose = d.Field(r.Purpose)
}

// Key returns the composite identity of an already normalized record.
func Key(r record.ScanRecord) string {
	return strings.Join([]string{r.IP, r.PortProtocol, r.Service, r.State, r.Purpose}, keySeparator)
}

// Deduplicate normalizes every record of records in place and returns the
// first occurrence of each identity key, in input order, along with the
// number of records dropped.
func (d *Deduplicator) Deduplicate(records []record.ScanRecord) ([]record.ScanRecord, int) {
	seen := make(map[string]struct{}, len(records))
	out := make([]record.ScanRecord, 0, len(records))

	for i := range records {
		d.Normalize(&records[i])
		key := Key(records[i])
		if _, dup := seen[key]; dup {
			d.logger.Debug("Duplicate record dropped", "record", records[i].String())
			continue
		}
		seen[key] = struct{}{}
		out = append(out, records[i])
	}

	removed := len(records) - len(out)
	d.logger.Info("Records deduplicated", "mode", Mode(len(records), removed), "records", len(out))
	return out, removed
}

// Mode describes a deduplication pass for the run summary.
func Mode(total, removed int) string {
	if total == 0 {
		return "none"
	}
	return fmt.Sprintf("strict (%d rows removed)", removed)
}
