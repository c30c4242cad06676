package nmapxml

import (
	"github.com/Ullaakut/nmap/v3"

	"github.com/anstrom/portmerge/internal/address"
	"github.com/anstrom/portmerge/internal/logging"
	"github.com/anstrom/portmerge/internal/progress"
	"github.com/anstrom/portmerge/internal/record"
)

// nmap addrtype values.
const (
	addrTypeIPv4 = "ipv4"
)

// Extractor turns a scan document into records.
type Extractor struct {
	logger   *logging.Logger
	progress progress.Tracker
}

// NewExtractor creates an extractor. A nil tracker disables progress output.
func NewExtractor(logger *logging.Logger, tracker progress.Tracker) *Extractor {
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Extractor{
		logger:   logger.WithComponent("scan-extractor"),
		progress: progress.OrNop(tracker),
	}
}

// Extract emits one record per port of every host in run, in document order.
func (e *Extractor) Extract(run *nmap.Run) []record.ScanRecord {
	if run == nil {
		return nil
	}

	bar := e.progress.Start("Parsing scan hosts", len(run.Hosts))
	defer bar.Stop()

	records := make([]record.ScanRecord, 0, len(run.Hosts))
	for i := range run.Hosts {
		host := &run.Hosts[i]
		ip := HostAddress(host)
		if !address.IsValid(ip) {
			e.logger.WarnAddress("Host address is missing or invalid", string(record.SourceScan), ip,
				"host_index", i, "ports", len(host.Ports))
		}

		for j := range host.Ports {
			p := &host.Ports[j]
			records = append(records, record.ScanRecord{
				IP:           ip,
				PortProtocol: record.FormatPortProtocol(p.ID, p.Protocol),
				State:        p.State.State,
				Service:      p.Service.Name,
			})
		}
		bar.Increment()
	}

	e.logger.Info("Scan records extracted", "hosts", len(run.Hosts), "records", len(records))
	return records
}

// HostAddress picks the address a host's records are reported under: the
// first IPv4-typed entry, else the first entry that passes address.IsValid,
// else "". A MAC entry passes the loose IPv6 check and can be chosen.
func HostAddress(host *nmap.Host) string {
	for _, addr := range host.Addresses {
		if addr.AddrType == addrTypeIPv4 {
			return addr.Addr
		}
	}
	for _, addr := range host.Addresses {
		if address.IsValid(addr.Addr) {
			return addr.Addr
		}
	}
	return ""
}
