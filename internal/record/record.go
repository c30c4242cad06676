// Package record defines ScanRecord, the single row type that flows from the
// extractors through normalization and risk classification into the sinks.
package record

import (
	"fmt"
	"strings"
)

const (
	// DefaultProtocol is appended to bare port values.
	DefaultProtocol = "tcp"
	// PortSeparator separates the port number from its protocol.
	PortSeparator = "/"
)

// Source identifies which extractor produced a record.
type Source string

const (
	SourceTable Source = "table"
	SourceScan  Source = "scan"
)

// Column titles of the output sheet, in their fixed order.
const (
	ColumnIP            = "IP"
	ColumnPortProtocol  = "端口/协议"
	ColumnState         = "状态"
	ColumnService       = "服务"
	ColumnPurpose       = "端口用途"
	ColumnNecessityFlag = "是否必要开放"
)

// Columns returns the output column titles in order.
func Columns() []string {
	return []string{
		ColumnIP,
		ColumnPortProtocol,
		ColumnState,
		ColumnService,
		ColumnPurpose,
		ColumnNecessityFlag,
	}
}

// ScanRecord is one port observation: an inventory row or a port entry of a
// scan document. Missing values are empty strings.
type ScanRecord struct {
	IP            string `json:"ip"`
	PortProtocol  string `json:"port_protocol"`
	State         string `json:"state"`
	Service       string `json:"service"`
	Purpose       string `json:"purpose"`
	NecessityFlag string `json:"necessity_flag"`
}

// Values returns the record's fields in column order.
func (r ScanRecord) Values() []string {
	return []string{r.IP, r.PortProtocol, r.State, r.Service, r.Purpose, r.NecessityFlag}
}

// String renders the record for log output.
func (r ScanRecord) String() string {
	return fmt.Sprintf("%s %s %s %s", r.IP, r.PortProtocol, r.State, r.Service)
}

// NormalizePortProtocol trims v and appends the default protocol when no
// separator is present. An empty value stays empty.
func NormalizePortProtocol(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.Contains(v, PortSeparator) {
		return v
	}
	return v + PortSeparator + DefaultProtocol
}

// FormatPortProtocol builds the canonical "<port>/<protocol>" value.
func FormatPortProtocol(port uint16, protocol string) string {
	protocol = strings.TrimSpace(protocol)
	if protocol == "" {
		protocol = DefaultProtocol
	}
	return fmt.Sprintf("%d%s%s", port, PortSeparator, protocol)
}

// PortNumber returns the text before the separator.
func PortNumber(portProtocol string) string {
	port, _, _ := strings.Cut(portProtocol, PortSeparator)
	return strings.TrimSpace(port)
}
