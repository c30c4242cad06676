// Package risk flags records that expose well-known dangerous ports or services.
package risk

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"github.com/anstrom/portmerge/internal/record"
)

// Warning is the necessity flag set on dangerous records.
const Warning = "危险端口不允许对外开放"

var defaultPorts = []int{
	20, 21, 23, 25, 53, 69, 110, 111, 135, 137, 139, 143, 161, 389, 445,
	512, 513, 514, 873, 888, 1433, 1521, 1529, 2049, 3306, 3389, 5000, 5432,
	5900, 5901, 5902, 6379, 7001, 9200, 9300, 11211, 27017, 27018,
}

var defaultServices = []string{
	"ftp", "telnet", "smtp", "dns", "smb", "snmp", "rsync", "oracle", "mysql", "mysqlx",
	"mariadb", "rdp", "postgresql", "vnc", "redis", "weblogic_server", "elasticsearch",
	"elasticsearch_transport", "memcached", "mongodb", "mongodb_shard_or_secondary",
	"tftp", "nfs", "pop3", "imap", "netbios-ns", "msrpc", "netbios-ssn", "ldap",
	"linux rexec", "mssql", "oracle db", "sybase/db2", "ilo", "any", "oracledb",
	"http", "linuxrexec", "vnc服务",
}

// Classifier decides whether a record is dangerous. It holds no mutable
// state after construction and is safe for concurrent use.
type Classifier struct {
	ports    map[int]struct{}
	services map[string]struct{}
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithExtraPorts adds port numbers to the default dangerous set.
func WithExtraPorts(ports ...int) Option {
	return func(c *Classifier) {
		for _, p := range ports {
			c.ports[p] = struct{}{}
		}
	}
}

// WithExtraServices adds service identifiers to the default dangerous set.
func WithExtraServices(services ...string) Option {
	return func(c *Classifier) {
		for _, s := range services {
			if s = foldService(s); s != "" {
				c.services[s] = struct{}{}
			}
		}
	}
}

// New creates a Classifier with the default port and service sets.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		ports:    make(map[int]struct{}, len(defaultPorts)),
		services: make(map[string]struct{}, len(defaultServices)),
	}
	for _, p := range defaultPorts {
		c.ports[p] = struct{}{}
	}
	for _, s := range defaultServices {
		c.services[s] = struct{}{}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsDangerous reports whether r's port or service is in the dangerous sets.
// The service matches when the whole value or any of its tokens (split on
// whitespace, '_' and '-') is a known identifier.
func (c *Classifier) IsDangerous(r record.ScanRecord) bool {
	if port, err := strconv.Atoi(record.PortNumber(r.PortProtocol)); err == nil {
		if _, ok := c.ports[port]; ok {
			return true
		}
	}

	service := foldService(r.Service)
	if service == "" {
		return false
	}
	if _, ok := c.services[service]; ok {
		return true
	}
	for _, token := range strings.FieldsFunc(service, isTokenSeparator) {
		if _, ok := c.services[token]; ok {
			return true
		}
	}
	return false
}

// Classify returns r with its necessity flag set.
func (c *Classifier) Classify(r record.ScanRecord) record.ScanRecord {
	if c.IsDangerous(r) {
		r.NecessityFlag = Warning
	} else {
		r.NecessityFlag = ""
	}
	return r
}

// ClassifyAll flags records in place and returns how many were flagged.
func (c *Classifier) ClassifyAll(records []record.ScanRecord) int {
	flagged := 0
	for i := range records {
		records[i] = c.Classify(records[i])
		if records[i].NecessityFlag != "" {
			flagged++
		}
	}
	return flagged
}

// Ports returns the dangerous port set in ascending order.
func (c *Classifier) Ports() []int {
	ports := make([]int, 0, len(c.ports))
	for p := range c.ports {
		ports = append(ports, p)
	}
	sort.Ints(ports)
	return ports
}

// Services returns the dangerous service set in lexical order.
func (c *Classifier) Services() []string {
	services := make([]string, 0, len(c.services))
	for s := range c.services {
		services = append(services, s)
	}
	sort.Strings(services)
	return services
}

func foldService(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

func isTokenSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == '_' || r == '-'
}
