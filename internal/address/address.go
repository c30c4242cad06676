// Package address performs the loose syntactic IP address check used for
// inventory diagnostics. It never filters data; callers only log its verdict.
package address

import (
	"regexp"
	"strings"
)

// Families reported by Family.
const (
	FamilyIPv4 = "ipv4"
	FamilyIPv6 = "ipv6"
)

var (
	ipv4Pattern = regexp.MustCompile(
		`^(25[0-5]|2[0-4]\d|[01]?\d\d?)(\.(25[0-5]|2[0-4]\d|[01]?\d\d?)){3}$`)

	// Two to eight groups of up to four hex digits. Compression rules and the
	// exact group count are not enforced.
	ipv6Pattern = regexp.MustCompile(`^([0-9a-fA-F]{0,4}:){2,7}[0-9a-fA-F]{0,4}$`)
)

// IsValid reports whether s looks like an IPv4 or IPv6 address.
func IsValid(s string) bool {
	return Family(s) != ""
}

// Family returns FamilyIPv4 or FamilyIPv6 for a syntactically valid address
// and "" otherwise.
func Family(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return ""
	case ipv4Pattern.MatchString(s):
		return FamilyIPv4
	case ipv6Pattern.MatchString(s):
		return FamilyIPv6
	default:
		return ""
	}
}
