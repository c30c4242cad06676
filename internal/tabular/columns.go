package tabular

import "strings"

// Field is one of the five logical columns of an inventory table.
type Field int

const (
	FieldIP Field = iota
	FieldPortProtocol
	FieldState
	FieldService
	FieldPurpose
)

// String returns the field's name for logs.
func (f Field) String() string {
	switch f {
	case FieldIP:
		return "ip"
	case FieldPortProtocol:
		return "port_protocol"
	case FieldState:
		return "state"
	case FieldService:
		return "service"
	case FieldPurpose:
		return "purpose"
	default:
		return "unknown"
	}
}

// FieldAliases lists the header names accepted for a field, highest priority first.
type FieldAliases struct {
	Field   Field
	Aliases []string
}

// DefaultAliases is the header vocabulary of the inventory spreadsheets.
var DefaultAliases = []FieldAliases{
	{Field: FieldIP, Aliases: []string{"IP", "ip", "地址", "Host"}},
	{Field: FieldPortProtocol, Aliases: []string{"端口/协议", "端口", "Port", "port"}},
	{Field: FieldState, Aliases: []string{"状态", "State", "开放状态"}},
	{Field: FieldService, Aliases: []string{"服务", "Service", "协议"}},
	{Field: FieldPurpose, Aliases: []string{"端口用途", "用途", "备注", "Remark"}},
}

// Matcher is one header matching strategy.
type Matcher struct {
	Name  string
	Match func(header, alias string) bool
}

// Matchers are tried in order; the first strategy that matches any alias wins.
var Matchers = []Matcher{
	{Name: "exact", Match: func(header, alias string) bool { return header == alias }},
	{Name: "case-insensitive", Match: strings.EqualFold},
	{Name: "substring", Match: func(header, alias string) bool {
		return strings.Contains(strings.ToLower(header), strings.ToLower(alias))
	}},
}

// Column is the header a field resolved to.
type Column struct {
	Index   int
	Header  string
	Matcher string
}

// Resolution maps fields to their columns. Absent fields are unresolved.
type Resolution map[Field]Column

// Resolve matches every field in aliases against headers. Fields are
// resolved independently, so one header may back several fields.
func Resolve(headers []string, aliases []FieldAliases) Resolution {
	res := make(Resolution, len(aliases))
	for _, fa := range aliases {
		if col, ok := resolveField(headers, fa.Aliases); ok {
			res[fa.Field] = col
		}
	}
	return res
}

func resolveField(headers, aliases []string) (Column, bool) {
	for _, m := range Matchers {
		for _, alias := range aliases {
			for i, header := range headers {
				if m.Match(header, alias) {
					return Column{Index: i, Header: header, Matcher: m.Name}, true
				}
			}
		}
	}
	return Column{}, false
}

// Value returns the trimmed cell of row backing field, or "" when the field
// is unresolved or the row is short.
func (r Resolution) Value(field Field, row []string) string {
	col, ok := r[field]
	if !ok || col.Index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col.Index])
}
