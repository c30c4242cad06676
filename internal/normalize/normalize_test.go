package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anstrom/portmerge/internal/record"
)

func TestField(t *testing.T) {
	d := NewDeduplicator(nil)

	tests := []struct {
		input    string
		expected string
	}{
		{"  Open  ", "open"},
		{"Microsoft  Terminal\tServices", "microsoft terminal services"},
		{"HTTP", "http"},
		{"ÉCOLE", "école"},
		{"门户 网站", "门户 网站"},
		{"", ""},
		{" \t\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, d.Field(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	r := record.ScanRecord{
		IP:            " 10.0.0.1 ",
		PortProtocol:  "80",
		State:         "OPEN",
		Service:       " Http ",
		Purpose:       "Web   Portal",
		NecessityFlag: "untouched",
	}

	NewDeduplicator(nil).Normalize(&r)

	assert.Equal(t, record.ScanRecord{
		IP:            "10.0.0.1",
		PortProtocol:  "80/tcp",
		State:         "open",
		Service:       "http",
		Purpose:       "web portal",
		NecessityFlag: "untouched",
	}, r)
}

func TestDeduplicate(t *testing.T) {
	records := []record.ScanRecord{
		{IP: "10.0.0.1", PortProtocol: "22/tcp", State: "open", Service: "SSH"},
		{IP: "10.0.0.2", PortProtocol: "80/tcp", State: "open", Service: "http"},
		{IP: " 10.0.0.1", PortProtocol: "22/TCP", State: "Open ", Service: "ssh"},
		{IP: "10.0.0.1", PortProtocol: "22/tcp", State: "open", Service: "ssh", Purpose: "运维"},
		{IP: "10.0.0.2", PortProtocol: "80", State: "OPEN", Service: "HTTP"},
	}

	out, removed := NewDeduplicator(nil).Deduplicate(records)

	expected := []record.ScanRecord{
		{IP: "10.0.0.1", PortProtocol: "22/tcp", State: "open", Service: "ssh"},
		{IP: "10.0.0.2", PortProtocol: "80/tcp", State: "open", Service: "http"},
		{IP: "10.0.0.1", PortProtocol: "22/tcp", State: "open", Service: "ssh", Purpose: "运维"},
	}
	assert.Equal(t, expected, out)
	assert.Equal(t, 2, removed)
	assert.Equal(t, len(records)-len(out), removed)
}

func TestDeduplicateIsStable(t *testing.T) {
	d := NewDeduplicator(nil)
	input := func() []record.ScanRecord {
		return []record.ScanRecord{
			{IP: "b", PortProtocol: "1/tcp"},
			{IP: "a", PortProtocol: "1/tcp"},
			{IP: "B", PortProtocol: "1/TCP"},
		}
	}

	first, _ := d.Deduplicate(input())
	second, _ := d.Deduplicate(input())
	require.Equal(t, first, second)
	assert.Equal(t, "b", first[0].IP)

	again, removed := d.Deduplicate(first)
	assert.Equal(t, first, again)
	assert.Zero(t, removed)
}

func TestDeduplicateEmpty(t *testing.T) {
	out, removed := NewDeduplicator(nil).Deduplicate(nil)
	assert.Empty(t, out)
	assert.Zero(t, removed)
}

func TestKeyIgnoresNecessityFlag(t *testing.T) {
	a := record.ScanRecord{IP: "10.0.0.1", PortProtocol: "22/tcp"}
	b := a
	b.NecessityFlag = "flagged"
	assert.Equal(t, Key(a), Key(b))

	c := a
	c.Purpose = "x"
	assert.NotEqual(t, Key(a), Key(c))
}

func TestMode(t *testing.T) {
	assert.Equal(t, "none", Mode(0, 0))
	assert.Equal(t, "strict (3 rows removed)", Mode(10, 3))
	assert.Equal(t, "strict (0 rows removed)", Mode(4, 0))
}
