package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePortProtocol(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"80", "80/tcp"},
		{"53/udp", "53/udp"},
		{" 443 ", "443/tcp"},
		{"", ""},
		{"   ", ""},
		{"8080/tcp", "8080/tcp"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePortProtocol(tt.input))
		})
	}
}

func TestFormatPortProtocol(t *testing.T) {
	assert.Equal(t, "22/tcp", FormatPortProtocol(22, "tcp"))
	assert.Equal(t, "161/udp", FormatPortProtocol(161, "udp"))
	assert.Equal(t, "80/tcp", FormatPortProtocol(80, ""))
}

func TestPortNumber(t *testing.T) {
	assert.Equal(t, "3389", PortNumber("3389/tcp"))
	assert.Equal(t, "80", PortNumber("80"))
	assert.Equal(t, "", PortNumber(""))
}

func TestValuesFollowColumns(t *testing.T) {
	r := ScanRecord{
		IP:            "10.0.0.1",
		PortProtocol:  "22/tcp",
		State:         "open",
		Service:       "ssh",
		Purpose:       "ops",
		NecessityFlag: "",
	}

	values := r.Values()
	assert.Len(t, values, len(Columns()))
	assert.Equal(t, []string{"10.0.0.1", "22/tcp", "open", "ssh", "ops", ""}, values)
}
