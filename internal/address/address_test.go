package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"private ipv4", "192.168.1.1", true},
		{"octet out of range", "999.1.1.1", false},
		{"three groups", "10.0.0", false},
		{"five groups", "10.0.0.1.5", false},
		{"zero address", "0.0.0.0", true},
		{"broadcast", "255.255.255.255", true},
		{"256 octet", "1.2.3.256", false},
		{"leading zero", "010.001.1.1", true},
		{"loopback ipv6", "::1", true},
		{"full ipv6", "2001:0db8:85a3:0000:0000:8a2e:0370:7334", true},
		{"compressed ipv6", "fe80::1ff:fe23:4567:890a", true},
		{"loose ipv6 accepted", ":::::::", true},
		{"hex group too long", "2001:0db8a::1", false},
		{"too many groups", "1:2:3:4:5:6:7:8:9", false},
		{"hostname", "example.com", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"surrounding whitespace", " 10.1.2.3 ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsValid(tt.input))
		})
	}
}

func TestFamily(t *testing.T) {
	assert.Equal(t, FamilyIPv4, Family("8.8.8.8"))
	assert.Equal(t, FamilyIPv6, Family("::1"))
	assert.Equal(t, "", Family("not-an-ip"))
}
