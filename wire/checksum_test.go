package wire_test

import (
	"strings"
	"testing"

	"github.com/glucoview/meterlink/wire"
)

func TestChecksum(t *testing.T) {
	// Hand-computed vectors: byte sum of the lines plus
	// ('\r'+'\n')*(5+n) + '\n'.
	tests := []struct {
		name     string
		lines    []string
		n        int
		expected uint16
	}{
		{
			// "ab" sums to 195; correction is 23*6 + 10 = 148.
			name:     "single line single reading",
			lines:    []string{"ab"},
			n:        1,
			expected: 343,
		},
		{
			// No line bytes at all, only the ending correction.
			name:     "empty lines",
			lines:    []string{"", ""},
			n:        2,
			expected: 23*7 + 10,
		},
		{
			// 2850 * 'a' = 276450; 276450 + 23*10 + 10 = 276690;
			// 276690 mod 65536 = 14546.
			name:     "sum wraps at 16 bits",
			lines:    []string{strings.Repeat("a", 2850)},
			n:        5,
			expected: 14546,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wire.Checksum(tt.lines, tt.n)
			if got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestChecksumDetectsSingleByteCorruption(t *testing.T) {
	lines := []string{
		"",
		"0.22",
		"0.22",
		"Jan  01 2017 12:00:00",
		"002",
		"",
		"123  Jan  01 2017 12:00 00 0x00",
		"110  June  02 2018 08:30 00 0x00",
	}
	clean := wire.Checksum(lines, 2)

	corrupted := make([]string, len(lines))
	copy(corrupted, lines)
	corrupted[6] = "124  Jan  01 2017 12:00 00 0x00"

	if got := wire.Checksum(corrupted, 2); got == clean {
		t.Errorf("corrupted transcript produced the same checksum 0x%04X", got)
	}
}
