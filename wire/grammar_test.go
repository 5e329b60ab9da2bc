package wire_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/glucoview/meterlink/wire"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "January clock",
			input:    "Jan  01 2017 12:00:00",
			expected: time.Date(2017, time.January, 1, 12, 0, 0, 0, time.Local),
		},
		{
			name:     "December end of day",
			input:    "Dec  31 2019 23:59:59",
			expected: time.Date(2019, time.December, 31, 23, 59, 59, 0, time.Local),
		},
		{
			name:     "leading zero day",
			input:    "Sep  08 2018 07:05:03",
			expected: time.Date(2018, time.September, 8, 7, 5, 3, 0, time.Local),
		},
		{name: "single digit day", input: "Jan  1 2017 12:00:00", wantErr: true},
		{name: "single space after month", input: "Jan 01 2017 12:00:00", wantErr: true},
		{name: "unknown month token", input: "Xyz  01 2017 12:00:00", wantErr: true},
		{name: "lowercase month", input: "jan  01 2017 12:00:00", wantErr: true},
		{name: "missing seconds", input: "Jan  01 2017 12:00", wantErr: true},
		{name: "trailing garbage", input: "Jan  01 2017 12:00:00x", wantErr: true},
		{name: "empty line", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := wire.ParseClock(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tt.input, got)
				}
				if !errors.Is(err, wire.ErrNoMatch) {
					t.Errorf("expected ErrNoMatch, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		wantErr  bool
	}{
		{name: "empty log literal", input: "Log Empty END", expected: 0},
		{name: "three digit zero", input: "000", expected: 0},
		{name: "small count", input: "007", expected: 7},
		{name: "large count", input: "450", expected: 450},
		{name: "two digits", input: "42", wantErr: true},
		{name: "four digits", input: "0042", wantErr: true},
		{name: "letters", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "empty log with trailing space", input: "Log Empty END ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := wire.ParseCount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestParseReading(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		value    float64
		time     time.Time
		typeCode string
		sentinel string
		wantErr  bool
	}{
		{
			name:     "plain reading",
			input:    "123  Jan  01 2017 12:00 00 0x00",
			value:    123,
			time:     time.Date(2017, time.January, 1, 12, 0, 0, 0, time.Local),
			typeCode: "00",
			sentinel: "0x00",
		},
		{
			name:     "leading zero value",
			input:    "083  Mar  15 2016 06:45 00 0x01",
			value:    83,
			time:     time.Date(2016, time.March, 15, 6, 45, 0, 0, time.Local),
			typeCode: "00",
			sentinel: "0x01",
		},
		{
			name:     "spelled out June",
			input:    "110  June  02 2018 08:30 00 0x00",
			value:    110,
			time:     time.Date(2018, time.June, 2, 8, 30, 0, 0, time.Local),
			typeCode: "00",
			sentinel: "0x00",
		},
		{
			name:     "spelled out July",
			input:    "095  July  21 2018 19:10 00 0x00",
			value:    95,
			time:     time.Date(2018, time.July, 21, 19, 10, 0, 0, time.Local),
			typeCode: "00",
			sentinel: "0x00",
		},
		{
			name:     "anomalous type code still parses",
			input:    "101  Feb  28 2015 23:59 07 0x00",
			value:    101,
			time:     time.Date(2015, time.February, 28, 23, 59, 0, 0, time.Local),
			typeCode: "07",
			sentinel: "0x00",
		},
		{name: "seconds present", input: "123  Jan  01 2017 12:00:00 00 0x00", wantErr: true},
		{name: "two digit value", input: "23  Jan  01 2017 12:00 00 0x00", wantErr: true},
		{name: "unknown month", input: "123  Xyz  01 2017 12:00 00 0x00", wantErr: true},
		{name: "bad sentinel", input: "123  Jan  01 2017 12:00 00 0x02", wantErr: true},
		{name: "single space after value", input: "123 Jan  01 2017 12:00 00 0x00", wantErr: true},
		{name: "truncated line", input: "123  Jan  01 2017 12:00", wantErr: true},
		{name: "empty line", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := wire.ParseReading(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %+v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Value != tt.value {
				t.Errorf("value: expected %v, got %v", tt.value, got.Value)
			}
			if !got.Time.Equal(tt.time) {
				t.Errorf("time: expected %v, got %v", tt.time, got.Time)
			}
			if got.TypeCode != tt.typeCode {
				t.Errorf("type code: expected %q, got %q", tt.typeCode, got.TypeCode)
			}
			if got.Sentinel != tt.sentinel {
				t.Errorf("sentinel: expected %q, got %q", tt.sentinel, got.Sentinel)
			}
		})
	}
}

func TestParseReadingSaturated(t *testing.T) {
	got, err := wire.ParseReading("HI   Aug  09 2017 14:20 00 0x00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !math.IsInf(got.Value, 1) {
		t.Errorf("expected +Inf for saturated reading, got %v", got.Value)
	}
	expected := time.Date(2017, time.August, 9, 14, 20, 0, 0, time.Local)
	if !got.Time.Equal(expected) {
		t.Errorf("time: expected %v, got %v", expected, got.Time)
	}
}

func TestParseReadingMonthForms(t *testing.T) {
	// The meter spells June and July out in reading lines but not in
	// the clock line. Both widths must decode to the same month.
	long, err := wire.ParseReading("110  June  02 2018 08:30 00 0x00")
	if err != nil {
		t.Fatalf("long form: %v", err)
	}
	short, err := wire.ParseReading("110  Jun  02 2018 08:30 00 0x00")
	if err != nil {
		t.Fatalf("short form: %v", err)
	}
	if !long.Time.Equal(short.Time) {
		t.Errorf("month forms disagree: long %v, short %v", long.Time, short.Time)
	}
}

func TestParseChecksumLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected uint16
		wantErr  bool
	}{
		{name: "typical value", input: "0x1A2B  END", expected: 0x1A2B},
		{name: "zero", input: "0x0000  END", expected: 0},
		{name: "max", input: "0xFFFF  END", expected: 0xFFFF},
		{name: "lowercase hex", input: "0x1a2b  END", wantErr: true},
		{name: "single space before END", input: "0x1A2B END", wantErr: true},
		{name: "missing prefix", input: "1A2B  END", wantErr: true},
		{name: "three digits", input: "0x12B  END", wantErr: true},
		{name: "missing END", input: "0x1A2B", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := wire.ParseChecksumLine(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got 0x%04X", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected 0x%04X, got 0x%04X", tt.expected, got)
			}
		})
	}
}

func TestCommand(t *testing.T) {
	if got := wire.Command(wire.CmdMemoryDump); got != "$mem\r\n" {
		t.Errorf("expected %q, got %q", "$mem\r\n", got)
	}
}
