package wire

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"
)

// ErrNoMatch reports a line that does not match the grammar expected
// at its position in the transcript. Callers wrap it with the context
// they have (line content, position in the reading block).
var ErrNoMatch = errors.New("no grammar match")

// months maps the capitalized first three letters of a month name to
// its ordinal. The meter truncates month names inconsistently: clock
// lines always use three letters, while reading lines spell June and
// July out in full. Lookups therefore always key on the first three
// characters only. A token absent from this table fails the grammar.
var months = map[string]time.Month{
	"Jan": time.January,
	"Feb": time.February,
	"Mar": time.March,
	"Apr": time.April,
	"May": time.May,
	"Jun": time.June,
	"Jul": time.July,
	"Aug": time.August,
	"Sep": time.September,
	"Oct": time.October,
	"Nov": time.November,
	"Dec": time.December,
}

// ReadingLine is the typed result of parsing one reading record line.
type ReadingLine struct {
	// Value is the glucose level in mg/dL. A saturated "HI " reading
	// parses to positive infinity.
	Value float64
	// Time is the reading timestamp. Minute precision; the meter sends
	// no seconds on reading lines.
	Time time.Time
	// TypeCode is the raw two-digit reading type field.
	TypeCode string
	// Sentinel is the raw trailing flag token, "0x00" or "0x01".
	Sentinel string
}

func noMatch(kind, line string) error {
	return fmt.Errorf("%s line %q: %w", kind, line, ErrNoMatch)
}

// ParseClock parses the info-block clock line:
//
//	Mon  DD YYYY HH:MM:SS
//
// with exactly two spaces after the month and single spaces elsewhere.
func ParseClock(line string) (time.Time, error) {
	// Fixed width: 3 + 2 + 2 + 1 + 4 + 1 + 8.
	if len(line) != 21 || line[3:5] != "  " || line[7] != ' ' || line[12] != ' ' {
		return time.Time{}, noMatch("clock", line)
	}
	month, ok := monthOrdinal(line[0:3])
	if !ok {
		return time.Time{}, noMatch("clock", line)
	}
	day, ok1 := fixedInt(line[5:7])
	year, ok2 := fixedInt(line[8:12])
	hour, minute, second, ok3 := clockTime(line[13:21])
	if !ok1 || !ok2 || !ok3 {
		return time.Time{}, noMatch("clock", line)
	}
	return time.Date(year, month, day, hour, minute, second, 0, time.Local), nil
}

// ParseCount parses the result-count line of the info block. The meter
// has two encodings for it: the literal "Log Empty END" when the log
// holds nothing, or an exactly three-digit decimal count. "000" and the
// empty-log literal both mean zero.
func ParseCount(line string) (int, error) {
	if line == EmptyLogEnd {
		return 0, nil
	}
	if len(line) != 3 {
		return 0, noMatch("count", line)
	}
	n, ok := fixedInt(line)
	if !ok {
		return 0, noMatch("count", line)
	}
	return n, nil
}

// ParseReading parses one reading record line:
//
//	RRR  Mon  DD YYYY HH:MM TT 0x0S
//
// RRR is three digits or the saturation literal "HI ". The month field
// is three or four characters wide (June and July are spelled out);
// only the first three letters are significant. TT is a two-digit type
// code and the sentinel is one of the two accepted literals.
func ParseReading(line string) (ReadingLine, error) {
	if len(line) < 31 || line[3:5] != "  " {
		return ReadingLine{}, noMatch("reading", line)
	}

	var value float64
	switch raw := line[0:3]; {
	case raw == Saturated:
		value = math.Inf(1)
	case isDigits(raw):
		n, _ := strconv.Atoi(raw)
		value = float64(n)
	default:
		return ReadingLine{}, noMatch("reading", line)
	}

	month, width, ok := monthToken(line[5:])
	if !ok {
		return ReadingLine{}, noMatch("reading", line)
	}
	rest := line[5+width:]
	if len(rest) != 23 || rest[0:2] != "  " {
		return ReadingLine{}, noMatch("reading", line)
	}
	rest = rest[2:]

	// DD YYYY HH:MM TT 0x0S
	if rest[2] != ' ' || rest[7] != ' ' || rest[13] != ' ' || rest[16] != ' ' {
		return ReadingLine{}, noMatch("reading", line)
	}
	day, ok1 := fixedInt(rest[0:2])
	year, ok2 := fixedInt(rest[3:7])
	hour, minute, ok3 := readingTime(rest[8:13])
	if !ok1 || !ok2 || !ok3 {
		return ReadingLine{}, noMatch("reading", line)
	}
	typeCode := rest[14:16]
	if !isDigits(typeCode) {
		return ReadingLine{}, noMatch("reading", line)
	}
	sentinel := rest[17:21]
	if sentinel != "0x00" && sentinel != "0x01" {
		return ReadingLine{}, noMatch("reading", line)
	}

	return ReadingLine{
		Value:    value,
		Time:     time.Date(year, month, day, hour, minute, 0, 0, time.Local),
		TypeCode: typeCode,
		Sentinel: sentinel,
	}, nil
}

// ParseChecksumLine parses the checksum trailer:
//
//	0xHHHH  END
//
// with four uppercase hex digits and two spaces before END.
func ParseChecksumLine(line string) (uint16, error) {
	if len(line) != 11 || line[0:2] != "0x" || line[6:11] != "  END" {
		return 0, noMatch("checksum", line)
	}
	for i := 2; i < 6; i++ {
		c := line[i]
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return 0, noMatch("checksum", line)
		}
	}
	v, err := strconv.ParseUint(line[2:6], 16, 16)
	if err != nil {
		return 0, noMatch("checksum", line)
	}
	return uint16(v), nil
}

// monthToken reads a month field from the head of s: a capitalized
// three-letter abbreviation, optionally followed by one more lowercase
// letter for the spelled-out June/July forms. Returns the month, the
// field width consumed, and whether the token was recognized.
func monthToken(s string) (time.Month, int, bool) {
	if len(s) < 3 {
		return 0, 0, false
	}
	month, ok := monthOrdinal(s[0:3])
	if !ok {
		return 0, 0, false
	}
	width := 3
	if len(s) > 3 && s[3] >= 'a' && s[3] <= 'z' {
		width = 4
	}
	return month, width, true
}

func monthOrdinal(s string) (time.Month, bool) {
	if len(s) != 3 || s[0] < 'A' || s[0] > 'Z' {
		return 0, false
	}
	for i := 1; i < 3; i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return 0, false
		}
	}
	month, ok := months[s]
	return month, ok
}

func clockTime(s string) (hour, minute, second int, ok bool) {
	// HH:MM:SS
	if len(s) != 8 || s[2] != ':' || s[5] != ':' {
		return 0, 0, 0, false
	}
	hour, ok1 := fixedInt(s[0:2])
	minute, ok2 := fixedInt(s[3:5])
	second, ok3 := fixedInt(s[6:8])
	return hour, minute, second, ok1 && ok2 && ok3
}

func readingTime(s string) (hour, minute int, ok bool) {
	// HH:MM, no seconds on reading lines.
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, false
	}
	hour, ok1 := fixedInt(s[0:2])
	minute, ok2 := fixedInt(s[3:5])
	return hour, minute, ok1 && ok2
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

// fixedInt parses a fixed-width decimal field. Leading zeros are fine,
// signs and spaces are not.
func fixedInt(s string) (int, bool) {
	if !isDigits(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
