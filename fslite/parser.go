package fslite

import (
	"log/slog"
	"strings"

	"github.com/glucoview/meterlink/wire"
)

// parsedResponse is the transient result of decoding one memory dump.
// It exists only during parsing and is decomposed into Device fields
// on success.
type parsedResponse struct {
	info     Info
	readings []Reading
	checksum uint16
}

// parseInfo decodes the fixed five-line info block: a blank line, the
// hardware version, the software revision, the clock line, and the
// result count (either "Log Empty END" or three digits). Serial number
// and unit are fixed for this model.
func parseInfo(lines []string) (Info, error) {
	if len(lines) < wire.InfoSize {
		return Info{}, &InvalidResponseError{Response: strings.Join(lines, "\n")}
	}
	if lines[0] != "" {
		return Info{}, &InvalidResponseError{Response: strings.Join(lines, "\n")}
	}
	clock, err := wire.ParseClock(lines[3])
	if err != nil {
		return Info{}, &InvalidResponseError{Response: lines[3]}
	}
	count, err := wire.ParseCount(lines[4])
	if err != nil {
		return Info{}, &InvalidResponseError{Response: lines[4]}
	}
	return Info{
		Version:          lines[1],
		SoftwareRevision: lines[2],
		SerialNumber:     serialNumberNA,
		Unit:             UnitMgDL,
		Clock:            clock,
		ResultCount:      count,
	}, nil
}

// parseReadings decodes the reading block, preserving transcript
// order. Each line is parsed independently; a type code other than
// "00" is anomalous but tolerated, surfaced via log only.
func parseReadings(logger *slog.Logger, lines []string) ([]Reading, error) {
	readings := make([]Reading, 0, len(lines))
	for i, line := range lines {
		rl, err := wire.ParseReading(line)
		if err != nil {
			return nil, &InvalidResponseError{Response: line, Index: i + 1}
		}
		if rl.TypeCode != wire.TypeCodeNormal {
			logger.Warn("unexpected reading type code",
				"type", rl.TypeCode, "expected", wire.TypeCodeNormal, "line", i+1)
		}
		readings = append(readings, Reading{
			Timestamp: rl.Time,
			Value:     rl.Value,
			TypeCode:  rl.TypeCode,
			Sentinel:  rl.Sentinel,
		})
	}
	return readings, nil
}

// parseResponse assembles a full memory dump: info block, reading
// block, then checksum verification. The transcript shape is strict:
//
//	N = 0: blank, version, revision, clock, "Log Empty END"
//	N > 0: blank, version, revision, clock, count, blank,
//	       N reading lines, checksum trailer
//
// so an empty log is exactly 5 lines and anything else is exactly
// 7+N. The checksum is verified only when a trailer exists, i.e.
// N > 0.
func parseResponse(logger *slog.Logger, lines []string) (*parsedResponse, error) {
	info, err := parseInfo(lines)
	if err != nil {
		return nil, err
	}

	n := info.ResultCount
	if n == 0 {
		if len(lines) != wire.InfoSize {
			return nil, &InvalidResponseError{Response: strings.Join(lines, "\n")}
		}
		return &parsedResponse{info: info}, nil
	}

	if len(lines) != wire.InfoSize+n+2 {
		return nil, &InvalidResponseError{Response: strings.Join(lines, "\n")}
	}
	if lines[wire.InfoSize] != "" {
		return nil, &InvalidResponseError{Response: strings.Join(lines, "\n")}
	}

	readings, err := parseReadings(logger, lines[wire.InfoSize+1:wire.InfoSize+1+n])
	if err != nil {
		return nil, err
	}

	declared, err := wire.ParseChecksumLine(lines[len(lines)-1])
	if err != nil {
		return nil, &InvalidResponseError{Response: lines[len(lines)-1]}
	}
	computed := wire.Checksum(lines[:len(lines)-1], n)
	if computed != declared {
		return nil, &ChecksumError{Expected: declared, Computed: computed}
	}

	return &parsedResponse{info: info, readings: readings, checksum: declared}, nil
}
