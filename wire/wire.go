// Package wire implements the line-level text protocol spoken by the
// FreeStyle Lite glucose meter over its serial strip-port cable: the
// command framing, the fixed line grammars of the memory-dump response,
// and the transcript checksum.
package wire

const (
	// Terminal control
	CRLF = "\r\n"
	LF   = "\n"

	// CommandPrefix frames every command sent to the meter.
	CommandPrefix = "$"

	// CmdMemoryDump requests the full memory dump: device metadata
	// followed by every stored reading.
	CmdMemoryDump = "mem"

	// EmptyLogEnd is the literal the meter emits in place of a result
	// count when its log holds no readings.
	EmptyLogEnd = "Log Empty END"

	// Saturated is the reading field emitted when the sample exceeded
	// the meter's measurable range. The literal is space-padded to the
	// full three-character field width.
	Saturated = "HI "

	// TypeCodeNormal is the only reading type code this model is known
	// to emit. Other codes are tolerated by the parser.
	TypeCodeNormal = "00"

	// InfoSize is the number of lines in the info block at the head of
	// every memory dump.
	InfoSize = 5
)

// Command renders cmd in the meter's wire framing.
func Command(cmd string) string {
	return CommandPrefix + cmd + CRLF
}
