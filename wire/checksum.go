package wire

// Transcript line-ending weights. The meter terminates every line of a
// memory dump with CRLF except a single line (the blank separator
// before the reading block) which ends with a bare LF. The checksum it
// declares covers the raw bytes of the transcript, endings included,
// so the computation over stripped lines re-adds the endings as a
// fixed correction term: CRLF for the info block and each reading
// line, plus one lone LF. The shape of that term was reverse
// engineered from observed transcripts; it is kept as explicit named
// constants rather than re-derived, and cannot be inferred at runtime
// anyway since the splitter has already normalized the endings away.
const (
	crlfWeight = int('\r') + int('\n')
	lfWeight   = int('\n')

	// checksumMod reduces the byte sum to the 16-bit value carried by
	// the trailer line.
	checksumMod = 1 << 16
)

// Checksum computes the 16-bit transcript checksum. lines are the
// stripped transcript lines excluding the checksum trailer itself; n
// is the result count declared by the info block. Only transcripts
// with n > 0 carry a trailer, so this is never called for an empty log.
func Checksum(lines []string, n int) uint16 {
	sum := 0
	for _, line := range lines {
		for i := 0; i < len(line); i++ {
			sum += int(line[i])
		}
	}
	sum += crlfWeight*(InfoSize+n) + lfWeight
	return uint16(sum % checksumMod)
}
