package wire

import (
	"bufio"
	"bytes"
)

// Splitter tokenizes a memory-dump response. It uses the signature of
// bufio.SplitFunc so it can be directly used with bufio.Scanner.
//
// The meter mixes line-ending conventions inside one transcript: every
// line ends with CRLF except one, which ends with a bare LF. Splitting
// on LF and stripping an optional preceding CR yields clean lines for
// both conventions. The checksum computation accounts for the stripped
// endings separately (see Checksum).
//
// The atEOF parameter indicates whether any more data will be
// available. When true, any remaining data is returned as the final
// token.
func Splitter(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, dropCR(data[0:i]), nil
	}

	if atEOF {
		return len(data), dropCR(data), nil
	}
	return 0, nil, nil
}

var _ bufio.SplitFunc = Splitter

func dropCR(data []byte) []byte {
	if len(data) > 0 && data[len(data)-1] == '\r' {
		return data[:len(data)-1]
	}
	return data
}
