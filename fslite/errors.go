package fslite

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDialer is returned when a Device is constructed without a
	// Dialer.
	//
	// This indicates a configuration error. A Dialer is required in
	// order to establish a connection to the meter.
	ErrNoDialer = errors.New("no dialer configured")

	// ErrNotConnected is returned by accessors before Connect has
	// populated the session with a parsed memory dump.
	ErrNotConnected = errors.New("device not connected")

	// ErrAlreadyClosed is returned when Close is called on a Device
	// that has already been closed, or when an operation is attempted
	// after Close.
	ErrAlreadyClosed = errors.New("device already closed")

	// ErrNotImplemented is returned by operations the FreeStyle Lite
	// serial protocol has no command for: setting the device clock and
	// erasing the reading log.
	ErrNotImplemented = errors.New("not supported by this device")

	// ErrInvalidResponse matches any *InvalidResponseError via
	// errors.Is.
	ErrInvalidResponse = errors.New("invalid response")

	// ErrChecksum matches any *ChecksumError via errors.Is.
	ErrChecksum = errors.New("checksum mismatch")
)

// InvalidResponseError reports a memory-dump transcript that does not
// match the device grammar: a malformed line, or an overall shape that
// disagrees with the declared result count. It is a hard failure of
// the parse; the caller must re-issue the command and parse from
// scratch.
type InvalidResponseError struct {
	// Response is the offending line, or the full transcript joined
	// with newlines for structural faults.
	Response string
	// Index is the 1-based position within the reading block when the
	// fault is in a reading line, 0 otherwise.
	Index int
}

func (e *InvalidResponseError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("invalid response: reading line %d: %q", e.Index, e.Response)
	}
	return fmt.Sprintf("invalid response: %q", e.Response)
}

// Is reports ErrInvalidResponse as a match so callers can use
// errors.Is without caring about the concrete type.
func (e *InvalidResponseError) Is(target error) bool {
	return target == ErrInvalidResponse
}

// ChecksumError reports a structurally valid transcript whose byte sum
// disagrees with the checksum the meter declared: the data arrived
// corrupted. It is distinct from *InvalidResponseError so callers can
// decide whether to retry or discard on integrity faults specifically.
type ChecksumError struct {
	// Expected is the value declared on the checksum trailer line.
	Expected uint16
	// Computed is the value computed from the received transcript.
	Computed uint16
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%04X, computed 0x%04X", e.Expected, e.Computed)
}

// Is reports ErrChecksum as a match so callers can use errors.Is
// without caring about the concrete type.
func (e *ChecksumError) Is(target error) bool {
	return target == ErrChecksum
}
