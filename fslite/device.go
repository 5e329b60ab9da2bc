// Package fslite drives the Abbott FreeStyle Lite blood-glucose meter
// over its serial strip-port cable. One Connect runs the memory-dump
// exchange and populates the session; everything after that is
// read-only access to the parsed snapshot.
package fslite

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glucoview/meterlink/wire"
)

// Unit is a glucose measurement unit.
type Unit int

const (
	// UnitMgDL is milligrams per deciliter.
	UnitMgDL Unit = iota
	// UnitMmolL is millimoles per liter.
	UnitMmolL
)

func (u Unit) String() string {
	switch u {
	case UnitMgDL:
		return "mg/dL"
	case UnitMmolL:
		return "mmol/L"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// serialNumberNA is the placeholder serial number: the FreeStyle Lite
// does not transmit one over this protocol.
const serialNumberNA = "N/A"

// Info holds the device metadata from the info block at the head of a
// memory dump. It is immutable once the session is populated.
type Info struct {
	// Version is the hardware version reported by the meter, e.g.
	// "0.22".
	Version string
	// SoftwareRevision is the software revision reported by the meter.
	SoftwareRevision string
	// SerialNumber is always "N/A" for this model.
	SerialNumber string
	// Unit is the meter's native storage unit, always mg/dL for this
	// model regardless of its configured display unit.
	Unit Unit
	// Clock is the device clock at the time of the dump, in the
	// device's local time taken at face value.
	Clock time.Time
	// ResultCount is the number of stored readings the meter reports.
	// The parsed reading log always has exactly this many entries.
	ResultCount int
}

// Reading is one stored glucose measurement.
type Reading struct {
	// Timestamp has minute precision; the meter sends no seconds on
	// reading lines.
	Timestamp time.Time
	// Value is the glucose level in mg/dL regardless of the meter's
	// display unit. math.IsInf(Value, 1) reports a saturated "HI"
	// measurement.
	Value float64
	// TypeCode is the raw two-digit reading type field. "00" on every
	// transcript seen so far; other values are surfaced via log only.
	TypeCode string
	// Sentinel is the raw trailing flag token, "0x00" or "0x01". Its
	// function is unknown beyond validation.
	Sentinel string
}

// Device is a session with a FreeStyle Lite meter. It is populated
// exactly once by a successful Connect and is thereafter read-only;
// it is not safe for use before Connect returns, and it performs no
// internal locking.
type Device struct {
	transport Transport
	config    Config
	logger    *slog.Logger

	connected bool
	closed    bool

	info     Info
	readings []Reading
	checksum uint16
}

// New dials the transport and returns an unconnected Device. Call
// Connect to run the memory-dump exchange.
func New(ctx context.Context, config Config) (*Device, error) {
	if config.dialer == nil {
		return nil, ErrNoDialer
	}
	logger := config.logger
	if logger == nil {
		logger = slog.Default()
	}

	transport, err := config.dialer.Dial(ctx)
	if err != nil {
		return nil, err
	}

	return &Device{
		transport: transport,
		config:    config,
		logger:    logger,
	}, nil
}

// Connect sends the memory-dump command and populates the session from
// the parsed response. On any failure the session stays unpopulated:
// there are no partial results, and the caller must re-issue Connect.
func (d *Device) Connect(ctx context.Context) error {
	if d.closed {
		return ErrAlreadyClosed
	}

	if _, ok := ctx.Deadline(); !ok && d.config.connectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.connectTimeout)
		defer cancel()
	}

	lines, err := d.exec(ctx, wire.CmdMemoryDump)
	if err != nil {
		return fmt.Errorf("memory dump: %w", err)
	}

	res, err := parseResponse(d.logger, lines)
	if err != nil {
		return fmt.Errorf("memory dump: %w", err)
	}

	d.info = res.info
	d.readings = res.readings
	d.checksum = res.checksum
	d.connected = true

	d.logger.Info("meter connected",
		"version", d.info.Version,
		"software_revision", d.info.SoftwareRevision,
		"results", d.info.ResultCount)
	return nil
}

// exec writes cmd in wire framing and reads response lines until the
// transport reports end of response.
func (d *Device) exec(ctx context.Context, cmd string) ([]string, error) {
	frame := wire.Command(cmd)
	d.logger.Debug("sending command", "command", cmd)
	if _, err := d.transport.Write([]byte(frame)); err != nil {
		return nil, fmt.Errorf("write command %q: %w", cmd, err)
	}

	scanner := bufio.NewScanner(d.transport)
	scanner.Split(wire.Splitter)

	var lines []string
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	d.logger.Debug("received response", "lines", len(lines))
	return lines, nil
}

// MeterInfo returns the device metadata captured by Connect.
func (d *Device) MeterInfo() (Info, error) {
	if !d.connected {
		return Info{}, ErrNotConnected
	}
	return d.info, nil
}

// Readings returns the stored measurements in device log order, which
// is not necessarily chronological.
func (d *Device) Readings() ([]Reading, error) {
	if !d.connected {
		return nil, ErrNotConnected
	}
	out := make([]Reading, len(d.readings))
	copy(out, d.readings)
	return out, nil
}

// DateTime returns the device clock as reported in the dump.
func (d *Device) DateTime() (time.Time, error) {
	if !d.connected {
		return time.Time{}, ErrNotConnected
	}
	return d.info.Clock, nil
}

// Checksum returns the transcript checksum the meter declared. Zero
// when the log was empty (an empty dump carries no trailer).
func (d *Device) Checksum() (uint16, error) {
	if !d.connected {
		return 0, ErrNotConnected
	}
	return d.checksum, nil
}

// SetDateTime would set the meter clock. The FreeStyle Lite serial
// protocol has no known command for it.
func (d *Device) SetDateTime(time.Time) error {
	return ErrNotImplemented
}

// ZeroLog would erase the meter's stored readings. Not supported by
// this protocol.
func (d *Device) ZeroLog() error {
	return ErrNotImplemented
}

// Close releases the transport. The Device cannot be reused afterwards.
func (d *Device) Close() error {
	if d.closed {
		return ErrAlreadyClosed
	}
	d.closed = true
	if d.transport != nil {
		return d.transport.Close()
	}
	return nil
}
