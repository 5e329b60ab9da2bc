package fslite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// Transport represents an established, bidirectional byte stream to a
// glucose meter.
//
// A Transport is assumed to be already connected and ready for use.
// Read must return io.EOF once the meter has finished responding; the
// meter does not frame the end of a dump, so serial implementations
// derive EOF from a read timeout. Typical implementations include
// serial ports and in-memory fakes used for testing.
type Transport interface {
	io.ReadWriteCloser
}

// Dialer opens a Transport to a glucose meter.
//
// Dialer abstracts how the connection is created (serial port, test
// double) and is used during Device construction only. Once a
// Transport is obtained, the Dialer is no longer needed.
type Dialer interface {
	// Dial creates and returns a connected Transport. It may perform
	// blocking operations and should respect cancellation provided by
	// the context.
	Dial(ctx context.Context) (Transport, error)
}

// DefaultBaudRate is the serial speed of the FreeStyle Lite strip-port
// cable.
const DefaultBaudRate = 19200

// DefaultReadTimeout bounds how long a read waits for more response
// data. End of response is detected by the line going quiet.
const DefaultReadTimeout = 2 * time.Second

// SerialDialer opens a meter attached to a local serial port using
// go.bug.st/serial.
type SerialDialer struct {
	// PortName is the device path, e.g. /dev/ttyUSB0.
	PortName string
	// BaudRate overrides DefaultBaudRate when non-zero. Ignored when
	// Mode is set.
	BaudRate int
	// Mode overrides the full port configuration (default 8N1 at the
	// configured baud rate).
	Mode *serial.Mode
	// ReadTimeout overrides DefaultReadTimeout when non-zero.
	ReadTimeout time.Duration
}

// Dial opens and configures the serial port.
func (d SerialDialer) Dial(ctx context.Context) (Transport, error) {
	if ctx == nil {
		return nil, errors.New("fslite: context is nil")
	}
	if d.PortName == "" {
		return nil, errors.New("fslite: serial port name is required")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	mode := d.Mode
	if mode == nil {
		baud := d.BaudRate
		if baud == 0 {
			baud = DefaultBaudRate
		}
		mode = &serial.Mode{
			BaudRate: baud,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		}
	}

	port, err := serial.Open(d.PortName, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", d.PortName, err)
	}

	timeout := d.ReadTimeout
	if timeout == 0 {
		timeout = DefaultReadTimeout
	}
	if err := port.SetReadTimeout(timeout); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout on %s: %w", d.PortName, err)
	}

	return &serialTransport{port: port}, nil
}

// serialTransport adapts a serial.Port to the Transport contract. A
// timed-out read (zero bytes, no error) is mapped to io.EOF: the meter
// has stopped talking, which is the only end-of-response signal it
// gives.
type serialTransport struct {
	port serial.Port
}

func (t *serialTransport) Read(p []byte) (int, error) {
	n, err := t.port.Read(p)
	if n == 0 && err == nil {
		return 0, io.EOF
	}
	return n, err
}

func (t *serialTransport) Write(p []byte) (int, error) {
	return t.port.Write(p)
}

func (t *serialTransport) Close() error {
	return t.port.Close()
}
