package fslite

import (
	"bytes"
	"io"
	"sync"
)

// TestTransport is a test helper that simulates a blocking transport
// using channels. Reads block until data is queued with SendData, like
// a real serial port would, and return io.EOF once the transport is
// closed and the queue is drained — mirroring how serialTransport
// signals end of response. Writes are captured for assertions.
type TestTransport struct {
	mu       sync.Mutex
	readChan chan []byte
	writes   bytes.Buffer
	closed   bool
}

// NewTestTransport creates a new test transport for testing.
// Exported for use in tests.
func NewTestTransport() *TestTransport {
	return &TestTransport{
		readChan: make(chan []byte, 10),
	}
}

func (t *TestTransport) Write(p []byte) (n int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.writes.Write(p)
}

func (t *TestTransport) Read(p []byte) (n int, err error) {
	data, ok := <-t.readChan
	if !ok {
		return 0, io.EOF
	}
	return copy(p, data), nil
}

func (t *TestTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	close(t.readChan)
	return nil
}

// SendData queues data to be read from the transport. This simulates
// the meter talking.
func (t *TestTransport) SendData(data string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.closed {
		t.readChan <- []byte(data)
	}
}

// Written returns everything written to the transport so far.
func (t *TestTransport) Written() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.writes.String()
}
