package cwaudio

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

var errBrokenStream = errors.New("broken stream")

// fakeDevice records everything written to it. Writes can be made to fail
// or to block until released; blocked writes are announced on started.
type fakeDevice struct {
	mu       sync.Mutex
	openErr  error
	opens    int
	closes   int
	failNext int
	gate     chan struct{}
	started  chan Buffer
	writes   []Buffer
	plays    []Buffer
	unusable bool
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{started: make(chan Buffer, 64)}
}

func (d *fakeDevice) Available() bool {
	return !d.unusable
}

func (d *fakeDevice) Open() (Stream, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.openErr != nil {
		return nil, d.openErr
	}
	d.opens++
	return &fakeStream{dev: d}, nil
}

func (d *fakeDevice) Play(ctx context.Context, buf Buffer) error {
	d.mu.Lock()
	d.plays = append(d.plays, buf)
	d.mu.Unlock()
	return nil
}

// block makes subsequent writes wait until release is called.
func (d *fakeDevice) block() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gate = make(chan struct{})
}

func (d *fakeDevice) release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gate != nil {
		close(d.gate)
		d.gate = nil
	}
}

func (d *fakeDevice) setFailNext(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failNext = n
}

func (d *fakeDevice) snapshot() (opens int, writes []Buffer, plays []Buffer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opens, append([]Buffer(nil), d.writes...), append([]Buffer(nil), d.plays...)
}

type fakeStream struct {
	dev    *fakeDevice
	closed bool
}

func (s *fakeStream) Write(buf Buffer) error {
	d := s.dev
	d.mu.Lock()
	if s.closed {
		d.mu.Unlock()
		return ErrStreamClosed
	}
	if d.failNext > 0 {
		d.failNext--
		d.mu.Unlock()
		return errBrokenStream
	}
	gate := d.gate
	d.mu.Unlock()

	if gate != nil {
		select {
		case d.started <- buf:
		default:
		}
		<-gate
	}

	d.mu.Lock()
	d.writes = append(d.writes, buf)
	d.mu.Unlock()
	return nil
}

func (s *fakeStream) Close() error {
	s.dev.mu.Lock()
	defer s.dev.mu.Unlock()
	s.closed = true
	s.dev.closes++
	return nil
}

// marker builds a recognizable buffer whose first sample is id.
func marker(id float32) Buffer {
	return Buffer{id, 0, 0, 0}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func ids(bufs []Buffer) []float32 {
	out := make([]float32, 0, len(bufs))
	for _, b := range bufs {
		if len(b) == BlockSize {
			continue // warm-up block
		}
		out = append(out, b[0])
	}
	return out
}
