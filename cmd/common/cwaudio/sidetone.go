package cwaudio

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// SidetoneQueueSize is the number of pending keystroke buffers kept.
const SidetoneQueueSize = 3

// State is the lifecycle state of the sidetone worker.
type State int32

const (
	StateOpening State = iota
	StateOpen
	StateWriting
	StateReopening
	StateNoDevice
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpening:
		return "opening"
	case StateOpen:
		return "open"
	case StateWriting:
		return "writing"
	case StateReopening:
		return "reopening"
	case StateNoDevice:
		return "no-device"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// SidetoneStats counts what happened to enqueued buffers.
type SidetoneStats struct {
	Written int64
	Dropped int64 // discarded by the queue to make room
	Failed  int64 // discarded after a failed write and retry
	Opens   int64
}

type primeRequest struct {
	buf  Buffer
	done chan bool
}

// Sidetone owns an open output stream and plays queued keystroke buffers
// on a single worker goroutine, so no keystroke pays the device-open cost.
// The stream is only ever touched by the worker.
type Sidetone struct {
	device Device
	log    *slog.Logger
	queue  *DropOldest[Buffer]
	prime  chan primeRequest

	state  atomic.Int32
	ready  chan struct{}
	done   chan struct{}
	cancel context.CancelFunc
	once   sync.Once

	written atomic.Int64
	dropped atomic.Int64
	failed  atomic.Int64
	opens   atomic.Int64

	stream Stream
}

// StartSidetone opens device on a new worker goroutine and returns
// immediately. If the open fails the player stays in StateNoDevice and
// every call on it is a no-op.
func StartSidetone(device Device, logger *slog.Logger) *Sidetone {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Sidetone{
		device: device,
		log:    logger.With("component", "sidetone"),
		queue:  NewDropOldest[Buffer](SidetoneQueueSize),
		prime:  make(chan primeRequest),
		ready:  make(chan struct{}),
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go s.run(ctx)
	return s
}

func (s *Sidetone) State() State {
	return State(s.state.Load())
}

// Ready is closed once the initial open attempt has finished.
func (s *Sidetone) Ready() <-chan struct{} {
	return s.ready
}

// Available is false once the device failed to open or the player closed.
func (s *Sidetone) Available() bool {
	st := s.State()
	return st != StateNoDevice && st != StateClosed
}

// Enqueue hands buf to the worker. It never blocks; when the queue is full
// the oldest pending buffer is discarded.
func (s *Sidetone) Enqueue(buf Buffer) bool {
	if !s.Available() || len(buf) == 0 {
		return false
	}
	if n := s.queue.Push(buf); n > 0 {
		s.dropped.Add(int64(n))
		s.log.Debug("sidetone queue full, dropped oldest", "dropped", n)
	}
	return true
}

// Clear discards pending buffers without closing the stream. A buffer that
// is already being written finishes playing.
func (s *Sidetone) Clear() int {
	return len(s.queue.Drain())
}

// Pending returns the number of queued buffers.
func (s *Sidetone) Pending() int {
	return s.queue.Len()
}

// Prime asks the worker to write buf through its open stream and waits for
// the write to finish. It returns false when no stream is open.
func (s *Sidetone) Prime(ctx context.Context, buf Buffer) bool {
	if !s.Available() {
		return false
	}
	req := primeRequest{buf: buf, done: make(chan bool, 1)}
	select {
	case s.prime <- req:
	case <-ctx.Done():
		return false
	case <-s.done:
		return false
	}
	select {
	case ok := <-req.done:
		return ok
	case <-ctx.Done():
		return false
	}
}

func (s *Sidetone) Stats() SidetoneStats {
	return SidetoneStats{
		Written: s.written.Load(),
		Dropped: s.dropped.Load(),
		Failed:  s.failed.Load(),
		Opens:   s.opens.Load(),
	}
}

// Close stops the worker and closes the stream. Pending buffers are discarded.
func (s *Sidetone) Close() {
	s.once.Do(func() {
		s.cancel()
		<-s.done
	})
}

func (s *Sidetone) run(ctx context.Context) {
	defer close(s.done)
	defer func() {
		s.closeStream()
		s.queue.Drain()
		s.state.Store(int32(StateClosed))
	}()

	s.state.Store(int32(StateOpening))
	opened := s.open(true)
	if !opened {
		s.state.Store(int32(StateNoDevice))
	}
	close(s.ready)

	for {
		select {
		case <-ctx.Done():
			return
		case buf := <-s.queue.C():
			if opened {
				s.write(buf)
			}
		case req := <-s.prime:
			req.done <- opened && s.writePrime(req.buf)
		}
	}
}

// open starts a stream. With warmUp set it pushes one silent block through
// it so the driver is running before the first real tone.
func (s *Sidetone) open(warmUp bool) bool {
	stream, err := s.device.Open()
	if err != nil {
		s.log.Warn("failed to open audio output", "error", err)
		return false
	}
	s.opens.Add(1)
	if !warmUp {
		s.stream = stream
		return true
	}
	if err := stream.Write(make(Buffer, BlockSize)); err != nil {
		s.log.Warn("audio warm-up write failed", "error", err)
		_ = stream.Close()
		return false
	}
	s.stream = stream
	s.state.Store(int32(StateOpen))
	return true
}

// write plays buf. A failed write closes the stream, reopens it and retries
// once with buf itself; if that fails too the buffer is dropped.
func (s *Sidetone) write(buf Buffer) {
	for attempt := 0; attempt < 2; attempt++ {
		if s.stream == nil {
			s.state.Store(int32(StateReopening))
			if !s.open(false) {
				break
			}
		}
		s.state.Store(int32(StateWriting))
		err := s.stream.Write(buf)
		if err == nil {
			s.state.Store(int32(StateOpen))
			s.written.Add(1)
			return
		}
		s.log.Debug("sidetone write failed", "attempt", attempt+1, "error", err)
		s.closeStream()
		s.state.Store(int32(StateReopening))
	}
	s.failed.Add(1)
	s.log.Debug("dropping sidetone buffer", "samples", len(buf))
}

func (s *Sidetone) writePrime(buf Buffer) bool {
	if s.stream == nil {
		return false
	}
	if err := s.stream.Write(buf); err != nil {
		s.log.Debug("priming write failed", "error", err)
		return false
	}
	return true
}

func (s *Sidetone) closeStream() {
	if s.stream == nil {
		return
	}
	if err := s.stream.Close(); err != nil {
		s.log.Debug("failed to close audio stream", "error", err)
	}
	s.stream = nil
}
