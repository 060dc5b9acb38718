package cwaudio

import "context"

// Device is a mono output device running at SampleRate.
type Device interface {
	// Available reports whether this build can produce sound at all.
	Available() bool
	// Open starts a stream for low-latency sequential writes.
	Open() (Stream, error)
	// Play performs one-shot playback of buf and returns when it finishes
	// or ctx is done.
	Play(ctx context.Context, buf Buffer) error
}

// Stream is an open output stream. Write blocks until buf has been played.
type Stream interface {
	Write(buf Buffer) error
	Close() error
}

// NoDevice is the Device used when no audio output exists. It is never
// available and every operation fails with ErrDeviceUnavailable.
type NoDevice struct{}

func (NoDevice) Available() bool { return false }

func (NoDevice) Open() (Stream, error) { return nil, ErrDeviceUnavailable }

func (NoDevice) Play(context.Context, Buffer) error { return ErrDeviceUnavailable }
