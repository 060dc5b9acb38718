// Package cwaudio turns Morse symbol strings into mono PCM audio and plays it.
//
// Two playback paths share one output device: a long-lived sidetone worker for
// single keystrokes, and a phrase path for fully built buffers. Everything else
// in the package (timing, synthesis, noise mixing, phrase building) is pure.
package cwaudio

import (
	"errors"
	"math"
	"time"
)

const (
	// SampleRate is the fixed output rate in Hz.
	SampleRate = 44100

	// BlockSize is the device write block size in samples.
	BlockSize = 512

	fadeSamples = SampleRate * 5 / 1000

	leadInMs = 5.0
	primeMs  = 60.0
)

var (
	ErrInvalidConfig     = errors.New("invalid config: wpm must be positive")
	ErrDeviceUnavailable = errors.New("audio device unavailable")
	ErrWriteTimeout      = errors.New("audio write timed out")
	ErrStreamClosed      = errors.New("audio stream closed")
)

// Buffer is a run of mono float32 samples at SampleRate.
type Buffer []float32

// Duration returns the playback time of the buffer.
func (b Buffer) Duration() time.Duration {
	return time.Duration(float64(len(b)) / SampleRate * float64(time.Second))
}

// Peak returns the largest absolute sample value.
func (b Buffer) Peak() float64 {
	peak := 0.0
	for _, s := range b {
		if a := math.Abs(float64(s)); a > peak {
			peak = a
		}
	}
	return peak
}

func samplesFor(durationMs float64) int {
	if durationMs <= 0 {
		return 0
	}
	return int(math.Round(SampleRate * durationMs / 1000))
}
