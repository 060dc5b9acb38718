//go:build (linux && cgo) || windows || darwin

package cwaudio

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

// AudioAvailable indicates whether audio playback is supported in this build.
const AudioAvailable = true

// How long past the end of a buffer a write may take before it counts as failed.
const writeSlack = time.Second

var (
	speakerOnce sync.Once
	speakerErr  error
)

// initSpeaker initializes the beep speaker. It can only be done once per
// process, so a failure is sticky until restart.
func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(beep.SampleRate(SampleRate), BlockSize)
	})
	return speakerErr
}

// PlatformDevice returns the speaker-backed output device.
func PlatformDevice() Device {
	return speakerDevice{}
}

// speakerDevice plays through the process-wide beep speaker. Streams are
// handles over the speaker's mixer, so closing one never tears down the
// driver that other playback is using.
type speakerDevice struct{}

func (speakerDevice) Available() bool {
	return true
}

func (speakerDevice) Open() (Stream, error) {
	if err := initSpeaker(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}
	return &speakerStream{}, nil
}

func (speakerDevice) Play(ctx context.Context, buf Buffer) error {
	if err := initSpeaker(); err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceUnavailable, err)
	}
	return playAndWait(ctx, buf)
}

type speakerStream struct {
	closed atomic.Bool
}

func (s *speakerStream) Write(buf Buffer) error {
	if s.closed.Load() {
		return ErrStreamClosed
	}
	return playAndWait(context.Background(), buf)
}

func (s *speakerStream) Close() error {
	s.closed.Store(true)
	return nil
}

// playAndWait mixes buf into the speaker and blocks until the completion
// callback fires.
func playAndWait(ctx context.Context, buf Buffer) error {
	if len(buf) == 0 {
		return nil
	}

	ctrl := &beep.Ctrl{Streamer: &bufferStreamer{buf: buf}}
	done := make(chan struct{})
	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		close(done)
	})))

	timer := time.NewTimer(buf.Duration() + writeSlack)
	defer timer.Stop()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		mute(ctrl)
		return ctx.Err()
	case <-timer.C:
		mute(ctrl)
		return ErrWriteTimeout
	}
}

func mute(ctrl *beep.Ctrl) {
	speaker.Lock()
	ctrl.Streamer = nil
	speaker.Unlock()
}

// bufferStreamer feeds a mono Buffer to both speaker channels.
type bufferStreamer struct {
	buf Buffer
	pos int
}

func (b *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if b.pos >= len(b.buf) {
		return 0, false
	}
	for i := range samples {
		if b.pos >= len(b.buf) {
			return i, true
		}
		v := float64(b.buf[b.pos])
		samples[i][0] = v
		samples[i][1] = v
		b.pos++
	}
	return len(samples), true
}

func (b *bufferStreamer) Err() error {
	return nil
}
