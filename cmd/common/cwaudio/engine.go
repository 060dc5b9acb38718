package cwaudio

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
)

// Engine ties phrase building, sidetone and phrase playback to one device.
// All methods are safe for concurrent use. When the device is unavailable
// every play and enqueue call is a no-op; building still works.
type Engine struct {
	device  Device
	side    *Sidetone
	noise   NoiseSettings
	log     *slog.Logger
	newRand func() *rand.Rand

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once

	// mu orders phrases.Add against Close so no phrase starts after Close
	// has begun waiting.
	mu      sync.Mutex
	phrases sync.WaitGroup
}

type Option func(*Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.log = logger
	}
}

// WithRand sets the random source factory used for noise, one call per build.
func WithRand(newRand func() *rand.Rand) Option {
	return func(e *Engine) {
		e.newRand = newRand
	}
}

// NewEngine starts an engine on device. The sidetone worker is started
// right away so the stream is warm before the first keystroke.
func NewEngine(device Device, opts ...Option) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		device: device,
		log:    slog.Default(),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(e)
	}
	if device.Available() {
		e.side = StartSidetone(device, e.log)
	}
	return e
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns the process-wide engine on the platform device.
func Default() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = NewEngine(PlatformDevice())
	})
	return defaultEngine
}

// output is the single availability guard for every play and enqueue path.
func (e *Engine) output() (*Sidetone, bool) {
	if e.side == nil || !e.side.Available() {
		return nil, false
	}
	return e.side, true
}

// IsDeviceAvailable reports whether audio can currently be played.
func (e *Engine) IsDeviceAvailable() bool {
	_, ok := e.output()
	return ok
}

// Ready is closed once the device open attempt has finished.
func (e *Engine) Ready() <-chan struct{} {
	if e.side == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return e.side.Ready()
}

// SetNoise replaces the shared noise settings used by later builds.
// Negative values are treated as disabled.
func (e *Engine) SetNoise(noiseDB, qrmFreqHz float64) {
	e.noise.Set(NoiseConfig{NoiseDB: max(noiseDB, 0), QRMFreqHz: max(qrmFreqHz, 0)})
}

func (e *Engine) Noise() NoiseConfig {
	return e.noise.Get()
}

// Build renders a Morse symbol string. It performs no I/O.
func (e *Engine) Build(morse string, p Params) (Buffer, error) {
	var rng *rand.Rand
	if e.newRand != nil {
		rng = e.newRand()
	}
	return BuildPhrase(morse, p, e.noise.Get(), rng)
}

// PlayPhrase builds and plays a Morse symbol string. Only an invalid
// configuration is reported; audio faults are not.
func (e *Engine) PlayPhrase(ctx context.Context, morse string, p Params, blocking bool) error {
	if _, err := NewDurations(p.WPM, p.FarnsworthWPM); err != nil {
		return err
	}
	if !e.IsDeviceAvailable() {
		return nil
	}
	buf, err := e.Build(morse, p)
	if err != nil {
		return err
	}
	e.Play(ctx, buf, blocking)
	return nil
}

// EnqueueDit queues a single dit on the sidetone.
func (e *Engine) EnqueueDit(wpm int, freqHz, volume float64) error {
	return e.enqueueMark(wpm, 1, freqHz, volume)
}

// EnqueueDah queues a single dah on the sidetone.
func (e *Engine) EnqueueDah(wpm int, freqHz, volume float64) error {
	return e.enqueueMark(wpm, 3, freqHz, volume)
}

func (e *Engine) enqueueMark(wpm int, units, freqHz, volume float64) error {
	d, err := NewDurations(wpm, 0)
	if err != nil {
		return err
	}
	side, ok := e.output()
	if !ok {
		return nil
	}
	side.Enqueue(concat([]Buffer{Silence(leadInMs), Tone(units*d.Dit, freqHz, volume)}))
	return nil
}

// Stop discards pending sidetone audio. Phrase playback is not affected.
func (e *Engine) Stop() {
	if e.side != nil {
		e.side.Clear()
	}
}

// Stats reports sidetone counters.
func (e *Engine) Stats() SidetoneStats {
	if e.side == nil {
		return SidetoneStats{}
	}
	return e.side.Stats()
}

// Wait blocks until all non-blocking phrase playback has finished.
func (e *Engine) Wait() {
	e.phrases.Wait()
}

// Close cancels phrase playback, stops the sidetone worker and closes the stream.
func (e *Engine) Close() {
	e.once.Do(func() {
		e.mu.Lock()
		e.cancel()
		e.mu.Unlock()
		e.phrases.Wait()
		if e.side != nil {
			e.side.Close()
		}
	})
}
