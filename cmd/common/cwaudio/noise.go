package cwaudio

import (
	"math"
	"math/rand/v2"
	"sync/atomic"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	minSignalPower = 1e-6
	qrmLevel       = 0.35
)

// NoiseConfig describes simulated channel conditions. NoiseDB is the
// signal-to-noise ratio of added white noise and QRMFreqHz the pitch of a
// competing carrier; zero disables either source.
type NoiseConfig struct {
	NoiseDB   float64 `json:"noise_db"`
	QRMFreqHz float64 `json:"qrm_freq_hz"`
}

// Enabled reports whether any interference source is active.
func (c NoiseConfig) Enabled() bool {
	return c.NoiseDB > 0 || c.QRMFreqHz > 0
}

// NoiseSettings is a NoiseConfig shared between goroutines. Readers always
// see both fields from the same Set call.
type NoiseSettings struct {
	cfg atomic.Pointer[NoiseConfig]
}

func (s *NoiseSettings) Set(cfg NoiseConfig) {
	s.cfg.Store(&cfg)
}

func (s *NoiseSettings) Get() NoiseConfig {
	if p := s.cfg.Load(); p != nil {
		return *p
	}
	return NoiseConfig{}
}

// ApplyNoise mixes white noise and a QRM carrier into a copy of buf, then
// renormalizes once so the peak does not exceed 1. The input is returned
// unchanged when it is empty or cfg is disabled. A nil rng uses a freshly
// seeded source.
func ApplyNoise(buf Buffer, cfg NoiseConfig, rng *rand.Rand) Buffer {
	if len(buf) == 0 || !cfg.Enabled() {
		return buf
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	in := make([]float64, len(buf))
	for i, s := range buf {
		in[i] = float64(s)
	}
	out := make([]float64, len(in))
	copy(out, in)

	if cfg.NoiseDB > 0 {
		signal := max(floats.Dot(in, in)/float64(len(in)), minSignalPower)
		noise := signal / math.Pow(10, cfg.NoiseDB/10)
		dist := distuv.Normal{Mu: 0, Sigma: math.Sqrt(noise), Src: rng}
		for i := range out {
			out[i] += dist.Rand()
		}
	}

	if cfg.QRMFreqHz > 0 {
		amp := qrmLevel * peakAbs(in)
		step := 2 * math.Pi * cfg.QRMFreqHz / SampleRate
		for i := range out {
			out[i] += amp * math.Sin(step*float64(i))
		}
	}

	if peak := peakAbs(out); peak > 1 {
		floats.Scale(1/peak, out)
	}

	mixed := make(Buffer, len(out))
	for i, v := range out {
		mixed[i] = float32(max(-1, min(1, v)))
	}
	return mixed
}

func peakAbs(x []float64) float64 {
	return math.Max(floats.Max(x), -floats.Min(x))
}
