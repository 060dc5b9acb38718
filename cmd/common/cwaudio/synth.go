package cwaudio

import (
	"math"

	"github.com/samber/lo"
)

// Tone renders a sine of freqHz for durationMs at the given volume.
// A 5 ms linear ramp is applied at both ends to avoid key clicks, unless
// the tone is too short to hold both ramps.
func Tone(durationMs, freqHz, volume float64) Buffer {
	n := samplesFor(durationMs)
	if n == 0 {
		return Buffer{}
	}
	volume = lo.Clamp(volume, 0, 1)

	out := make(Buffer, n)
	step := 2 * math.Pi * freqHz / SampleRate
	for i := range out {
		out[i] = float32(volume * math.Sin(step*float64(i)))
	}

	if 2*fadeSamples < n {
		for i := 0; i < fadeSamples; i++ {
			gain := float32(i) / float32(fadeSamples-1)
			out[i] *= gain
			out[n-1-i] *= gain
		}
	}
	return out
}

// Silence renders durationMs of zero samples.
func Silence(durationMs float64) Buffer {
	return make(Buffer, samplesFor(durationMs))
}

func concat(segments []Buffer) Buffer {
	total := lo.SumBy(segments, func(s Buffer) int { return len(s) })
	out := make(Buffer, 0, total)
	for _, s := range segments {
		out = append(out, s...)
	}
	return out
}
