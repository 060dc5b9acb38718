package cwaudio

import (
	"math/rand/v2"
	"strings"
)

const wordSeparator = " / "

// Params controls phrase synthesis. NoiseDB and QRMFreqHz, when set,
// override the engine's shared noise settings for this build only.
type Params struct {
	WPM           int
	FarnsworthWPM int
	FreqHz        float64
	Volume        float64
	NoiseDB       *float64
	QRMFreqHz     *float64
}

func (p Params) resolveNoise(shared NoiseConfig) NoiseConfig {
	cfg := shared
	if p.NoiseDB != nil {
		cfg.NoiseDB = *p.NoiseDB
	}
	if p.QRMFreqHz != nil {
		cfg.QRMFreqHz = *p.QRMFreqHz
	}
	return cfg
}

// BuildPhrase renders a Morse symbol string ("." and "-", letters separated
// by one space, words by " / ") into a single buffer. Other characters are
// skipped, and letters or words left without marks produce no gaps. The
// noise mixer runs once over the finished buffer.
func BuildPhrase(morse string, p Params, shared NoiseConfig, rng *rand.Rand) (Buffer, error) {
	d, err := NewDurations(p.WPM, p.FarnsworthWPM)
	if err != nil {
		return nil, err
	}

	dit := Tone(d.Dit, p.FreqHz, p.Volume)
	dah := Tone(d.Dah, p.FreqHz, p.Volume)
	intraGap := Silence(d.IntraChar)
	letterGap := Silence(d.InterLetter)
	wordGap := Silence(d.InterWord)

	var segments []Buffer
	for _, letters := range parseMorse(morse) {
		if len(segments) > 0 {
			segments = append(segments, wordGap)
		}
		for li, letter := range letters {
			if li > 0 {
				segments = append(segments, letterGap)
			}
			for mi, mark := range letter {
				if mi > 0 {
					segments = append(segments, intraGap)
				}
				if mark == '.' {
					segments = append(segments, dit)
				} else {
					segments = append(segments, dah)
				}
			}
		}
	}

	if len(segments) == 0 {
		return Buffer{}, nil
	}

	return ApplyNoise(concat(segments), p.resolveNoise(shared), rng), nil
}

// parseMorse splits a symbol string into words of letters, keeping only
// dots and dashes and dropping anything that ends up empty.
func parseMorse(morse string) [][]string {
	var words [][]string
	for _, word := range strings.Split(strings.TrimSpace(morse), wordSeparator) {
		var letters []string
		for _, letter := range strings.Split(strings.TrimSpace(word), " ") {
			marks := strings.Map(func(r rune) rune {
				if r == '.' || r == '-' {
					return r
				}
				return -1
			}, letter)
			if marks != "" {
				letters = append(letters, marks)
			}
		}
		if len(letters) > 0 {
			words = append(words, letters)
		}
	}
	return words
}
