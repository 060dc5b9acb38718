package cwaudio

import "fmt"

// Durations holds element and gap lengths in milliseconds.
type Durations struct {
	Dit         float64
	Dah         float64
	IntraChar   float64
	InterLetter float64
	InterWord   float64
}

// NewDurations computes PARIS timing for wpm. Marks are sent at
// max(farnsworthWPM, wpm) while letter and word gaps always use wpm,
// so a Farnsworth speed below wpm has no effect.
func NewDurations(wpm, farnsworthWPM int) (Durations, error) {
	if wpm <= 0 {
		return Durations{}, fmt.Errorf("%w (got %d)", ErrInvalidConfig, wpm)
	}
	charWPM := max(farnsworthWPM, wpm)
	dit := ditMs(charWPM)
	unit := ditMs(wpm)
	return Durations{
		Dit:         dit,
		Dah:         3 * dit,
		IntraChar:   dit,
		InterLetter: 3 * unit,
		InterWord:   7 * unit,
	}, nil
}

func ditMs(wpm int) float64 {
	return 1200.0 / float64(wpm)
}
