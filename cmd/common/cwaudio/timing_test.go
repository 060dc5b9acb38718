package cwaudio

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewDurations_Ratios(t *testing.T) {
	for wpm := 1; wpm <= 60; wpm++ {
		d, err := NewDurations(wpm, 0)
		if err != nil {
			t.Fatalf("NewDurations(%d, 0) returned error: %v", wpm, err)
		}
		if !almostEqual(d.Dah, 3*d.Dit) {
			t.Errorf("wpm %d: dah = %v, want %v", wpm, d.Dah, 3*d.Dit)
		}
		if !almostEqual(d.InterLetter, 3*d.Dit) {
			t.Errorf("wpm %d: letter gap = %v, want %v", wpm, d.InterLetter, 3*d.Dit)
		}
		if !almostEqual(d.InterWord, 7*d.Dit) {
			t.Errorf("wpm %d: word gap = %v, want %v", wpm, d.InterWord, 7*d.Dit)
		}
		if !almostEqual(d.IntraChar, d.Dit) {
			t.Errorf("wpm %d: intra gap = %v, want %v", wpm, d.IntraChar, d.Dit)
		}
	}
}

func TestNewDurations_Paris(t *testing.T) {
	d, err := NewDurations(15, 0)
	if err != nil {
		t.Fatal(err)
	}
	if d.Dit != 80 {
		t.Errorf("dit at 15 wpm = %v, want 80", d.Dit)
	}
}

func TestNewDurations_Farnsworth(t *testing.T) {
	tests := []struct {
		name       string
		wpm        int
		farnsworth int
		wantDit    float64
		wantLetter float64
		wantWord   float64
	}{
		{"disabled", 10, 0, 120, 360, 840},
		{"below wpm is ignored", 15, 10, 80, 240, 560},
		{"negative is ignored", 15, -3, 80, 240, 560},
		{"equal", 12, 12, 100, 300, 700},
		{"faster characters", 10, 20, 60, 360, 840},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDurations(tt.wpm, tt.farnsworth)
			if err != nil {
				t.Fatal(err)
			}
			if !almostEqual(d.Dit, tt.wantDit) {
				t.Errorf("dit = %v, want %v", d.Dit, tt.wantDit)
			}
			if !almostEqual(d.Dah, 3*tt.wantDit) {
				t.Errorf("dah = %v, want %v", d.Dah, 3*tt.wantDit)
			}
			if !almostEqual(d.InterLetter, tt.wantLetter) {
				t.Errorf("letter gap = %v, want %v", d.InterLetter, tt.wantLetter)
			}
			if !almostEqual(d.InterWord, tt.wantWord) {
				t.Errorf("word gap = %v, want %v", d.InterWord, tt.wantWord)
			}
		})
	}
}

func TestNewDurations_FarnsworthBelowWPMMatchesPlain(t *testing.T) {
	for wpm := 6; wpm <= 40; wpm++ {
		plain, _ := NewDurations(wpm, 0)
		slow, _ := NewDurations(wpm, wpm-5)
		if plain != slow {
			t.Errorf("wpm %d: farnsworth %d gave %+v, want %+v", wpm, wpm-5, slow, plain)
		}
	}
}

func TestNewDurations_InvalidWPM(t *testing.T) {
	for _, wpm := range []int{0, -1, -20} {
		_, err := NewDurations(wpm, 0)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("NewDurations(%d, 0) error = %v, want ErrInvalidConfig", wpm, err)
		}
	}
}
