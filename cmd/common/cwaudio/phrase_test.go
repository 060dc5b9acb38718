package cwaudio

import (
	"errors"
	"reflect"
	"testing"

	"github.com/samber/lo"
)

func defaultParams() Params {
	return Params{WPM: 15, FreqHz: 700, Volume: 0.4}
}

func TestBuildPhrase_Empty(t *testing.T) {
	for _, in := range []string{"", "   ", " / ", "abc", "x y / z"} {
		buf, err := BuildPhrase(in, defaultParams(), NoiseConfig{}, testRand())
		if err != nil {
			t.Fatalf("BuildPhrase(%q) returned error: %v", in, err)
		}
		if len(buf) != 0 {
			t.Errorf("len(BuildPhrase(%q)) = %d, want 0", in, len(buf))
		}
	}
}

func TestBuildPhrase_SingleDit(t *testing.T) {
	buf, err := BuildPhrase(".", defaultParams(), NoiseConfig{}, testRand())
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != 3528 {
		t.Errorf("len = %d, want 3528", len(buf))
	}
}

func TestBuildPhrase_Lengths(t *testing.T) {
	d, _ := NewDurations(15, 0)
	n := func(ms float64) int { return samplesFor(ms) }

	tests := []struct {
		morse string
		want  int
	}{
		{"-", n(d.Dah)},
		{"..", 2*n(d.Dit) + n(d.IntraChar)},
		{". .", 2*n(d.Dit) + n(d.InterLetter)},
		{". / .", 2*n(d.Dit) + n(d.InterWord)},
		{"- / ...", n(d.Dah) + n(d.InterWord) + 3*n(d.Dit) + 2*n(d.IntraChar)},
		{".-", n(d.Dit) + n(d.IntraChar) + n(d.Dah)},
		// unknown characters and doubled spaces leave no trace
		{".x-", n(d.Dit) + n(d.IntraChar) + n(d.Dah)},
		{".  .", 2*n(d.Dit) + n(d.InterLetter)},
		{" . ", n(d.Dit)},
	}

	for _, tt := range tests {
		buf, err := BuildPhrase(tt.morse, defaultParams(), NoiseConfig{}, testRand())
		if err != nil {
			t.Fatalf("BuildPhrase(%q) returned error: %v", tt.morse, err)
		}
		if len(buf) != tt.want {
			t.Errorf("len(BuildPhrase(%q)) = %d, want %d", tt.morse, len(buf), tt.want)
		}
	}
}

func TestBuildPhrase_DurationMatchesTiming(t *testing.T) {
	d, _ := NewDurations(20, 0)
	p := Params{WPM: 20, FreqHz: 600, Volume: 0.5}
	buf, err := BuildPhrase("- / ...", p, NoiseConfig{}, testRand())
	if err != nil {
		t.Fatal(err)
	}

	wantMs := d.Dah + d.InterWord + 3*d.Dit + 2*d.IntraChar
	gotMs := float64(len(buf)) / SampleRate * 1000
	// one sample of rounding per segment
	tolerance := 7 * 1000.0 / SampleRate
	if diff := gotMs - wantMs; diff > tolerance || diff < -tolerance {
		t.Errorf("duration = %.3f ms, want %.3f ms", gotMs, wantMs)
	}
}

func TestBuildPhrase_SegmentLayout(t *testing.T) {
	buf, err := BuildPhrase(". -", defaultParams(), NoiseConfig{}, testRand())
	if err != nil {
		t.Fatal(err)
	}
	d, _ := NewDurations(15, 0)
	dit := samplesFor(d.Dit)
	gap := buf[dit : dit+samplesFor(d.InterLetter)]
	if gap.Peak() != 0 {
		t.Errorf("letter gap peak = %v, want 0", gap.Peak())
	}
	if buf[:dit].Peak() == 0 {
		t.Error("dit segment is silent")
	}
}

func TestBuildPhrase_Farnsworth(t *testing.T) {
	fast := Params{WPM: 10, FarnsworthWPM: 20, FreqHz: 700, Volume: 0.4}
	buf, err := BuildPhrase(". .", fast, NoiseConfig{}, testRand())
	if err != nil {
		t.Fatal(err)
	}
	want := 2*samplesFor(60) + samplesFor(360)
	if len(buf) != want {
		t.Errorf("len = %d, want %d", len(buf), want)
	}
}

func TestBuildPhrase_InvalidWPM(t *testing.T) {
	_, err := BuildPhrase(".", Params{WPM: 0, FreqHz: 700, Volume: 0.4}, NoiseConfig{}, testRand())
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestBuildPhrase_NoiseOverrides(t *testing.T) {
	clean, _ := BuildPhrase("...", defaultParams(), NoiseConfig{}, testRand())

	// shared settings apply when nothing is overridden
	noisy, _ := BuildPhrase("...", defaultParams(), NoiseConfig{NoiseDB: 5}, testRand())
	if reflect.DeepEqual(clean, noisy) {
		t.Error("shared noise settings were not applied")
	}

	// explicit zero overrides switch the shared settings off
	p := defaultParams()
	p.NoiseDB = lo.ToPtr(0.0)
	p.QRMFreqHz = lo.ToPtr(0.0)
	quiet, _ := BuildPhrase("...", p, NoiseConfig{NoiseDB: 5, QRMFreqHz: 600}, testRand())
	if !reflect.DeepEqual(clean, quiet) {
		t.Error("zero overrides should disable shared noise")
	}

	// an override enables noise even when shared settings are off
	p.NoiseDB = lo.ToPtr(10.0)
	overridden, _ := BuildPhrase("...", p, NoiseConfig{}, testRand())
	if reflect.DeepEqual(clean, overridden) {
		t.Error("noise override was not applied")
	}
}

func TestParseMorse(t *testing.T) {
	tests := []struct {
		in   string
		want [][]string
	}{
		{"", nil},
		{".- -...", [][]string{{".-", "-..."}}},
		{"... --- ... / -.-", [][]string{{"...", "---", "..."}, {"-.-"}}},
		{"?? / .", [][]string{{"."}}},
	}

	for _, tt := range tests {
		got := parseMorse(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseMorse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
