// Package drill holds the practice material and scoring rules shared by the
// training commands.
package drill

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/gigurra/cwtofu/cmd/common/morsecode"
	"github.com/samber/lo"
)

type Mode string

const (
	ModeLetters       Mode = "letters"
	ModeWords         Mode = "words"
	ModeAbbreviations Mode = "abbreviations"
	ModeCallsigns     Mode = "callsigns"
)

// Modes lists the drill modes in menu order.
var Modes = []Mode{ModeLetters, ModeWords, ModeAbbreviations, ModeCallsigns}

var CommonWords = []string{
	"THE", "AND", "FOR", "ARE", "BUT", "NOT", "YOU", "ALL",
	"CAN", "HER", "WAS", "ONE", "OUR", "OUT", "DAY", "GET",
	"HAS", "HIM", "HOW", "MAN", "NEW", "NOW", "OLD", "SEE",
	"TWO", "WAY", "WHO", "BOY", "DID", "ITS", "LET", "PUT",
	"SAY", "TOO", "USE",
}

var CWWords = []string{
	"CQ", "DE", "RST", "QTH", "QRZ", "QSO", "QRM", "QRN",
	"73", "88", "K", "AR", "SK", "BK", "TNX", "UR", "ES",
	"AGN", "PSE", "RPT", "HR", "HW", "FB", "NR", "OM",
}

var (
	callsignPrefixes = []string{"W", "K", "N", "AA", "VK", "G", "F", "DL", "JA", "HS", "TA"}
	callsignLetters  = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	callsignDigits   = []rune("0123456789")
)

// ParseMode accepts a mode name or a unique prefix of one.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	matches := lo.Filter(Modes, func(m Mode, _ int) bool {
		return strings.HasPrefix(string(m), s)
	})
	if s == "" || len(matches) != 1 {
		return "", fmt.Errorf("unknown drill mode %q (want one of %v)", s, Modes)
	}
	return matches[0], nil
}

// Pick returns a random practice item for mode.
func Pick(mode Mode, rng *rand.Rand) string {
	switch mode {
	case ModeLetters:
		letters := morsecode.Letters()
		return string(letters[rng.IntN(len(letters))])
	case ModeAbbreviations:
		return CWWords[rng.IntN(len(CWWords))]
	case ModeCallsigns:
		return Callsign(rng)
	default:
		return CommonWords[rng.IntN(len(CommonWords))]
	}
}

// Callsign generates a plausible amateur callsign: prefix, digit, and a
// two or three letter suffix.
func Callsign(rng *rand.Rand) string {
	var b strings.Builder
	b.WriteString(callsignPrefixes[rng.IntN(len(callsignPrefixes))])
	b.WriteRune(callsignDigits[rng.IntN(len(callsignDigits))])
	for range 2 + rng.IntN(2) {
		b.WriteRune(callsignLetters[rng.IntN(len(callsignLetters))])
	}
	return b.String()
}

// CharCount counts characters for WPM purposes, ignoring spaces.
func CharCount(text string) int {
	return len(strings.ReplaceAll(text, " ", ""))
}

// WPM converts characters sent over elapsed into words per minute using the
// five-characters-per-word convention, rounded to one decimal.
func WPM(chars int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	words := float64(chars) / 5
	return math.Round(words/elapsed.Minutes()*10) / 10
}

// FarnsworthFor is the overall speed the copy trainer spaces characters at
// when Farnsworth timing is switched on. Characters keep wpm.
func FarnsworthFor(wpm int) int {
	return max(5, wpm-5)
}

// CheckText compares a typed answer against the expected text, ignoring
// case and surrounding whitespace.
func CheckText(answer, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(expected))
}

// CheckMorse compares keyed Morse against the expected symbol string.
// Runs of spaces are collapsed so only letter and word breaks matter.
func CheckMorse(keyed, expected string) bool {
	return normalizeMorse(keyed) == normalizeMorse(expected)
}

func normalizeMorse(s string) string {
	words := lo.FilterMap(strings.Split(s, "/"), func(w string, _ int) (string, bool) {
		f := strings.Fields(w)
		return strings.Join(f, " "), len(f) > 0
	})
	return strings.Join(words, morsecode.WordSeparator)
}

// Score tracks correct answers over attempts.
type Score struct {
	Correct int
	Total   int
}

func (s *Score) Record(correct bool) {
	s.Total++
	if correct {
		s.Correct++
	}
}

// Percent returns the rounded success rate, 0 when nothing was attempted.
func (s Score) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Correct) / float64(s.Total) * 100))
}

func (s Score) String() string {
	if s.Total == 0 {
		return "Score: -"
	}
	return fmt.Sprintf("Score: %d/%d  (%d%%)", s.Correct, s.Total, s.Percent())
}
