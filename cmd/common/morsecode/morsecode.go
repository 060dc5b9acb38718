// Package morsecode maps text to Morse symbol strings and back.
//
// Letters inside a word are separated by a single space and words by " / ",
// which is the format the audio engine plays.
package morsecode

import (
	"sort"
	"strings"
	"unicode"
)

// WordSeparator separates words in a Morse symbol string.
const WordSeparator = " / "

var toMorse = map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".",
	'F': "..-.", 'G': "--.", 'H': "....", 'I': "..", 'J': ".---",
	'K': "-.-", 'L': ".-..", 'M': "--", 'N': "-.", 'O': "---",
	'P': ".--.", 'Q': "--.-", 'R': ".-.", 'S': "...", 'T': "-",
	'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-", 'Y': "-.--",
	'Z': "--..",
	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
	'.': ".-.-.-", ',': "--..--", '?': "..--..", '\'': ".----.",
	'!': "-.-.--", '/': "-..-.", '(': "-.--.", ')': "-.--.-",
	'&': ".-...", ':': "---...", ';': "-.-.-.", '=': "-...-",
	'+': ".-.-.", '-': "-....-", '_': "..--.-", '"': ".-..-.",
	'$': "...-..-", '@': ".--.-.",
}

var fromMorse map[string]rune

func init() {
	fromMorse = make(map[string]rune, len(toMorse))
	for k, v := range toMorse {
		fromMorse[v] = k
	}
}

// Turkish letters without a Morse code of their own.
var turkishReplacements = map[rune]string{
	'ç': "ch", 'Ç': "CH",
	'ş': "sh", 'Ş': "SH",
	'ğ': "g", 'Ğ': "G",
	'ü': "u", 'Ü': "U",
	'ö': "o", 'Ö': "O",
	'ı': "i", 'İ': "I",
}

// Normalize replaces Turkish letters with their closest ASCII spelling.
func Normalize(text string) string {
	var b strings.Builder
	for _, r := range text {
		if rep, ok := turkishReplacements[r]; ok {
			b.WriteString(rep)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Lookup returns the code for r, ignoring case.
func Lookup(r rune) (string, bool) {
	code, ok := toMorse[unicode.ToUpper(r)]
	return code, ok
}

// Letters returns A-Z in order.
func Letters() []rune {
	var out []rune
	for r := range toMorse {
		if r >= 'A' && r <= 'Z' {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Encode converts text to a Morse symbol string. Characters without a code
// are dropped, and runs of whitespace count as one word break.
func Encode(text string) string {
	var words []string
	for _, word := range strings.Fields(strings.ToUpper(Normalize(text))) {
		var codes []string
		for _, r := range word {
			if code, ok := toMorse[r]; ok {
				codes = append(codes, code)
			}
		}
		if len(codes) > 0 {
			words = append(words, strings.Join(codes, " "))
		}
	}
	return strings.Join(words, WordSeparator)
}

// Decode converts a Morse symbol string back to upper-case text. Unknown
// codes are dropped.
func Decode(morse string) string {
	var result strings.Builder
	words := strings.Split(morse, WordSeparator)
	for i, word := range words {
		if i > 0 {
			result.WriteRune(' ')
		}
		for _, code := range strings.Fields(word) {
			if r, ok := fromMorse[code]; ok {
				result.WriteRune(r)
			}
		}
	}
	return strings.TrimSpace(result.String())
}
