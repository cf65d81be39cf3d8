// Package glyph maps text onto the runes a bitmap face can draw.
package glyph

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Replacement is drawn for a rune with no drawable base form.
const Replacement = '?'

// Fold returns s with every rune the face lacks replaced by its base
// letter, so "Algodón" becomes "Algodon" on an ASCII face. Combining marks
// are dropped. Runes with no drawable base become Replacement.
func Fold(s string, has func(rune) bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if has(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(base(r, has))
	}
	return b.String()
}

func base(r rune, has func(rune) bool) rune {
	if alt, ok := substitutes[r]; ok && has(alt) {
		return alt
	}
	for _, d := range norm.NFD.String(string(r)) {
		if unicode.Is(unicode.Mn, d) {
			continue
		}
		if has(d) {
			return d
		}
		break
	}
	return Replacement
}

// substitutes covers punctuation that does not decompose.
var substitutes = map[rune]rune{
	'¡': '!',
	'¿': '?',
	'·': '-',
	'–': '-',
	'—': '-',
	'“': '"',
	'”': '"',
	'‘': '\'',
	'’': '\'',
	'«': '"',
	'»': '"',
}

// ASCII reports whether r is printable ASCII.
func ASCII(r rune) bool {
	return r >= 0x20 && r < 0x7f
}
