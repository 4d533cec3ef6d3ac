package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Mode selects how aggressively Normalize canonicalizes its input.
type Mode int

const (
	// Loose strips diacritics, lowercases and trims. Spaces and
	// punctuation are kept; used for facet equality.
	Loose Mode = iota
	// Strict additionally drops every rune that is not an ASCII letter
	// or digit, so "Omega-mon X" and "omegamonx" compare equal; used
	// for name search.
	Strict
)

// stripMarks decomposes to NFD and removes combining marks, turning
// "águmon" into "agumon".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes s for comparison. Pure and total: it never
// fails, and an untransformable input falls back to the raw string.
func Normalize(s string, mode Mode) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	out = strings.ToLower(out)

	if mode == Strict {
		var b strings.Builder
		b.Grow(len(out))
		for _, r := range out {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
				b.WriteRune(r)
			}
		}
		return b.String()
	}
	return strings.TrimSpace(out)
}
