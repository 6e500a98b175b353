// Package column resolves loosely-spelled source column names to known
// semantic labels using normalized exact matching and bounded edit distance.
package column

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes a label for comparison: accents are decomposed and
// dropped, everything that is not an ASCII letter or digit is removed, and
// the rest is lowercased. "Operação Noturna" and "operacao_noturna" collapse
// to the same form.
func Normalize(label string) string {
	s, _, err := transform.String(stripAccents, label)
	if err != nil {
		s = label
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}
