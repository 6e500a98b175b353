// Package coords reconciles error-prone latitude/longitude text into decimal
// degree coordinates, correcting missing decimal points and swapped axes.
package coords

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	fullNumber     = regexp.MustCompile(`^[-+]?\d*\.?\d+$`)
	embeddedNumber = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)
)

// IsBlank reports whether a raw cell carries no value at all: empty or only
// whitespace (including non-breaking spaces).
func IsBlank(raw string) bool {
	return strings.TrimFunc(raw, unicode.IsSpace) == ""
}

// ParseDecimal extracts a decimal number from one raw cell. All whitespace is
// stripped, a comma decimal separator is normalized to a period, and the
// remainder must be a signed decimal number. When stray units or text
// surround the number, the first embedded decimal substring is used instead.
// The boolean is false when the cell holds no recognizable number; that is a
// soft outcome, never an error.
func ParseDecimal(raw string) (float64, bool) {
	if IsBlank(raw) {
		return 0, false
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		if r == ',' {
			r = '.'
		}
		b.WriteRune(r)
	}
	s := b.String()

	if !fullNumber.MatchString(s) {
		s = embeddedNumber.FindString(s)
		if s == "" {
			return 0, false
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
