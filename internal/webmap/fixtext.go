package webmap

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// FixText repairs double-encoded cell values. Text that went through a
// latin1 read of UTF-8 bytes shows "Ã"/"Â" artifacts; re-encoding to latin1
// and re-reading as UTF-8 recovers the original. Replacement characters left
// over from lossy decodes are dropped.
func FixText(s string) string {
	if strings.ContainsAny(s, "ÃÂ") {
		if enc, err := charmap.ISO8859_1.NewEncoder().String(s); err == nil && utf8.ValidString(enc) {
			s = enc
		}
	}
	if strings.ContainsRune(s, utf8.RuneError) {
		s = strings.ReplaceAll(s, string(utf8.RuneError), "")
	}
	return strings.TrimSpace(s)
}

// HasVFRIFR reports whether a night-operations cell advertises instrument
// flight ("VFR/IFR"), ignoring case and internal whitespace.
func HasVFRIFR(s string) bool {
	t := strings.ToLower(FixText(s))
	t = strings.Join(strings.Fields(t), "")
	return strings.Contains(t, "vfr/ifr")
}

// HasToken reports whether the fixed cell contains token, case-insensitive.
func HasToken(s, token string) bool {
	if token == "" {
		return false
	}
	return strings.Contains(strings.ToLower(FixText(s)), strings.ToLower(token))
}
