package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases s and strips diacritics so that "cuánto" and
// "cuanto" compare equal.
func Normalize(s string) string {
	s = strings.ToLower(s)

	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		return s
	}

	return out
}
