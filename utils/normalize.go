package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeText canonicalizes free text for neighborhood comparison:
// accents removed, uppercased, surrounding and repeated whitespace
// dropped. "São José " -> "SAO JOSE".
func NormalizeText(s string) string {
	if s == "" {
		return ""
	}
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToUpper(out)), " ")
}
