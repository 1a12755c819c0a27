// Package normalize produces the case-uniform matching form of a raw input
// string. The upstream extractor normally supplies this; Normalize is the
// fallback for records that arrive without one.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, strips diacritics, and collapses whitespace.
func Normalize(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	out = strings.Join(strings.Fields(out), " ")
	return strings.ToLower(out)
}
