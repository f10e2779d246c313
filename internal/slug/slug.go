// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases name, strips diacritics and collapses every run of
// characters outside [a-z0-9] into a single hyphen. Make(Make(x)) == Make(x).
// The result may be empty.
func Make(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, name)
	if err != nil {
		stripped = name
	}
	s := nonAlnum.ReplaceAllString(strings.ToLower(stripped), "-")
	return strings.Trim(s, "-")
}
