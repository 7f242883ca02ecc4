// Package normalize canonicalizes the two fields reconciliation matches on:
// person names and calendar dates. Both sources (the reference CSV export
// and self-reported records) run through the same functions so that
// inconsistent operator input compares equal.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Name canonicalizes a free-text person name. NFKC folding first, so
// full-width digits and Latin letters collapse to their ASCII forms, then
// every whitespace rune is removed (including U+3000), then a trailing run
// of ASCII digits is stripped — operators sometimes append employee numbers
// ("田中01"). Total and idempotent; empty input yields "".
func Name(raw string) string {
	if raw == "" {
		return ""
	}
	folded := norm.NFKC.String(raw)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	s := b.String()

	end := len(s)
	for end > 0 && s[end-1] >= '0' && s[end-1] <= '9' {
		end--
	}
	return s[:end]
}
