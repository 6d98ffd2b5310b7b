// Package normalize canonicalizes user-supplied text before it is stored or
// compared, so that exact-match filtering behaves predictably.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Name returns s in Unicode NFC with surrounding whitespace removed and inner
// whitespace runs collapsed to a single space. Case is preserved; taxonomy
// names and filter values compare case-sensitively.
func Name(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}

// Text trims free text such as titles and descriptions and converts it to NFC.
func Text(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
