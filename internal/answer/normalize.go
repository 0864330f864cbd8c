// Package answer canonicalises free-text guesses so that two answers compare
// equal regardless of case, spacing and punctuation.
package answer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Normalize reduces s to its comparison key: trimmed, case-folded, with an
// ampersand read as "and", and every rune that is not a Unicode letter or
// digit removed. The result is only used for equality and is never stored.
//
// The ampersand rule is deliberate: "fast&furious" matches "Fast and
// Furious", at the cost of "Tom & Jerry" no longer matching "Tom Jerry".
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// Caser values are stateful, so each call gets its own.
	folded := cases.Fold().String(s)

	var sb strings.Builder
	sb.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r == '&':
			sb.WriteString("and")
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Match reports whether guess and want normalize to the same key.
func Match(guess, want string) bool {
	return Normalize(guess) == Normalize(want)
}
