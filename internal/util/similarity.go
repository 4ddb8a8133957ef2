package util

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// SequenceRatio returns the Ratcliff/Obershelp similarity of two strings
// as a value in [0, 1]. It compares rune-by-rune, so punctuation and
// spacing count; callers normalize case themselves if they want a
// case-insensitive comparison.
func SequenceRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	matcher := difflib.NewMatcher(splitRunes(a), splitRunes(b))
	return matcher.Ratio()
}

// splitRunes splits a string into one-rune tokens for the matcher
func splitRunes(s string) []string {
	return strings.Split(s, "")
}
