package srs

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeAnswer lowercases s and strips combining marks, so "Élève" and
// "eleve" compare equal.
func NormalizeAnswer(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// CheckAnswer compares a typed answer to the expected one.
func CheckAnswer(input, expected string) bool {
	return NormalizeAnswer(strings.TrimSpace(input)) == NormalizeAnswer(expected)
}
