package internal

import (
	"strings"
	"unicode"
)

// Version is the application version reported by --version
const Version = "0.3.0"

// NormalizeWord trims a candidate word and collapses inner whitespace runs
// to a single space. It returns an empty string for blank input.
func NormalizeWord(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// IsWordLike reports whether s consists only of letters, spaces, hyphens
// and apostrophes, which is what the dictionary endpoint accepts as a path
// segment.
func IsWordLike(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if unicode.IsLetter(r) || r == ' ' || r == '-' || r == '\'' {
			continue
		}
		return false
	}
	return true
}
