package domain

import (
	"strings"
	"unicode"
)

// NormalizeWord prepares a surface word form for lookup and storage:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - strips surrounding punctuation (quotes, brackets, trailing periods)
//
// Internal hyphens and apostrophes are preserved ("don't", "well-known").
func NormalizeWord(word string) string {
	word = strings.TrimSpace(word)
	if word == "" {
		return ""
	}
	word = strings.ToLower(word)
	return strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// ValidWord reports whether a normalized word is usable as a word-knowledge
// key: non-empty, letters plus internal hyphen/apostrophe, no whitespace.
func ValidWord(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
		case r == '-' || r == '\'':
		default:
			return false
		}
	}
	return true
}
