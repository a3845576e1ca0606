package domain

import (
	"time"

	"github.com/google/uuid"
)

// Book is a reading-platform title with one or more difficulty versions.
// Version 0 is the simplest text.
type Book struct {
	ID           uuid.UUID
	Title        string
	VersionCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VersionWordLists holds the externally owned word lists of one book version.
// The core only reads these. All members are canonical base forms.
type VersionWordLists struct {
	BookID  uuid.UUID
	Version int

	// AllWords is every base form appearing in the version's text.
	AllWords map[string]struct{}

	// AllWordsInOrder lists the same words in their stored (document) order,
	// needed by the checklist selector's ordered scan.
	AllWordsInOrder []string

	// GlossaryWords is the subset of AllWords with a custom glossary definition.
	GlossaryWords map[string]struct{}

	// NewWords is the subset introduced relative to the next simpler version.
	// Version 0 has none.
	NewWords map[string]struct{}
}

// HasWord reports whether the base form occurs in the version's text.
func (v *VersionWordLists) HasWord(word string) bool {
	_, ok := v.AllWords[word]
	return ok
}

// WordSet builds a membership set from a list of base forms.
func WordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
