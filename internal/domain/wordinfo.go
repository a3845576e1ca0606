package domain

// WordInfo describes one distinct (base form, part of speech) unit found while
// analyzing a passage. Produced by the simplifier and never persisted; the
// record lives for a single request.
type WordInfo struct {
	Headword     string       `json:"hw"`
	PartOfSpeech PartOfSpeech `json:"pos"`

	// SurfaceForms are the distinct inflected forms seen in the passage.
	SurfaceForms []string `json:"alts,omitempty"`

	Occurrences int     `json:"count"`
	Frequency   float64 `json:"freq"`

	// Replacement is the accepted easier synonym, empty when none was chosen.
	Replacement string `json:"replacement,omitempty"`

	// Known is set when the word-knowledge model reports the user already
	// knows the word (estimate >= 2).
	Known bool `json:"known,omitempty"`

	// ErrorReason explains why no replacement was made, e.g. "no easier
	// synonyms" or "not found in synonym source".
	ErrorReason string `json:"error,omitempty"`
}
