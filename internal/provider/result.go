// Package provider defines the structured results returned by external
// dictionary providers.
package provider

// DictionaryResult is the structured result of one external dictionary lookup.
type DictionaryResult struct {
	Word           string
	Senses         []SenseResult
	Pronunciations []PronunciationResult
}

// SenseResult is a single definition from an external dictionary.
type SenseResult struct {
	Definition   string
	PartOfSpeech string // empty when the source gives none
	Example      string // empty when the source gives none
}

// PronunciationResult is pronunciation data from an external dictionary.
type PronunciationResult struct {
	Transcription string
	AudioURL      string
	Region        string // "US", "UK" or empty
}

// FirstDefinition returns the leading definition text, or "" when the result
// carries no senses.
func (r *DictionaryResult) FirstDefinition() string {
	if r == nil || len(r.Senses) == 0 {
		return ""
	}
	return r.Senses[0].Definition
}
