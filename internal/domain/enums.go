package domain

// PartOfSpeech is the coarse grammatical class assigned by the tagger.
// Only the four open classes are eligible for replacement by the simplifier;
// proper nouns are never touched.
type PartOfSpeech string

const (
	PartOfSpeechNoun       PartOfSpeech = "NOUN"
	PartOfSpeechVerb       PartOfSpeech = "VERB"
	PartOfSpeechAdjective  PartOfSpeech = "ADJECTIVE"
	PartOfSpeechAdverb     PartOfSpeech = "ADVERB"
	PartOfSpeechProperNoun PartOfSpeech = "PROPER_NOUN"
	PartOfSpeechOther      PartOfSpeech = "OTHER"
)

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective,
		PartOfSpeechAdverb, PartOfSpeechProperNoun, PartOfSpeechOther:
		return true
	}
	return false
}

// Replaceable reports whether the simplifier may substitute words of this class.
func (p PartOfSpeech) Replaceable() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective, PartOfSpeechAdverb:
		return true
	}
	return false
}

// KnowledgeEvent identifies an append-only mutation of a WordKnowledge row.
// The persistence layer translates each event into an atomic column update so
// concurrent writers never lose increments.
type KnowledgeEvent string

const (
	KnowledgeEventFreeLookup     KnowledgeEvent = "FREE_LOOKUP"
	KnowledgeEventCuedLookup     KnowledgeEvent = "CUED_LOOKUP"
	KnowledgeEventCue            KnowledgeEvent = "CUE"
	KnowledgeEventWordBankRemove KnowledgeEvent = "WORDBANK_REMOVE"
)

func (e KnowledgeEvent) String() string { return string(e) }

func (e KnowledgeEvent) IsValid() bool {
	switch e {
	case KnowledgeEventFreeLookup, KnowledgeEventCuedLookup,
		KnowledgeEventCue, KnowledgeEventWordBankRemove:
		return true
	}
	return false
}

// LookupKind distinguishes self-initiated lookups from lookups on a cued word.
type LookupKind string

const (
	LookupKindFree LookupKind = "FREE"
	LookupKindCued LookupKind = "CUED"
)

func (k LookupKind) String() string { return string(k) }

func (k LookupKind) IsValid() bool {
	return k == LookupKindFree || k == LookupKindCued
}
