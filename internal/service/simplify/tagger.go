package simplify

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/readwell/readwell-backend/internal/domain"
)

// closedClass covers function words that carry grammar rather than meaning:
// articles, pronouns, prepositions, conjunctions, auxiliaries, and the common
// quantifiers. They are tagged OTHER and never considered for replacement.
var closedClass = map[string]struct{}{
	// articles, demonstratives
	"a": {}, "an": {}, "the": {}, "this": {}, "that": {}, "these": {}, "those": {},
	// pronouns
	"i": {}, "me": {}, "my": {}, "mine": {}, "myself": {},
	"you": {}, "your": {}, "yours": {}, "yourself": {},
	"he": {}, "him": {}, "his": {}, "himself": {},
	"she": {}, "her": {}, "hers": {}, "herself": {},
	"it": {}, "its": {}, "itself": {},
	"we": {}, "us": {}, "our": {}, "ours": {}, "ourselves": {},
	"they": {}, "them": {}, "their": {}, "theirs": {}, "themselves": {},
	"who": {}, "whom": {}, "whose": {}, "which": {}, "what": {},
	"someone": {}, "something": {}, "anyone": {}, "anything": {},
	"everyone": {}, "everything": {}, "nobody": {}, "nothing": {},
	// prepositions
	"of": {}, "in": {}, "on": {}, "at": {}, "by": {}, "to": {}, "from": {},
	"with": {}, "without": {}, "into": {}, "onto": {}, "upon": {}, "about": {},
	"above": {}, "below": {}, "under": {}, "over": {}, "between": {}, "among": {},
	"through": {}, "during": {}, "before": {}, "after": {}, "against": {},
	"around": {}, "near": {}, "off": {}, "out": {}, "up": {}, "down": {},
	// conjunctions
	"and": {}, "or": {}, "but": {}, "nor": {}, "so": {}, "yet": {},
	"if": {}, "because": {}, "although": {}, "though": {}, "while": {},
	"when": {}, "where": {}, "why": {}, "how": {}, "than": {}, "as": {},
	"whether": {}, "unless": {}, "until": {}, "since": {},
	// auxiliaries and copulas
	"be": {}, "am": {}, "is": {}, "are": {}, "was": {}, "were": {}, "been": {},
	"being": {}, "do": {}, "does": {}, "did": {}, "have": {}, "has": {}, "had": {},
	"will": {}, "would": {}, "shall": {}, "should": {}, "can": {}, "could": {},
	"may": {}, "might": {}, "must": {}, "ought": {},
	// quantifiers, particles, negation
	"all": {}, "any": {}, "both": {}, "each": {}, "every": {}, "few": {},
	"many": {}, "much": {}, "more": {}, "most": {}, "some": {}, "such": {},
	"no": {}, "not": {}, "only": {}, "own": {}, "same": {}, "other": {},
	"another": {}, "either": {}, "neither": {}, "there": {}, "here": {},
	"then": {}, "too": {}, "very": {}, "also": {}, "just": {},
}

// tagToken assigns a coarse part of speech to one token.
//
// Capitalization mid-sentence marks a proper noun regardless of any common
// reading of the word ("Frank" stays a name even though "frank" is an
// adjective). Sentence-initial capitals are discounted: the word is tagged
// from the lexicon, and only falls back to PROPER_NOUN when the lexicon has
// never seen it in any class.
func (s *Service) tagToken(tok token) domain.PartOfSpeech {
	if !hasLetter(tok.text) {
		return domain.PartOfSpeechOther
	}

	lower := strings.ToLower(tok.text)
	capitalized := isCapitalized(tok.text)

	if capitalized && !tok.sentenceStart {
		return domain.PartOfSpeechProperNoun
	}

	if _, ok := closedClass[lower]; ok {
		return domain.PartOfSpeechOther
	}

	classes := s.lex.KnownPartsOfSpeech(lower)
	if len(classes) == 0 {
		if capitalized {
			return domain.PartOfSpeechProperNoun
		}
		return guessBySuffix(lower)
	}
	return pickClass(lower, classes)
}

// pickClass disambiguates a word the lexicon knows in several classes using
// its surface suffix, falling back to a fixed noun-first preference.
func pickClass(lower string, classes []domain.PartOfSpeech) domain.PartOfSpeech {
	has := func(p domain.PartOfSpeech) bool {
		for _, c := range classes {
			if c == p {
				return true
			}
		}
		return false
	}

	switch {
	case strings.HasSuffix(lower, "ly") && has(domain.PartOfSpeechAdverb):
		return domain.PartOfSpeechAdverb
	case (strings.HasSuffix(lower, "ing") || strings.HasSuffix(lower, "ed")) && has(domain.PartOfSpeechVerb):
		return domain.PartOfSpeechVerb
	case strings.HasSuffix(lower, "est") && has(domain.PartOfSpeechAdjective):
		return domain.PartOfSpeechAdjective
	case strings.HasSuffix(lower, "s") && has(domain.PartOfSpeechNoun):
		return domain.PartOfSpeechNoun
	}

	for _, p := range []domain.PartOfSpeech{
		domain.PartOfSpeechNoun,
		domain.PartOfSpeechVerb,
		domain.PartOfSpeechAdjective,
		domain.PartOfSpeechAdverb,
	} {
		if has(p) {
			return p
		}
	}
	return domain.PartOfSpeechOther
}

// guessBySuffix tags a word the lexicon has never seen. Derivational suffixes
// are a decent signal; everything else defaults to noun, the open class most
// new words belong to.
func guessBySuffix(lower string) domain.PartOfSpeech {
	switch {
	case strings.HasSuffix(lower, "ly"):
		return domain.PartOfSpeechAdverb
	case strings.HasSuffix(lower, "ing"), strings.HasSuffix(lower, "ed"),
		strings.HasSuffix(lower, "ize"), strings.HasSuffix(lower, "ise"):
		return domain.PartOfSpeechVerb
	case strings.HasSuffix(lower, "ful"), strings.HasSuffix(lower, "ous"),
		strings.HasSuffix(lower, "ive"), strings.HasSuffix(lower, "able"),
		strings.HasSuffix(lower, "ible"), strings.HasSuffix(lower, "ish"):
		return domain.PartOfSpeechAdjective
	default:
		return domain.PartOfSpeechNoun
	}
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func isCapitalized(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
