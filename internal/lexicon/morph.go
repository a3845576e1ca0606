package lexicon

import "strings"

// Regular English inflection rules. Irregular forms are handled by the
// exception tables in data/irregular.tsv; these rules cover everything else.

// suffixRule rewrites one suffix into another when de-inflecting a surface
// form into a lemma candidate.
type suffixRule struct {
	from string
	to   string
}

// Detachment rules per part of speech, after WordNet's morphy substitutions.
// Order matters: longer, more specific suffixes come first.
var deinflectionRules = map[posTag][]suffixRule{
	posNoun: {
		{"ches", "ch"},
		{"shes", "sh"},
		{"sses", "ss"},
		{"xes", "x"},
		{"zes", "z"},
		{"ves", "f"},
		{"ves", "fe"},
		{"ies", "y"},
		{"men", "man"},
		{"es", "e"},
		{"es", ""},
		{"s", ""},
	},
	posVerb: {
		{"ies", "y"},
		{"ing", "e"},
		{"ing", ""},
		{"ied", "y"},
		{"ed", "e"},
		{"ed", ""},
		{"es", "e"},
		{"es", ""},
		{"s", ""},
	},
	posAdjective: {
		{"iest", "y"},
		{"ier", "y"},
		{"est", "e"},
		{"est", ""},
		{"er", "e"},
		{"er", ""},
	},
	posAdverb: nil,
}

// deinflect returns every stem produced by applying one detachment rule for
// the given part of speech. Stems are not checked for attestation here.
func deinflect(word string, pos posTag) []string {
	var stems []string
	for _, rule := range deinflectionRules[pos] {
		if !strings.HasSuffix(word, rule.from) {
			continue
		}
		stem := word[:len(word)-len(rule.from)] + rule.to
		if len(stem) < 2 || stem == word {
			continue
		}
		// Doubled final consonant: "stopped" -> "stopp" -> "stop".
		if n := len(stem); n >= 3 && stem[n-1] == stem[n-2] && !isVowel(rune(stem[n-1])) {
			stems = append(stems, stem[:n-1])
		}
		stems = append(stems, stem)
	}
	return stems
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// endsConsonantY reports whether the word ends in consonant + "y".
func endsConsonantY(word string) bool {
	n := len(word)
	return n >= 2 && word[n-1] == 'y' && !isVowel(rune(word[n-2]))
}

// endsSibilant reports whether the word takes "-es" for plural / third person.
func endsSibilant(word string) bool {
	switch {
	case strings.HasSuffix(word, "s"), strings.HasSuffix(word, "x"),
		strings.HasSuffix(word, "z"), strings.HasSuffix(word, "ch"),
		strings.HasSuffix(word, "sh"):
		return true
	}
	return false
}

// shouldDouble reports whether the final consonant doubles before a vowel
// suffix ("stop" -> "stopped"). Applied to short stems ending
// consonant-vowel-consonant, excluding w, x and y.
func shouldDouble(word string) bool {
	n := len(word)
	if n < 3 || n > 5 {
		return false
	}
	last := rune(word[n-1])
	if isVowel(last) || last == 'w' || last == 'x' || last == 'y' {
		return false
	}
	return isVowel(rune(word[n-2])) && !isVowel(rune(word[n-3]))
}

// pluralize produces the regular plural (also the verb third-person singular).
func pluralize(word string) string {
	switch {
	case endsConsonantY(word):
		return word[:len(word)-1] + "ies"
	case endsSibilant(word), endsConsonantO(word):
		return word + "es"
	default:
		return word + "s"
	}
}

// endsConsonantO reports whether the word ends in consonant + "o", which
// takes "-es" ("go" -> "goes", "echo" -> "echoes"). Vowel + "o" takes a
// plain "s" ("radio" -> "radios").
func endsConsonantO(word string) bool {
	n := len(word)
	return n >= 2 && word[n-1] == 'o' && !isVowel(rune(word[n-2]))
}

// pastTense produces the regular "-ed" form.
func pastTense(word string) string {
	switch {
	case strings.HasSuffix(word, "e"):
		return word + "d"
	case endsConsonantY(word):
		return word[:len(word)-1] + "ied"
	case shouldDouble(word):
		return word + string(word[len(word)-1]) + "ed"
	default:
		return word + "ed"
	}
}

// presentParticiple produces the regular "-ing" form.
func presentParticiple(word string) string {
	switch {
	case strings.HasSuffix(word, "ee"), strings.HasSuffix(word, "ye"),
		strings.HasSuffix(word, "oe"):
		return word + "ing"
	case strings.HasSuffix(word, "e"):
		return word[:len(word)-1] + "ing"
	case shouldDouble(word):
		return word + string(word[len(word)-1]) + "ing"
	default:
		return word + "ing"
	}
}

// comparative produces the regular "-er" form.
func comparative(word string) string {
	switch {
	case strings.HasSuffix(word, "e"):
		return word + "r"
	case endsConsonantY(word):
		return word[:len(word)-1] + "ier"
	case shouldDouble(word):
		return word + string(word[len(word)-1]) + "er"
	default:
		return word + "er"
	}
}

// superlative produces the regular "-est" form.
func superlative(word string) string {
	switch {
	case strings.HasSuffix(word, "e"):
		return word + "st"
	case endsConsonantY(word):
		return word[:len(word)-1] + "iest"
	case shouldDouble(word):
		return word + string(word[len(word)-1]) + "est"
	default:
		return word + "est"
	}
}
