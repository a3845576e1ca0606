package lexicon

import "strings"

// Words never offered as replacement candidates, regardless of frequency.
// The audience is young learners, so the list errs toward exclusion.
var profaneWords = map[string]struct{}{
	"arse":     {},
	"ass":      {},
	"asshole":  {},
	"bastard":  {},
	"bitch":    {},
	"bollocks": {},
	"boob":     {},
	"bugger":   {},
	"bullshit": {},
	"cock":     {},
	"crap":     {},
	"cunt":     {},
	"damn":     {},
	"dick":     {},
	"dumbass":  {},
	"fag":      {},
	"faggot":   {},
	"fuck":     {},
	"goddamn":  {},
	"hell":     {},
	"jackass":  {},
	"jerk":     {},
	"nigger":   {},
	"piss":     {},
	"prick":    {},
	"pussy":    {},
	"shit":     {},
	"slut":     {},
	"tit":      {},
	"twat":     {},
	"wanker":   {},
	"whore":    {},
}

// IsProfane reports whether the word (or its base form) is on the embedded
// profanity list.
func (l *Lexicon) IsProfane(word string) bool {
	word = strings.ToLower(strings.TrimSpace(word))
	if _, ok := profaneWords[word]; ok {
		return true
	}
	_, ok := profaneWords[l.BaseForm(word)]
	return ok
}
