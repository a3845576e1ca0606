// Package lexicon provides the lexical normalizer: canonical base forms,
// inflected-form enumeration, corpus frequencies and synonym sets.
//
// The lexicon is built once at process start from embedded resources
// (irregular-form tables, an attested lemma list, default zipf frequencies),
// optionally augmented from an Open English WordNet GWN-LMF file and an
// external frequency CSV. All lookups after construction are read-only and
// safe for concurrent use.
package lexicon

import (
	"bufio"
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/readwell/readwell-backend/internal/domain"
	"github.com/readwell/readwell-backend/internal/lexicon/freq"
	"github.com/readwell/readwell-backend/internal/lexicon/wordnet"
)

//go:embed data/lemmas.txt data/irregular.tsv data/zipf.csv
var dataFS embed.FS

// posTag is the compact part-of-speech letter used by the resource files:
// n(oun), v(erb), a(djective), r (adverb).
type posTag byte

const (
	posNoun      posTag = 'n'
	posVerb      posTag = 'v'
	posAdjective posTag = 'a'
	posAdverb    posTag = 'r'
)

var allPOSTags = []posTag{posNoun, posVerb, posAdjective, posAdverb}

func (p posTag) partOfSpeech() domain.PartOfSpeech {
	switch p {
	case posNoun:
		return domain.PartOfSpeechNoun
	case posVerb:
		return domain.PartOfSpeechVerb
	case posAdjective:
		return domain.PartOfSpeechAdjective
	case posAdverb:
		return domain.PartOfSpeechAdverb
	}
	return domain.PartOfSpeechOther
}

func tagFor(pos domain.PartOfSpeech) (posTag, bool) {
	switch pos {
	case domain.PartOfSpeechNoun, domain.PartOfSpeechProperNoun:
		return posNoun, true
	case domain.PartOfSpeechVerb:
		return posVerb, true
	case domain.PartOfSpeechAdjective:
		return posAdjective, true
	case domain.PartOfSpeechAdverb:
		return posAdverb, true
	}
	return 0, false
}

// Synset is one synonym set: its members share a meaning described by Gloss.
type Synset struct {
	PartOfSpeech domain.PartOfSpeech
	Members      []string
	Gloss        string
}

// Options configures lexicon construction. All fields are optional; the
// embedded resources alone produce a working lexicon.
type Options struct {
	// WordNetPath points at an Open English WordNet GWN-LMF JSON file.
	// Lemmas attest additional words; synsets feed SynonymSets.
	WordNetPath string

	// FrequencyPath points at a zipf frequency CSV (word,zipf header row).
	FrequencyPath string

	// Frequencies overlays individual zipf values, highest precedence.
	// Used by tests and by callers with their own corpus counts.
	Frequencies map[string]float64

	// Synsets adds synonym sets directly, after any WordNet file.
	Synsets []Synset
}

type exception struct {
	base string
	pos  posTag
}

type synKey struct {
	lemma string
	pos   posTag
}

// Lexicon is the read-only linguistic resource set.
type Lexicon struct {
	lemmaPOS   map[string]map[posTag]struct{}
	exceptions map[string][]exception
	irregular  map[string]map[posTag][]string // base -> pos -> surface forms
	freqs      map[string]float64
	synsets    map[synKey][]int
	sets       []Synset
}

// LemmaCount reports how many distinct lemmas are attested. The health
// endpoint surfaces it so operators can see which resources loaded.
func (l *Lexicon) LemmaCount() int { return len(l.lemmaPOS) }

// SynsetCount reports how many synonym sets are available to the simplifier.
// Zero means no WordNet file was configured.
func (l *Lexicon) SynsetCount() int { return len(l.sets) }

// New builds a Lexicon from the embedded resources plus opts.
func New(opts Options) (*Lexicon, error) {
	lex := &Lexicon{
		lemmaPOS:   make(map[string]map[posTag]struct{}),
		exceptions: make(map[string][]exception),
		irregular:  make(map[string]map[posTag][]string),
		freqs:      make(map[string]float64),
		synsets:    make(map[synKey][]int),
	}

	if err := lex.loadEmbedded(); err != nil {
		return nil, fmt.Errorf("lexicon: embedded resources: %w", err)
	}

	if opts.WordNetPath != "" {
		res, err := wordnet.Parse(opts.WordNetPath)
		if err != nil {
			return nil, fmt.Errorf("lexicon: wordnet %s: %w", opts.WordNetPath, err)
		}
		for _, lemma := range res.Lemmas {
			lex.attest(lemma.WrittenForm, wordnetTag(lemma.PartOfSpeech))
		}
		for _, syn := range res.Synsets {
			lex.addSynset(Synset{
				PartOfSpeech: wordnetTag(syn.PartOfSpeech).partOfSpeech(),
				Members:      syn.Members,
				Gloss:        syn.Definition,
			})
		}
	}

	if opts.FrequencyPath != "" {
		table, err := freq.ParseFile(opts.FrequencyPath)
		if err != nil {
			return nil, fmt.Errorf("lexicon: frequencies %s: %w", opts.FrequencyPath, err)
		}
		for word, zipf := range table {
			lex.freqs[word] = zipf
		}
	}

	for word, zipf := range opts.Frequencies {
		lex.freqs[strings.ToLower(word)] = zipf
	}
	for _, s := range opts.Synsets {
		lex.addSynset(s)
	}

	return lex, nil
}

func wordnetTag(pos string) posTag {
	switch pos {
	case "v":
		return posVerb
	case "a", "s": // adjective and satellite adjective
		return posAdjective
	case "r":
		return posAdverb
	default:
		return posNoun
	}
}

func (l *Lexicon) loadEmbedded() error {
	if err := l.loadLemmas(); err != nil {
		return err
	}
	if err := l.loadIrregular(); err != nil {
		return err
	}

	f, err := dataFS.Open("data/zipf.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	table, err := freq.Parse(f)
	if err != nil {
		return err
	}
	l.freqs = table
	return nil
}

func (l *Lexicon) loadLemmas() error {
	f, err := dataFS.Open("data/lemmas.txt")
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return fmt.Errorf("lemmas.txt: malformed line %q", line)
		}
		// Tags may be concatenated ("age nv") or space-separated ("back n r").
		for _, group := range fields[1:] {
			for _, tag := range group {
				l.attest(fields[0], posTag(tag))
			}
		}
	}
	return scanner.Err()
}

func (l *Lexicon) loadIrregular() error {
	f, err := dataFS.Open("data/irregular.tsv")
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 3 || len(fields[2]) != 1 {
			return fmt.Errorf("irregular.tsv: malformed line %q", line)
		}
		surface, base, tag := fields[0], fields[1], posTag(fields[2][0])
		l.exceptions[surface] = append(l.exceptions[surface], exception{base: base, pos: tag})

		byPOS := l.irregular[base]
		if byPOS == nil {
			byPOS = make(map[posTag][]string)
			l.irregular[base] = byPOS
		}
		byPOS[tag] = append(byPOS[tag], surface)
	}
	return scanner.Err()
}

func (l *Lexicon) attest(word string, tag posTag) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return
	}
	set := l.lemmaPOS[word]
	if set == nil {
		set = make(map[posTag]struct{}, 2)
		l.lemmaPOS[word] = set
	}
	set[tag] = struct{}{}
}

func (l *Lexicon) addSynset(s Synset) {
	tag, ok := tagFor(s.PartOfSpeech)
	if !ok {
		return
	}
	idx := len(l.sets)
	members := make([]string, 0, len(s.Members))
	for _, m := range s.Members {
		m = strings.ToLower(m)
		members = append(members, m)
		// Multi-word members stay in the set (callers filter) but do not
		// get index keys.
		if !strings.ContainsAny(m, " -") {
			l.attest(m, tag)
		}
		key := synKey{lemma: m, pos: tag}
		l.synsets[key] = append(l.synsets[key], idx)
	}
	s.Members = members
	l.sets = append(l.sets, s)
}

func (l *Lexicon) attested(word string, tag posTag) bool {
	set, ok := l.lemmaPOS[word]
	if !ok {
		return false
	}
	_, ok = set[tag]
	return ok
}

// BaseForm maps a surface form to its canonical base form across all parts
// of speech. The shortest candidate wins; ties break alphabetically. Unknown
// words pass through unchanged, which makes the function total and idempotent.
func (l *Lexicon) BaseForm(word string) string {
	return l.baseForm(word, allPOSTags)
}

// BaseFormPOS is BaseForm restricted to a single part of speech.
func (l *Lexicon) BaseFormPOS(word string, pos domain.PartOfSpeech) string {
	tag, ok := tagFor(pos)
	if !ok {
		return strings.ToLower(strings.TrimSpace(word))
	}
	return l.baseForm(word, []posTag{tag})
}

func (l *Lexicon) baseForm(word string, tags []posTag) string {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return word
	}

	candidates := make(map[string]struct{})
	for _, tag := range tags {
		for _, exc := range l.exceptions[word] {
			if exc.pos == tag {
				candidates[exc.base] = struct{}{}
			}
		}
		if l.attested(word, tag) {
			candidates[word] = struct{}{}
		}
		for _, stem := range deinflect(word, tag) {
			if l.attested(stem, tag) {
				candidates[stem] = struct{}{}
			}
		}
	}

	if len(candidates) == 0 {
		return word
	}
	return selectBase(candidates)
}

// selectBase picks the canonical candidate: shortest string first, then
// ascending alphabetical order.
func selectBase(candidates map[string]struct{}) string {
	list := make([]string, 0, len(candidates))
	for c := range candidates {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		if len(list[i]) != len(list[j]) {
			return len(list[i]) < len(list[j])
		}
		return list[i] < list[j]
	})
	return list[0]
}

// AllForms enumerates the inflected surface forms of a word across all parts
// of speech it is attested for, always including the input itself.
func (l *Lexicon) AllForms(word string) map[string]struct{} {
	word = strings.ToLower(strings.TrimSpace(word))
	forms := map[string]struct{}{}
	if word == "" {
		return forms
	}
	forms[word] = struct{}{}

	tags := l.lemmaPOS[word]
	for tag := range tags {
		irregularForms := l.irregular[word][tag]
		for _, f := range irregularForms {
			forms[f] = struct{}{}
		}

		switch tag {
		case posNoun:
			if len(irregularForms) == 0 {
				forms[pluralize(word)] = struct{}{}
			}
		case posVerb:
			forms[pluralize(word)] = struct{}{} // third person singular
			forms[presentParticiple(word)] = struct{}{}
			if len(irregularForms) == 0 {
				forms[pastTense(word)] = struct{}{}
			}
		case posAdjective:
			if len(irregularForms) == 0 && gradable(word) {
				forms[comparative(word)] = struct{}{}
				forms[superlative(word)] = struct{}{}
			}
		case posAdverb:
			// Only irregular adverbs inflect (well -> better, best).
		}
	}
	return forms
}

// gradable reports whether an adjective takes regular -er/-est inflection.
// Long adjectives use "more"/"most" instead and generate no synthetic forms.
func gradable(word string) bool {
	return len(word) <= 6 || endsConsonantY(word)
}

// Frequency returns the zipf-scale corpus frequency of a word; higher means
// more common. Unknown surface forms fall back to their base form; fully
// unknown words return 0 (treated as maximally rare).
func (l *Lexicon) Frequency(word string) float64 {
	word = strings.ToLower(strings.TrimSpace(word))
	if z, ok := l.freqs[word]; ok {
		return z
	}
	if base := l.BaseForm(word); base != word {
		if z, ok := l.freqs[base]; ok {
			return z
		}
	}
	return 0
}

// SynonymSets returns the synonym sets containing the word with the given
// part of speech, in resource order. The result shares no state with the
// lexicon's internals beyond the set values themselves.
func (l *Lexicon) SynonymSets(word string, pos domain.PartOfSpeech) []Synset {
	tag, ok := tagFor(pos)
	if !ok {
		return nil
	}
	idxs := l.synsets[synKey{lemma: strings.ToLower(word), pos: tag}]
	if len(idxs) == 0 {
		return nil
	}
	out := make([]Synset, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, l.sets[i])
	}
	return out
}

// KnownPartsOfSpeech returns the coarse classes a word is attested for,
// directly or through an irregular surface form.
func (l *Lexicon) KnownPartsOfSpeech(word string) []domain.PartOfSpeech {
	word = strings.ToLower(strings.TrimSpace(word))
	tags := make(map[posTag]struct{}, 2)
	for tag := range l.lemmaPOS[word] {
		tags[tag] = struct{}{}
	}
	for _, exc := range l.exceptions[word] {
		tags[exc.pos] = struct{}{}
	}
	if len(tags) == 0 {
		// Unknown inflected forms: attribute the base form's classes.
		if base := l.BaseForm(word); base != word {
			for tag := range l.lemmaPOS[base] {
				tags[tag] = struct{}{}
			}
		}
	}
	out := make([]domain.PartOfSpeech, 0, len(tags))
	for _, tag := range allPOSTags {
		if _, ok := tags[tag]; ok {
			out = append(out, tag.partOfSpeech())
		}
	}
	return out
}

// MatchForm inflects replacement to mirror how surface relates to base.
// When the surface form was already the base form, the replacement is
// returned untouched. Regular rules are applied to the replacement even if
// the original inflection was irregular ("went" -> past tense of replacement).
func (l *Lexicon) MatchForm(replacement, surface, base string, pos domain.PartOfSpeech) string {
	surface = strings.ToLower(surface)
	if surface == base {
		return replacement
	}

	switch pos {
	case domain.PartOfSpeechNoun:
		if surface == pluralize(base) || l.hasIrregularForm(base, posNoun, surface) {
			return pluralize(replacement)
		}
	case domain.PartOfSpeechVerb:
		switch surface {
		case pluralize(base):
			return pluralize(replacement)
		case presentParticiple(base):
			return presentParticiple(replacement)
		case pastTense(base):
			return pastTense(replacement)
		}
		if l.hasIrregularForm(base, posVerb, surface) {
			return pastTense(replacement)
		}
	case domain.PartOfSpeechAdjective, domain.PartOfSpeechAdverb:
		switch surface {
		case comparative(base):
			return comparative(replacement)
		case superlative(base):
			return superlative(replacement)
		}
	}
	return replacement
}

func (l *Lexicon) hasIrregularForm(base string, tag posTag, surface string) bool {
	for _, f := range l.irregular[base][tag] {
		if f == surface {
			return true
		}
	}
	return false
}
