// Package simplify rewrites a passage by swapping its rarest words for more
// common synonyms, preserving the original text so readers can toggle back.
package simplify

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/readwell/readwell-backend/internal/domain"
	"github.com/readwell/readwell-backend/internal/lexicon"
)

const (
	// DefaultPercent of distinct word units targeted for replacement when the
	// request does not say otherwise.
	DefaultPercent = 10

	// DefaultEpsilon is the minimum zipf-scale frequency gain a synonym must
	// offer over the original word. Swapping for a barely-more-common word
	// costs reading flow without helping comprehension.
	DefaultEpsilon = 0.2
)

// replacementMarkup wraps a substituted word. Both the easier synonym and the
// original are emitted so the client can flip between them.
const replacementMarkup = `<span class="simplify-replaced"><span class="simplify-alt">%s</span><span class="simplify-orig">%s</span></span>`

// ---------------------------------------------------------------------------
// Dependencies
// ---------------------------------------------------------------------------

type wordSource interface {
	BaseFormPOS(word string, pos domain.PartOfSpeech) string
	Frequency(word string) float64
	SynonymSets(word string, pos domain.PartOfSpeech) []lexicon.Synset
	KnownPartsOfSpeech(word string) []domain.PartOfSpeech
	MatchForm(replacement, surface, base string, pos domain.PartOfSpeech) string
	IsProfane(word string) bool
}

type knowledgeSource interface {
	Knowledge(ctx context.Context, userID uuid.UUID, words []string) (map[string]*domain.WordKnowledge, error)
}

type Config struct {
	Percent int
	Epsilon float64
}

type Service struct {
	lex   wordSource
	vocab knowledgeSource
	log   *slog.Logger
	cfg   Config
}

func NewService(log *slog.Logger, lex wordSource, vocab knowledgeSource, cfg Config) *Service {
	if cfg.Percent <= 0 {
		cfg.Percent = DefaultPercent
	}
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = DefaultEpsilon
	}
	return &Service{
		lex:   lex,
		vocab: vocab,
		log:   log.With("service", "simplify"),
		cfg:   cfg,
	}
}

// ---------------------------------------------------------------------------
// Simplify
// ---------------------------------------------------------------------------

// Result is the outcome of one simplification request.
type Result struct {
	Text      string            `json:"result"`
	WordInfo  []domain.WordInfo `json:"word_info"`
	ToReplace int               `json:"to_replace"`
}

// group aggregates every occurrence of one (base form, part of speech) unit.
type group struct {
	base string
	pos  domain.PartOfSpeech
	info domain.WordInfo

	surfaces map[string]struct{}
}

// Simplify analyzes text and replaces the rarest eligible words with easier
// synonyms. percent is the share of distinct word units to target (1-100);
// zero picks the configured default. userID may be uuid.Nil for anonymous
// requests, which skips the personal word-knowledge filter.
//
// The returned text contains the original spans verbatim except where a
// replacement was made; replaced spans carry both words in markup. WordInfo
// is ordered rarest first, matching the order replacements were attempted.
func (s *Service) Simplify(ctx context.Context, userID uuid.UUID, text string, percent int) (*Result, error) {
	if percent == 0 {
		percent = s.cfg.Percent
	}
	if percent < 0 || percent > 100 {
		return nil, domain.NewValidationError("percent", "must be between 1 and 100")
	}
	if strings.TrimSpace(text) == "" {
		return &Result{Text: text, WordInfo: []domain.WordInfo{}}, nil
	}

	toks := tokenize(text)

	// Aggregate tokens into (base, pos) groups, keeping the token->group link
	// for the rewrite pass.
	groupOf := make([]*group, len(toks))
	groups := make(map[string]*group)
	for i, tok := range toks {
		pos := s.tagToken(tok)
		lower := strings.ToLower(tok.text)

		base := lower
		if pos.Replaceable() {
			base = s.lex.BaseFormPOS(lower, pos)
		}

		key := base + "\x00" + pos.String()
		g, ok := groups[key]
		if !ok {
			g = &group{
				base:     base,
				pos:      pos,
				surfaces: map[string]struct{}{},
				info: domain.WordInfo{
					Headword:     base,
					PartOfSpeech: pos,
					Frequency:    s.lex.Frequency(base),
				},
			}
			groups[key] = g
		}
		g.info.Occurrences++
		g.surfaces[lower] = struct{}{}
		groupOf[i] = g
	}

	// Rarest first; ties break alphabetically so output order is stable.
	ordered := make([]*group, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].info.Frequency != ordered[j].info.Frequency {
			return ordered[i].info.Frequency < ordered[j].info.Frequency
		}
		return ordered[i].base < ordered[j].base
	})

	toReplace := ceilDiv(len(ordered)*percent, 100)

	know, err := s.userKnowledge(ctx, userID, ordered)
	if err != nil {
		return nil, fmt.Errorf("word knowledge: %w", err)
	}

	replaced := 0
	for _, g := range ordered {
		if replaced >= toReplace {
			break
		}
		s.chooseReplacement(g, know)
		if g.info.Replacement != "" {
			replaced++
		}
	}

	out := s.rewrite(text, toks, groupOf)

	infos := make([]domain.WordInfo, 0, len(ordered))
	for _, g := range ordered {
		g.info.SurfaceForms = sortedKeys(g.surfaces)
		infos = append(infos, g.info)
	}

	s.log.Debug("passage simplified",
		"units", len(ordered),
		"to_replace", toReplace,
		"replaced", replaced,
	)
	return &Result{Text: out, WordInfo: infos, ToReplace: toReplace}, nil
}

// userKnowledge fetches the user's knowledge records for every replaceable
// base form in one query. Anonymous users get an empty map.
func (s *Service) userKnowledge(ctx context.Context, userID uuid.UUID, groups []*group) (map[string]*domain.WordKnowledge, error) {
	if userID == uuid.Nil {
		return map[string]*domain.WordKnowledge{}, nil
	}
	var words []string
	for _, g := range groups {
		if g.pos.Replaceable() {
			words = append(words, g.base)
		}
	}
	if len(words) == 0 {
		return map[string]*domain.WordKnowledge{}, nil
	}
	return s.vocab.Knowledge(ctx, userID, words)
}

// chooseReplacement tries to find an easier synonym for a group, recording
// either a replacement or the reason none was chosen.
func (s *Service) chooseReplacement(g *group, know map[string]*domain.WordKnowledge) {
	if !g.pos.Replaceable() {
		g.info.ErrorReason = "ignoring part of speech " + g.pos.String()
		return
	}

	if wk := know[g.base]; wk != nil {
		if est, ok := wk.KnowledgeEstimate(); ok && est >= 2 {
			g.info.Known = true
			g.info.ErrorReason = "user already knows this word"
			return
		}
	}

	sets := s.lex.SynonymSets(g.base, g.pos)
	if len(sets) == 0 {
		g.info.ErrorReason = "not found in synonym source"
		return
	}

	origFreq := s.lex.Frequency(g.base)
	for _, set := range sets {
		if offensiveGloss(set.Gloss) {
			continue
		}
		best, bestFreq := "", 0.0
		for _, member := range set.Members {
			m := strings.ToLower(member)
			if m == g.base || !singleWord(m) || s.lex.IsProfane(m) {
				continue
			}
			if f := s.lex.Frequency(m); f > bestFreq {
				best, bestFreq = m, f
			}
		}
		if best != "" && bestFreq > origFreq+s.cfg.Epsilon {
			g.info.Replacement = best
			return
		}
	}
	g.info.ErrorReason = "no easier synonyms"
}

// rewrite splices accepted replacements into the original text. Tokens are
// processed back to front so earlier byte offsets stay valid, and the surface
// form's inflection and capitalization are carried onto the substitute.
func (s *Service) rewrite(text string, toks []token, groupOf []*group) string {
	out := text
	for i := len(toks) - 1; i >= 0; i-- {
		g := groupOf[i]
		if g == nil || g.info.Replacement == "" {
			continue
		}
		tok := toks[i]

		word := s.lex.MatchForm(g.info.Replacement, strings.ToLower(tok.text), g.base, g.pos)
		if isCapitalized(tok.text) {
			word = capitalize(word)
		}

		out = out[:tok.start] + fmt.Sprintf(replacementMarkup, word, tok.text) + out[tok.end:]
	}
	return out
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// offensiveGlossMarkers are usage labels dictionaries attach to slurs and
// vulgarities. A synonym set whose gloss carries one is never drawn from.
var offensiveGlossMarkers = []string{
	"offensive", "disparaging", "derogatory", "vulgar", "obscene", "slur", "profan",
}

func offensiveGloss(gloss string) bool {
	gloss = strings.ToLower(gloss)
	for _, marker := range offensiveGlossMarkers {
		if strings.Contains(gloss, marker) {
			return true
		}
	}
	return false
}

// singleWord rejects multi-word synset members; a phrase cannot stand in for
// one word without re-parsing the sentence.
func singleWord(s string) bool {
	return !strings.ContainsAny(s, " _")
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
