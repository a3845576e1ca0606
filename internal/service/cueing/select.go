package cueing

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/readwell/readwell-backend/internal/domain"
)

// mergeIntoSet adds candidates not already in acc without letting the set
// exceed maxCount. When capacity remains for only some of the new candidates,
// a uniformly random sample of exactly that many is added rather than the
// first N, so no word is systematically favored by sort position.
func (s *Service) mergeIntoSet(acc map[string]struct{}, candidates []string, maxCount int) {
	capacity := maxCount - len(acc)
	if capacity <= 0 || len(candidates) == 0 {
		return
	}

	fresh := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		if _, ok := acc[c]; !ok {
			fresh = append(fresh, c)
		}
	}

	if len(fresh) <= capacity {
		for _, c := range fresh {
			acc[c] = struct{}{}
		}
		return
	}

	// Partial Fisher-Yates: the first `capacity` positions become the sample.
	for i := 0; i < capacity; i++ {
		j := i + s.randInt(len(fresh)-i)
		fresh[i], fresh[j] = fresh[j], fresh[i]
		acc[fresh[i]] = struct{}{}
	}
}

// ChooseCueWords selects up to the configured target of words to visually cue
// for (user, book version), in strict priority order:
//
//  1. words the user is curious about (positive interest) and does not yet
//     fully know, with a definition available
//  2. teacher-customized words, low estimated knowledge first
//  3. words with definitely low knowledge (estimate 0 or 1) and a definition
//  4. remaining glossary words, to fill unused capacity
//
// The result maps each selected base form to all of its surface forms so the
// client can highlight every occurrence. Fewer eligible words than the target
// is not an error; the result is simply smaller.
func (s *Service) ChooseCueWords(ctx context.Context, userID, bookID uuid.UUID, version int) (map[string][]string, error) {
	lists, err := s.books.GetVersionWordLists(ctx, bookID, version)
	if err != nil {
		return nil, fmt.Errorf("book %s version %d word lists: %w", bookID, version, err)
	}

	allWords := sortedWords(lists.AllWords)
	know, err := s.vocab.Knowledge(ctx, userID, allWords)
	if err != nil {
		return nil, fmt.Errorf("word knowledge: %w", err)
	}

	customized, err := s.books.GetCustomizationWords(ctx, bookID, userID)
	if err != nil {
		return nil, fmt.Errorf("customization words: %w", err)
	}

	target := s.cfg.CueTarget
	selected := make(map[string]struct{}, target)

	// Stage 1: curious and not yet mastered.
	var curious []string
	for _, w := range allWords {
		wk, ok := know[w]
		if !ok || wk.InterestEstimate() <= 0 {
			continue
		}
		if est, known := wk.KnowledgeEstimate(); known && est >= domain.MaxRating {
			continue
		}
		if s.defs.HasDefinition(ctx, bookID, w) {
			curious = append(curious, w)
		}
	}
	s.mergeIntoSet(selected, curious, target)

	// Stage 2: teacher-customized words present in this version, the ones
	// with low estimated knowledge first.
	if len(selected) < target && len(customized) > 0 {
		var low, rest []string
		for _, w := range customized {
			if !lists.HasWord(w) {
				continue
			}
			if lowKnowledge(know[w]) {
				low = append(low, w)
			} else {
				rest = append(rest, w)
			}
		}
		s.mergeIntoSet(selected, low, target)
		s.mergeIntoSet(selected, rest, target)
	}

	// Stage 3: definitely low knowledge with a definition.
	if len(selected) < target {
		var weak []string
		for _, w := range allWords {
			wk, ok := know[w]
			if !ok {
				continue
			}
			est, known := wk.KnowledgeEstimate()
			if !known || est > 1 {
				continue
			}
			if s.defs.HasDefinition(ctx, bookID, w) {
				weak = append(weak, w)
			}
		}
		s.mergeIntoSet(selected, weak, target)
	}

	// Stage 4: glossary words fill whatever capacity is left.
	if len(selected) < target {
		s.mergeIntoSet(selected, sortedWords(lists.GlossaryWords), target)
	}

	result := make(map[string][]string, len(selected))
	for w := range selected {
		result[w] = sortedWords(s.forms.AllForms(w))
	}

	s.log.Debug("cue words chosen",
		"book_id", bookID,
		"version", version,
		"count", len(result),
	)
	return result, nil
}

// lowKnowledge reports whether the user's knowledge of a word is unknown or
// below the self-assessed "know it" level.
func lowKnowledge(wk *domain.WordKnowledge) bool {
	if wk == nil {
		return true
	}
	est, known := wk.KnowledgeEstimate()
	return !known || est <= 1
}

func sortedWords(set map[string]struct{}) []string {
	words := make([]string, 0, len(set))
	for w := range set {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
