package cueing

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// ChooseChecklistWords selects the one-time vocabulary checklist for a book.
// It only fires on a true first view (view count exactly zero); afterwards it
// returns an empty list. Words must be unrated and at least four characters.
//
// Multi-version books round-robin across versions (skipping version 0, the
// simplest), taking one word per version per round from nested pools:
// customized, then glossary, then any eligible word. Single-version books
// draw random samples from customized then glossary words, then scan the full
// word list in document order for defined words until the target is filled.
func (s *Service) ChooseChecklistWords(ctx context.Context, userID, bookID uuid.UUID) ([]string, error) {
	views, err := s.books.GetViewCount(ctx, userID, bookID)
	if err != nil {
		return nil, fmt.Errorf("view count: %w", err)
	}
	if views != 0 {
		return []string{}, nil
	}

	book, err := s.books.GetBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("book %s: %w", bookID, err)
	}

	customized, err := s.books.GetCustomizationWords(ctx, bookID, userID)
	if err != nil {
		return nil, fmt.Errorf("customization words: %w", err)
	}

	if book.VersionCount > 1 {
		return s.checklistMultiVersion(ctx, userID, bookID, book.VersionCount, customized)
	}
	return s.checklistSingleVersion(ctx, userID, bookID, customized)
}

// versionPools holds the nested candidate pools for one book version, highest
// priority first.
type versionPools struct {
	pools [][]string
}

// takeOne removes and returns a uniformly random not-yet-selected word from
// the highest-priority non-empty pool. ok is false when every pool is empty.
func (v *versionPools) takeOne(selected map[string]struct{}, randInt func(int) int) (string, bool) {
	for i := range v.pools {
		remaining := v.pools[i][:0]
		for _, w := range v.pools[i] {
			if _, ok := selected[w]; !ok {
				remaining = append(remaining, w)
			}
		}
		v.pools[i] = remaining
		if len(remaining) == 0 {
			continue
		}
		idx := randInt(len(remaining))
		word := remaining[idx]
		v.pools[i] = append(remaining[:idx], remaining[idx+1:]...)
		return word, true
	}
	return "", false
}

func (s *Service) checklistMultiVersion(ctx context.Context, userID, bookID uuid.UUID, versionCount int, customized []string) ([]string, error) {
	perVersion := make([]*versionPools, 0, versionCount-1)
	union := make(map[string]struct{})

	for v := 1; v < versionCount; v++ {
		lists, err := s.books.GetVersionWordLists(ctx, bookID, v)
		if err != nil {
			return nil, fmt.Errorf("version %d word lists: %w", v, err)
		}

		var custom []string
		for _, w := range customized {
			if lists.HasWord(w) && eligibleLength(w) {
				custom = append(custom, w)
			}
		}
		sort.Strings(custom)

		var glossary []string
		for w := range lists.GlossaryWords {
			if eligibleLength(w) {
				glossary = append(glossary, w)
			}
		}
		sort.Strings(glossary)

		var rest []string
		for _, w := range lists.AllWordsInOrder {
			if eligibleLength(w) {
				rest = append(rest, w)
			}
		}

		pools := &versionPools{pools: [][]string{custom, glossary, rest}}
		perVersion = append(perVersion, pools)
		for _, pool := range pools.pools {
			for _, w := range pool {
				union[w] = struct{}{}
			}
		}
	}

	rated, err := s.vocab.RatedWords(ctx, userID, sortedWords(union))
	if err != nil {
		return nil, fmt.Errorf("rated words: %w", err)
	}
	for _, pools := range perVersion {
		for i := range pools.pools {
			pools.pools[i] = dropRated(pools.pools[i], rated)
		}
	}

	target := s.cfg.ChecklistTarget
	var selected []string
	selectedSet := make(map[string]struct{}, target)

	// Round-robin: one word per version per round until the target is met or
	// every pool is exhausted.
	for len(selected) < target {
		progress := false
		for _, pools := range perVersion {
			if len(selected) >= target {
				break
			}
			word, ok := pools.takeOne(selectedSet, s.randInt)
			if !ok {
				continue
			}
			selected = append(selected, word)
			selectedSet[word] = struct{}{}
			progress = true
		}
		if !progress {
			break
		}
	}
	return selected, nil
}

func (s *Service) checklistSingleVersion(ctx context.Context, userID, bookID uuid.UUID, customized []string) ([]string, error) {
	lists, err := s.books.GetVersionWordLists(ctx, bookID, 0)
	if err != nil {
		return nil, fmt.Errorf("version 0 word lists: %w", err)
	}

	union := make(map[string]struct{}, len(lists.AllWords)+len(customized))
	for w := range lists.AllWords {
		union[w] = struct{}{}
	}
	for _, w := range customized {
		union[w] = struct{}{}
	}
	rated, err := s.vocab.RatedWords(ctx, userID, sortedWords(union))
	if err != nil {
		return nil, fmt.Errorf("rated words: %w", err)
	}

	eligible := func(w string) bool {
		if !eligibleLength(w) {
			return false
		}
		_, isRated := rated[w]
		return !isRated
	}

	target := s.cfg.ChecklistTarget
	var selected []string
	selectedSet := make(map[string]struct{}, target)

	add := func(pool []string) {
		need := target - len(selected)
		if need <= 0 {
			return
		}
		for _, w := range s.sample(pool, need) {
			if _, dup := selectedSet[w]; dup {
				continue
			}
			selected = append(selected, w)
			selectedSet[w] = struct{}{}
		}
	}

	var customPool []string
	for _, w := range customized {
		if eligible(w) && lists.HasWord(w) {
			customPool = append(customPool, w)
		}
	}
	sort.Strings(customPool)
	add(customPool)

	var glossaryPool []string
	for w := range lists.GlossaryWords {
		if eligible(w) {
			glossaryPool = append(glossaryPool, w)
		}
	}
	sort.Strings(glossaryPool)
	add(glossaryPool)

	// Final fill: scan the full word list in document order for defined,
	// unrated words. No sampling here — document order is the tiebreak.
	for _, w := range lists.AllWordsInOrder {
		if len(selected) >= target {
			break
		}
		if _, dup := selectedSet[w]; dup {
			continue
		}
		if !eligible(w) {
			continue
		}
		if !s.defs.HasDefinition(ctx, bookID, w) {
			continue
		}
		selected = append(selected, w)
		selectedSet[w] = struct{}{}
	}

	return selected, nil
}

// sample returns up to n elements of pool chosen uniformly at random, without
// mutating pool.
func (s *Service) sample(pool []string, n int) []string {
	if len(pool) <= n {
		return pool
	}
	cp := make([]string, len(pool))
	copy(cp, pool)
	for i := 0; i < n; i++ {
		j := i + s.randInt(len(cp)-i)
		cp[i], cp[j] = cp[j], cp[i]
	}
	return cp[:n]
}

func eligibleLength(w string) bool {
	return len(w) >= ChecklistMinWordLength
}

func dropRated(pool []string, rated map[string]struct{}) []string {
	out := pool[:0]
	for _, w := range pool {
		if _, ok := rated[w]; !ok {
			out = append(out, w)
		}
	}
	return out
}
