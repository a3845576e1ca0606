// Package definitions resolves word definitions for readers: the book's own
// glossary first, then an external dictionary with a process-lifetime cache.
package definitions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/readwell/readwell-backend/internal/domain"
	"github.com/readwell/readwell-backend/internal/provider"
)

type glossaryRepo interface {
	GetDefinition(ctx context.Context, bookID uuid.UUID, word string) (string, error)
}

type dictionaryProvider interface {
	FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error)
}

// Lookup sources, reported so the client can attribute glossary entries to
// the book's author.
const (
	SourceGlossary   = "glossary"
	SourceDictionary = "dictionary"
)

// Result is one resolved definition.
type Result struct {
	Word   string `json:"word"`
	Source string `json:"source"`

	// Definition is set for glossary hits; Entry for dictionary hits.
	Definition string                     `json:"definition,omitempty"`
	Entry      *provider.DictionaryResult `json:"entry,omitempty"`
}

// Service resolves definitions. Dictionary results are cached for the process
// lifetime: the vocabulary of a book is small and stable, and the fallback
// API is slow, so entries are never evicted.
type Service struct {
	glossary glossaryRepo
	dict     dictionaryProvider
	log      *slog.Logger

	mu    sync.RWMutex
	cache map[string]*provider.DictionaryResult // nil value records a confirmed miss
}

func NewService(log *slog.Logger, glossary glossaryRepo, dict dictionaryProvider) *Service {
	return &Service{
		glossary: glossary,
		dict:     dict,
		log:      log.With("service", "definitions"),
		cache:    make(map[string]*provider.DictionaryResult),
	}
}

// Lookup resolves a definition for a base form in the context of a book.
// Returns domain.ErrNotFound when neither the glossary nor the dictionary
// knows the word.
func (s *Service) Lookup(ctx context.Context, bookID uuid.UUID, word string) (*Result, error) {
	def, err := s.glossary.GetDefinition(ctx, bookID, word)
	switch {
	case err == nil:
		return &Result{Word: word, Source: SourceGlossary, Definition: def}, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("glossary lookup: %w", err)
	}

	entry, err := s.fetchCached(ctx, word)
	if err != nil {
		return nil, err
	}
	if entry == nil || len(entry.Senses) == 0 {
		return nil, fmt.Errorf("definition %q: %w", word, domain.ErrNotFound)
	}
	return &Result{Word: word, Source: SourceDictionary, Entry: entry}, nil
}

// HasDefinition reports whether any source can define the word. Provider
// failures count as "no definition": cue selection must not fail a request
// because the fallback API is down.
func (s *Service) HasDefinition(ctx context.Context, bookID uuid.UUID, word string) bool {
	if _, err := s.glossary.GetDefinition(ctx, bookID, word); err == nil {
		return true
	} else if !errors.Is(err, domain.ErrNotFound) {
		s.log.Warn("glossary check failed", "word", word, "error", err)
		return false
	}

	entry, err := s.fetchCached(ctx, word)
	if err != nil {
		s.log.Warn("dictionary check failed", "word", word, "error", err)
		return false
	}
	return entry != nil && len(entry.Senses) > 0
}

// fetchCached returns the dictionary entry for a word, consulting the cache
// first. Confirmed misses are cached too; provider errors are not, so a
// transient outage does not poison the cache.
func (s *Service) fetchCached(ctx context.Context, word string) (*provider.DictionaryResult, error) {
	s.mu.RLock()
	entry, ok := s.cache[word]
	s.mu.RUnlock()
	if ok {
		return entry, nil
	}

	entry, err := s.dict.FetchEntry(ctx, word)
	if err != nil {
		return nil, fmt.Errorf("dictionary fetch %q: %w", word, err)
	}

	s.mu.Lock()
	s.cache[word] = entry
	s.mu.Unlock()

	return entry, nil
}
