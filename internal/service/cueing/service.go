// Package cueing implements the word selector: it picks the bounded,
// diverse word subsets shown to a reader — the words to visually cue while
// reading and the one-time vocabulary checklist on first view of a book.
package cueing

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/readwell/readwell-backend/internal/domain"
)

// Selection size defaults.
const (
	DefaultCueTarget       = 10
	DefaultChecklistTarget = 5
	ChecklistMinWordLength = 4
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type bookRepo interface {
	GetBook(ctx context.Context, bookID uuid.UUID) (domain.Book, error)
	GetVersionWordLists(ctx context.Context, bookID uuid.UUID, version int) (*domain.VersionWordLists, error)
	GetCustomizationWords(ctx context.Context, bookID, userID uuid.UUID) ([]string, error)
	GetViewCount(ctx context.Context, userID, bookID uuid.UUID) (int, error)
	RecordView(ctx context.Context, userID, bookID uuid.UUID) error
}

type knowledgeSource interface {
	Knowledge(ctx context.Context, userID uuid.UUID, words []string) (map[string]*domain.WordKnowledge, error)
	RatedWords(ctx context.Context, userID uuid.UUID, words []string) (map[string]struct{}, error)
}

type wordForms interface {
	AllForms(word string) map[string]struct{}
}

// definitionSource reports whether a definition can be shown for a word.
// Implementations consult the book glossary before any general dictionary and
// must convert their own failures into "no definition".
type definitionSource interface {
	HasDefinition(ctx context.Context, bookID uuid.UUID, word string) bool
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Config holds selection sizes, usually taken from the application config.
type Config struct {
	CueTarget       int
	ChecklistTarget int
}

// Service implements cue-word and checklist selection.
type Service struct {
	books   bookRepo
	vocab   knowledgeSource
	forms   wordForms
	defs    definitionSource
	log     *slog.Logger
	cfg     Config
	randInt func(n int) int
}

// Option customizes a Service.
type Option func(*Service)

// WithRand replaces the random source. Tests inject a seeded generator to get
// reproducible sampling; production keeps the default true randomness so no
// word perpetually loses a tie.
func WithRand(r *rand.Rand) Option {
	return func(s *Service) { s.randInt = r.IntN }
}

// NewService creates a new word-selection service.
func NewService(log *slog.Logger, books bookRepo, vocab knowledgeSource, forms wordForms, defs definitionSource, cfg Config, opts ...Option) *Service {
	if cfg.CueTarget <= 0 {
		cfg.CueTarget = DefaultCueTarget
	}
	if cfg.ChecklistTarget <= 0 {
		cfg.ChecklistTarget = DefaultChecklistTarget
	}
	s := &Service{
		books:   books,
		vocab:   vocab,
		forms:   forms,
		defs:    defs,
		log:     log.With("service", "cueing"),
		cfg:     cfg,
		randInt: rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordBookView marks that the user has opened the book. The checklist is
// offered only before the first recorded view, so the reading page must call
// this when a book is opened.
func (s *Service) RecordBookView(ctx context.Context, userID, bookID uuid.UUID) error {
	if _, err := s.books.GetBook(ctx, bookID); err != nil {
		return err
	}
	return s.books.RecordView(ctx, userID, bookID)
}
