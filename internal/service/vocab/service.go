// Package vocab implements the word-knowledge model: it owns the scoring
// rules that turn discrete reader actions (lookups, cues, self-ratings) into
// the per-word knowledge and interest estimates used by the cue selector and
// the simplifier.
package vocab

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/readwell/readwell-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type knowledgeRepo interface {
	ApplyEvent(ctx context.Context, userID uuid.UUID, word string, event domain.KnowledgeEvent) error
	SetRating(ctx context.Context, userID uuid.UUID, word string, value int) error
	QueryByWords(ctx context.Context, userID uuid.UUID, words []string) ([]domain.WordKnowledge, error)
	RatedWords(ctx context.Context, userID uuid.UUID, words []string) (map[string]struct{}, error)
}

type normalizer interface {
	BaseForm(word string) string
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements word-knowledge business logic.
type Service struct {
	repo knowledgeRepo
	lex  normalizer
	log  *slog.Logger
}

// NewService creates a new word-knowledge service.
func NewService(log *slog.Logger, repo knowledgeRepo, lex normalizer) *Service {
	return &Service{
		repo: repo,
		lex:  lex,
		log:  log.With("service", "vocab"),
	}
}

// normalizeWord validates and canonicalizes a raw word from the caller.
func (s *Service) normalizeWord(word string) (string, error) {
	word = domain.NormalizeWord(word)
	if !domain.ValidWord(word) {
		return "", domain.NewValidationError("word", "must be a single word")
	}
	return s.lex.BaseForm(word), nil
}

// RecordLookup registers a dictionary lookup for (user, word). Cued lookups
// carry less interest weight than self-initiated ones. The word is reduced to
// its base form so tracking is insensitive to inflection.
func (s *Service) RecordLookup(ctx context.Context, userID uuid.UUID, word string, cued bool) error {
	base, err := s.normalizeWord(word)
	if err != nil {
		return err
	}

	event := domain.KnowledgeEventFreeLookup
	if cued {
		event = domain.KnowledgeEventCuedLookup
	}
	if err := s.repo.ApplyEvent(ctx, userID, base, event); err != nil {
		return fmt.Errorf("record lookup for %q: %w", base, err)
	}

	s.log.Debug("lookup recorded",
		slog.String("word", base),
		slog.Bool("cued", cued),
	)
	return nil
}

// RecordRating stores a self-reported knowledge rating (0-3). Values outside
// the range are rejected with a validation error before any state changes.
func (s *Service) RecordRating(ctx context.Context, userID uuid.UUID, word string, value int) error {
	if !domain.ValidRating(value) {
		return domain.NewValidationError("rating", "must be an integer between 0 and 3")
	}
	base, err := s.normalizeWord(word)
	if err != nil {
		return err
	}

	if err := s.repo.SetRating(ctx, userID, base, value); err != nil {
		return fmt.Errorf("record rating for %q: %w", base, err)
	}

	s.log.Debug("rating recorded",
		slog.String("word", base),
		slog.Int("rating", value),
	)
	return nil
}

// RecordCues registers a cue-exposure event for each word the reading page is
// about to highlight. Failures on individual words are logged and skipped so
// one bad row cannot abort the batch.
func (s *Service) RecordCues(ctx context.Context, userID uuid.UUID, words []string) {
	for _, word := range words {
		if err := s.repo.ApplyEvent(ctx, userID, word, domain.KnowledgeEventCue); err != nil {
			s.log.Warn("cue event failed",
				slog.String("word", word),
				slog.String("error", err.Error()),
			)
		}
	}
}

// RemoveFromWordBank soft-resets the interest score of (user, word). The row
// and its rating/counter history are retained.
func (s *Service) RemoveFromWordBank(ctx context.Context, userID uuid.UUID, word string) error {
	base, err := s.normalizeWord(word)
	if err != nil {
		return err
	}
	if err := s.repo.ApplyEvent(ctx, userID, base, domain.KnowledgeEventWordBankRemove); err != nil {
		return fmt.Errorf("word bank remove for %q: %w", base, err)
	}
	return nil
}

// Knowledge returns the WordKnowledge rows for the given base forms, keyed by
// word. Words with no row yet are simply absent from the map.
func (s *Service) Knowledge(ctx context.Context, userID uuid.UUID, words []string) (map[string]*domain.WordKnowledge, error) {
	if len(words) == 0 {
		return map[string]*domain.WordKnowledge{}, nil
	}
	rows, err := s.repo.QueryByWords(ctx, userID, words)
	if err != nil {
		return nil, fmt.Errorf("query word knowledge: %w", err)
	}
	out := make(map[string]*domain.WordKnowledge, len(rows))
	for i := range rows {
		out[rows[i].Word] = &rows[i]
	}
	return out, nil
}

// RatedWords returns the subset of words the user has assigned any rating to.
// Used by the checklist selector's "unrated" filter.
func (s *Service) RatedWords(ctx context.Context, userID uuid.UUID, words []string) (map[string]struct{}, error) {
	if len(words) == 0 {
		return map[string]struct{}{}, nil
	}
	rated, err := s.repo.RatedWords(ctx, userID, words)
	if err != nil {
		return nil, fmt.Errorf("query rated words: %w", err)
	}
	return rated, nil
}
