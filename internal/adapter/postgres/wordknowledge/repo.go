// Package wordknowledge implements the word-knowledge repository using
// PostgreSQL. All event writes are single atomic upserts so concurrent
// sessions of the same user never lose increments.
package wordknowledge

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/readwell/readwell-backend/internal/adapter/postgres"
	"github.com/readwell/readwell-backend/internal/domain"
)

// Repo provides word-knowledge persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new word-knowledge repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ---------------------------------------------------------------------------
// Event upserts
//
// Rows are created lazily on the first event. Every statement both inserts
// the initial state and, on conflict, applies the increment in SQL, so the
// read-modify-write never happens in Go.
// ---------------------------------------------------------------------------

const applyFreeLookupSQL = `
INSERT INTO word_knowledge (user_id, word, interest, free_lookups)
VALUES ($1, $2, $3, 1)
ON CONFLICT (user_id, word) DO UPDATE
SET interest     = word_knowledge.interest + $3,
    free_lookups = word_knowledge.free_lookups + 1,
    updated_at   = now()`

const applyCuedLookupSQL = `
INSERT INTO word_knowledge (user_id, word, interest, cued_lookups)
VALUES ($1, $2, $3, 1)
ON CONFLICT (user_id, word) DO UPDATE
SET interest     = word_knowledge.interest + $3,
    cued_lookups = word_knowledge.cued_lookups + 1,
    updated_at   = now()`

// The interest decrement only applies while interest is positive; repeated
// ignored cues must not drive the score negative.
const applyCueSQL = `
INSERT INTO word_knowledge (user_id, word, cue_count)
VALUES ($1, $2, 1)
ON CONFLICT (user_id, word) DO UPDATE
SET cue_count  = word_knowledge.cue_count + 1,
    interest   = CASE WHEN word_knowledge.interest > 0
                      THEN word_knowledge.interest + $3
                      ELSE word_knowledge.interest END,
    updated_at = now()`

// Removal from the word bank resets interest but keeps rating and counters.
const applyWordBankRemoveSQL = `
INSERT INTO word_knowledge (user_id, word)
VALUES ($1, $2)
ON CONFLICT (user_id, word) DO UPDATE
SET interest   = 0,
    updated_at = now()`

const setRatingSQL = `
INSERT INTO word_knowledge (user_id, word, rating, interest)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, word) DO UPDATE
SET rating     = EXCLUDED.rating,
    interest   = word_knowledge.interest + $4,
    updated_at = now()`

// ApplyEvent atomically applies one knowledge event to the (user, word) row,
// creating it if absent.
func (r *Repo) ApplyEvent(ctx context.Context, userID uuid.UUID, word string, event domain.KnowledgeEvent) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)
	key := userID.String() + ":" + word

	var err error
	switch event {
	case domain.KnowledgeEventFreeLookup:
		_, err = querier.Exec(ctx, applyFreeLookupSQL, userID, word, domain.FreeLookupWeight)
	case domain.KnowledgeEventCuedLookup:
		_, err = querier.Exec(ctx, applyCuedLookupSQL, userID, word, domain.CuedLookupWeight)
	case domain.KnowledgeEventCue:
		_, err = querier.Exec(ctx, applyCueSQL, userID, word, domain.CueWeight)
	case domain.KnowledgeEventWordBankRemove:
		_, err = querier.Exec(ctx, applyWordBankRemoveSQL, userID, word)
	default:
		return fmt.Errorf("word_knowledge %s: unknown event %q: %w", key, event, domain.ErrValidation)
	}
	if err != nil {
		return postgres.MapError(err, "word_knowledge", key)
	}
	return nil
}

// SetRating upserts the self-reported rating and credits the rating weight to
// interest. The caller validates the rating range.
func (r *Repo) SetRating(ctx context.Context, userID uuid.UUID, word string, rating int) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, setRatingSQL, userID, word, rating, domain.RatingWeight)
	if err != nil {
		return postgres.MapError(err, "word_knowledge", userID.String()+":"+word)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

var knowledgeColumns = []string{
	"user_id", "word", "rating", "interest",
	"free_lookups", "cued_lookups", "cue_count",
	"created_at", "updated_at",
}

// Get returns the knowledge record for one (user, word) pair.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID, word string) (domain.WordKnowledge, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(knowledgeColumns...).
		From("word_knowledge").
		Where(sq.Eq{"user_id": userID, "word": word}).
		ToSql()
	if err != nil {
		return domain.WordKnowledge{}, fmt.Errorf("build get query: %w", err)
	}

	var wk domain.WordKnowledge
	err = querier.QueryRow(ctx, query, args...).Scan(
		&wk.UserID, &wk.Word, &wk.Rating, &wk.Interest,
		&wk.FreeLookups, &wk.CuedLookups, &wk.CueCount,
		&wk.CreatedAt, &wk.UpdatedAt,
	)
	if err != nil {
		return domain.WordKnowledge{}, postgres.MapError(err, "word_knowledge", userID.String()+":"+word)
	}
	return wk, nil
}

// QueryByWords returns the user's knowledge records for the given base forms.
// Words with no record are simply absent from the result.
func (r *Repo) QueryByWords(ctx context.Context, userID uuid.UUID, words []string) ([]domain.WordKnowledge, error) {
	if len(words) == 0 {
		return nil, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(knowledgeColumns...).
		From("word_knowledge").
		Where(sq.Eq{"user_id": userID, "word": words}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query-by-words: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query word knowledge: %w", err)
	}
	defer rows.Close()

	result := make([]domain.WordKnowledge, 0, len(words))
	for rows.Next() {
		var wk domain.WordKnowledge
		if err := rows.Scan(
			&wk.UserID, &wk.Word, &wk.Rating, &wk.Interest,
			&wk.FreeLookups, &wk.CuedLookups, &wk.CueCount,
			&wk.CreatedAt, &wk.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan word knowledge: %w", err)
		}
		result = append(result, wk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate word knowledge: %w", err)
	}

	return result, nil
}

// RatedWords returns the subset of words the user has ever self-rated.
func (r *Repo) RatedWords(ctx context.Context, userID uuid.UUID, words []string) (map[string]struct{}, error) {
	if len(words) == 0 {
		return map[string]struct{}{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select("word").
		From("word_knowledge").
		Where(sq.Eq{"user_id": userID, "word": words}).
		Where(sq.NotEq{"rating": nil}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build rated-words query: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rated words: %w", err)
	}
	defer rows.Close()

	rated := make(map[string]struct{})
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan rated word: %w", err)
		}
		rated[w] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rated words: %w", err)
	}

	return rated, nil
}
