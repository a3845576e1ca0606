// Package glossary implements persistence for per-book glossary definitions.
package glossary

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/readwell/readwell-backend/internal/adapter/postgres"
)

// Repo provides glossary-entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new glossary repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getDefinitionSQL = `
SELECT definition
FROM glossary_entries
WHERE book_id = $1 AND word = $2`

const upsertEntrySQL = `
INSERT INTO glossary_entries (book_id, word, definition)
VALUES ($1, $2, $3)
ON CONFLICT (book_id, word) DO UPDATE
SET definition = EXCLUDED.definition`

// GetDefinition returns the book's glossary definition for a base form.
// Returns domain.ErrNotFound when the glossary has no entry.
func (r *Repo) GetDefinition(ctx context.Context, bookID uuid.UUID, word string) (string, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var definition string
	err := querier.QueryRow(ctx, getDefinitionSQL, bookID, word).Scan(&definition)
	if err != nil {
		return "", postgres.MapError(err, "glossary_entry", bookID.String()+":"+word)
	}
	return definition, nil
}

// UpsertEntries writes glossary definitions for a book in one batch.
func (r *Repo) UpsertEntries(ctx context.Context, bookID uuid.UUID, definitions map[string]string) error {
	if len(definitions) == 0 {
		return nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for word, def := range definitions {
		batch.Queue(upsertEntrySQL, bookID, word, def)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("upsert glossary entries for book %s: %w", bookID, err)
		}
	}
	return nil
}
