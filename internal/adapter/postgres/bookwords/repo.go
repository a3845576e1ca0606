// Package bookwords implements persistence for books, their per-version word
// lists, teacher customizations and view tracking.
package bookwords

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/readwell/readwell-backend/internal/adapter/postgres"
	"github.com/readwell/readwell-backend/internal/domain"
)

// VersionWord is one word of a book version's stored word list, in document
// order. InGlossary and IsNew mark membership of the glossary and new-words
// sublists.
type VersionWord struct {
	Word       string
	InGlossary bool
	IsNew      bool
}

// Repo provides book and word-list persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new book-words repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ---------------------------------------------------------------------------
// Books
// ---------------------------------------------------------------------------

const getBookSQL = `
SELECT id, title, version_count, created_at, updated_at
FROM books
WHERE id = $1`

const upsertBookSQL = `
INSERT INTO books (id, title, version_count, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())
ON CONFLICT (id) DO UPDATE
SET title         = EXCLUDED.title,
    version_count = EXCLUDED.version_count,
    updated_at    = now()`

// GetBook returns a book by ID.
func (r *Repo) GetBook(ctx context.Context, bookID uuid.UUID) (domain.Book, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var b domain.Book
	err := querier.QueryRow(ctx, getBookSQL, bookID).Scan(
		&b.ID, &b.Title, &b.VersionCount, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return domain.Book{}, postgres.MapError(err, "book", bookID.String())
	}
	return b, nil
}

// UpsertBook inserts or updates a book's metadata.
func (r *Repo) UpsertBook(ctx context.Context, book domain.Book) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, upsertBookSQL, book.ID, book.Title, book.VersionCount)
	if err != nil {
		return postgres.MapError(err, "book", book.ID.String())
	}
	return nil
}

// ---------------------------------------------------------------------------
// Version word lists
// ---------------------------------------------------------------------------

const getVersionWordsSQL = `
SELECT word, in_glossary, is_new
FROM book_version_words
WHERE book_id = $1 AND version = $2
ORDER BY position`

const deleteVersionWordsSQL = `
DELETE FROM book_version_words
WHERE book_id = $1 AND version = $2`

const insertVersionWordSQL = `
INSERT INTO book_version_words (book_id, version, word, position, in_glossary, is_new)
VALUES ($1, $2, $3, $4, $5, $6)`

// GetVersionWordLists returns the stored word lists of one book version.
// A book with no stored words yields empty lists, not an error; a missing
// book yields domain.ErrNotFound.
func (r *Repo) GetVersionWordLists(ctx context.Context, bookID uuid.UUID, version int) (*domain.VersionWordLists, error) {
	book, err := r.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if version < 0 || version >= book.VersionCount {
		return nil, fmt.Errorf("book %s version %d: %w", bookID, version, domain.ErrNotFound)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getVersionWordsSQL, bookID, version)
	if err != nil {
		return nil, fmt.Errorf("query version words: %w", err)
	}
	defer rows.Close()

	lists := &domain.VersionWordLists{
		BookID:        bookID,
		Version:       version,
		AllWords:      map[string]struct{}{},
		GlossaryWords: map[string]struct{}{},
		NewWords:      map[string]struct{}{},
	}

	for rows.Next() {
		var (
			word       string
			inGlossary bool
			isNew      bool
		)
		if err := rows.Scan(&word, &inGlossary, &isNew); err != nil {
			return nil, fmt.Errorf("scan version word: %w", err)
		}
		lists.AllWords[word] = struct{}{}
		lists.AllWordsInOrder = append(lists.AllWordsInOrder, word)
		if inGlossary {
			lists.GlossaryWords[word] = struct{}{}
		}
		if isNew {
			lists.NewWords[word] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate version words: %w", err)
	}

	return lists, nil
}

// ReplaceVersionWords swaps the stored word list of one version in a single
// batch. Intended to run inside a TxManager transaction together with
// UpsertBook when a book is (re)loaded.
func (r *Repo) ReplaceVersionWords(ctx context.Context, bookID uuid.UUID, version int, words []VersionWord) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	batch.Queue(deleteVersionWordsSQL, bookID, version)
	for i, w := range words {
		batch.Queue(insertVersionWordSQL, bookID, version, w.Word, i, w.InGlossary, w.IsNew)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "book_version_words", bookID.String()+":"+strconv.Itoa(version))
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Customizations
// ---------------------------------------------------------------------------

// GetCustomizationWords returns the teacher-assigned word list applying to
// (book, user). Empty when no customization exists.
func (r *Repo) GetCustomizationWords(ctx context.Context, bookID, userID uuid.UUID) ([]string, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select("word").
		From("customization_words").
		Where(sq.Eq{"book_id": bookID, "user_id": userID}).
		OrderBy("word").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build customization query: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query customization words: %w", err)
	}
	defer rows.Close()

	words := []string{}
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan customization word: %w", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customization words: %w", err)
	}

	return words, nil
}

// ReplaceCustomizationWords swaps the customization list for (book, user).
func (r *Repo) ReplaceCustomizationWords(ctx context.Context, bookID, userID uuid.UUID, words []string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	batch.Queue(`DELETE FROM customization_words WHERE book_id = $1 AND user_id = $2`, bookID, userID)
	for _, w := range words {
		batch.Queue(
			`INSERT INTO customization_words (book_id, user_id, word) VALUES ($1, $2, $3)
			 ON CONFLICT DO NOTHING`,
			bookID, userID, w,
		)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "customization_words", bookID.String()+":"+userID.String())
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// View tracking
// ---------------------------------------------------------------------------

const getViewCountSQL = `
SELECT view_count
FROM book_views
WHERE user_id = $1 AND book_id = $2`

const recordViewSQL = `
INSERT INTO book_views (user_id, book_id, view_count, first_viewed_at, last_viewed_at)
VALUES ($1, $2, 1, $3, $3)
ON CONFLICT (user_id, book_id) DO UPDATE
SET view_count     = book_views.view_count + 1,
    last_viewed_at = EXCLUDED.last_viewed_at`

// GetViewCount returns how many times the user has opened the book.
// Never having opened it is zero, not an error.
func (r *Repo) GetViewCount(ctx context.Context, userID, bookID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	err := querier.QueryRow(ctx, getViewCountSQL, userID, bookID).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("query view count: %w", err)
	}
	return count, nil
}

// RecordView atomically increments the user's view counter for the book.
func (r *Repo) RecordView(ctx context.Context, userID, bookID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	_, err := querier.Exec(ctx, recordViewSQL, userID, bookID, now)
	if err != nil {
		return postgres.MapError(err, "book_view", userID.String()+":"+bookID.String())
	}
	return nil
}
