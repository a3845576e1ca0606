package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/readwell/readwell-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedBook creates a book with the given number of difficulty versions and no
// word lists. Returns a filled domain.Book.
func SeedBook(t *testing.T, pool *pgxpool.Pool, versionCount int) domain.Book {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	book := domain.Book{
		ID:           uuid.New(),
		Title:        "Test Book " + uniqueSuffix(),
		VersionCount: versionCount,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO books (id, title, version_count, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		book.ID, book.Title, book.VersionCount, book.CreatedAt, book.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedBook insert book: %v", err)
	}

	return book
}

// SeedVersionWords stores a word list for one book version in document order.
// Words also present in glossary or newWords get the matching flags set.
func SeedVersionWords(t *testing.T, pool *pgxpool.Pool, bookID uuid.UUID, version int, words, glossary, newWords []string) {
	t.Helper()
	ctx := context.Background()

	glossarySet := domain.WordSet(glossary)
	newSet := domain.WordSet(newWords)

	for i, w := range words {
		_, inGlossary := glossarySet[w]
		_, isNew := newSet[w]
		_, err := pool.Exec(ctx,
			`INSERT INTO book_version_words (book_id, version, word, position, in_glossary, is_new)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			bookID, version, w, i, inGlossary, isNew,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedVersionWords insert word[%d]: %v", i, err)
		}
	}
}

// SeedCustomization assigns teacher-customized words for (book, user).
func SeedCustomization(t *testing.T, pool *pgxpool.Pool, bookID, userID uuid.UUID, words ...string) {
	t.Helper()
	ctx := context.Background()

	for i, w := range words {
		_, err := pool.Exec(ctx,
			`INSERT INTO customization_words (book_id, user_id, word) VALUES ($1, $2, $3)`,
			bookID, userID, w,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedCustomization insert word[%d]: %v", i, err)
		}
	}
}

// SeedGlossaryEntry stores one glossary definition for a book.
func SeedGlossaryEntry(t *testing.T, pool *pgxpool.Pool, bookID uuid.UUID, word, definition string) {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx,
		`INSERT INTO glossary_entries (book_id, word, definition) VALUES ($1, $2, $3)`,
		bookID, word, definition,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedGlossaryEntry insert: %v", err)
	}
}
