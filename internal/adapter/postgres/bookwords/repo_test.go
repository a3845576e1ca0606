package bookwords_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/readwell/readwell-backend/internal/adapter/postgres/bookwords"
	"github.com/readwell/readwell-backend/internal/adapter/postgres/testhelper"
	"github.com/readwell/readwell-backend/internal/domain"
)

func newRepo(t *testing.T) (*bookwords.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return bookwords.New(pool), pool
}

// ---------------------------------------------------------------------------
// Books
// ---------------------------------------------------------------------------

func TestRepo_GetBook(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedBook(t, pool, 3)

	got, err := repo.GetBook(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("GetBook: unexpected error: %v", err)
	}
	if got.Title != seeded.Title {
		t.Errorf("Title = %q, want %q", got.Title, seeded.Title)
	}
	if got.VersionCount != 3 {
		t.Errorf("VersionCount = %d, want 3", got.VersionCount)
	}
}

func TestRepo_GetBook_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetBook(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetBook(missing) = %v, want ErrNotFound", err)
	}
}

func TestRepo_UpsertBook(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	book := domain.Book{ID: uuid.New(), Title: "First Title", VersionCount: 1}
	if err := repo.UpsertBook(ctx, book); err != nil {
		t.Fatalf("UpsertBook insert: unexpected error: %v", err)
	}

	book.Title = "Second Title"
	book.VersionCount = 2
	if err := repo.UpsertBook(ctx, book); err != nil {
		t.Fatalf("UpsertBook update: unexpected error: %v", err)
	}

	got, err := repo.GetBook(ctx, book.ID)
	if err != nil {
		t.Fatalf("GetBook: unexpected error: %v", err)
	}
	if got.Title != "Second Title" || got.VersionCount != 2 {
		t.Errorf("after upsert: %+v", got)
	}
}

// ---------------------------------------------------------------------------
// Version word lists
// ---------------------------------------------------------------------------

func TestRepo_GetVersionWordLists(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	book := testhelper.SeedBook(t, pool, 2)
	testhelper.SeedVersionWords(t, pool, book.ID, 1,
		[]string{"harbor", "lantern", "meadow"},
		[]string{"lantern"},
		[]string{"meadow"},
	)

	lists, err := repo.GetVersionWordLists(ctx, book.ID, 1)
	if err != nil {
		t.Fatalf("GetVersionWordLists: unexpected error: %v", err)
	}

	wantOrder := []string{"harbor", "lantern", "meadow"}
	if !reflect.DeepEqual(lists.AllWordsInOrder, wantOrder) {
		t.Errorf("AllWordsInOrder = %v, want %v", lists.AllWordsInOrder, wantOrder)
	}
	if !lists.HasWord("harbor") {
		t.Error("AllWords missing harbor")
	}
	if _, ok := lists.GlossaryWords["lantern"]; !ok {
		t.Error("GlossaryWords missing lantern")
	}
	if _, ok := lists.NewWords["meadow"]; !ok {
		t.Error("NewWords missing meadow")
	}
}

func TestRepo_GetVersionWordLists_EmptyVersion(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)

	book := testhelper.SeedBook(t, pool, 1)

	lists, err := repo.GetVersionWordLists(context.Background(), book.ID, 0)
	if err != nil {
		t.Fatalf("GetVersionWordLists: unexpected error: %v", err)
	}
	if len(lists.AllWords) != 0 || len(lists.AllWordsInOrder) != 0 {
		t.Errorf("expected empty lists, got %+v", lists)
	}
}

func TestRepo_GetVersionWordLists_VersionOutOfRange(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)

	book := testhelper.SeedBook(t, pool, 2)

	_, err := repo.GetVersionWordLists(context.Background(), book.ID, 2)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetVersionWordLists(version 2 of 2) = %v, want ErrNotFound", err)
	}
}

func TestRepo_ReplaceVersionWords(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	book := testhelper.SeedBook(t, pool, 1)
	testhelper.SeedVersionWords(t, pool, book.ID, 0, []string{"old", "stale"}, nil, nil)

	err := repo.ReplaceVersionWords(ctx, book.ID, 0, []bookwords.VersionWord{
		{Word: "fresh", InGlossary: true},
		{Word: "crisp"},
	})
	if err != nil {
		t.Fatalf("ReplaceVersionWords: unexpected error: %v", err)
	}

	lists, err := repo.GetVersionWordLists(ctx, book.ID, 0)
	if err != nil {
		t.Fatalf("GetVersionWordLists: unexpected error: %v", err)
	}
	wantOrder := []string{"fresh", "crisp"}
	if !reflect.DeepEqual(lists.AllWordsInOrder, wantOrder) {
		t.Errorf("AllWordsInOrder = %v, want %v", lists.AllWordsInOrder, wantOrder)
	}
	if _, ok := lists.GlossaryWords["fresh"]; !ok {
		t.Error("GlossaryWords missing fresh")
	}
	if lists.HasWord("old") {
		t.Error("old word list survived the replace")
	}
}

// ---------------------------------------------------------------------------
// Customizations
// ---------------------------------------------------------------------------

func TestRepo_CustomizationWords(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	book := testhelper.SeedBook(t, pool, 1)
	userID := uuid.New()

	got, err := repo.GetCustomizationWords(ctx, book.ID, userID)
	if err != nil {
		t.Fatalf("GetCustomizationWords: unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no customization, got %v", got)
	}

	if err := repo.ReplaceCustomizationWords(ctx, book.ID, userID, []string{"zephyr", "anchor"}); err != nil {
		t.Fatalf("ReplaceCustomizationWords: unexpected error: %v", err)
	}

	got, err = repo.GetCustomizationWords(ctx, book.ID, userID)
	if err != nil {
		t.Fatalf("GetCustomizationWords: unexpected error: %v", err)
	}
	// Returned in alphabetical order.
	if !reflect.DeepEqual(got, []string{"anchor", "zephyr"}) {
		t.Errorf("words = %v, want [anchor zephyr]", got)
	}

	if err := repo.ReplaceCustomizationWords(ctx, book.ID, userID, []string{"harbor"}); err != nil {
		t.Fatalf("ReplaceCustomizationWords: unexpected error: %v", err)
	}
	got, err = repo.GetCustomizationWords(ctx, book.ID, userID)
	if err != nil {
		t.Fatalf("GetCustomizationWords: unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"harbor"}) {
		t.Errorf("words after replace = %v, want [harbor]", got)
	}
}

// ---------------------------------------------------------------------------
// View tracking
// ---------------------------------------------------------------------------

func TestRepo_ViewTracking(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	book := testhelper.SeedBook(t, pool, 1)
	userID := uuid.New()

	count, err := repo.GetViewCount(ctx, userID, book.ID)
	if err != nil {
		t.Fatalf("GetViewCount: unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("initial view count = %d, want 0", count)
	}

	for i := 0; i < 2; i++ {
		if err := repo.RecordView(ctx, userID, book.ID); err != nil {
			t.Fatalf("RecordView[%d]: unexpected error: %v", i, err)
		}
	}

	count, err = repo.GetViewCount(ctx, userID, book.ID)
	if err != nil {
		t.Fatalf("GetViewCount: unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("view count = %d, want 2", count)
	}

	// Another user's views are separate.
	count, err = repo.GetViewCount(ctx, uuid.New(), book.ID)
	if err != nil {
		t.Fatalf("GetViewCount other user: unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("other user's view count = %d, want 0", count)
	}
}
