package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/readwell/readwell-backend/internal/adapter/postgres"
	"github.com/readwell/readwell-backend/internal/adapter/postgres/testhelper"
)

// bookExists checks whether a book row with the given ID exists in the database.
func bookExists(t *testing.T, pool *pgxpool.Pool, bookID uuid.UUID) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`,
		bookID,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("bookExists query: %v", err)
	}
	return exists
}

func insertBook(ctx context.Context, q postgres.Querier, bookID uuid.UUID, title string) error {
	_, err := q.Exec(ctx,
		`INSERT INTO books (id, title, version_count, created_at, updated_at)
		 VALUES ($1, $2, 1, now(), now())`,
		bookID, title,
	)
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	bookID := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertBook(ctx, postgres.QuerierFromCtx(ctx, pool), bookID, "Commit Test")
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !bookExists(t, pool, bookID) {
		t.Fatal("expected book to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	bookID := uuid.New()
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if execErr := insertBook(ctx, postgres.QuerierFromCtx(ctx, pool), bookID, "Rollback Test"); execErr != nil {
			t.Fatalf("insert inside tx failed: %v", execErr)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	if bookExists(t, pool, bookID) {
		t.Fatal("expected book NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	bookID := uuid.New()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}

		// Verify data was rolled back.
		if bookExists(t, pool, bookID) {
			t.Fatal("expected book NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertBook(ctx, postgres.QuerierFromCtx(ctx, pool), bookID, "Panic Test"); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_QuerierFromCtx_UsesTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	bookID := uuid.New()

	// Insert inside a transaction, then verify it's visible within the same tx
	// but NOT outside until commit.
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		if err := insertBook(ctx, q, bookID, "Ctx Test"); err != nil {
			return err
		}

		// Should be visible within the transaction.
		var exists bool
		err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, bookID).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			t.Fatal("expected book to be visible within the transaction")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	// After commit, also visible outside.
	if !bookExists(t, pool, bookID) {
		t.Fatal("expected book to exist after committed transaction")
	}
}
