// Command loadbook imports a book manifest into the database: the book row,
// the per-version word lists derived from each version's text, and the
// author's glossary. Re-running with the same book ID replaces the stored
// lists, so the tool is safe to use for updates.
//
// Manifest format (JSON):
//
//	{
//	  "id": "4b94…",              // optional; generated when absent
//	  "title": "The Time Machine",
//	  "versions": [               // index 0 is the simplest version
//	    {"text": "…full text of the simplest version…"},
//	    {"text": "…full text of the next version…"}
//	  ],
//	  "glossary": {"word": "definition", …}
//	}
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/readwell/readwell-backend/internal/adapter/postgres"
	"github.com/readwell/readwell-backend/internal/adapter/postgres/bookwords"
	"github.com/readwell/readwell-backend/internal/adapter/postgres/glossary"
	"github.com/readwell/readwell-backend/internal/app"
	"github.com/readwell/readwell-backend/internal/config"
	"github.com/readwell/readwell-backend/internal/domain"
	"github.com/readwell/readwell-backend/internal/lexicon"
)

type manifest struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Versions []manifestVersion `json:"versions"`
	Glossary map[string]string `json:"glossary"`
}

type manifestVersion struct {
	Text string `json:"text"`
}

func main() {
	var path string
	flag.StringVar(&path, "file", "", "path to the book manifest JSON (required)")
	flag.Parse()

	if path == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	m, err := readManifest(path)
	if err != nil {
		logger.Error("read manifest", slog.String("error", err.Error()))
		os.Exit(1)
	}

	bookID := uuid.New()
	if m.ID != "" {
		bookID, err = uuid.Parse(m.ID)
		if err != nil {
			logger.Error("invalid book id", slog.String("id", m.ID))
			os.Exit(1)
		}
	}

	lex, err := lexicon.New(lexicon.Options{
		WordNetPath:   cfg.Lexicon.WordNetPath,
		FrequencyPath: cfg.Lexicon.FrequencyPath,
	})
	if err != nil {
		logger.Error("build lexicon", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	bookRepo := bookwords.New(pool)
	glossaryRepo := glossary.New(pool)
	txm := postgres.NewTxManager(pool)

	versions := buildVersionLists(lex, m)

	book := domain.Book{
		ID:           bookID,
		Title:        m.Title,
		VersionCount: len(m.Versions),
	}

	err = txm.RunInTx(ctx, func(ctx context.Context) error {
		if err := bookRepo.UpsertBook(ctx, book); err != nil {
			return err
		}
		for v, words := range versions {
			if err := bookRepo.ReplaceVersionWords(ctx, bookID, v, words); err != nil {
				return err
			}
		}
		return glossaryRepo.UpsertEntries(ctx, bookID, m.Glossary)
	})
	if err != nil {
		logger.Error("import failed",
			slog.String("book_id", bookID.String()),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	logger.Info("book imported",
		slog.String("book_id", bookID.String()),
		slog.String("title", m.Title),
		slog.Int("versions", len(m.Versions)),
		slog.Int("glossary_entries", len(m.Glossary)),
	)
}

func readManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// buildVersionLists derives the stored word list for each version: distinct
// base forms in first-occurrence order, flagged for glossary membership and
// for being "new" relative to the simplest version (index 0).
func buildVersionLists(lex *lexicon.Lexicon, m *manifest) [][]bookwords.VersionWord {
	glossaryBases := make(map[string]struct{}, len(m.Glossary))
	for word := range m.Glossary {
		glossaryBases[lex.BaseForm(strings.ToLower(word))] = struct{}{}
	}

	lists := make([][]bookwords.VersionWord, len(m.Versions))
	var simplest map[string]struct{}

	for v, version := range m.Versions {
		bases := scanBaseForms(lex, version.Text)
		if v == 0 {
			simplest = make(map[string]struct{}, len(bases))
			for _, b := range bases {
				simplest[b] = struct{}{}
			}
		}

		words := make([]bookwords.VersionWord, 0, len(bases))
		for _, b := range bases {
			_, inGlossary := glossaryBases[b]
			_, inSimplest := simplest[b]
			words = append(words, bookwords.VersionWord{
				Word:       b,
				InGlossary: inGlossary,
				IsNew:      v > 0 && !inSimplest,
			})
		}
		lists[v] = words
	}

	return lists
}

// scanBaseForms extracts the distinct base forms of a text in
// first-occurrence order.
func scanBaseForms(lex *lexicon.Lexicon, text string) []string {
	seen := make(map[string]struct{})
	var out []string

	for _, raw := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\'' && r != '-'
	}) {
		word := strings.ToLower(strings.Trim(raw, "'-"))
		if word == "" {
			continue
		}
		base := lex.BaseForm(word)
		if _, dup := seen[base]; dup {
			continue
		}
		seen[base] = struct{}{}
		out = append(out, base)
	}

	return out
}
