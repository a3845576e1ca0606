package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/readwell/readwell-backend/internal/domain"
	"github.com/readwell/readwell-backend/pkg/ctxutil"
)

type selectionService interface {
	ChooseCueWords(ctx context.Context, userID, bookID uuid.UUID, version int) (map[string][]string, error)
	ChooseChecklistWords(ctx context.Context, userID, bookID uuid.UUID) ([]string, error)
	RecordBookView(ctx context.Context, userID, bookID uuid.UUID) error
}

type cueRecorder interface {
	RecordCues(ctx context.Context, userID uuid.UUID, words []string)
}

// BooksHandler serves per-book word selection endpoints.
type BooksHandler struct {
	selection selectionService
	vocab     cueRecorder
	log       *slog.Logger
}

// NewBooksHandler creates a BooksHandler.
func NewBooksHandler(log *slog.Logger, selection selectionService, vocab cueRecorder) *BooksHandler {
	return &BooksHandler{
		selection: selection,
		vocab:     vocab,
		log:       log.With("handler", "books"),
	}
}

type cueWordsResponse struct {
	// Words maps each selected base form to every inflection that should be
	// highlighted in the text.
	Words map[string][]string `json:"words"`
}

// CueWords returns the words to visually cue in one version of a book, keyed
// by base form. Each returned word is recorded as a cue exposure.
func (h *BooksHandler) CueWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, h.log, domain.ErrUnauthorized)
		return
	}

	bookID, err := pathUUID(r, "bookID")
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	version, err := strconv.Atoi(r.PathValue("version"))
	if err != nil {
		writeError(w, h.log, domain.NewValidationError("version", "must be an integer"))
		return
	}

	words, err := h.selection.ChooseCueWords(r.Context(), userID, bookID, version)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	bases := make([]string, 0, len(words))
	for base := range words {
		bases = append(bases, base)
	}
	h.vocab.RecordCues(r.Context(), userID, bases)

	writeJSON(w, http.StatusOK, cueWordsResponse{Words: words})
}

type checklistResponse struct {
	Words []string `json:"words"`
}

// Checklist returns the self-assessment vocabulary checklist for a book.
// Empty once the reader has opened the book.
func (h *BooksHandler) Checklist(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, h.log, domain.ErrUnauthorized)
		return
	}

	bookID, err := pathUUID(r, "bookID")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	words, err := h.selection.ChooseChecklistWords(r.Context(), userID, bookID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if words == nil {
		words = []string{}
	}

	writeJSON(w, http.StatusOK, checklistResponse{Words: words})
}

// RecordView marks the book as opened by the reader.
func (h *BooksHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, h.log, domain.ErrUnauthorized)
		return
	}

	bookID, err := pathUUID(r, "bookID")
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.selection.RecordBookView(r.Context(), userID, bookID); err != nil {
		writeError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathUUID parses a UUID path segment registered with the given name.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(name, "must be a UUID")
	}
	return id, nil
}
