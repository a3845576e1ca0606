package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/readwell/readwell-backend/internal/domain"
	"github.com/readwell/readwell-backend/internal/service/definitions"
	"github.com/readwell/readwell-backend/pkg/ctxutil"
)

type vocabService interface {
	RecordLookup(ctx context.Context, userID uuid.UUID, word string, cued bool) error
	RecordRating(ctx context.Context, userID uuid.UUID, word string, value int) error
	RemoveFromWordBank(ctx context.Context, userID uuid.UUID, word string) error
}

type definitionService interface {
	Lookup(ctx context.Context, bookID uuid.UUID, word string) (*definitions.Result, error)
}

// WordsHandler serves per-word endpoints: dictionary lookup, self-rating, and
// word bank removal.
type WordsHandler struct {
	vocab vocabService
	defs  definitionService
	log   *slog.Logger
}

// NewWordsHandler creates a WordsHandler.
func NewWordsHandler(log *slog.Logger, vocab vocabService, defs definitionService) *WordsHandler {
	return &WordsHandler{
		vocab: vocab,
		defs:  defs,
		log:   log.With("handler", "words"),
	}
}

type lookupRequest struct {
	Word   string    `json:"word"`
	BookID uuid.UUID `json:"book_id,omitempty"`
	Cued   bool      `json:"cued,omitempty"`
}

// Lookup resolves a definition and, for signed-in readers, records the lookup
// event against their word knowledge. Anonymous readers still get definitions.
func (h *WordsHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req lookupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	if userID, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		// A failed event must not block the definition the reader asked for.
		if err := h.vocab.RecordLookup(r.Context(), userID, req.Word, req.Cued); err != nil {
			h.log.Warn("lookup event failed",
				slog.String("word", req.Word),
				slog.String("error", err.Error()),
			)
		}
	}

	result, err := h.defs.Lookup(r.Context(), req.BookID, req.Word)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type ratingRequest struct {
	Word   string `json:"word"`
	Rating int    `json:"rating"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// Rate records a reader's self-rating (0-3) for a word.
func (h *WordsHandler) Rate(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, h.log, domain.ErrUnauthorized)
		return
	}

	var req ratingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.vocab.RecordRating(r.Context(), userID, req.Word, req.Rating); err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

type bankRemoveRequest struct {
	Word string `json:"word"`
}

// RemoveFromBank resets the reader's interest in a word so it stops appearing
// in their word bank. Lookup history and ratings are kept.
func (h *WordsHandler) RemoveFromBank(w http.ResponseWriter, r *http.Request) {
	userID, ok := ctxutil.UserIDFromCtx(r.Context())
	if !ok {
		writeError(w, h.log, domain.ErrUnauthorized)
		return
	}

	var req bankRemoveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.vocab.RemoveFromWordBank(r.Context(), userID, req.Word); err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
