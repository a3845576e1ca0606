package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/readwell/readwell-backend/internal/service/simplify"
	"github.com/readwell/readwell-backend/pkg/ctxutil"
)

type simplifyService interface {
	Simplify(ctx context.Context, userID uuid.UUID, text string, percent int) (*simplify.Result, error)
}

// SimplifyHandler serves the text simplification endpoint.
type SimplifyHandler struct {
	svc simplifyService
	log *slog.Logger
}

// NewSimplifyHandler creates a SimplifyHandler.
func NewSimplifyHandler(log *slog.Logger, svc simplifyService) *SimplifyHandler {
	return &SimplifyHandler{
		svc: svc,
		log: log.With("handler", "simplify"),
	}
}

type simplifyRequest struct {
	Text string `json:"text"`
	// Percent of distinct words to attempt to replace. 0 selects the
	// configured default.
	Percent int `json:"percent,omitempty"`
}

// Simplify rewrites hard words in the submitted text with easier synonyms.
// Works for anonymous readers too; signed-in readers get words they already
// know skipped.
func (h *SimplifyHandler) Simplify(w http.ResponseWriter, r *http.Request) {
	var req simplifyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	userID, _ := ctxutil.UserIDFromCtx(r.Context()) // uuid.Nil when anonymous

	result, err := h.svc.Simplify(r.Context(), userID, req.Text, req.Percent)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
