// Package v1handler implements the v1 HTTP endpoints of the credential
// checker service.
package v1handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"checker/internal/checker"
	"checker/pkg/logger"
	"checker/pkg/serrors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Deps holds the dependencies required by the v1 handlers.
type Deps struct {
	Checker checker.Checker
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Routes returns the v1 route tree.
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/check", h.CheckBatch)

	return router
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps a semantic error to its HTTP status. Anything without a
// client-facing kind is reported as an opaque internal error.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	msg := err.Error()

	switch {
	case errors.Is(err, serrors.ErrBadRequest):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
	case errors.Is(err, serrors.ErrCancelled):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: msg})
	default:
		logger.Error(r.Context(), "request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
