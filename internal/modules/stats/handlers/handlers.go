// Package handlers provides HTTP handlers for the statistics endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/lottolab/internal/domain"
	"github.com/aristath/lottolab/internal/modules/stats"
)

// Handler provides HTTP handlers for statistics snapshots.
type Handler struct {
	service *stats.Service
	log     zerolog.Logger
}

// NewHandler creates a new stats handler.
func NewHandler(service *stats.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "stats").Logger(),
	}
}

// HandleGetStats handles GET /api/stats/{variant}
func (h *Handler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Get(chi.URLParam(r, "variant"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// HandleRefreshStats handles POST /api/stats/{variant}/refresh
func (h *Handler) HandleRefreshStats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.service.Refresh(chi.URLParam(r, "variant"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrUnknownVariant) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown_variant", "message": err.Error()})
		return
	}
	h.log.Error().Err(err).Msg("Stats request failed")
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error", "message": "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
