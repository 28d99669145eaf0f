// Package handlers provides HTTP handlers for draw history management.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/aristath/lottolab/internal/domain"
	"github.com/aristath/lottolab/internal/modules/draws"
)

// Handler provides HTTP handlers for draw ingestion and history listing.
type Handler struct {
	repo   *draws.Repository
	combos *draws.ComboRepository
	log    zerolog.Logger
}

// NewHandler creates a new draws handler.
func NewHandler(repo *draws.Repository, combos *draws.ComboRepository, log zerolog.Logger) *Handler {
	return &Handler{
		repo:   repo,
		combos: combos,
		log:    log.With().Str("handler", "draws").Logger(),
	}
}

// HandleGetHistory handles GET /api/draws/{variant}?limit=<n>
func (h *Handler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	variant := chi.URLParam(r, "variant")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad_request", Message: "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	history, err := h.repo.LoadHistory(variant, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"variant": variant,
		"draws":   history,
		"count":   len(history),
	})
}

// addDrawRequest is the ingestion body for one historical draw.
type addDrawRequest struct {
	Date             string `json:"date"` // YYYY-MM-DD
	MainNumbers      []int  `json:"main_numbers"`
	SecondaryNumbers []int  `json:"secondary_numbers"`
}

// HandleAddDraw handles POST /api/draws/{variant}
//
// Invalid records are quarantined and reported with 422 so importers can see
// exactly what was rejected; they are never clamped into range.
func (h *Handler) HandleAddDraw(w http.ResponseWriter, r *http.Request) {
	variant := chi.URLParam(r, "variant")

	var req addDrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad_request", Message: "invalid JSON body"})
		return
	}

	draw := domain.Draw{
		Variant:          variant,
		MainNumbers:      req.MainNumbers,
		SecondaryNumbers: req.SecondaryNumbers,
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad_request", Message: "date must be YYYY-MM-DD"})
			return
		}
		draw.Date = date
	}

	result, err := h.repo.Add(draw)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if result.Quarantined {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":       "invalid_draw",
			"quarantined": true,
			"violations":  result.Violations,
		})
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// HandleListCombinations handles GET /api/combinations?variant=&strategy=&limit=
func (h *Handler) HandleListCombinations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad_request", Message: "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	combos, err := h.combos.List(draws.ListFilter{
		Variant:  r.URL.Query().Get("variant"),
		Strategy: r.URL.Query().Get("strategy"),
		Limit:    limit,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list combinations")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal_error", Message: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"combinations": combos,
		"count":        len(combos),
	})
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrUnknownVariant) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown_variant", Message: err.Error()})
		return
	}
	if errors.Is(err, domain.ErrDuplicateDraw) {
		writeJSON(w, http.StatusConflict, errorBody{Error: "duplicate_draw", Message: err.Error()})
		return
	}
	h.log.Error().Err(err).Msg("Draw request failed")
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal_error", Message: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
