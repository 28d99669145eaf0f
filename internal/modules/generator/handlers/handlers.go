// Package handlers provides HTTP handlers for the generation endpoints the
// dashboard calls.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/aristath/lottolab/internal/domain"
	"github.com/aristath/lottolab/internal/modules/generator"
)

// Handler provides HTTP handlers for variant listing, strategy listing, and
// batch generation.
type Handler struct {
	service *generator.Service
	log     zerolog.Logger
}

// NewHandler creates a new generation handler.
func NewHandler(service *generator.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "generator").Logger(),
	}
}

// HandleListVariants handles GET /api/variants
func (h *Handler) HandleListVariants(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.ListVariants())
}

// HandleListStrategies handles GET /api/strategies?variant=<name>
func (h *Handler) HandleListStrategies(w http.ResponseWriter, r *http.Request) {
	variant := r.URL.Query().Get("variant")
	strategies, err := h.service.ListStrategies(variant)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, strategies)
}

// HandleGenerate handles POST /api/generate
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generator.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad_request", Message: "invalid JSON body"})
		return
	}
	if req.Count < 1 {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "bad_request", Message: "count must be >= 1"})
		return
	}

	batch, err := h.service.Generate(req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"combinations": batch,
		"batch_id":     batch[0].BatchID,
	})
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError maps the core error taxonomy onto named JSON errors with
// specific status codes. Core failures are always surfaced by name, never
// replaced with an empty or substitute result.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var (
		invalidParam *domain.InvalidParameterError
		exhausted    *domain.ExhaustedPoolError
		invariant    *domain.InvariantViolationError
	)

	switch {
	case errors.Is(err, domain.ErrUnknownVariant):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown_variant", Message: err.Error()})
	case errors.Is(err, domain.ErrUnknownStrategy):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "unknown_strategy", Message: err.Error()})
	case errors.As(err, &invalidParam):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: "invalid_parameter", Message: err.Error()})
	case errors.As(err, &exhausted):
		writeJSON(w, http.StatusConflict, errorBody{Error: "exhausted_pool", Message: err.Error()})
	case errors.As(err, &invariant):
		h.log.Error().Err(err).Msg("Strategy produced an invalid combination")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "invariant_violation", Message: err.Error()})
	default:
		h.log.Error().Err(err).Msg("Generation request failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal_error", Message: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
