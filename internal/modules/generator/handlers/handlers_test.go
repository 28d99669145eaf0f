package handlers

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/lottolab/internal/domain"
	"github.com/aristath/lottolab/internal/modules/generator"
	"github.com/aristath/lottolab/internal/modules/pool"
	"github.com/aristath/lottolab/internal/modules/strategy"
)

type emptyHistory struct{}

func (emptyHistory) LoadHistory(string, int) ([]domain.Draw, error) { return nil, nil }

func newTestHandler() *Handler {
	svc := generator.NewService(generator.ServiceConfig{
		Registry: pool.NewRegistry(),
		Engine:   strategy.NewEngine(zerolog.Nop()),
		History:  emptyHistory{},
		NewRng:   func() *rand.Rand { return rand.New(rand.NewSource(7)) },
		Log:      zerolog.Nop(),
	})
	return NewHandler(svc, zerolog.Nop())
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleListVariants(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/variants", nil)
	rec := httptest.NewRecorder()
	h.HandleListVariants(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var variants []domain.Variant
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &variants))
	require.Len(t, variants, 2)
	assert.Equal(t, "euromillions", variants[0].Name)
}

func TestHandleListStrategies(t *testing.T) {
	h := newTestHandler()

	t.Run("known variant", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/strategies?variant=euromillions", nil)
		rec := httptest.NewRecorder()
		h.HandleListStrategies(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var infos []strategy.Info
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
		assert.Len(t, infos, 7)
	})

	t.Run("unknown variant returns named 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/strategies?variant=powerball", nil)
		rec := httptest.NewRecorder()
		h.HandleListStrategies(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "unknown_variant", body["error"])
		assert.Contains(t, body["message"], "powerball")
	})
}

func TestHandleGenerate(t *testing.T) {
	h := newTestHandler()

	post := func(payload string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		h.HandleGenerate(rec, req)
		return rec
	}

	t.Run("success", func(t *testing.T) {
		rec := post(`{"variant":"euromillions","strategy":"uniform_random","count":3}`)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.NotEmpty(t, body["batch_id"])
		combos := body["combinations"].([]interface{})
		assert.Len(t, combos, 3)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		rec := post(`{not json`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "bad_request", decodeBody(t, rec)["error"])
	})

	t.Run("count below one", func(t *testing.T) {
		rec := post(`{"variant":"euromillions","strategy":"uniform_random","count":0}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown variant", func(t *testing.T) {
		rec := post(`{"variant":"powerball","strategy":"uniform_random","count":1}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "unknown_variant", decodeBody(t, rec)["error"])
	})

	t.Run("unknown strategy", func(t *testing.T) {
		rec := post(`{"variant":"euromillions","strategy":"astrology","count":1}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "unknown_strategy", decodeBody(t, rec)["error"])
	})

	t.Run("invalid parameter", func(t *testing.T) {
		rec := post(`{"variant":"euromillions","strategy":"risk_reward","params":{"risk_level":11},"count":1}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "invalid_parameter", body["error"])
		assert.Contains(t, body["message"], "risk_level")
	})

}

func TestHandleGenerateExhaustedPool(t *testing.T) {
	// A registry with a tiny extra variant whose main pool has only three
	// distinct sets, all of them excluded by the request.
	registry := pool.NewRegistry()
	require.NoError(t, registry.Register(domain.Variant{
		Name: "tiny", MainCount: 2, MainMax: 3,
		SecondaryCount: 1, SecondaryMax: 2,
	}))
	svc := generator.NewService(generator.ServiceConfig{
		Registry: registry,
		Engine:   strategy.NewEngine(zerolog.Nop()),
		History:  emptyHistory{},
		NewRng:   func() *rand.Rand { return rand.New(rand.NewSource(7)) },
		Log:      zerolog.Nop(),
	})
	h := NewHandler(svc, zerolog.Nop())

	payload := `{"variant":"tiny","strategy":"uniform_random","count":1,` +
		`"exclusions":[[1,2],[1,3],[2,3]]}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "exhausted_pool", body["error"])
}
