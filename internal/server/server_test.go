package server

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

	"github.com/aristath/lottolab/internal/modules/draws"
	drawshandlers "github.com/aristath/lottolab/internal/modules/draws/handlers"
	"github.com/aristath/lottolab/internal/modules/generator"
	generatorhandlers "github.com/aristath/lottolab/internal/modules/generator/handlers"
	"github.com/aristath/lottolab/internal/modules/pool"
	"github.com/aristath/lottolab/internal/modules/stats"
	statshandlers "github.com/aristath/lottolab/internal/modules/stats/handlers"
	"github.com/aristath/lottolab/internal/modules/strategy"
	testingpkg "github.com/aristath/lottolab/internal/testing"
)

// newTestServer wires the full stack against temporary databases, the same
// way main does.
func newTestServer(t *testing.T) (*Server, func()) {
	t.Helper()

	historyDB, cleanupHistory := testingpkg.NewTestDB(t, "history")
	combosDB, cleanupCombos := testingpkg.NewTestDB(t, "combinations")
	cacheDB, cleanupCache := testingpkg.NewTestDB(t, "cache")

	log := zerolog.Nop()
	registry := pool.NewRegistry()
	engine := strategy.NewEngine(log)
	drawRepo := draws.NewRepository(historyDB.Conn(), registry, log)
	comboRepo := draws.NewComboRepository(combosDB.Conn(), log)
	statsService := stats.NewService(cacheDB.Conn(), registry, drawRepo, log)
	generatorService := generator.NewService(generator.ServiceConfig{
		Registry: registry,
		Engine:   engine,
		History:  drawRepo,
		Store:    comboRepo,
		NewRng:   func() *rand.Rand { return rand.New(rand.NewSource(1)) },
		Log:      log,
	})

	srv := New(Config{
		Log:               log,
		Port:              0,
		HistoryDB:         historyDB,
		CombinationsDB:    combosDB,
		CacheDB:           cacheDB,
		GeneratorHandlers: generatorhandlers.NewHandler(generatorService, log),
		DrawsHandlers:     drawshandlers.NewHandler(drawRepo, comboRepo, log),
		StatsHandlers:     statshandlers.NewHandler(statsService, log),
		SystemHandlers:    NewSystemHandlers(log, historyDB, combosDB, cacheDB),
	})

	return srv, func() {
		cleanupHistory()
		cleanupCombos()
		cleanupCache()
	}
}

func TestRoutesEndToEnd(t *testing.T) {
	srv, cleanup := newTestServer(t)
	defer cleanup()
	router := srv.Router()

	get := func(target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec
	}
	post := func(target, body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))
		return rec
	}

	t.Run("variants", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get("/api/variants").Code)
	})

	t.Run("strategies", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get("/api/strategies?variant=euromillions").Code)
		assert.Equal(t, http.StatusNotFound, get("/api/strategies?variant=powerball").Code)
	})

	t.Run("ingest then generate then list", func(t *testing.T) {
		rec := post("/api/draws/euromillions",
			`{"date":"2025-06-20","main_numbers":[3,17,22,41,48],"secondary_numbers":[2,9]}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = post("/api/generate",
			`{"variant":"euromillions","strategy":"frequency_analysis","count":2}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var generated map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &generated))
		assert.Len(t, generated["combinations"], 2)

		rec = get("/api/combinations?variant=euromillions")
		require.Equal(t, http.StatusOK, rec.Code)
		var listed map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
		assert.Equal(t, float64(2), listed["count"])
	})

	t.Run("stats", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, get("/api/stats/euromillions").Code)
		assert.Equal(t, http.StatusOK, post("/api/stats/euromillions/refresh", "").Code)
	})

	t.Run("health", func(t *testing.T) {
		rec := get("/api/system/health")
		require.Equal(t, http.StatusOK, rec.Code)

		var health map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
		assert.Equal(t, "ok", health["status"])
		databases := health["databases"].(map[string]interface{})
		assert.Equal(t, "ok", databases["history"])
		assert.Equal(t, "ok", databases["combinations"])
		assert.Equal(t, "ok", databases["cache"])
	})

	t.Run("version", func(t *testing.T) {
		rec := get("/api/system/version")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "version")
	})

	t.Run("unknown route", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get("/api/nonsense").Code)
	})
}
