package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/lottolab/internal/domain"
	"github.com/aristath/lottolab/internal/modules/pool"
	"github.com/aristath/lottolab/internal/modules/scoring"
	"github.com/aristath/lottolab/internal/modules/strategy"
)

// HistorySource supplies past draws, ordered most-recent-first. Implemented
// by the draws repository; tests supply fakes.
type HistorySource interface {
	LoadHistory(variant string, limit int) ([]domain.Draw, error)
}

// CombinationStore persists generated batches. Optional; a nil store skips
// persistence.
type CombinationStore interface {
	SaveBatch(combinations []domain.Combination) error
}

// DefaultHistoryLimit caps how many past draws feed the frequency and
// Markov strategies per call.
const DefaultHistoryLimit = 200

// ServiceConfig wires the suggestion service.
type ServiceConfig struct {
	Registry     *pool.Registry
	Engine       *strategy.Engine
	History      HistorySource
	Store        CombinationStore // may be nil
	HistoryLimit int              // DefaultHistoryLimit when 0
	NewRng       func() *rand.Rand
	Log          zerolog.Logger
}

// Service is the core-facing contract exposed to the dashboard: list
// strategies, generate a batch. It owns variant resolution, history loading,
// scoring, and persistence around the batch generator.
type Service struct {
	registry     *pool.Registry
	engine       *strategy.Engine
	batches      *BatchGenerator
	history      HistorySource
	store        CombinationStore
	historyLimit int
	newRng       func() *rand.Rand
	log          zerolog.Logger
}

// NewService creates the suggestion service. When cfg.NewRng is nil a
// time-seeded source is used; tests inject a fixed seed for reproducible
// output.
func NewService(cfg ServiceConfig) *Service {
	newRng := cfg.NewRng
	if newRng == nil {
		newRng = func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}
	}
	historyLimit := cfg.HistoryLimit
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Service{
		registry:     cfg.Registry,
		engine:       cfg.Engine,
		batches:      NewBatchGenerator(cfg.Engine, cfg.Log),
		history:      cfg.History,
		store:        cfg.Store,
		historyLimit: historyLimit,
		newRng:       newRng,
		log:          cfg.Log.With().Str("service", "generator").Logger(),
	}
}

// ListVariants returns the registered game variants.
func (s *Service) ListVariants() []domain.Variant {
	return s.registry.List()
}

// ListStrategies returns the strategies available for a variant, with their
// display labels and accepted parameters. Fails with UnknownVariant for
// unregistered names.
func (s *Service) ListStrategies(variantName string) ([]strategy.Info, error) {
	if _, err := s.registry.Get(variantName); err != nil {
		return nil, err
	}
	return s.engine.List(), nil
}

// GenerateRequest is the dashboard-facing generation call.
type GenerateRequest struct {
	Variant     string          `json:"variant"`
	Strategy    string          `json:"strategy"`
	Params      strategy.Params `json:"params"`
	Count       int             `json:"count"`
	Exclusions  [][]int         `json:"exclusions"` // previously issued main-number sets
	MaxAttempts int             `json:"max_attempts"`
}

// Generate resolves the variant, loads history, runs the batch generator,
// scores and annotates the result, and persists it. All core errors
// propagate as their named types so the HTTP boundary can present them
// specifically.
func (s *Service) Generate(req GenerateRequest) ([]domain.Combination, error) {
	variant, err := s.registry.Get(req.Variant)
	if err != nil {
		return nil, err
	}

	history, err := s.history.LoadHistory(variant.Name, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for %s: %w", variant.Name, err)
	}

	exclusions := make(map[string]struct{}, len(req.Exclusions))
	for _, numbers := range req.Exclusions {
		exclusions[domain.MainKeyFor(numbers)] = struct{}{}
	}

	batch, err := s.batches.Generate(Request{
		Variant:     variant,
		Strategy:    req.Strategy,
		Params:      req.Params,
		Count:       req.Count,
		History:     history,
		Exclusions:  exclusions,
		MaxAttempts: req.MaxAttempts,
	}, s.newRng())
	if err != nil {
		return nil, err
	}

	strat, _ := s.engine.Get(req.Strategy) // already validated by Generate
	batchID := uuid.NewString()
	now := time.Now().UTC()
	for i := range batch {
		batch[i].ID = uuid.NewString()
		batch[i].BatchID = batchID
		batch[i].Score = scoring.Score(batch[i], variant, history)
		batch[i].Rationale = scoring.Explain(batch[i], variant, history, strat.Label())
		batch[i].CreatedAt = now
	}

	if s.store != nil {
		if err := s.store.SaveBatch(batch); err != nil {
			return nil, fmt.Errorf("failed to persist generated batch: %w", err)
		}
	}

	s.log.Info().
		Str("variant", variant.Name).
		Str("strategy", req.Strategy).
		Int("count", len(batch)).
		Str("batch_id", batchID).
		Msg("Generated combination batch")

	return batch, nil
}
