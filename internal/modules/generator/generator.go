// Package generator orchestrates repeated strategy invocation into batches
// of unique combinations, and exposes the single call contract the dashboard
// consumes.
package generator

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"github.com/aristath/lottolab/internal/domain"
	"github.com/aristath/lottolab/internal/modules/strategy"
)

// DefaultMaxAttempts bounds retries per batch slot when the caller does not
// supply a budget. It is the sole guard against unbounded looping when the
// pool is too small for the requested uniqueness constraints.
const DefaultMaxAttempts = 100

// Request describes one batch generation call. History and Exclusions are
// owned by the caller and never mutated.
type Request struct {
	Variant     domain.Variant
	Strategy    string
	Params      strategy.Params
	Count       int
	History     []domain.Draw
	Exclusions  map[string]struct{} // canonical main-number keys (domain.MainKeyFor)
	MaxAttempts int                 // per slot; DefaultMaxAttempts when 0
}

// BatchGenerator produces batches of combinations with pairwise-distinct
// main-number sets, also distinct from the caller's exclusion set.
type BatchGenerator struct {
	engine *strategy.Engine
	log    zerolog.Logger
}

// NewBatchGenerator creates a batch generator on top of the strategy engine.
func NewBatchGenerator(engine *strategy.Engine, log zerolog.Logger) *BatchGenerator {
	return &BatchGenerator{
		engine: engine,
		log:    log.With().Str("component", "batch_generator").Logger(),
	}
}

// Generate produces exactly req.Count combinations or fails. Slots are
// filled strictly sequentially: later slots depend on the growing in-batch
// exclusion set, so this loop must not be parallelized.
//
// Error behaviour:
//   - UnknownStrategy / InvalidParameter surface before any sampling.
//   - A strategy returning an invalid combination fails the whole call with
//     InvariantViolationError; there is no silent fallback sampler.
//   - Collision retries exhausting the per-slot budget fail with
//     ExhaustedPoolError, never a short or duplicated batch.
func (g *BatchGenerator) Generate(req Request, rng *rand.Rand) ([]domain.Combination, error) {
	if req.Count < 0 {
		return nil, fmt.Errorf("count must not be negative, got %d", req.Count)
	}
	maxAttempts := req.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	strat, params, err := g.engine.Prepare(req.Strategy, req.Params)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(req.Exclusions)+req.Count)
	for key := range req.Exclusions {
		seen[key] = struct{}{}
	}

	batch := make([]domain.Combination, 0, req.Count)
	for slot := 0; slot < req.Count; slot++ {
		filled := false
		for attempt := 0; attempt < maxAttempts; attempt++ {
			ctx := &strategy.Context{
				Variant: req.Variant,
				Params:  params,
				History: req.History,
				Batch:   batch,
				Rng:     rng,
			}
			candidate, err := strat.Generate(ctx)
			if err != nil {
				return nil, fmt.Errorf("strategy %q failed on slot %d: %w", req.Strategy, slot, err)
			}
			candidate, err = strategy.Finalize(strat, candidate, req.Variant)
			if err != nil {
				return nil, err
			}

			key := candidate.MainKey()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			batch = append(batch, candidate)
			filled = true
			break
		}
		if !filled {
			return nil, &domain.ExhaustedPoolError{
				Variant:     req.Variant.Name,
				Strategy:    req.Strategy,
				Requested:   req.Count,
				Produced:    len(batch),
				MaxAttempts: maxAttempts,
			}
		}
	}

	return batch, nil
}
