package strategy

import (
	"github.com/aristath/lottolab/internal/domain"
	"github.com/aristath/lottolab/internal/modules/pool"
)

// Coverage maximizes domain coverage across a whole batch rather than
// per-combination quality: numbers underrepresented in the combinations
// generated so far (ctx.Batch) get heavier weights. The balance parameter
// blends coverage pressure against historical frequency.
type Coverage struct{}

func (s *Coverage) Name() string  { return "coverage_optimization" }
func (s *Coverage) Label() string { return "Coverage Optimization" }

func (s *Coverage) ParamSpecs() []ParamSpec {
	return []ParamSpec{
		{
			Name:        "balance",
			Kind:        ParamFloat,
			Min:         0,
			Max:         1,
			Default:     0.6,
			Description: "1 weights purely for batch coverage, 0 purely for historical frequency",
		},
	}
}

func (s *Coverage) Generate(ctx *Context) (domain.Combination, error) {
	v := ctx.Variant
	balance := ctx.Params.Float("balance")

	mainUsage := make(map[int]int, v.MainMax)
	secondaryUsage := make(map[int]int, v.SecondaryMax)
	for _, c := range ctx.Batch {
		for _, n := range c.MainNumbers {
			mainUsage[n]++
		}
		for _, n := range c.SecondaryNumbers {
			secondaryUsage[n]++
		}
	}

	freqMain, freqSecondary := pool.WeightedFrequency(v, ctx.History, 0)

	main, err := weightedSample(ctx.Rng, s.coverageWeights(v.MainMax, mainUsage, freqMain, balance), v.MainCount)
	if err != nil {
		return domain.Combination{}, err
	}
	secondary, err := weightedSample(ctx.Rng, s.coverageWeights(v.SecondaryMax, secondaryUsage, freqSecondary, balance), v.SecondaryCount)
	if err != nil {
		return domain.Combination{}, err
	}
	return domain.Combination{MainNumbers: main, SecondaryNumbers: secondary}, nil
}

// coverageWeights blends 1/(1+timesUsedInBatch) with normalized historical
// frequency. Numbers the batch has not touched yet carry full coverage
// weight, so the output set spreads across the domain.
func (s *Coverage) coverageWeights(max int, usage map[int]int, freq map[int]float64, balance float64) map[int]float64 {
	maxFreq := 0.0
	for _, f := range freq {
		if f > maxFreq {
			maxFreq = f
		}
	}

	weights := make(map[int]float64, max)
	for n := 1; n <= max; n++ {
		coverage := 1.0 / float64(1+usage[n])
		frequency := 0.0
		if maxFreq > 0 {
			frequency = freq[n] / maxFreq
		}
		weights[n] = balance*coverage + (1-balance)*frequency
	}
	return weights
}
