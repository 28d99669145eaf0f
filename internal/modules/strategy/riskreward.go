package strategy

import (
	"sort"

	"github.com/aristath/lottolab/internal/domain"
	"github.com/aristath/lottolab/internal/modules/pool"
)

// RiskReward controls sampling variance with an integer risk_level in
// [1, 10]. Low risk biases toward historically frequent ("safe") numbers;
// high risk inverts the weighting toward rare, high-variance numbers.
// Values outside [1, 10] are rejected at the engine boundary.
type RiskReward struct{}

func (s *RiskReward) Name() string  { return "risk_reward" }
func (s *RiskReward) Label() string { return "Risk/Reward Balance" }

func (s *RiskReward) ParamSpecs() []ParamSpec {
	return []ParamSpec{
		{
			Name:        "risk_level",
			Kind:        ParamInt,
			Min:         1,
			Max:         10,
			Default:     5,
			Description: "1 is conservative (frequent numbers), 10 is risky (rare numbers)",
		},
	}
}

func (s *RiskReward) Generate(ctx *Context) (domain.Combination, error) {
	riskFactor := float64(ctx.Params.Int("risk_level")) / 10.0
	freq := pool.FrequencyTable(ctx.Variant, ctx.History)

	main, err := weightedSample(ctx.Rng, s.riskWeights(ctx, freq.Main, riskFactor), ctx.Variant.MainCount)
	if err != nil {
		return domain.Combination{}, err
	}
	secondary, err := weightedSample(ctx.Rng, s.riskWeights(ctx, freq.Secondary, riskFactor), ctx.Variant.SecondaryCount)
	if err != nil {
		return domain.Combination{}, err
	}
	return domain.Combination{MainNumbers: main, SecondaryNumbers: secondary}, nil
}

// riskWeights converts occurrence counts into sampling weights for the given
// risk factor. Above 0.5 the frequencies are inverted so statistical
// outsiders dominate; at or below 0.5 the frequencies are kept but blended
// with noise proportional to the risk taken. Numbers are visited in ascending
// order so the noise draws consume the rng deterministically.
func (s *RiskReward) riskWeights(ctx *Context, counts map[int]int, riskFactor float64) map[int]float64 {
	total := 0
	numbers := make([]int, 0, len(counts))
	for n, c := range counts {
		total += c
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	weights := make(map[int]float64, len(counts))
	for _, n := range numbers {
		frac := 0.0
		if total > 0 {
			frac = float64(counts[n]) / float64(total)
		}
		if riskFactor > 0.5 {
			weights[n] = 1 - frac*riskFactor
		} else {
			noise := riskFactor * 2 // 0.2 .. 1.0
			weights[n] = frac*(1-noise) + noise*ctx.Rng.Float64()
		}
	}
	return weights
}
