package strategy

import (
	"github.com/aristath/lottolab/internal/domain"
	"github.com/aristath/lottolab/internal/modules/pool"
)

// Frequency samples weighted toward historically frequent numbers, with a
// recency_weight parameter blending in extra weight for numbers drawn in the
// most recent portion of the history. With no history the weights degrade to
// uniform sampling.
type Frequency struct{}

func (s *Frequency) Name() string  { return "frequency_analysis" }
func (s *Frequency) Label() string { return "Frequency Analysis" }

func (s *Frequency) ParamSpecs() []ParamSpec {
	return []ParamSpec{
		{
			Name:        "recency_weight",
			Kind:        ParamFloat,
			Min:         0,
			Max:         1,
			Default:     0.6,
			Description: "Weight given to the most recent draws over the full history",
		},
	}
}

func (s *Frequency) Generate(ctx *Context) (domain.Combination, error) {
	mainWeights, secondaryWeights := pool.WeightedFrequency(
		ctx.Variant, ctx.History, ctx.Params.Float("recency_weight"))

	main, err := weightedSample(ctx.Rng, mainWeights, ctx.Variant.MainCount)
	if err != nil {
		return domain.Combination{}, err
	}
	secondary, err := weightedSample(ctx.Rng, secondaryWeights, ctx.Variant.SecondaryCount)
	if err != nil {
		return domain.Combination{}, err
	}
	return domain.Combination{MainNumbers: main, SecondaryNumbers: secondary}, nil
}
