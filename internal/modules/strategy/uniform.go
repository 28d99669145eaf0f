package strategy

import "github.com/aristath/lottolab/internal/domain"

// Uniform samples without replacement from the full domain with no
// weighting. It is the baseline every other strategy is compared against.
type Uniform struct{}

func (s *Uniform) Name() string            { return "uniform_random" }
func (s *Uniform) Label() string           { return "Uniform Random" }
func (s *Uniform) ParamSpecs() []ParamSpec { return nil }

func (s *Uniform) Generate(ctx *Context) (domain.Combination, error) {
	main, err := sampleUniform(ctx.Rng, ctx.Variant.MainMax, ctx.Variant.MainCount)
	if err != nil {
		return domain.Combination{}, err
	}
	secondary, err := sampleUniform(ctx.Rng, ctx.Variant.SecondaryMax, ctx.Variant.SecondaryCount)
	if err != nil {
		return domain.Combination{}, err
	}
	return domain.Combination{MainNumbers: main, SecondaryNumbers: secondary}, nil
}
