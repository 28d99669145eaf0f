package strategy

import (
	"github.com/aristath/lottolab/internal/domain"
)

// Consecutive biases toward adjacent-integer pairs: every combination it
// produces contains at least one pair of consecutive main numbers. The
// anchor pair is placed uniformly and the remaining numbers are sampled
// uniformly from the rest of the domain.
type Consecutive struct{}

func (s *Consecutive) Name() string            { return "consecutive_pattern" }
func (s *Consecutive) Label() string           { return "Sequential/Consecutive Pattern" }
func (s *Consecutive) ParamSpecs() []ParamSpec { return nil }

func (s *Consecutive) Generate(ctx *Context) (domain.Combination, error) {
	v := ctx.Variant

	// Anchor pair (a, a+1), a uniform in [1, MainMax-1].
	a := ctx.Rng.Intn(v.MainMax-1) + 1
	main := []int{a, a + 1}

	var rest []int
	for n := 1; n <= v.MainMax; n++ {
		if n != a && n != a+1 {
			rest = append(rest, n)
		}
	}
	restIdx, err := sampleUniform(ctx.Rng, len(rest), v.MainCount-2)
	if err != nil {
		return domain.Combination{}, err
	}
	for _, i := range restIdx {
		main = append(main, rest[i-1])
	}

	secondary, err := sampleUniform(ctx.Rng, v.SecondaryMax, v.SecondaryCount)
	if err != nil {
		return domain.Combination{}, err
	}
	return domain.Combination{MainNumbers: main, SecondaryNumbers: secondary}, nil
}
