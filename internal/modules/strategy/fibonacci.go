package strategy

import (
	"fmt"

	"github.com/aristath/lottolab/internal/domain"
	"github.com/aristath/lottolab/internal/modules/pool"
)

// Fibonacci constrains the main set to contain fib_count numbers from the
// Fibonacci sequence capped at the domain max (for max 50 that is
// {1,2,3,5,8,13,21,34}), with the remainder sampled from the non-Fibonacci
// numbers. The Fibonacci member count is always strictly between 0 and
// MainCount.
type Fibonacci struct{}

func (s *Fibonacci) Name() string  { return "fibonacci_hybrid" }
func (s *Fibonacci) Label() string { return "Fibonacci-Filtered Hybrid" }

func (s *Fibonacci) ParamSpecs() []ParamSpec {
	return []ParamSpec{
		{
			Name:        "fib_count",
			Kind:        ParamInt,
			Min:         1,
			Max:         4,
			Default:     2,
			Description: "How many of the main numbers must be Fibonacci members (never all of them)",
		},
	}
}

func (s *Fibonacci) Generate(ctx *Context) (domain.Combination, error) {
	v := ctx.Variant
	fibCount := ctx.Params.Int("fib_count")
	if fibCount >= v.MainCount {
		return domain.Combination{}, &domain.InvalidParameterError{
			Strategy: s.Name(),
			Param:    "fib_count",
			Value:    float64(fibCount),
			Reason:   "must leave room for at least one non-Fibonacci number",
		}
	}

	fibs := FibonacciUpTo(v.MainMax)
	if fibCount > len(fibs) {
		return domain.Combination{}, &domain.InvalidParameterError{
			Strategy: s.Name(),
			Param:    "fib_count",
			Value:    float64(fibCount),
			Reason:   fmt.Sprintf("only %d Fibonacci numbers exist up to %d", len(fibs), v.MainMax),
		}
	}

	// Pick the Fibonacci members uniformly from the capped sequence.
	fibIdx, err := sampleUniform(ctx.Rng, len(fibs), fibCount)
	if err != nil {
		return domain.Combination{}, err
	}
	main := make([]int, 0, v.MainCount)
	for _, i := range fibIdx {
		main = append(main, fibs[i-1])
	}

	// Fill the remainder from the non-Fibonacci numbers, uniformly.
	var rest []int
	for n := 1; n <= v.MainMax; n++ {
		if !contains(fibs, n) {
			rest = append(rest, n)
		}
	}
	restIdx, err := sampleUniform(ctx.Rng, len(rest), v.MainCount-fibCount)
	if err != nil {
		return domain.Combination{}, err
	}
	for _, i := range restIdx {
		main = append(main, rest[i-1])
	}

	_, secondaryWeights := pool.WeightedFrequency(v, ctx.History, 0)
	secondary, err := weightedSample(ctx.Rng, secondaryWeights, v.SecondaryCount)
	if err != nil {
		return domain.Combination{}, err
	}
	return domain.Combination{MainNumbers: main, SecondaryNumbers: secondary}, nil
}

// FibonacciUpTo returns the deduplicated Fibonacci members in [1, max],
// ascending. For max 50: 1, 2, 3, 5, 8, 13, 21, 34.
func FibonacciUpTo(max int) []int {
	var out []int
	a, b := 1, 1
	for a <= max {
		if len(out) == 0 || out[len(out)-1] != a {
			out = append(out, a)
		}
		a, b = b, a+b
	}
	return out
}
