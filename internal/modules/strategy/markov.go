package strategy

import (
	"github.com/aristath/lottolab/internal/domain"
	"github.com/aristath/lottolab/internal/modules/pool"
)

// Markov builds a transition model from adjacent-position number pairs in
// sorted historical draws (how often b directly follows a) and samples an
// ascending chain favouring the strongest transitions. Positions with no
// transition data fall back to frequency weighting over the remaining
// candidates.
type Markov struct{}

func (s *Markov) Name() string            { return "markov_chain" }
func (s *Markov) Label() string           { return "Markov Chain Model" }
func (s *Markov) ParamSpecs() []ParamSpec { return nil }

// chainAttempts bounds resampling when a chain dead-ends near the top of the
// range before reaching MainCount numbers.
const chainAttempts = 50

func (s *Markov) Generate(ctx *Context) (domain.Combination, error) {
	transitions := buildTransitions(ctx.History)
	mainWeights, secondaryWeights := pool.WeightedFrequency(ctx.Variant, ctx.History, 0)

	var main []int
	for attempt := 0; attempt < chainAttempts; attempt++ {
		chain, ok := s.sampleChain(ctx, transitions, mainWeights)
		if ok {
			main = chain
			break
		}
	}
	if main == nil {
		// No chain of the required length exists from the sampled starts;
		// fall back to plain frequency weighting for the whole set.
		sampled, err := weightedSample(ctx.Rng, mainWeights, ctx.Variant.MainCount)
		if err != nil {
			return domain.Combination{}, err
		}
		main = sampled
	}

	secondary, err := weightedSample(ctx.Rng, secondaryWeights, ctx.Variant.SecondaryCount)
	if err != nil {
		return domain.Combination{}, err
	}
	return domain.Combination{MainNumbers: main, SecondaryNumbers: secondary}, nil
}

// sampleChain draws one ascending chain of MainCount numbers. The first
// number is frequency-weighted over the low end of the range (leaving room
// for the rest of the chain); each following number is drawn from the
// transition row of its predecessor, restricted to larger numbers.
func (s *Markov) sampleChain(ctx *Context, transitions map[int]map[int]int, freq map[int]float64) ([]int, bool) {
	v := ctx.Variant

	startWeights := make(map[int]float64)
	for n := 1; n <= v.MainMax-(v.MainCount-1); n++ {
		startWeights[n] = freq[n]
	}
	start, err := weightedSample(ctx.Rng, startWeights, 1)
	if err != nil {
		return nil, false
	}

	chain := []int{start[0]}
	for len(chain) < v.MainCount {
		prev := chain[len(chain)-1]

		candidates := make(map[int]float64)
		row := transitions[prev]
		for n := prev + 1; n <= v.MainMax; n++ {
			if count, ok := row[n]; ok && count > 0 {
				candidates[n] = float64(count)
			}
		}
		if len(candidates) == 0 {
			// No observed transition from prev; frequency fallback over the
			// remaining ascending candidates.
			for n := prev + 1; n <= v.MainMax; n++ {
				candidates[n] = freq[n]
			}
		}
		if len(candidates) == 0 {
			return nil, false // dead end at the top of the range
		}

		next, err := weightedSample(ctx.Rng, candidates, 1)
		if err != nil {
			return nil, false
		}
		chain = append(chain, next[0])
	}

	return chain, true
}

// buildTransitions counts adjacent-position pairs over sorted draws:
// transitions[a][b] is how often b immediately followed a.
func buildTransitions(history []domain.Draw) map[int]map[int]int {
	transitions := make(map[int]map[int]int)
	for _, draw := range history {
		sorted := domain.Combination{MainNumbers: draw.MainNumbers}.Normalize().MainNumbers
		for i := 0; i+1 < len(sorted); i++ {
			a, b := sorted[i], sorted[i+1]
			if transitions[a] == nil {
				transitions[a] = make(map[int]int)
			}
			transitions[a][b]++
		}
	}
	return transitions
}
