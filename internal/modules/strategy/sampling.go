package strategy

import (
	"fmt"
	"math/rand"
	"sort"
)

// sampleUniform draws k distinct values from [1, max] without replacement.
func sampleUniform(rng *rand.Rand, max, k int) ([]int, error) {
	if k > max {
		return nil, fmt.Errorf("cannot sample %d distinct values from [1, %d]", k, max)
	}
	perm := rng.Perm(max)
	out := make([]int, k)
	for i := 0; i < k; i++ {
		out[i] = perm[i] + 1
	}
	return out, nil
}

// weightedSample draws k distinct values without replacement, each draw
// proportional to its weight. Non-positive weights are shifted up by a small
// floor so every number keeps a nonzero chance (an all-zero table, e.g. from
// empty history, degrades to uniform sampling). Candidates are walked in
// ascending numeric order so the result is deterministic for a seeded RNG.
func weightedSample(rng *rand.Rand, weights map[int]float64, k int) ([]int, error) {
	if k > len(weights) {
		return nil, fmt.Errorf("cannot sample %d distinct values from a pool of %d", k, len(weights))
	}

	numbers := make([]int, 0, len(weights))
	minWeight := 0.0
	first := true
	for n, w := range weights {
		numbers = append(numbers, n)
		if first || w < minWeight {
			minWeight = w
			first = false
		}
	}
	sort.Ints(numbers)

	floor := 0.0
	if minWeight <= 0 {
		floor = -minWeight + 0.1
	}

	remaining := make(map[int]float64, len(weights))
	for n, w := range weights {
		remaining[n] = w + floor
	}

	out := make([]int, 0, k)
	for len(out) < k {
		total := 0.0
		for _, n := range numbers {
			if _, ok := remaining[n]; ok {
				total += remaining[n]
			}
		}

		r := rng.Float64() * total
		acc := 0.0
		picked := -1
		for _, n := range numbers {
			w, ok := remaining[n]
			if !ok {
				continue
			}
			acc += w
			if r < acc {
				picked = n
				break
			}
		}
		if picked < 0 {
			// Floating point accumulation can land r a hair past the total;
			// fall back to the last remaining candidate.
			for i := len(numbers) - 1; i >= 0; i-- {
				if _, ok := remaining[numbers[i]]; ok {
					picked = numbers[i]
					break
				}
			}
		}

		out = append(out, picked)
		delete(remaining, picked)
	}

	return out, nil
}

// contains reports whether values holds n.
func contains(values []int, n int) bool {
	for _, v := range values {
		if v == n {
			return true
		}
	}
	return false
}
