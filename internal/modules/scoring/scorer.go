// Package scoring attaches heuristic quality scores and human-readable
// rationales to generated combinations. The exact weights are tunable
// policy; only the monotonic behaviour (more hot numbers, more Fibonacci
// members, a consecutive-pair bonus) is a contract.
package scoring

import (
	"fmt"
	"strings"

	"github.com/aristath/lottolab/internal/domain"
	"github.com/aristath/lottolab/internal/modules/pool"
	"github.com/aristath/lottolab/internal/modules/strategy"
)

// Scoring weights. Policy, not correctness invariants.
const (
	weightHotMain      = 10.0 // per main number among the historical top 10
	weightHotSecondary = 5.0  // per secondary number among the historical top 3
	weightFibonacci    = 5.0  // per Fibonacci-sequence member in the main set
	weightConsecutive  = 5.0  // flat bonus when the main set holds an adjacent pair
	hotMainTopN        = 10
	hotSecondaryTopN   = 3
)

// Score computes the heuristic quality estimate for a combination. It is a
// deterministic function of the combination, variant, and history.
func Score(c domain.Combination, v domain.Variant, history []domain.Draw) float64 {
	freq := pool.FrequencyTable(v, history)

	score := 0.0
	score += float64(countIn(c.MainNumbers, pool.MostFrequent(freq.Main, hotMainTopN))) * weightHotMain
	score += float64(countIn(c.SecondaryNumbers, pool.MostFrequent(freq.Secondary, hotSecondaryTopN))) * weightHotSecondary
	score += float64(FibonacciMembers(c.MainNumbers, v.MainMax)) * weightFibonacci
	if HasConsecutivePair(c.MainNumbers) {
		score += weightConsecutive
	}
	return score
}

// Explain builds the display rationale for a combination produced by the
// named strategy.
func Explain(c domain.Combination, v domain.Variant, history []domain.Draw, strategyLabel string) string {
	freq := pool.FrequencyTable(v, history)

	parts := []string{strategyLabel}
	if hot := countIn(c.MainNumbers, pool.MostFrequent(freq.Main, hotMainTopN)); hot > 0 {
		parts = append(parts, fmt.Sprintf("%d of the top %d historical numbers", hot, hotMainTopN))
	}
	if fibs := FibonacciMembers(c.MainNumbers, v.MainMax); fibs > 0 {
		parts = append(parts, fmt.Sprintf("%d Fibonacci members", fibs))
	}
	if HasConsecutivePair(c.MainNumbers) {
		parts = append(parts, "contains a consecutive pair")
	}
	return strings.Join(parts, "; ")
}

// FibonacciMembers counts how many of the values belong to the Fibonacci
// sequence capped at max.
func FibonacciMembers(values []int, max int) int {
	fibs := make(map[int]bool)
	for _, f := range strategy.FibonacciUpTo(max) {
		fibs[f] = true
	}
	count := 0
	for _, n := range values {
		if fibs[n] {
			count++
		}
	}
	return count
}

// HasConsecutivePair reports whether the sorted value set contains at least
// one adjacent-integer pair.
func HasConsecutivePair(values []int) bool {
	sorted := domain.Combination{MainNumbers: values}.Normalize().MainNumbers
	for i := 0; i+1 < len(sorted); i++ {
		if sorted[i+1] == sorted[i]+1 {
			return true
		}
	}
	return false
}

func countIn(values, set []int) int {
	member := make(map[int]bool, len(set))
	for _, n := range set {
		member[n] = true
	}
	count := 0
	for _, n := range values {
		if member[n] {
			count++
		}
	}
	return count
}
