package pool

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/aristath/lottolab/internal/domain"
)

// Frequencies maps each number of a variant's domain to its occurrence count
// over a history of draws, separately for main and secondary numbers. Every
// number of the domain is present, with a zero count when never drawn.
type Frequencies struct {
	Main      map[int]int `json:"main" msgpack:"main"`
	Secondary map[int]int `json:"secondary" msgpack:"secondary"`
}

// FrequencyTable computes occurrence counts over the supplied history. It is
// a pure function of its inputs: no caching, no mutation of history.
// Draws belonging to other variants are counted as-is; callers are expected
// to pass history already filtered to one variant.
func FrequencyTable(v domain.Variant, history []domain.Draw) Frequencies {
	f := Frequencies{
		Main:      make(map[int]int, v.MainMax),
		Secondary: make(map[int]int, v.SecondaryMax),
	}
	for n := 1; n <= v.MainMax; n++ {
		f.Main[n] = 0
	}
	for n := 1; n <= v.SecondaryMax; n++ {
		f.Secondary[n] = 0
	}
	for _, draw := range history {
		for _, n := range draw.MainNumbers {
			if n >= 1 && n <= v.MainMax {
				f.Main[n]++
			}
		}
		for _, n := range draw.SecondaryNumbers {
			if n >= 1 && n <= v.SecondaryMax {
				f.Secondary[n]++
			}
		}
	}
	return f
}

// MostFrequent returns the topN numbers ranked by descending count, ties
// broken by ascending numeric value for determinism.
func MostFrequent(counts map[int]int, topN int) []int {
	return rank(counts, topN, func(a, b entry) bool {
		if a.count != b.count {
			return a.count > b.count
		}
		return a.number < b.number
	})
}

// LeastFrequent returns the topN numbers ranked by ascending count, ties
// broken by ascending numeric value.
func LeastFrequent(counts map[int]int, topN int) []int {
	return rank(counts, topN, func(a, b entry) bool {
		if a.count != b.count {
			return a.count < b.count
		}
		return a.number < b.number
	})
}

type entry struct {
	number int
	count  int
}

func rank(counts map[int]int, topN int, less func(a, b entry) bool) []int {
	entries := make([]entry, 0, len(counts))
	for number, count := range counts {
		entries = append(entries, entry{number: number, count: count})
	}
	sort.Slice(entries, func(i, j int) bool { return less(entries[i], entries[j]) })

	if topN > len(entries) {
		topN = len(entries)
	}
	out := make([]int, topN)
	for i := 0; i < topN; i++ {
		out[i] = entries[i].number
	}
	return out
}

// WeightedFrequency blends overall occurrence counts with counts from the
// most recent portion of the history (the newest 20% of draws, history being
// ordered most-recent-first). recencyWeight in [0,1] controls the blend:
// 0 returns the plain counts, 1 uses only the rescaled recent counts.
func WeightedFrequency(v domain.Variant, history []domain.Draw, recencyWeight float64) (main, secondary map[int]float64) {
	base := FrequencyTable(v, history)

	main = toFloat(base.Main)
	secondary = toFloat(base.Secondary)
	if recencyWeight <= 0 || len(history) == 0 {
		return main, secondary
	}

	recentCount := len(history) / 5
	if recentCount < 1 {
		recentCount = 1
	}
	recent := FrequencyTable(v, history[:recentCount])

	blend(main, base.Main, recent.Main, recencyWeight)
	blend(secondary, base.Secondary, recent.Secondary, recencyWeight)
	return main, secondary
}

// blend writes (1-w)*base + w*recent into dst, with the recent counts
// rescaled to the base totals so both operands share a scale.
func blend(dst map[int]float64, base, recent map[int]int, w float64) {
	baseTotal := 0
	recentTotal := 0
	for _, c := range base {
		baseTotal += c
	}
	for _, c := range recent {
		recentTotal += c
	}
	scale := 1.0
	if recentTotal > 0 {
		scale = float64(baseTotal) / float64(recentTotal)
	}
	for n := range dst {
		recentVal := float64(recent[n]) * scale
		dst[n] = (1-w)*float64(base[n]) + w*recentVal
	}
}

func toFloat(counts map[int]int) map[int]float64 {
	out := make(map[int]float64, len(counts))
	for n, c := range counts {
		out[n] = float64(c)
	}
	return out
}

// DistributionStats summarizes the sum-of-main-numbers distribution over a
// history. The dashboard statistics page displays these; the risk/reward
// strategy uses the spread to judge how unusual a candidate sum is.
type DistributionStats struct {
	Draws   int     `json:"draws" msgpack:"draws"`
	MeanSum float64 `json:"mean_sum" msgpack:"mean_sum"`
	StdSum  float64 `json:"std_sum" msgpack:"std_sum"`
	MinSum  int     `json:"min_sum" msgpack:"min_sum"`
	MaxSum  int     `json:"max_sum" msgpack:"max_sum"`
}

// SumDistribution computes summary statistics of main-number sums over the
// supplied history. Returns a zero-value summary for empty history.
func SumDistribution(history []domain.Draw) DistributionStats {
	if len(history) == 0 {
		return DistributionStats{}
	}
	sums := make([]float64, len(history))
	minSum, maxSum := 0, 0
	for i, draw := range history {
		s := 0
		for _, n := range draw.MainNumbers {
			s += n
		}
		sums[i] = float64(s)
		if i == 0 || s < minSum {
			minSum = s
		}
		if i == 0 || s > maxSum {
			maxSum = s
		}
	}
	mean, std := stat.MeanStdDev(sums, nil)
	if len(sums) == 1 {
		std = 0
	}
	return DistributionStats{
		Draws:   len(history),
		MeanSum: mean,
		StdSum:  std,
		MinSum:  minSum,
		MaxSum:  maxSum,
	}
}
