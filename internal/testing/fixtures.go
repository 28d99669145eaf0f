package testing

import (
	"math/rand"
	"time"

	"github.com/aristath/lottolab/internal/domain"
)

// NewEuroMillionsDrawFixtures returns a small set of valid EuroMillions draws
// for use in tests, newest first.
func NewEuroMillionsDrawFixtures() []domain.Draw {
	return []domain.Draw{
		{
			Variant:          "euromillions",
			Date:             time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
			MainNumbers:      []int{3, 17, 23, 34, 48},
			SecondaryNumbers: []int{2, 9},
		},
		{
			Variant:          "euromillions",
			Date:             time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
			MainNumbers:      []int{5, 12, 23, 31, 44},
			SecondaryNumbers: []int{4, 11},
		},
		{
			Variant:          "euromillions",
			Date:             time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC),
			MainNumbers:      []int{1, 17, 28, 34, 50},
			SecondaryNumbers: []int{2, 6},
		},
		{
			Variant:          "euromillions",
			Date:             time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			MainNumbers:      []int{8, 17, 23, 39, 45},
			SecondaryNumbers: []int{1, 9},
		},
	}
}

// NewFrenchLotoDrawFixtures returns a small set of valid French Loto draws
// for use in tests, newest first.
func NewFrenchLotoDrawFixtures() []domain.Draw {
	return []domain.Draw{
		{
			Variant:          "french_loto",
			Date:             time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC),
			MainNumbers:      []int{4, 13, 22, 36, 49},
			SecondaryNumbers: []int{7},
		},
		{
			Variant:          "french_loto",
			Date:             time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
			MainNumbers:      []int{2, 13, 27, 36, 41},
			SecondaryNumbers: []int{3},
		},
		{
			Variant:          "french_loto",
			Date:             time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
			MainNumbers:      []int{9, 18, 22, 30, 44},
			SecondaryNumbers: []int{10},
		},
	}
}

// NewRandomDrawHistory generates n valid draws for a variant using the given
// source of randomness. Dates step backwards one draw per two days.
func NewRandomDrawHistory(v domain.Variant, n int, rng *rand.Rand) []domain.Draw {
	draws := make([]domain.Draw, 0, n)
	date := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		draws = append(draws, domain.Draw{
			Variant:          v.Name,
			Date:             date,
			MainNumbers:      pickDistinct(rng, v.MainCount, v.MainMax),
			SecondaryNumbers: pickDistinct(rng, v.SecondaryCount, v.SecondaryMax),
		})
		date = date.AddDate(0, 0, -2)
	}
	return draws
}

func pickDistinct(rng *rand.Rand, count, max int) []int {
	perm := rng.Perm(max)
	values := make([]int, count)
	for i := 0; i < count; i++ {
		values[i] = perm[i] + 1
	}
	return values
}
