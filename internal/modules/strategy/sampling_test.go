package strategy

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	t.Run("distinct values in range", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			values, err := sampleUniform(rng, 50, 5)
			require.NoError(t, err)
			require.Len(t, values, 5)
			seen := make(map[int]bool)
			for _, n := range values {
				assert.GreaterOrEqual(t, n, 1)
				assert.LessOrEqual(t, n, 50)
				assert.False(t, seen[n], "duplicate value %d", n)
				seen[n] = true
			}
		}
	})

	t.Run("k equal to max uses the whole domain", func(t *testing.T) {
		values, err := sampleUniform(rng, 5, 5)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int{1, 2, 3, 4, 5}, values)
	})

	t.Run("k larger than max fails", func(t *testing.T) {
		_, err := sampleUniform(rng, 3, 5)
		assert.Error(t, err)
	})
}

func TestWeightedSample(t *testing.T) {
	t.Run("distinct values", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		weights := map[int]float64{1: 1, 2: 2, 3: 3, 4: 4, 5: 5}
		for i := 0; i < 100; i++ {
			values, err := weightedSample(rng, weights, 3)
			require.NoError(t, err)
			seen := make(map[int]bool)
			for _, n := range values {
				assert.False(t, seen[n])
				seen[n] = true
			}
		}
	})

	t.Run("all-zero weights degrade to uniform", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		weights := map[int]float64{1: 0, 2: 0, 3: 0, 4: 0}
		counts := make(map[int]int)
		for i := 0; i < 2000; i++ {
			values, err := weightedSample(rng, weights, 1)
			require.NoError(t, err)
			counts[values[0]]++
		}
		// Every number keeps a nonzero chance.
		for n := 1; n <= 4; n++ {
			assert.Greater(t, counts[n], 0, "number %d never sampled", n)
		}
	})

	t.Run("heavier weights win more often", func(t *testing.T) {
		rng := rand.New(rand.NewSource(11))
		weights := map[int]float64{1: 1, 2: 100}
		counts := make(map[int]int)
		for i := 0; i < 1000; i++ {
			values, err := weightedSample(rng, weights, 1)
			require.NoError(t, err)
			counts[values[0]]++
		}
		assert.Greater(t, counts[2], counts[1]*5)
	})

	t.Run("negative weights get floored, not dropped", func(t *testing.T) {
		rng := rand.New(rand.NewSource(13))
		weights := map[int]float64{1: -2, 2: 1}
		counts := make(map[int]int)
		for i := 0; i < 2000; i++ {
			values, err := weightedSample(rng, weights, 1)
			require.NoError(t, err)
			counts[values[0]]++
		}
		assert.Greater(t, counts[1], 0)
	})

	t.Run("deterministic for a fixed seed", func(t *testing.T) {
		weights := map[int]float64{1: 1, 2: 2, 3: 3, 4: 4, 5: 5}
		a, err := weightedSample(rand.New(rand.NewSource(99)), weights, 3)
		require.NoError(t, err)
		b, err := weightedSample(rand.New(rand.NewSource(99)), weights, 3)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("k larger than pool fails", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		_, err := weightedSample(rng, map[int]float64{1: 1}, 2)
		assert.Error(t, err)
	})
}

func TestContains(t *testing.T) {
	assert.True(t, contains([]int{1, 2, 3}, 2))
	assert.False(t, contains([]int{1, 2, 3}, 4))
	assert.False(t, contains(nil, 1))
}
