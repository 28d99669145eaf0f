package generator

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/lottolab/internal/domain"
	"github.com/aristath/lottolab/internal/modules/strategy"
)

var euromillions = domain.Variant{
	Name:           "euromillions",
	MainCount:      5,
	MainMax:        50,
	SecondaryCount: 2,
	SecondaryMax:   12,
}

// tinyVariant admits only C(3,2)=3 distinct main sets, which makes pool
// exhaustion easy to provoke.
var tinyVariant = domain.Variant{
	Name:           "tiny",
	MainCount:      2,
	MainMax:        3,
	SecondaryCount: 1,
	SecondaryMax:   2,
}

func newBatchGenerator() *BatchGenerator {
	return NewBatchGenerator(strategy.NewEngine(zerolog.Nop()), zerolog.Nop())
}

func TestGenerateBatch(t *testing.T) {
	g := newBatchGenerator()

	batch, err := g.Generate(Request{
		Variant:  euromillions,
		Strategy: "uniform_random",
		Count:    10,
	}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, batch, 10)

	keys := make(map[string]bool)
	for _, c := range batch {
		result := domain.ValidateCombination(c, euromillions)
		require.True(t, result.Valid(), "violations: %v", result.Violations)
		assert.Equal(t, "euromillions", c.Variant)
		assert.Equal(t, "uniform_random", c.Strategy)

		key := c.MainKey()
		assert.False(t, keys[key], "duplicate main set %s", key)
		keys[key] = true
	}
}

func TestGenerateRespectsExclusions(t *testing.T) {
	g := newBatchGenerator()

	// Exclude two of the three possible tiny main sets; only {1,3} remains.
	exclusions := map[string]struct{}{
		domain.MainKeyFor([]int{1, 2}): {},
		domain.MainKeyFor([]int{2, 3}): {},
	}

	batch, err := g.Generate(Request{
		Variant:    tinyVariant,
		Strategy:   "uniform_random",
		Count:      1,
		Exclusions: exclusions,
	}, rand.New(rand.NewSource(2)))
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, []int{1, 3}, batch[0].MainNumbers)
}

func TestGenerateExhaustedPool(t *testing.T) {
	g := newBatchGenerator()

	// Requesting more unique main sets than the pool admits must fail with
	// ExhaustedPoolError, never return a short or duplicated batch.
	_, err := g.Generate(Request{
		Variant:  tinyVariant,
		Strategy: "uniform_random",
		Count:    4, // pool size is 3
	}, rand.New(rand.NewSource(3)))
	require.Error(t, err)

	var exhausted *domain.ExhaustedPoolError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "tiny", exhausted.Variant)
	assert.Equal(t, 4, exhausted.Requested)
	assert.Equal(t, 3, exhausted.Produced)
	assert.Equal(t, DefaultMaxAttempts, exhausted.MaxAttempts)
}

func TestGenerateExhaustedByExclusions(t *testing.T) {
	g := newBatchGenerator()

	exclusions := map[string]struct{}{
		domain.MainKeyFor([]int{1, 2}): {},
		domain.MainKeyFor([]int{1, 3}): {},
		domain.MainKeyFor([]int{2, 3}): {},
	}

	_, err := g.Generate(Request{
		Variant:    tinyVariant,
		Strategy:   "uniform_random",
		Count:      1,
		Exclusions: exclusions,
	}, rand.New(rand.NewSource(4)))

	var exhausted *domain.ExhaustedPoolError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 0, exhausted.Produced)
}

func TestGenerateUnknownStrategy(t *testing.T) {
	g := newBatchGenerator()

	_, err := g.Generate(Request{
		Variant:  euromillions,
		Strategy: "astrology",
		Count:    1,
	}, rand.New(rand.NewSource(5)))
	assert.ErrorIs(t, err, domain.ErrUnknownStrategy)
}

func TestGenerateInvalidParameter(t *testing.T) {
	g := newBatchGenerator()

	_, err := g.Generate(Request{
		Variant:  euromillions,
		Strategy: "risk_reward",
		Params:   strategy.Params{"risk_level": 11},
		Count:    1,
	}, rand.New(rand.NewSource(6)))

	var paramErr *domain.InvalidParameterError
	require.ErrorAs(t, err, &paramErr)
	assert.Equal(t, "risk_level", paramErr.Param)
}

func TestGenerateNegativeCount(t *testing.T) {
	g := newBatchGenerator()

	_, err := g.Generate(Request{
		Variant:  euromillions,
		Strategy: "uniform_random",
		Count:    -1,
	}, rand.New(rand.NewSource(7)))
	assert.Error(t, err)
}

func TestGenerateZeroCount(t *testing.T) {
	g := newBatchGenerator()

	batch, err := g.Generate(Request{
		Variant:  euromillions,
		Strategy: "uniform_random",
		Count:    0,
	}, rand.New(rand.NewSource(8)))
	require.NoError(t, err)
	assert.Empty(t, batch)
}

func TestGenerateDeterministicForSeededRng(t *testing.T) {
	g := newBatchGenerator()

	run := func() []domain.Combination {
		batch, err := g.Generate(Request{
			Variant:  euromillions,
			Strategy: "frequency_analysis",
			Count:    5,
		}, rand.New(rand.NewSource(99)))
		require.NoError(t, err)
		return batch
	}

	assert.Equal(t, run(), run())
}

func TestGenerateDoesNotMutateCallerExclusions(t *testing.T) {
	g := newBatchGenerator()

	exclusions := map[string]struct{}{
		domain.MainKeyFor([]int{1, 2}): {},
	}

	_, err := g.Generate(Request{
		Variant:    tinyVariant,
		Strategy:   "uniform_random",
		Count:      2,
		Exclusions: exclusions,
	}, rand.New(rand.NewSource(9)))
	require.NoError(t, err)
	assert.Len(t, exclusions, 1)
}

func TestGenerateAllStrategiesFillLargerBatch(t *testing.T) {
	g := newBatchGenerator()
	engine := strategy.NewEngine(zerolog.Nop())

	for _, info := range engine.List() {
		info := info
		t.Run(info.Name, func(t *testing.T) {
			batch, err := g.Generate(Request{
				Variant:  euromillions,
				Strategy: info.Name,
				Count:    20,
			}, rand.New(rand.NewSource(10)))
			require.NoError(t, err)
			assert.Len(t, batch, 20)
		})
	}
}
