package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/lottolab/internal/domain"
)

func TestNewRegistryBuiltins(t *testing.T) {
	r := NewRegistry()

	em, err := r.Get("euromillions")
	require.NoError(t, err)
	assert.Equal(t, 5, em.MainCount)
	assert.Equal(t, 50, em.MainMax)
	assert.Equal(t, 2, em.SecondaryCount)
	assert.Equal(t, 12, em.SecondaryMax)
	assert.Equal(t, "stars", em.SecondaryLabel)

	fl, err := r.Get("french_loto")
	require.NoError(t, err)
	assert.Equal(t, 5, fl.MainCount)
	assert.Equal(t, 49, fl.MainMax)
	assert.Equal(t, 1, fl.SecondaryCount)
	assert.Equal(t, 10, fl.SecondaryMax)
	assert.Equal(t, "lucky number", fl.SecondaryLabel)
}

func TestRegistryGetUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Get("powerball")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownVariant)
	assert.Contains(t, err.Error(), "powerball")
}

func TestRegistryListOrder(t *testing.T) {
	r := NewRegistry()

	variants := r.List()
	require.Len(t, variants, 2)
	assert.Equal(t, "euromillions", variants[0].Name)
	assert.Equal(t, "french_loto", variants[1].Name)
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	t.Run("rejects duplicate name", func(t *testing.T) {
		err := r.Register(domain.Variant{
			Name: "euromillions", MainCount: 5, MainMax: 50,
			SecondaryCount: 2, SecondaryMax: 12,
		})
		assert.ErrorContains(t, err, "already registered")
	})

	t.Run("rejects invalid configuration", func(t *testing.T) {
		err := r.Register(domain.Variant{
			Name: "broken", MainCount: 10, MainMax: 5,
			SecondaryCount: 1, SecondaryMax: 10,
		})
		assert.ErrorContains(t, err, "invalid variant configuration")
	})

	t.Run("accepts new variant", func(t *testing.T) {
		err := r.Register(domain.Variant{
			Name: "tiny", MainCount: 2, MainMax: 5,
			SecondaryCount: 1, SecondaryMax: 3,
		})
		require.NoError(t, err)
		assert.Len(t, r.List(), 3)
	})
}
