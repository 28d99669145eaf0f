package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var euromillions = Variant{
	Name:           "euromillions",
	DisplayName:    "EuroMillions",
	MainCount:      5,
	MainMax:        50,
	SecondaryCount: 2,
	SecondaryMax:   12,
	SecondaryLabel: "stars",
}

func TestValidateCombination(t *testing.T) {
	tests := []struct {
		name           string
		combination    Combination
		wantValid      bool
		wantViolations int
	}{
		{
			name: "valid combination",
			combination: Combination{
				MainNumbers:      []int{3, 17, 22, 41, 48},
				SecondaryNumbers: []int{2, 9},
			},
			wantValid: true,
		},
		{
			name: "unsorted input is still valid",
			combination: Combination{
				MainNumbers:      []int{48, 3, 41, 17, 22},
				SecondaryNumbers: []int{9, 2},
			},
			wantValid: true,
		},
		{
			name: "too few main numbers",
			combination: Combination{
				MainNumbers:      []int{3, 17, 22, 41},
				SecondaryNumbers: []int{2, 9},
			},
			wantValid:      false,
			wantViolations: 1,
		},
		{
			name: "main number above range",
			combination: Combination{
				MainNumbers:      []int{3, 17, 22, 41, 51},
				SecondaryNumbers: []int{2, 9},
			},
			wantValid:      false,
			wantViolations: 1,
		},
		{
			name: "main number zero",
			combination: Combination{
				MainNumbers:      []int{0, 17, 22, 41, 48},
				SecondaryNumbers: []int{2, 9},
			},
			wantValid:      false,
			wantViolations: 1,
		},
		{
			name: "duplicate main number",
			combination: Combination{
				MainNumbers:      []int{3, 3, 22, 41, 48},
				SecondaryNumbers: []int{2, 9},
			},
			wantValid:      false,
			wantViolations: 1,
		},
		{
			name: "secondary out of range",
			combination: Combination{
				MainNumbers:      []int{3, 17, 22, 41, 48},
				SecondaryNumbers: []int{2, 13},
			},
			wantValid:      false,
			wantViolations: 1,
		},
		{
			name: "multiple violations reported together",
			combination: Combination{
				MainNumbers:      []int{0, 0, 22, 41},
				SecondaryNumbers: []int{2, 2, 9},
			},
			wantValid: false,
			// short main set, two out-of-range zeros, one duplicate zero,
			// long secondary set, one duplicate secondary
			wantViolations: 6,
		},
		{
			name: "empty sets",
			combination: Combination{
				MainNumbers:      nil,
				SecondaryNumbers: nil,
			},
			wantValid:      false,
			wantViolations: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateCombination(tt.combination, euromillions)
			assert.Equal(t, tt.wantValid, result.Valid())
			if !tt.wantValid {
				assert.Len(t, result.Violations, tt.wantViolations)
			}
		})
	}
}

func TestValidateDraw(t *testing.T) {
	valid := Draw{
		Variant:          "euromillions",
		Date:             time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		MainNumbers:      []int{3, 17, 22, 41, 48},
		SecondaryNumbers: []int{2, 9},
	}

	t.Run("valid draw", func(t *testing.T) {
		assert.True(t, ValidateDraw(valid, euromillions).Valid())
	})

	t.Run("missing date", func(t *testing.T) {
		d := valid
		d.Date = time.Time{}
		result := ValidateDraw(d, euromillions)
		require.False(t, result.Valid())
		assert.Contains(t, result.Violations, "draw date is missing")
	})

	t.Run("out of range main number", func(t *testing.T) {
		d := valid
		d.MainNumbers = []int{3, 17, 22, 41, 55}
		result := ValidateDraw(d, euromillions)
		require.False(t, result.Valid())
		assert.Contains(t, result.Violations[0], "out of range")
	})
}

func TestVariantValidate(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
		wantErr bool
	}{
		{"euromillions", euromillions, false},
		{"empty name", Variant{MainCount: 5, MainMax: 50, SecondaryCount: 2, SecondaryMax: 12}, true},
		{"main count exceeds range", Variant{Name: "x", MainCount: 6, MainMax: 5, SecondaryCount: 1, SecondaryMax: 10}, true},
		{"zero main count", Variant{Name: "x", MainCount: 0, MainMax: 50, SecondaryCount: 1, SecondaryMax: 10}, true},
		{"secondary count exceeds range", Variant{Name: "x", MainCount: 5, MainMax: 50, SecondaryCount: 3, SecondaryMax: 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.variant.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMainPoolSize(t *testing.T) {
	assert.Equal(t, int64(2118760), euromillions.MainPoolSize()) // C(50,5)
	tiny := Variant{Name: "tiny", MainCount: 2, MainMax: 3, SecondaryCount: 1, SecondaryMax: 2}
	assert.Equal(t, int64(3), tiny.MainPoolSize()) // C(3,2)
}
