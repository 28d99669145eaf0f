// Package domain contains the pure domain types for lottery combination
// generation: game variants, combinations, historical draws, the structural
// validator, and the shared error taxonomy. The domain layer has no
// infrastructure dependencies.
package domain

import "fmt"

// Variant describes one lottery game configuration: how many main numbers are
// drawn from which range, and how many secondary numbers ("stars" for
// Euromillions, the "lucky number" for French Loto) from which range.
//
// Variants are immutable and registered at startup; they are never created or
// destroyed at runtime.
type Variant struct {
	Name           string `json:"name"`            // Stable identifier, e.g. "euromillions"
	DisplayName    string `json:"display_name"`    // Human-readable label for the dashboard
	MainCount      int    `json:"main_count"`      // Number of main numbers per combination (K)
	MainMax        int    `json:"main_max"`        // Main numbers are drawn from [1, MainMax]
	SecondaryCount int    `json:"secondary_count"` // Number of secondary numbers per combination (L)
	SecondaryMax   int    `json:"secondary_max"`   // Secondary numbers are drawn from [1, SecondaryMax]
	SecondaryLabel string `json:"secondary_label"` // "stars", "lucky number", ...
}

// Validate checks that the variant configuration itself is coherent.
// A variant whose main count exceeds its main range could never produce a
// valid combination, so registration must refuse it.
func (v Variant) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("variant name must not be empty")
	}
	if v.MainCount < 1 {
		return fmt.Errorf("variant %s: main count must be >= 1, got %d", v.Name, v.MainCount)
	}
	if v.MainMax < v.MainCount {
		return fmt.Errorf("variant %s: main max %d is smaller than main count %d", v.Name, v.MainMax, v.MainCount)
	}
	if v.SecondaryCount < 1 {
		return fmt.Errorf("variant %s: secondary count must be >= 1, got %d", v.Name, v.SecondaryCount)
	}
	if v.SecondaryMax < v.SecondaryCount {
		return fmt.Errorf("variant %s: secondary max %d is smaller than secondary count %d", v.Name, v.SecondaryMax, v.SecondaryCount)
	}
	return nil
}

// MainPoolSize returns the number of distinct main-number combinations the
// variant admits: C(MainMax, MainCount). Used to reason about pool
// exhaustion bounds in tests and diagnostics.
func (v Variant) MainPoolSize() int64 {
	return binomial(v.MainMax, v.MainCount)
}

// binomial computes C(n, k) with int64 arithmetic. The domains involved are
// tiny (n <= 50, k <= 5) so overflow is not a concern.
func binomial(n, k int) int64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	result := int64(1)
	for i := 1; i <= k; i++ {
		result = result * int64(n-k+i) / int64(i)
	}
	return result
}
