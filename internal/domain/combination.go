package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Combination is one candidate set of main + secondary numbers with
// provenance (which strategy produced it) and a heuristic score.
type Combination struct {
	ID               string    `json:"id,omitempty"`       // UUID assigned when persisted
	BatchID          string    `json:"batch_id,omitempty"` // UUID shared by all combinations of one generation call
	Variant          string    `json:"variant"`
	MainNumbers      []int     `json:"main_numbers"`      // Sorted ascending, exactly Variant.MainCount distinct values
	SecondaryNumbers []int     `json:"secondary_numbers"` // Sorted ascending, exactly Variant.SecondaryCount distinct values
	Strategy         string    `json:"strategy"`          // Stable strategy name that produced this combination
	Score            float64   `json:"score"`             // Heuristic quality estimate, comparable within a batch
	Rationale        string    `json:"rationale"`         // Human-readable explanation, display only
	CreatedAt        time.Time `json:"created_at,omitempty"`
}

// Normalize returns a copy of the combination with both number sets sorted
// ascending. The receiver is not modified.
func (c Combination) Normalize() Combination {
	out := c
	out.MainNumbers = sortedCopy(c.MainNumbers)
	out.SecondaryNumbers = sortedCopy(c.SecondaryNumbers)
	return out
}

// MainKey returns a canonical string key for the main-number set, e.g.
// "03-17-22-41-48". Batch deduplication and exclusion sets are keyed on the
// main numbers only; secondary numbers may repeat across combinations.
func (c Combination) MainKey() string {
	sorted := sortedCopy(c.MainNumbers)
	parts := make([]string, len(sorted))
	for i, n := range sorted {
		parts[i] = fmt.Sprintf("%02d", n)
	}
	return strings.Join(parts, "-")
}

// MainKeyFor builds the canonical exclusion-set key for a bare main-number
// set, without constructing a Combination.
func MainKeyFor(numbers []int) string {
	return Combination{MainNumbers: numbers}.MainKey()
}

// Draw is a past real-world result: the same number shape as a Combination,
// plus the draw date. Draws are read-only inputs to the frequency and Markov
// strategies and are owned by the persistence layer.
type Draw struct {
	ID               int64     `json:"id,omitempty"`
	Variant          string    `json:"variant"`
	Date             time.Time `json:"date"`
	MainNumbers      []int     `json:"main_numbers"`
	SecondaryNumbers []int     `json:"secondary_numbers"`
}

func sortedCopy(values []int) []int {
	out := make([]int, len(values))
	copy(out, values)
	sort.Ints(out)
	return out
}
