package domain

import "fmt"

// ValidationResult collects structural invariant violations for one
// combination or draw. An empty violation list means the entity is valid.
// Bad data never panics; only programming misuse (validating against a
// zero-value variant) is treated as a defect by the caller.
type ValidationResult struct {
	Violations []string
}

// Valid reports whether no violations were found.
func (r ValidationResult) Valid() bool {
	return len(r.Violations) == 0
}

// ValidateCombination checks every structural invariant a combination must
// satisfy for the given variant:
//   - exactly MainCount main numbers, all distinct, all in [1, MainMax]
//   - exactly SecondaryCount secondary numbers, all distinct, all in [1, SecondaryMax]
//
// Ordering is not an invariant here; Normalize handles ordering separately.
func ValidateCombination(c Combination, v Variant) ValidationResult {
	var violations []string
	violations = append(violations, checkNumberSet(c.MainNumbers, v.MainCount, v.MainMax, "main")...)
	violations = append(violations, checkNumberSet(c.SecondaryNumbers, v.SecondaryCount, v.SecondaryMax, "secondary")...)
	return ValidationResult{Violations: violations}
}

// ValidateDraw checks a historical draw against the same range and
// cardinality rules as a combination. Used by history ingestion to reject
// (quarantine) out-of-range records instead of clamping them.
func ValidateDraw(d Draw, v Variant) ValidationResult {
	var violations []string
	if d.Date.IsZero() {
		violations = append(violations, "draw date is missing")
	}
	violations = append(violations, checkNumberSet(d.MainNumbers, v.MainCount, v.MainMax, "main")...)
	violations = append(violations, checkNumberSet(d.SecondaryNumbers, v.SecondaryCount, v.SecondaryMax, "secondary")...)
	return ValidationResult{Violations: violations}
}

// checkNumberSet verifies cardinality, range, and distinctness for one
// number set. Each specific violation gets its own message so callers can
// report precisely what is wrong.
func checkNumberSet(values []int, wantCount, max int, label string) []string {
	var violations []string

	if len(values) != wantCount {
		violations = append(violations,
			fmt.Sprintf("expected %d %s numbers, got %d", wantCount, label, len(values)))
	}

	seen := make(map[int]bool, len(values))
	for _, n := range values {
		if n < 1 || n > max {
			violations = append(violations,
				fmt.Sprintf("%s number %d out of range [1, %d]", label, n, max))
		}
		if seen[n] {
			violations = append(violations,
				fmt.Sprintf("duplicate %s number %d", label, n))
		}
		seen[n] = true
	}

	return violations
}
