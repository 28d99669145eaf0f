// Package pool holds the number pool registry: the set of registered game
// variants and the frequency statistics computed over historical draws.
package pool

import (
	"fmt"

	"github.com/aristath/lottolab/internal/domain"
)

// Registry holds the game variants known to the system. Variants are
// registered at startup and immutable afterwards.
type Registry struct {
	variants map[string]domain.Variant
	order    []string // registration order, for stable listing
}

// NewRegistry creates a registry pre-populated with the two game variants
// the tool supports: Euromillions (5 numbers in [1,50] + 2 stars in [1,12])
// and French Loto (5 numbers in [1,49] + 1 lucky number in [1,10]).
func NewRegistry() *Registry {
	r := &Registry{variants: make(map[string]domain.Variant)}

	// Registration of the built-in variants cannot fail; the panics below
	// only guard against edits to the literals.
	mustRegister := func(v domain.Variant) {
		if err := r.Register(v); err != nil {
			panic(err)
		}
	}

	mustRegister(domain.Variant{
		Name:           "euromillions",
		DisplayName:    "Euromillions",
		MainCount:      5,
		MainMax:        50,
		SecondaryCount: 2,
		SecondaryMax:   12,
		SecondaryLabel: "stars",
	})
	mustRegister(domain.Variant{
		Name:           "french_loto",
		DisplayName:    "French Loto",
		MainCount:      5,
		MainMax:        49,
		SecondaryCount: 1,
		SecondaryMax:   10,
		SecondaryLabel: "lucky number",
	})

	return r
}

// Register adds a variant after validating its configuration. Registering a
// name twice is a programming error and is rejected.
func (r *Registry) Register(v domain.Variant) error {
	if err := v.Validate(); err != nil {
		return fmt.Errorf("invalid variant configuration: %w", err)
	}
	if _, exists := r.variants[v.Name]; exists {
		return fmt.Errorf("variant %q is already registered", v.Name)
	}
	r.variants[v.Name] = v
	r.order = append(r.order, v.Name)
	return nil
}

// Get returns the variant registered under name, or ErrUnknownVariant.
func (r *Registry) Get(name string) (domain.Variant, error) {
	v, ok := r.variants[name]
	if !ok {
		return domain.Variant{}, fmt.Errorf("%w: %q", domain.ErrUnknownVariant, name)
	}
	return v, nil
}

// List returns all registered variants in registration order.
func (r *Registry) List() []domain.Variant {
	out := make([]domain.Variant, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.variants[name])
	}
	return out
}
