// Package strategy implements the generation strategy engine: a registry of
// named heuristics that each bias random combination sampling differently.
// Strategies differ only in how they weight the sampling distribution; the
// structural invariants they must satisfy are identical and enforced by the
// engine after every generation.
package strategy

import (
	"math/rand"

	"github.com/aristath/lottolab/internal/domain"
)

// ParamKind describes the value type a strategy parameter accepts.
type ParamKind string

const (
	ParamInt   ParamKind = "int"
	ParamFloat ParamKind = "float"
)

// ParamSpec declares one accepted parameter of a strategy: its name, kind,
// inclusive bounds, and default. Values outside [Min, Max] are rejected at
// the engine boundary, never clamped.
type ParamSpec struct {
	Name        string    `json:"name"`
	Kind        ParamKind `json:"kind"`
	Min         float64   `json:"min"`
	Max         float64   `json:"max"`
	Default     float64   `json:"default"`
	Description string    `json:"description"`
}

// Params is the caller-supplied parameter bag. Integer parameters are
// carried as float64 and must hold integral values.
type Params map[string]float64

// Int returns the parameter as an int. Only meaningful after the engine has
// resolved and validated the bag.
func (p Params) Int(name string) int {
	return int(p[name])
}

// Float returns the parameter value.
func (p Params) Float(name string) float64 {
	return p[name]
}

// Context carries everything a strategy may consult while generating one
// combination. Strategies never mutate History or Batch; the batch generator
// owns both.
type Context struct {
	Variant domain.Variant
	Params  Params // Resolved: defaults filled, bounds checked
	History []domain.Draw
	Batch   []domain.Combination // Combinations already produced in the current batch
	Rng     *rand.Rand           // Injected random source; seeded in tests for reproducibility
}

// Strategy is one named generation heuristic. Generate must return a
// combination satisfying the variant's structural invariants; internal
// resampling until the invariants hold is a normal path, not an error.
type Strategy interface {
	// Name is the stable identifier used in API calls and persistence.
	Name() string
	// Label is the human-readable display name for the dashboard.
	Label() string
	// ParamSpecs declares the parameters this strategy accepts.
	ParamSpecs() []ParamSpec
	// Generate produces one candidate combination.
	Generate(ctx *Context) (domain.Combination, error)
}

// Info is the strategy listing entry exposed to the dashboard.
type Info struct {
	Name   string      `json:"name"`
	Label  string      `json:"label"`
	Params []ParamSpec `json:"params"`
}
