package strategy

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/aristath/lottolab/internal/domain"
)

// Engine is the strategy registry and dispatch point. Parameter validation
// happens here, once, before any sampling attempt.
type Engine struct {
	strategies map[string]Strategy
	order      []string
	log        zerolog.Logger
}

// NewEngine creates an engine with all built-in strategies registered.
func NewEngine(log zerolog.Logger) *Engine {
	e := &Engine{
		strategies: make(map[string]Strategy),
		log:        log.With().Str("component", "strategy_engine").Logger(),
	}

	e.Register(&Uniform{})
	e.Register(&Frequency{})
	e.Register(&RiskReward{})
	e.Register(&Markov{})
	e.Register(&Fibonacci{})
	e.Register(&Consecutive{})
	e.Register(&Coverage{})

	return e
}

// Register adds a strategy under its stable name. Registering the same name
// twice replaces the earlier entry.
func (e *Engine) Register(s Strategy) {
	if _, exists := e.strategies[s.Name()]; !exists {
		e.order = append(e.order, s.Name())
	}
	e.strategies[s.Name()] = s
}

// Get returns the strategy registered under name, or ErrUnknownStrategy.
func (e *Engine) Get(name string) (Strategy, error) {
	s, ok := e.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownStrategy, name)
	}
	return s, nil
}

// List returns all registered strategies in registration order.
func (e *Engine) List() []Info {
	out := make([]Info, 0, len(e.order))
	for _, name := range e.order {
		s := e.strategies[name]
		out = append(out, Info{Name: s.Name(), Label: s.Label(), Params: s.ParamSpecs()})
	}
	return out
}

// Prepare looks up the strategy and resolves the parameter bag against its
// declared specs: unknown names, out-of-bounds values, and non-integral
// values for int parameters are rejected; missing parameters get defaults.
// The returned Params is a fresh map; the caller's bag is never mutated.
func (e *Engine) Prepare(name string, params Params) (Strategy, Params, error) {
	s, err := e.Get(name)
	if err != nil {
		return nil, nil, err
	}
	resolved, err := resolveParams(s, params)
	if err != nil {
		return nil, nil, err
	}
	return s, resolved, nil
}

// GenerateOne validates parameters, runs the strategy once, and checks the
// structural invariants of the result. A strategy returning an invalid
// combination is a defect and surfaces as InvariantViolationError; it is
// never silently replaced with fallback random output.
func (e *Engine) GenerateOne(name string, ctx *Context) (domain.Combination, error) {
	s, resolved, err := e.Prepare(name, ctx.Params)
	if err != nil {
		return domain.Combination{}, err
	}

	runCtx := *ctx
	runCtx.Params = resolved

	c, err := s.Generate(&runCtx)
	if err != nil {
		return domain.Combination{}, err
	}
	return Finalize(s, c, ctx.Variant)
}

// Finalize normalizes a strategy's output, stamps provenance, and enforces
// the structural invariants.
func Finalize(s Strategy, c domain.Combination, v domain.Variant) (domain.Combination, error) {
	c = c.Normalize()
	c.Variant = v.Name
	c.Strategy = s.Name()
	if result := domain.ValidateCombination(c, v); !result.Valid() {
		return domain.Combination{}, &domain.InvariantViolationError{
			Strategy:   s.Name(),
			Violations: result.Violations,
		}
	}
	return c, nil
}

func resolveParams(s Strategy, params Params) (Params, error) {
	specs := s.ParamSpecs()
	byName := make(map[string]ParamSpec, len(specs))
	for _, spec := range specs {
		byName[spec.Name] = spec
	}

	resolved := make(Params, len(specs))
	for _, spec := range specs {
		resolved[spec.Name] = spec.Default
	}

	for name, value := range params {
		spec, ok := byName[name]
		if !ok {
			return nil, &domain.InvalidParameterError{
				Strategy: s.Name(),
				Param:    name,
				Value:    value,
				Reason:   "parameter is not accepted by this strategy",
			}
		}
		if spec.Kind == ParamInt && value != math.Trunc(value) {
			return nil, &domain.InvalidParameterError{
				Strategy: s.Name(),
				Param:    name,
				Value:    value,
				Reason:   "parameter must be an integer",
			}
		}
		if value < spec.Min || value > spec.Max {
			return nil, &domain.InvalidParameterError{
				Strategy: s.Name(),
				Param:    name,
				Value:    value,
				Reason:   fmt.Sprintf("value outside declared bounds [%v, %v]", spec.Min, spec.Max),
			}
		}
		resolved[name] = value
	}

	return resolved, nil
}
