package param

import (
	"fmt"
	"math"
)

// Visitor dispatches over the three domain kinds. It is the extension
// point for sampling and enumeration behavior: implementations decide
// what a visit returns (a single sampled value, a grid slice, ...).
type Visitor interface {
	VisitInteger(p Integer) any
	VisitReal(p Real) any
	VisitCategorical(p Categorical) any
}

// Domain describes one tunable axis of a search space. Domains are
// immutable after construction.
type Domain interface {
	Name() string

	// Accept dispatches to the matching Visitor operation and returns
	// its result.
	Accept(v Visitor) any

	// Primitive reports whether the domain is ordinally sampleable,
	// i.e. values have a position within a bounded range. Categorical
	// domains are not primitive.
	Primitive() bool
}

// Ordinal is implemented by primitive domains. Positions are expressed
// as unit values in [0, 1] so that local search can move a value
// toward or away from a center by a fractional step without knowing
// the domain's concrete bounds.
type Ordinal interface {
	Domain

	// UnitValue maps a concrete value to its position in [0, 1].
	UnitValue(v any) float64

	// FromUnitValue maps a position in [0, 1] back to a concrete
	// value, clamped to the domain bounds.
	FromUnitValue(u float64) any
}

// Integer is a bounded integer domain, inclusive on both ends.
type Integer struct {
	name string
	Low  int64
	High int64
}

// NewInteger creates an integer domain. Low must not exceed High.
func NewInteger(name string, low, high int64) (Integer, error) {
	if low > high {
		return Integer{}, fmt.Errorf("integer domain %q: low %d > high %d", name, low, high)
	}
	return Integer{name: name, Low: low, High: high}, nil
}

func (p Integer) Name() string        { return p.name }
func (p Integer) Accept(v Visitor) any { return v.VisitInteger(p) }
func (p Integer) Primitive() bool     { return true }

// UnitValue maps v to its position in [Low, High]. A degenerate domain
// (Low == High) always sits at 0.
func (p Integer) UnitValue(v any) float64 {
	if p.High == p.Low {
		return 0
	}
	return (toFloat(v) - float64(p.Low)) / float64(p.High-p.Low)
}

// FromUnitValue rounds to the nearest integer and clamps to the
// bounds. The range is widened by just under one half on both ends so
// that the boundary integers get a full-width bucket under rounding.
func (p Integer) FromUnitValue(u float64) any {
	low := float64(p.Low) - 0.4999
	high := float64(p.High) + 0.4999
	val := math.Round(u*(high-low) + low)
	if val < float64(p.Low) {
		val = float64(p.Low)
	}
	if val > float64(p.High) {
		val = float64(p.High)
	}
	return int64(val)
}

// Real is a bounded real domain.
type Real struct {
	name string
	Low  float64
	High float64
}

// NewReal creates a real domain. Low must not exceed High.
func NewReal(name string, low, high float64) (Real, error) {
	if low > high {
		return Real{}, fmt.Errorf("real domain %q: low %v > high %v", name, low, high)
	}
	return Real{name: name, Low: low, High: high}, nil
}

func (p Real) Name() string        { return p.name }
func (p Real) Accept(v Visitor) any { return v.VisitReal(p) }
func (p Real) Primitive() bool     { return true }

func (p Real) UnitValue(v any) float64 {
	if p.High == p.Low {
		return 0
	}
	return (toFloat(v) - p.Low) / (p.High - p.Low)
}

func (p Real) FromUnitValue(u float64) any {
	val := u*(p.High-p.Low) + p.Low
	if val < p.Low {
		val = p.Low
	}
	if val > p.High {
		val = p.High
	}
	return val
}

// Categorical is an unordered choice among a fixed, non-empty sequence
// of opaque values. Choice order is significant for enumeration.
type Categorical struct {
	name    string
	Choices []any
}

// NewCategorical creates a categorical domain with at least one choice.
func NewCategorical(name string, choices ...any) (Categorical, error) {
	if len(choices) == 0 {
		return Categorical{}, fmt.Errorf("categorical domain %q: no choices", name)
	}
	return Categorical{name: name, Choices: choices}, nil
}

func (p Categorical) Name() string        { return p.name }
func (p Categorical) Accept(v Visitor) any { return v.VisitCategorical(p) }
func (p Categorical) Primitive() bool     { return false }

// toFloat normalizes the numeric value types a configuration can carry.
func toFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int64:
		return float64(x)
	case int:
		return float64(x)
	default:
		return math.NaN()
	}
}
