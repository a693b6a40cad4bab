package search

import (
	"math"

	"github.com/medlar-opt/medlar/param"
)

// Randomizer samples one uniformly random value per visited domain.
type Randomizer struct {
	src Source
}

// NewRandomizer creates a randomizer drawing from the given source.
func NewRandomizer(src Source) Randomizer {
	return Randomizer{src: src}
}

// VisitInteger returns a uniform integer in [Low, High], inclusive.
func (r Randomizer) VisitInteger(p param.Integer) any {
	return p.Low + int64(r.src.Intn(int(p.High-p.Low)+1))
}

// VisitReal returns a uniform float in [Low, High).
func (r Randomizer) VisitReal(p param.Real) any {
	return p.Low + (p.High-p.Low)*r.src.Float64()
}

// VisitCategorical returns a uniformly chosen element of Choices.
func (r Randomizer) VisitCategorical(p param.Categorical) any {
	return p.Choices[r.src.Intn(len(p.Choices))]
}

// Sample draws one full configuration map from the space.
func (r Randomizer) Sample(space *param.Space) map[string]any {
	params := make(map[string]any, space.Len())
	for _, d := range space.Domains() {
		params[d.Name()] = d.Accept(r)
	}
	return params
}

// gridStep is the fixed step of real-valued grid axes.
const gridStep = 0.1

// gridMaker enumerates the full value grid of each visited domain.
// Integer axes list every integer in range; real axes advance in
// gridStep increments rounded to two decimals, with an overshoot
// guard so High stays reachable; categorical axes list Choices
// verbatim.
type gridMaker struct{}

func (gridMaker) VisitInteger(p param.Integer) any {
	values := make([]any, 0, p.High-p.Low+1)
	for v := p.Low; v <= p.High; v++ {
		values = append(values, v)
	}
	return values
}

func (gridMaker) VisitReal(p param.Real) any {
	var values []any
	for i := 0; ; i++ {
		v := p.Low + float64(i)*gridStep
		if v >= p.High+gridStep {
			break
		}
		values = append(values, math.Round(v*100)/100)
	}
	return values
}

func (gridMaker) VisitCategorical(p param.Categorical) any {
	values := make([]any, len(p.Choices))
	copy(values, p.Choices)
	return values
}
