package search

import (
	"github.com/medlar-opt/medlar/param"
	"github.com/medlar-opt/medlar/trial"
)

// Grid walks the Cartesian product of every domain's value grid in
// search-space parameter order, emitting each combination exactly
// once. Once the product is spent Ask returns nil forever.
type Grid struct {
	space *param.Space
	grids [][]any
	// indices is the product odometer; nil-ed out on exhaustion.
	indices []int
	spent   bool
}

// NewGrid creates a grid strategy over the space.
func NewGrid(space *param.Space) *Grid {
	grids := make([][]any, 0, space.Len())
	for _, d := range space.Domains() {
		grids = append(grids, d.Accept(gridMaker{}).([]any))
	}
	g := &Grid{space: space, grids: grids, indices: make([]int, len(grids))}
	for _, axis := range grids {
		if len(axis) == 0 {
			g.spent = true
		}
	}
	return g
}

func (g *Grid) Name() string { return "grid" }

// Ask returns the next combination, or nil when the product iterator
// is spent.
func (g *Grid) Ask() []trial.Config {
	if g.spent {
		return nil
	}

	params := make(map[string]any, len(g.grids))
	for i, d := range g.space.Domains() {
		params[d.Name()] = g.grids[i][g.indices[i]]
	}

	// Advance the odometer, last axis fastest.
	for i := len(g.indices) - 1; i >= 0; i-- {
		g.indices[i]++
		if g.indices[i] < len(g.grids[i]) {
			break
		}
		g.indices[i] = 0
		if i == 0 {
			g.spent = true
		}
	}
	if len(g.indices) == 0 {
		g.spent = true
	}

	return []trial.Config{trial.NewConfig(params, g.Name())}
}

// Tell is a no-op: grid enumeration ignores feedback.
func (g *Grid) Tell(trial.Config, float64) {}
