package search

import (
	"github.com/medlar-opt/medlar/param"
	"github.com/medlar-opt/medlar/trial"
)

// Pattern is a compass/pattern local search. It keeps a center
// configuration and a shrinking step size. Each round emits the center
// and, per primitive parameter, two perturbations of the center with
// the parameter's unit position moved by ±step; categorical parameters
// contribute one configuration with the parameter freshly randomized.
// When a round produces a configuration strictly better than the
// center, that configuration becomes the new center; otherwise the
// step halves and the center is retried. The strategy never exhausts:
// it degrades toward a local optimum as the step shrinks.
//
// Round bookkeeping identifies configurations by content hash, so a
// re-derived center that is bitwise identical to the old one compares
// equal regardless of which map instance carries it.
type Pattern struct {
	space      *param.Space
	randomizer Randomizer
	stepSize   float64

	center     map[string]any
	centerHash string

	queue       []trial.Config
	roundHashes []string

	// observed maps config hash to the best objective told for it and
	// the config itself, across the whole run.
	observed map[string]observation
}

type observation struct {
	params map[string]any
	value  float64
}

// initialStep is the starting unit step; it halves on stagnation.
const initialStep = 0.1

// NewPattern creates a pattern search strategy over the space.
func NewPattern(space *param.Space, src Source) *Pattern {
	return &Pattern{
		space:      space,
		randomizer: NewRandomizer(src),
		stepSize:   initialStep,
		observed:   make(map[string]observation),
	}
}

func (p *Pattern) Name() string { return "pattern" }

func (p *Pattern) Ask() []trial.Config {
	if len(p.queue) == 0 {
		if p.center == nil {
			p.center = p.randomizer.Sample(p.space)
			p.centerHash = trial.NewConfig(p.center, p.Name()).Hash()
		} else {
			p.endRound()
		}
		p.buildRound()
	}

	next := p.queue[0]
	p.queue = p.queue[1:]
	return []trial.Config{next}
}

// Tell records the observation for the round-end comparison. Duplicate
// feedback for the same configuration keeps the best value seen.
func (p *Pattern) Tell(cfg trial.Config, objective float64) {
	h := cfg.Hash()
	obs, ok := p.observed[h]
	if !ok || objective < obs.value {
		p.observed[h] = observation{params: cfg.Params, value: objective}
	}
}

// buildRound queues the center followed by its perturbations.
func (p *Pattern) buildRound() {
	p.queue = p.queue[:0]
	p.roundHashes = p.roundHashes[:0]

	p.push(trial.NewConfig(p.center, p.Name()))

	for _, d := range p.space.Domains() {
		ord, ok := d.(param.Ordinal)
		if !ok {
			cfg := p.centerWith(d.Name(), d.Accept(p.randomizer))
			p.push(cfg)
			continue
		}

		unit := ord.UnitValue(p.center[d.Name()])
		if unit > 0 {
			p.push(p.centerWith(d.Name(), ord.FromUnitValue(clamp01(unit-p.stepSize))))
		}
		if unit < 1 {
			p.push(p.centerWith(d.Name(), ord.FromUnitValue(clamp01(unit+p.stepSize))))
		}
	}
}

// endRound moves the center to the round's best configuration if it
// strictly improved on the center's own value; otherwise halves the
// step.
func (p *Pattern) endRound() {
	center, centerSeen := p.observed[p.centerHash]

	bestHash := ""
	best := observation{}
	for _, h := range p.roundHashes {
		obs, ok := p.observed[h]
		if !ok {
			continue
		}
		if bestHash == "" || obs.value < best.value {
			bestHash = h
			best = obs
		}
	}

	improved := bestHash != "" && bestHash != p.centerHash &&
		(!centerSeen || best.value < center.value)
	if improved {
		p.center = best.params
		p.centerHash = bestHash
		return
	}
	p.stepSize /= 2
}

func (p *Pattern) push(cfg trial.Config) {
	p.queue = append(p.queue, cfg)
	p.roundHashes = append(p.roundHashes, cfg.Hash())
}

func (p *Pattern) centerWith(name string, value any) trial.Config {
	params := make(map[string]any, len(p.center))
	for k, v := range p.center {
		params[k] = v
	}
	params[name] = value
	return trial.NewConfig(params, p.Name())
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
