package search

import (
	"github.com/medlar-opt/medlar/param"
	"github.com/medlar-opt/medlar/trial"
)

// Random proposes one freshly sampled configuration per Ask, forever.
// It is stateless: Tell is a no-op.
type Random struct {
	space      *param.Space
	randomizer Randomizer
}

// NewRandom creates a uniform-random strategy over the space.
func NewRandom(space *param.Space, src Source) *Random {
	return &Random{space: space, randomizer: NewRandomizer(src)}
}

func (r *Random) Name() string { return "random" }

func (r *Random) Ask() []trial.Config {
	return []trial.Config{trial.NewConfig(r.randomizer.Sample(r.space), r.Name())}
}

func (r *Random) Tell(trial.Config, float64) {}

// Seed replays a fixed list of pre-supplied configurations. The first
// Ask returns them all at once; every later Ask returns nil.
type Seed struct {
	seeds   []map[string]any
	emitted bool
}

// NewSeed creates a seed-replay strategy.
func NewSeed(seeds ...map[string]any) *Seed {
	return &Seed{seeds: seeds}
}

func (s *Seed) Name() string { return "seed" }

func (s *Seed) Ask() []trial.Config {
	if s.emitted {
		return nil
	}
	s.emitted = true
	cfgs := make([]trial.Config, 0, len(s.seeds))
	for _, params := range s.seeds {
		cfgs = append(cfgs, trial.NewConfig(params, s.Name()))
	}
	return cfgs
}

func (s *Seed) Tell(trial.Config, float64) {}
