package search

import (
	"math"

	"github.com/medlar-opt/medlar/param"
	"github.com/medlar-opt/medlar/trial"
)

// Surrogate is a regression-guided strategy. It fits a Gaussian
// process incrementally on told (configuration, objective) pairs,
// encoded onto the unit cube. Early Asks return plain random samples
// to warm the model up; afterwards each Ask scores a pool of random
// candidates with a lower-confidence-bound acquisition and proposes
// the most promising one. It never exhausts.
type Surrogate struct {
	space      *param.Space
	randomizer Randomizer
	gp         *gaussianProcess

	warmup     int
	candidates int
	beta       float64

	asked int
}

// NewSurrogate creates a surrogate-guided strategy over the space.
func NewSurrogate(space *param.Space, src Source) *Surrogate {
	return &Surrogate{
		space:      space,
		randomizer: NewRandomizer(src),
		gp:         newGaussianProcess(),
		warmup:     10,
		candidates: 50,
		beta:       2.0,
	}
}

// WithWarmup sets how many initial Asks are answered by pure random
// sampling before the model takes over.
func (s *Surrogate) WithWarmup(n int) *Surrogate {
	s.warmup = n
	return s
}

// WithCandidates sets the size of the random candidate pool scored per
// model-guided Ask.
func (s *Surrogate) WithCandidates(n int) *Surrogate {
	s.candidates = n
	return s
}

func (s *Surrogate) Name() string { return "surrogate" }

func (s *Surrogate) Ask() []trial.Config {
	s.asked++
	if s.asked <= s.warmup || len(s.gp.x) == 0 {
		return []trial.Config{trial.NewConfig(s.randomizer.Sample(s.space), s.Name())}
	}

	var bestParams map[string]any
	bestScore := math.Inf(1)

	for i := 0; i < s.candidates; i++ {
		params := s.randomizer.Sample(s.space)
		mean, variance := s.gp.predict(s.encode(params))

		// Lower confidence bound: favor low predicted objective and
		// high uncertainty (minimization).
		score := mean - s.beta*math.Sqrt(variance)
		if score < bestScore {
			bestScore = score
			bestParams = params
		}
	}

	return []trial.Config{trial.NewConfig(bestParams, s.Name())}
}

func (s *Surrogate) Tell(cfg trial.Config, objective float64) {
	if math.IsInf(objective, 0) || math.IsNaN(objective) {
		// Failed evaluations carry a sentinel objective; feeding it to
		// the regression would flatten the model.
		return
	}
	s.gp.update(s.encode(cfg.Params), objective)
}

// encode maps a configuration onto the unit cube in space order.
// Primitive domains use their unit position; categorical domains use
// the normalized choice index.
func (s *Surrogate) encode(params map[string]any) []float64 {
	x := make([]float64, 0, s.space.Len())
	for _, d := range s.space.Domains() {
		v := params[d.Name()]
		if ord, ok := d.(param.Ordinal); ok {
			x = append(x, ord.UnitValue(v))
			continue
		}
		cat := d.(param.Categorical)
		idx := 0
		for i, c := range cat.Choices {
			if c == v {
				idx = i
				break
			}
		}
		if len(cat.Choices) > 1 {
			x = append(x, float64(idx)/float64(len(cat.Choices)-1))
		} else {
			x = append(x, 0)
		}
	}
	return x
}
