package ensemble

import (
	"math"

	"github.com/medlar-opt/medlar/search"
)

// NewThompson creates a meta strategy using Thompson sampling: each
// arm's success probability is modeled as Beta(rewards+1, failures+1),
// one posterior sample is drawn per arm per decision, and the largest
// sample wins.
func NewThompson(src search.Source) *Meta {
	return newMeta(&thompson{src: src})
}

type thompson struct {
	src search.Source
}

func (t *thompson) policy() string { return "thompson" }

func (t *thompson) pick(arms []*arm) int {
	best := -1
	bestSample := math.Inf(-1)
	for i, a := range arms {
		if a.exhausted {
			continue
		}

		failures := a.pulls - a.rewards
		if failures < 0 {
			failures = 0
		}
		sample := t.betaSample(float64(a.rewards+1), float64(failures+1))
		if sample > bestSample {
			bestSample = sample
			best = i
		}
	}
	return best
}

// betaSample draws Beta(a, b) as Ga/(Ga+Gb). Both shapes are >= 1
// here, so the Marsaglia-Tsang gamma sampler applies directly.
func (t *thompson) betaSample(a, b float64) float64 {
	ga := t.gammaSample(a)
	gb := t.gammaSample(b)
	if ga+gb == 0 {
		return 0.5
	}
	return ga / (ga + gb)
}

// gammaSample draws Gamma(shape, 1) for shape >= 1 via
// Marsaglia-Tsang squeeze rejection.
func (t *thompson) gammaSample(shape float64) float64 {
	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)
	for {
		x := t.normSample()
		v := 1.0 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v

		u := t.src.Float64()
		if u < 1.0-0.0331*x*x*x*x {
			return d * v
		}
		if u > 0 && math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v
		}
	}
}

// normSample draws a standard normal via Box-Muller, keeping the
// Source interface down to Float64.
func (t *thompson) normSample() float64 {
	u := t.src.Float64()
	for u == 0 {
		u = t.src.Float64()
	}
	v := t.src.Float64()
	return math.Sqrt(-2.0*math.Log(u)) * math.Cos(2.0*math.Pi*v)
}
