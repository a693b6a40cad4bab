package search

import (
	"math"
	"testing"

	"github.com/medlar-opt/medlar/trial"
)

func TestSurrogateWarmupSamplesRandomly(t *testing.T) {
	space := mustSpace(t, mustReal(t, "x", 0, 1))
	s := NewSurrogate(space, &fakeSource{floats: []float64{0.25}}).WithWarmup(3)

	for i := 0; i < 3; i++ {
		cfg := askOne(t, s)
		if got := cfg.Params["x"].(float64); got != 0.25 {
			t.Fatalf("warmup ask %d: got %v, want the raw sample 0.25", i, got)
		}
	}
	if len(s.gp.x) != 0 {
		t.Error("warmup asks must not touch the model")
	}
}

func TestSurrogateUsesModelAfterWarmup(t *testing.T) {
	space := mustSpace(t, mustReal(t, "x", 0, 1))
	s := NewSurrogate(space, NewSeededSource(3)).WithWarmup(1).WithCandidates(10)

	cfg := askOne(t, s)
	s.Tell(cfg, 0.7)
	if len(s.gp.x) != 1 {
		t.Fatalf("model observations: got %d, want 1", len(s.gp.x))
	}

	guided := askOne(t, s)
	x := guided.Params["x"].(float64)
	if x < 0 || x >= 1 {
		t.Errorf("guided proposal out of bounds: %v", x)
	}
	if guided.Requestor != "surrogate" {
		t.Errorf("requestor: got %q", guided.Requestor)
	}
}

func TestSurrogateIgnoresNonFiniteFeedback(t *testing.T) {
	space := mustSpace(t, mustReal(t, "x", 0, 1))
	s := NewSurrogate(space, NewSeededSource(3))

	cfg := trial.NewConfig(map[string]any{"x": 0.5}, "surrogate")
	s.Tell(cfg, math.Inf(1))
	s.Tell(cfg, math.NaN())

	if len(s.gp.x) != 0 {
		t.Errorf("non-finite feedback must be dropped, model has %d observations", len(s.gp.x))
	}
}

func TestSurrogateEncodesOntoUnitCube(t *testing.T) {
	space := mustSpace(t,
		mustInteger(t, "n", 0, 10),
		mustReal(t, "x", -1, 1),
		mustCategorical(t, "opt", "a", "b", "c"),
	)
	s := NewSurrogate(space, NewSeededSource(3))

	x := s.encode(map[string]any{"n": int64(5), "x": 0.0, "opt": "c"})
	want := []float64{0.5, 0.5, 1.0}
	if len(x) != len(want) {
		t.Fatalf("got %v, want %v", x, want)
	}
	for i := range want {
		if math.Abs(x[i]-want[i]) > 1e-12 {
			t.Errorf("dimension %d: got %v, want %v", i, x[i], want[i])
		}
	}
}

func TestGaussianProcessPrior(t *testing.T) {
	gp := newGaussianProcess()
	mean, variance := gp.predict([]float64{0.5})
	if mean != 0 || variance != 1 {
		t.Errorf("prior: got (%v, %v), want (0, 1)", mean, variance)
	}
}

func TestGaussianProcessInterpolatesObservation(t *testing.T) {
	gp := newGaussianProcess()
	gp.update([]float64{0.5}, 2.0)

	mean, variance := gp.predict([]float64{0.5})
	if math.Abs(mean-2.0) > 1e-9 {
		t.Errorf("mean at observation: got %v, want 2", mean)
	}
	if variance > 1e-9 {
		t.Errorf("variance at observation: got %v, want 0", variance)
	}

	// Far away the prediction relaxes toward the prior.
	farMean, farVariance := gp.predict([]float64{100})
	if math.Abs(farMean) > 1e-6 {
		t.Errorf("far mean: got %v, want ~0", farMean)
	}
	if farVariance < 0.9 {
		t.Errorf("far variance: got %v, want ~1", farVariance)
	}
}
