package search

import (
	"testing"
)

func TestRandomSamplesWithinBounds(t *testing.T) {
	space := mustSpace(t,
		mustInteger(t, "n", -3, 3),
		mustReal(t, "x", 0.5, 1.5),
		mustCategorical(t, "opt", "a", "b", "c"),
	)
	r := NewRandom(space, NewSeededSource(42))

	for i := 0; i < 200; i++ {
		cfgs := r.Ask()
		if len(cfgs) != 1 {
			t.Fatalf("ask %d: got %d configs, want 1", i, len(cfgs))
		}
		params := cfgs[0].Params

		n := params["n"].(int64)
		if n < -3 || n > 3 {
			t.Fatalf("integer out of bounds: %d", n)
		}
		x := params["x"].(float64)
		if x < 0.5 || x >= 1.5 {
			t.Fatalf("real out of bounds: %v", x)
		}
		opt := params["opt"].(string)
		if opt != "a" && opt != "b" && opt != "c" {
			t.Fatalf("unknown choice: %q", opt)
		}
		if cfgs[0].Requestor != "random" {
			t.Fatalf("requestor: got %q", cfgs[0].Requestor)
		}
	}
}

func TestRandomIsDeterministicWithFakeSource(t *testing.T) {
	space := mustSpace(t,
		mustReal(t, "x", 0, 1),
		mustReal(t, "y", 0, 1),
	)
	src := &fakeSource{floats: []float64{0.8, 0.9}}
	r := NewRandom(space, src)

	cfgs := r.Ask()
	params := cfgs[0].Params
	if params["x"].(float64) != 0.8 {
		t.Errorf("x: got %v, want 0.8", params["x"])
	}
	if params["y"].(float64) != 0.9 {
		t.Errorf("y: got %v, want 0.9", params["y"])
	}
}

func TestSeedEmitsOnceThenExhausts(t *testing.T) {
	s := NewSeed(
		map[string]any{"x": 0.1},
		map[string]any{"x": 0.2},
	)

	cfgs := s.Ask()
	if len(cfgs) != 2 {
		t.Fatalf("got %d configs, want 2", len(cfgs))
	}
	for _, c := range cfgs {
		if c.Requestor != "seed" {
			t.Errorf("requestor: got %q, want %q", c.Requestor, "seed")
		}
	}

	if cfgs := s.Ask(); cfgs != nil {
		t.Fatal("second ask must signal exhaustion")
	}
	if cfgs := s.Ask(); cfgs != nil {
		t.Fatal("exhaustion must be permanent")
	}
}

func TestSeedWithNoSeedsExhaustsImmediately(t *testing.T) {
	s := NewSeed()
	if cfgs := s.Ask(); len(cfgs) != 0 {
		t.Fatalf("got %d configs, want 0", len(cfgs))
	}
}

func TestRandomizerSampleCoversSpace(t *testing.T) {
	space := mustSpace(t,
		mustInteger(t, "n", 5, 5),
		mustCategorical(t, "opt", "only"),
	)
	r := NewRandomizer(&fakeSource{})

	params := r.Sample(space)
	if len(params) != 2 {
		t.Fatalf("got %d params, want 2", len(params))
	}
	if params["n"].(int64) != 5 {
		t.Errorf("n: got %v, want 5", params["n"])
	}
	if params["opt"].(string) != "only" {
		t.Errorf("opt: got %v, want only", params["opt"])
	}
}
