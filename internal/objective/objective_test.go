package objective

import (
	"math"
	"reflect"
	"testing"

	"github.com/medlar-opt/medlar/trial"
)

func TestBealeOptimum(t *testing.T) {
	v := Beale(map[string]any{"x": 3.0, "y": 0.5})
	if math.Abs(v) > 1e-12 {
		t.Errorf("Beale(3, 0.5): got %v, want 0", v)
	}

	if Beale(map[string]any{"x": 0.0, "y": 0.0}) <= 0 {
		t.Error("off-optimum Beale value must be positive")
	}
}

func TestSphereOptimum(t *testing.T) {
	if v := Sphere(map[string]any{"a": 0.0, "b": 0.0, "c": 0.0}); v != 0 {
		t.Errorf("Sphere(0): got %v, want 0", v)
	}
	if v := Sphere(map[string]any{"a": 2.0, "b": int64(3)}); v != 13 {
		t.Errorf("Sphere(2, 3): got %v, want 13", v)
	}
}

func TestRastriginOptimum(t *testing.T) {
	v := Rastrigin(map[string]any{"a": 0.0, "b": 0.0})
	if math.Abs(v) > 1e-9 {
		t.Errorf("Rastrigin(0, 0): got %v, want 0", v)
	}
}

func TestBraninOptimum(t *testing.T) {
	// Known global minimum ~0.397887 at (pi, 2.275).
	v := Branin(map[string]any{"x": math.Pi, "y": 2.275})
	if math.Abs(v-0.397887) > 1e-3 {
		t.Errorf("Branin(pi, 2.275): got %v", v)
	}
}

func TestLookup(t *testing.T) {
	fn, err := Lookup("beale")
	if err != nil {
		t.Fatal(err)
	}

	tr := trial.New(1, 0, trial.NewConfig(map[string]any{"x": 3.0, "y": 0.5}, "seed"))
	res, err := fn(tr)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Objective) > 1e-12 {
		t.Errorf("objective: got %v, want 0", res.Objective)
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("griewank"); err == nil {
		t.Fatal("expected error for unknown objective")
	}
}

func TestNamesSorted(t *testing.T) {
	want := []string{"beale", "branin", "rastrigin", "sphere"}
	if got := Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
