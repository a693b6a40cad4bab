package search

import (
	"errors"
	"reflect"
	"testing"

	"github.com/medlar-opt/medlar/param"
)

// fakeSource cycles through fixed float and int sequences.
type fakeSource struct {
	floats []float64
	fi     int
	ints   []int
	ii     int
}

func (f *fakeSource) Float64() float64 {
	if len(f.floats) == 0 {
		return 0
	}
	v := f.floats[f.fi%len(f.floats)]
	f.fi++
	return v
}

func (f *fakeSource) Intn(n int) int {
	if len(f.ints) == 0 {
		return 0
	}
	v := f.ints[f.ii%len(f.ints)] % n
	f.ii++
	return v
}

func mustSpace(t *testing.T, domains ...param.Domain) *param.Space {
	t.Helper()
	space, err := param.NewSpace(domains...)
	if err != nil {
		t.Fatal(err)
	}
	return space
}

func mustInteger(t *testing.T, name string, low, high int64) param.Integer {
	t.Helper()
	p, err := param.NewInteger(name, low, high)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func mustReal(t *testing.T, name string, low, high float64) param.Real {
	t.Helper()
	p, err := param.NewReal(name, low, high)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func mustCategorical(t *testing.T, name string, choices ...any) param.Categorical {
	t.Helper()
	p, err := param.NewCategorical(name, choices...)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLookupUnknownAlgorithm(t *testing.T) {
	_, err := Lookup("simulated_annealing")
	if !errors.Is(err, ErrAlgorithmNotFound) {
		t.Fatalf("got %v, want ErrAlgorithmNotFound", err)
	}
}

func TestLookupRegisteredAlgorithms(t *testing.T) {
	space := mustSpace(t, mustReal(t, "x", 0, 1))
	src := NewSeededSource(1)

	for _, name := range Algorithms() {
		factory, err := Lookup(name)
		if err != nil {
			t.Fatalf("lookup %q: %v", name, err)
		}
		s := factory(space, src)
		if s.Name() != name {
			t.Errorf("strategy %q reports name %q", name, s.Name())
		}
	}
}

func TestAlgorithmsSorted(t *testing.T) {
	want := []string{"grid", "pattern", "random", "surrogate"}
	if got := Algorithms(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNamedRetags(t *testing.T) {
	space := mustSpace(t, mustReal(t, "x", 0, 1))
	s := Named("random-b", NewRandom(space, NewSeededSource(1)))

	if s.Name() != "random-b" {
		t.Errorf("name: got %q", s.Name())
	}
	cfgs := s.Ask()
	if len(cfgs) != 1 {
		t.Fatalf("got %d configs, want 1", len(cfgs))
	}
	if cfgs[0].Requestor != "random-b" {
		t.Errorf("requestor: got %q, want %q", cfgs[0].Requestor, "random-b")
	}
}
