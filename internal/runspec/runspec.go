// Package runspec parses the YAML run specifications consumed by the
// CLI: a search space, the objective to optimize, the ensemble policy
// and the run budget.
package runspec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/medlar-opt/medlar/ensemble"
	"github.com/medlar-opt/medlar/param"
	"github.com/medlar-opt/medlar/search"
)

// Spec is one run specification file.
type Spec struct {
	// Name is the job name; generated when empty.
	Name string `yaml:"name"`

	// Storage overrides the configured storage locator.
	Storage string `yaml:"storage"`

	// Objective names a built-in benchmark objective.
	Objective string `yaml:"objective"`

	// Optimizer is the ensemble policy name. Defaults to round_robin.
	Optimizer string `yaml:"optimizer"`

	// Algorithms are registered strategy names. Defaults to
	// ["surrogate"].
	Algorithms []string `yaml:"algorithms"`

	Trials      int `yaml:"trials"`
	Parallelism int `yaml:"parallelism"`

	// Seed fixes the random source for reproducible runs; 0 means
	// time-seeded.
	Seed int64 `yaml:"seed"`

	Space []Param `yaml:"space"`
}

// Param is one search-space axis in a spec file.
type Param struct {
	Name    string   `yaml:"name"`
	Type    string   `yaml:"type"` // "integer", "real" or "categorical"
	Low     float64  `yaml:"low"`
	High    float64  `yaml:"high"`
	Choices []string `yaml:"choices"`
}

// Parse reads and validates a spec file.
func Parse(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if len(s.Space) == 0 {
		return nil, fmt.Errorf("%s: spec has no search space", path)
	}
	if s.Objective == "" {
		return nil, fmt.Errorf("%s: spec names no objective", path)
	}

	return &s, nil
}

// BuildSpace constructs the search space described by the spec.
func (s *Spec) BuildSpace() (*param.Space, error) {
	space, _ := param.NewSpace()
	for _, p := range s.Space {
		d, err := buildDomain(p)
		if err != nil {
			return nil, err
		}
		if err := space.Insert(d); err != nil {
			return nil, err
		}
	}
	return space, nil
}

func buildDomain(p Param) (param.Domain, error) {
	switch p.Type {
	case "integer", "int":
		return param.NewInteger(p.Name, int64(p.Low), int64(p.High))
	case "real", "float":
		return param.NewReal(p.Name, p.Low, p.High)
	case "categorical":
		choices := make([]any, len(p.Choices))
		for i, c := range p.Choices {
			choices[i] = c
		}
		return param.NewCategorical(p.Name, choices...)
	default:
		return nil, fmt.Errorf("parameter %q: unknown type %q", p.Name, p.Type)
	}
}

// BuildOptimizer constructs the ensemble named by the spec.
func (s *Spec) BuildOptimizer() (*ensemble.Meta, error) {
	policy := s.Optimizer
	if policy == "" {
		policy = "round_robin"
	}
	return ensemble.New(policy)
}

// BuildAlgorithms resolves the spec's strategy names over the given
// space and source.
func (s *Spec) BuildAlgorithms(space *param.Space, src search.Source) ([]search.Strategy, error) {
	var strategies []search.Strategy
	for _, name := range s.Algorithms {
		factory, err := search.Lookup(name)
		if err != nil {
			return nil, err
		}
		strategies = append(strategies, factory(space, src))
	}
	return strategies, nil
}

// Source returns the spec's random source.
func (s *Spec) Source() search.Source {
	if s.Seed != 0 {
		return search.NewSeededSource(s.Seed)
	}
	return search.NewSource()
}
