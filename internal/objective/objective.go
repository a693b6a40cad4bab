// Package objective provides the built-in benchmark functions the CLI
// can optimize. They are standard low-dimensional test functions with
// known minima, useful for comparing strategies.
package objective

import (
	"fmt"
	"math"
	"sort"

	"github.com/medlar-opt/medlar/job"
	"github.com/medlar-opt/medlar/trial"
)

// Func maps named parameter values to an objective value (minimized).
type Func func(params map[string]any) float64

var builtins = map[string]Func{
	"beale":     Beale,
	"sphere":    Sphere,
	"rastrigin": Rastrigin,
	"branin":    Branin,
}

// Lookup resolves a built-in objective by name.
func Lookup(name string) (job.Objective, error) {
	fn, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown objective %q", name)
	}
	return func(t *trial.Trial) (trial.Result, error) {
		return trial.Result{Objective: fn(t.Config.Params)}, nil
	}, nil
}

// Names returns the built-in objective names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Beale evaluates the Beale function of params x and y. Global minimum
// 0 at (3, 0.5).
func Beale(params map[string]any) float64 {
	x := num(params["x"])
	y := num(params["y"])
	return math.Pow(1.5-x+x*y, 2) +
		math.Pow(2.25-x+x*y*y, 2) +
		math.Pow(2.625-x+x*y*y*y, 2)
}

// Sphere sums the squares of every numeric parameter. Global minimum 0
// at the origin.
func Sphere(params map[string]any) float64 {
	var sum float64
	for _, v := range params {
		x := num(v)
		sum += x * x
	}
	return sum
}

// Rastrigin evaluates the Rastrigin function over every numeric
// parameter. Global minimum 0 at the origin.
func Rastrigin(params map[string]any) float64 {
	sum := 10.0 * float64(len(params))
	for _, v := range params {
		x := num(v)
		sum += x*x - 10.0*math.Cos(2.0*math.Pi*x)
	}
	return sum
}

// Branin evaluates the Branin function of params x and y.
func Branin(params map[string]any) float64 {
	x := num(params["x"])
	y := num(params["y"])
	const (
		a = 1.0
		b = 5.1 / (4.0 * math.Pi * math.Pi)
		c = 5.0 / math.Pi
		r = 6.0
		s = 10.0
		t = 1.0 / (8.0 * math.Pi)
	)
	return a*math.Pow(y-b*x*x+c*x-r, 2) + s*(1-t)*math.Cos(x) + s
}

func num(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	case int:
		return float64(x)
	default:
		return math.NaN()
	}
}
