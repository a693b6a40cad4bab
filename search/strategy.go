// Package search provides the proposal-generating strategies of the
// optimization engine. Every strategy speaks the ask/tell protocol:
// Ask proposes configurations, Tell feeds evaluation outcomes back.
package search

import (
	"errors"
	"fmt"
	"sort"

	"github.com/medlar-opt/medlar/param"
	"github.com/medlar-opt/medlar/trial"
)

// ErrAlgorithmNotFound is returned when a strategy name is not in the
// registry.
var ErrAlgorithmNotFound = errors.New("search algorithm not found")

// Strategy proposes configurations and learns from their outcomes.
//
// Ask must never block. It returns a batch of fresh configurations, or
// nil once the strategy's generation policy is exhausted; after that
// it returns nil on every subsequent call. Tell must tolerate
// duplicate and out-of-order feedback.
type Strategy interface {
	// Name identifies the strategy instance. Configurations it
	// proposes carry this name as their requestor tag.
	Name() string

	Ask() []trial.Config
	Tell(cfg trial.Config, objective float64)
}

// Named wraps a strategy under a different name, re-tagging every
// proposed configuration. Use it to register two instances of the same
// strategy kind side by side in one ensemble.
func Named(name string, s Strategy) Strategy {
	return &named{name: name, inner: s}
}

type named struct {
	name  string
	inner Strategy
}

func (n *named) Name() string { return n.name }

func (n *named) Ask() []trial.Config {
	cfgs := n.inner.Ask()
	for i := range cfgs {
		cfgs[i].Requestor = n.name
	}
	return cfgs
}

func (n *named) Tell(cfg trial.Config, objective float64) {
	n.inner.Tell(cfg, objective)
}

// Factory constructs a strategy over a space with an explicit random
// source.
type Factory func(space *param.Space, src Source) Strategy

var registry = map[string]Factory{
	"grid": func(space *param.Space, _ Source) Strategy {
		return NewGrid(space)
	},
	"random": func(space *param.Space, src Source) Strategy {
		return NewRandom(space, src)
	},
	"pattern": func(space *param.Space, src Source) Strategy {
		return NewPattern(space, src)
	},
	"surrogate": func(space *param.Space, src Source) Strategy {
		return NewSurrogate(space, src)
	},
}

// Lookup resolves a registered strategy name to its factory.
func Lookup(name string) (Factory, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrAlgorithmNotFound, name)
	}
	return f, nil
}

// Algorithms returns the registered strategy names, sorted.
func Algorithms() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
