// Package ensemble composes search strategies into a multi-armed
// bandit. The meta strategy owns a set of named arms, decides per Ask
// which arm answers, and credits arms on Tell when their proposal sets
// a new job-wide minimum.
package ensemble

import (
	"errors"
	"fmt"
	"math"

	"github.com/medlar-opt/medlar/search"
	"github.com/medlar-opt/medlar/trial"
)

var (
	// ErrInvalidOptimizer is returned for an unknown ensemble policy
	// name.
	ErrInvalidOptimizer = errors.New("invalid optimizer")

	// ErrDuplicateArm is returned when a strategy instance or name is
	// registered twice under the same meta strategy.
	ErrDuplicateArm = errors.New("strategy already registered")
)

// arm is one managed strategy plus its running reward statistics.
// Rewards are sparse 0/1 events: 1 when a told objective improves the
// meta's incumbent best.
type arm struct {
	strategy  search.Strategy
	pulls     int
	rewards   int
	exhausted bool
}

// mean returns the arm's empirical reward rate.
func (a *arm) mean() float64 {
	if a.pulls == 0 {
		return 0
	}
	return float64(a.rewards) / float64(a.pulls)
}

// selector implements one bandit selection policy. pick returns the
// index of the chosen non-exhausted arm, or -1 when none remains.
type selector interface {
	policy() string
	pick(arms []*arm) int
}

// Meta routes Ask calls across registered arms and feeds Tell results
// back to the arm that produced the configuration. Meta itself
// implements search.Strategy, so ensembles nest.
type Meta struct {
	sel    selector
	arms   []*arm
	byName map[string]*arm

	// route maps requestor tags seen in Ask results to the serving
	// arm. With nested ensembles the tag belongs to a leaf strategy,
	// not to the immediate arm, so routing is learned, not declared.
	route map[string]*arm

	best float64
}

func newMeta(sel selector) *Meta {
	return &Meta{
		sel:    sel,
		byName: make(map[string]*arm),
		route:  make(map[string]*arm),
		best:   math.Inf(1),
	}
}

// New builds a meta strategy by policy name: "round_robin", "ucb1",
// "ucb_tuned" or "thompson". Unknown names yield ErrInvalidOptimizer.
func New(policy string) (*Meta, error) {
	switch policy {
	case "round_robin", "roundrobin":
		return NewRoundRobin(), nil
	case "ucb1":
		return NewUCB1(), nil
	case "ucb_tuned", "ucbtuned":
		return NewUCBTuned(), nil
	case "thompson":
		return NewThompson(search.NewSource()), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidOptimizer, policy)
	}
}

// Policies returns the recognized policy names.
func Policies() []string {
	return []string{"round_robin", "ucb1", "ucb_tuned", "thompson"}
}

// Register adds a strategy as a new arm. Registering the same instance
// or the same strategy name twice is an error; wrap duplicates with
// search.Named to disambiguate.
func (m *Meta) Register(s search.Strategy) error {
	for _, a := range m.arms {
		if a.strategy == s {
			return fmt.Errorf("%w: %q", ErrDuplicateArm, s.Name())
		}
	}
	if _, ok := m.byName[s.Name()]; ok {
		return fmt.Errorf("%w: name %q", ErrDuplicateArm, s.Name())
	}

	a := &arm{strategy: s}
	m.arms = append(m.arms, a)
	m.byName[s.Name()] = a
	return nil
}

// Arms returns the number of registered arms.
func (m *Meta) Arms() int { return len(m.arms) }

// Name implements search.Strategy.
func (m *Meta) Name() string { return m.sel.policy() }

// Ask picks an arm per policy and returns its proposals. An arm that
// signals exhaustion is permanently excluded and selection retries;
// when every arm is exhausted, Ask returns nil.
func (m *Meta) Ask() []trial.Config {
	for {
		idx := m.sel.pick(m.arms)
		if idx < 0 {
			return nil
		}

		a := m.arms[idx]
		cfgs := a.strategy.Ask()
		if len(cfgs) == 0 {
			a.exhausted = true
			continue
		}

		a.pulls++
		for _, c := range cfgs {
			m.route[c.Requestor] = a
		}
		return cfgs
	}
}

// Tell updates the incumbent best, credits the producing arm with a
// reward when the objective is a new minimum, and forwards the
// feedback to that arm. Feedback whose requestor cannot be resolved
// (e.g. replay of a strategy that is no longer registered) still
// updates the incumbent.
func (m *Meta) Tell(cfg trial.Config, objective float64) {
	reward := 0
	if objective < m.best {
		m.best = objective
		reward = 1
	}

	a, ok := m.route[cfg.Requestor]
	if !ok {
		a, ok = m.byName[cfg.Requestor]
	}
	if !ok {
		return
	}

	a.rewards += reward
	a.strategy.Tell(cfg, objective)
}

// Best returns the incumbent best objective told so far, +Inf when
// nothing was told yet.
func (m *Meta) Best() float64 { return m.best }

func totalPulls(arms []*arm) int {
	total := 0
	for _, a := range arms {
		total += a.pulls
	}
	return total
}
