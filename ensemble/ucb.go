package ensemble

import "math"

// NewUCB1 creates a meta strategy using the UCB1 upper-confidence
// policy: the arm maximizing mean + sqrt(2 ln N / n). An arm that was
// never pulled has absolute priority; ties go to registration order.
func NewUCB1() *Meta {
	return newMeta(ucb{tuned: false})
}

// NewUCBTuned creates the UCB-Tuned variant, which scales the
// exploration bonus by an estimate of the arm's reward variance capped
// at 1/4, tightening bounds for low-variance arms.
func NewUCBTuned() *Meta {
	return newMeta(ucb{tuned: true})
}

type ucb struct {
	tuned bool
}

func (u ucb) policy() string {
	if u.tuned {
		return "ucb_tuned"
	}
	return "ucb1"
}

func (u ucb) pick(arms []*arm) int {
	total := totalPulls(arms)

	best := -1
	bestScore := math.Inf(-1)
	for i, a := range arms {
		if a.exhausted {
			continue
		}
		if a.pulls == 0 {
			return i
		}

		score := a.mean() + u.bonus(a, total)
		if score > bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}

func (u ucb) bonus(a *arm, total int) float64 {
	logTerm := math.Log(float64(total)) / float64(a.pulls)
	if !u.tuned {
		return math.Sqrt(2 * logTerm)
	}

	// Bernoulli rewards: empirical variance is p(1-p), padded with the
	// exploration term and capped at 1/4.
	p := a.mean()
	variance := p*(1-p) + math.Sqrt(2*logTerm)
	if variance > 0.25 {
		variance = 0.25
	}
	return math.Sqrt(logTerm * variance)
}
