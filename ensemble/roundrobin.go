package ensemble

// NewRoundRobin creates a meta strategy that cycles through its arms
// in registration order, ignoring reward statistics.
func NewRoundRobin() *Meta {
	return newMeta(&roundRobin{})
}

type roundRobin struct {
	next int
}

func (r *roundRobin) policy() string { return "round_robin" }

func (r *roundRobin) pick(arms []*arm) int {
	n := len(arms)
	for i := 0; i < n; i++ {
		idx := (r.next + i) % n
		if !arms[idx].exhausted {
			r.next = (idx + 1) % n
			return idx
		}
	}
	return -1
}
