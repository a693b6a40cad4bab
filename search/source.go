package search

import (
	"math/rand"
	"time"
)

// Source is the pseudo-random source threaded through every sampling
// call. It replaces ambient process-wide randomness so that runs can
// be made deterministic in tests; *math/rand.Rand satisfies it.
type Source interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64

	// Intn returns a value in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// NewSource returns a time-seeded source.
func NewSource() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// NewSeededSource returns a source with a fixed seed, for reproducible
// runs.
func NewSeededSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}
