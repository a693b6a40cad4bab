package trial

import (
	"math"
	"time"
)

// State represents the lifecycle state of a trial
type State string

const (
	StatePending   State = "pending"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Result is the outcome of evaluating a configuration. It is ephemeral:
// the scheduler folds it into the owning trial.
type Result struct {
	Objective float64
	Metrics   map[string]float64
}

// Trial is one proposed configuration together with its evaluation
// outcome. Trials are created by the scheduler when a strategy proposes
// a configuration and mutated only by the scheduler when the evaluation
// outcome arrives; strategies never touch them.
type Trial struct {
	ID     int64
	JobID  int64
	Config Config
	State  State

	// Objective holds the evaluation result. It is meaningful only
	// when the trial is terminal.
	Objective float64
	Metrics   map[string]float64

	// Hash is the content hash of Config, used for deduplication and
	// lookup.
	Hash string

	CreatedAt  time.Time
	FinishedAt *time.Time
}

// New creates a pending trial for the given job and id.
func New(jobID, id int64, cfg Config) *Trial {
	return &Trial{
		ID:        id,
		JobID:     jobID,
		Config:    cfg,
		State:     StatePending,
		Hash:      cfg.Hash(),
		CreatedAt: time.Now(),
	}
}

// Terminal reports whether the trial reached a final state.
func (t *Trial) Terminal() bool {
	return t.State == StateSucceeded || t.State == StateFailed
}

// MarkSucceeded transitions Pending -> Succeeded.
func (t *Trial) MarkSucceeded() {
	now := time.Now()
	t.State = StateSucceeded
	t.FinishedAt = &now
}

// MarkFailed transitions Pending -> Failed. The objective is pinned to
// +Inf so a failed trial can still be fed back to the ensemble without
// ever becoming the incumbent best.
func (t *Trial) MarkFailed() {
	now := time.Now()
	t.State = StateFailed
	t.Objective = math.Inf(1)
	t.FinishedAt = &now
}

// ApplyResult records the evaluation outcome on a terminal trial.
func (t *Trial) ApplyResult(r Result) {
	t.Objective = r.Objective
	t.Metrics = r.Metrics
}
