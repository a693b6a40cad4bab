// Package job ties proposal generation, parallel evaluation and
// persistence together. A Job owns the optimizer ensemble, the pending
// trial counter and the storage handle; all three are mutated only by
// the coordinating goroutine between batches.
package job

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/medlar-opt/medlar/ensemble"
	"github.com/medlar-opt/medlar/param"
	"github.com/medlar-opt/medlar/search"
	"github.com/medlar-opt/medlar/storage"
	"github.com/medlar-opt/medlar/trial"
)

var (
	// ErrDuplicatedJob is returned when creating a job under a name
	// that already exists in storage.
	ErrDuplicatedJob = errors.New("job already exists")

	// ErrJobNotFound is returned when loading a job name absent from
	// storage.
	ErrJobNotFound = errors.New("job not found")

	// ErrExperimentNotFinished is returned by Tell for a trial that
	// has not reached a terminal state; ensemble and storage state are
	// left untouched.
	ErrExperimentNotFinished = errors.New("experiment not finished")
)

// Job is one optimization run: a named search over a space, backed by
// durable storage.
type Job struct {
	Name string
	ID   int64

	space *param.Space
	store storage.Storage
	opt   *ensemble.Meta
	src   search.Source
	log   *slog.Logger

	// pending counts proposed-but-not-told trials. The next trial id
	// is persisted count + pending, so ids never collide while trials
	// are in flight.
	pending int64

	seeds []map[string]any
}

// Space returns the job's search space.
func (j *Job) Space() *param.Space { return j.space }

// Optimizer returns the job's ensemble.
func (j *Job) Optimizer() *ensemble.Meta { return j.opt }

// Pending returns the number of in-flight trials.
func (j *Job) Pending() int64 { return j.pending }

// AddSeed queues a fixed configuration to be tried before generated
// ones. Seeds take effect when the run starts with an empty ensemble.
func (j *Job) AddSeed(params map[string]any) {
	j.seeds = append(j.seeds, params)
}

// Ask obtains the next batch of configurations from the ensemble and
// wraps each into a pending trial. It returns an empty batch when
// every strategy is exhausted.
func (j *Job) Ask() ([]*trial.Trial, error) {
	configs := j.opt.Ask()
	if len(configs) == 0 {
		return nil, nil
	}

	persisted, err := j.store.TrialsCount(j.ID)
	if err != nil {
		return nil, fmt.Errorf("counting trials: %w", err)
	}

	trials := make([]*trial.Trial, len(configs))
	for i, cfg := range configs {
		trials[i] = trial.New(j.ID, persisted+j.pending+int64(i), cfg)
	}
	j.pending += int64(len(configs))

	return trials, nil
}

// Tell finishes a trial: it forwards the outcome to the ensemble and
// persists the trial. The trial must already be terminal, otherwise
// ErrExperimentNotFinished is returned and nothing changes.
func (j *Job) Tell(t *trial.Trial, r trial.Result) error {
	if !t.Terminal() {
		return fmt.Errorf("%w: trial %d is %s", ErrExperimentNotFinished, t.ID, t.State)
	}

	j.pending--
	j.opt.Tell(t.Config, r.Objective)
	t.ApplyResult(r)

	if err := j.store.InsertTrial(t); err != nil {
		return fmt.Errorf("persisting trial %d: %w", t.ID, err)
	}
	return nil
}

// replay feeds a historical trial into the ensemble without touching
// the pending counter or storage. Used when loading a job.
func (j *Job) replay(t *trial.Trial) {
	j.opt.Tell(t.Config, t.Objective)
}

// BestTrial returns the incumbent best trial, or nil when the job has
// no terminal trials yet.
func (j *Job) BestTrial() (*trial.Trial, error) {
	return j.store.BestTrial(j.ID)
}

// BestValue returns the incumbent best objective value.
func (j *Job) BestValue() (float64, bool, error) {
	t, err := j.BestTrial()
	if err != nil || t == nil {
		return 0, false, err
	}
	return t.Objective, true, nil
}

// BestParams returns the parameters of the incumbent best trial.
func (j *Job) BestParams() (map[string]any, bool, error) {
	t, err := j.BestTrial()
	if err != nil || t == nil {
		return nil, false, err
	}
	return t.Config.Params, true, nil
}

// Trials returns all persisted trials in id order.
func (j *Job) Trials() ([]*trial.Trial, error) {
	return j.store.TrialsByJob(j.ID)
}

// TrialsCount returns the number of persisted trials.
func (j *Job) TrialsCount() (int64, error) {
	return j.store.TrialsCount(j.ID)
}

// Top returns up to n terminal trials ascending by objective.
func (j *Job) Top(n int) ([]*trial.Trial, error) {
	return j.store.TopTrials(j.ID, n)
}

// Rewards counts the new-minimum events over the persisted history in
// trial order.
func (j *Job) Rewards() (int, error) {
	trials, err := j.Trials()
	if err != nil {
		return 0, err
	}

	rewards := 0
	best := math.Inf(1)
	for _, t := range trials {
		if !t.Terminal() {
			continue
		}
		if t.Objective < best {
			best = t.Objective
			rewards++
		}
	}
	return rewards, nil
}
