package job

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/medlar-opt/medlar/search"
	"github.com/medlar-opt/medlar/trial"
)

// Objective evaluates one trial's configuration. It runs on a worker
// goroutine and must not touch job, ensemble or storage state.
type Objective func(t *trial.Trial) (trial.Result, error)

// Value adapts a plain numeric objective to the Objective signature.
func Value(fn func(t *trial.Trial) (float64, error)) Objective {
	return func(t *trial.Trial) (trial.Result, error) {
		v, err := fn(t)
		if err != nil {
			return trial.Result{}, err
		}
		return trial.Result{Objective: v}, nil
	}
}

// RunConfig controls one Do invocation.
type RunConfig struct {
	// Trials is the number of trials to run. Defaults to 100.
	Trials int

	// Parallelism bounds concurrent objective evaluations. Defaults
	// to 1.
	Parallelism int

	// Algorithms are registered as arms before the run when the job's
	// ensemble has none yet. When empty, a surrogate strategy is
	// registered by default. Job seeds are always registered first.
	Algorithms []search.Strategy

	// Progress, when non-nil, receives per-batch updates. Sends never
	// block; a slow consumer misses intermediate updates.
	Progress chan<- Progress
}

// Progress is a per-batch snapshot of a running job.
type Progress struct {
	Completed  int
	Total      int
	Best       float64
	BestParams map[string]any
}

// outcome pairs one evaluation's result with its error, positionally
// matched to the batch.
type outcome struct {
	result trial.Result
	err    error
}

// Do drives the ask / evaluate / tell cycle until the requested trial
// count is reached or every strategy is exhausted. Evaluation runs on
// a bounded worker pool; batches join fully before the next Ask, so
// ensemble state, the pending counter and storage always have a single
// writer. Results are matched to trials by batch position, never by
// completion order.
func (j *Job) Do(ctx context.Context, objective Objective, cfg RunConfig) error {
	if cfg.Trials <= 0 {
		cfg.Trials = 100
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 1
	}

	if err := j.setupStrategies(cfg.Algorithms); err != nil {
		return err
	}

	best := math.Inf(1)
	var bestParams map[string]any
	done := 0

	for done < cfg.Trials {
		if err := ctx.Err(); err != nil {
			return err
		}

		trials, err := j.Ask()
		if err != nil {
			return err
		}
		if len(trials) == 0 {
			j.log.Warn("no new configurations, stopping run",
				"job", j.Name, "completed", done)
			break
		}

		outcomes := j.evaluate(ctx, objective, trials, cfg.Parallelism)

		for i, t := range trials {
			out := outcomes[i]
			if out.err != nil {
				j.log.Warn("trial evaluation failed",
					"job", j.Name, "trial", t.ID, "error", out.err)
				t.MarkFailed()
				out.result = trial.Result{Objective: math.Inf(1)}
			} else {
				t.MarkSucceeded()
			}

			if err := j.Tell(t, out.result); err != nil {
				return err
			}
			if out.result.Objective < best {
				best = out.result.Objective
				bestParams = t.Config.Params
			}
		}

		done += len(trials)
		sendProgress(cfg.Progress, Progress{
			Completed:  done,
			Total:      cfg.Trials,
			Best:       best,
			BestParams: bestParams,
		})
	}

	return nil
}

// evaluate runs one batch on the worker pool and returns outcomes in
// batch order. A panic inside the objective is contained to its trial.
func (j *Job) evaluate(ctx context.Context, objective Objective, trials []*trial.Trial, parallelism int) []outcome {
	outcomes := make([]outcome, len(trials))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, t := range trials {
		i, t := i, t
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					outcomes[i] = outcome{err: fmt.Errorf("objective panicked: %v", r)}
				}
			}()

			res, err := objective(t)
			outcomes[i] = outcome{result: res, err: err}
			return nil
		})
	}

	// Workers never return errors; Wait is a plain join.
	_ = g.Wait()

	return outcomes
}

// setupStrategies populates an empty ensemble: seeds first, then the
// given algorithms, falling back to a surrogate strategy.
func (j *Job) setupStrategies(algorithms []search.Strategy) error {
	if j.opt.Arms() > 0 {
		return nil
	}

	if len(j.seeds) > 0 {
		if err := j.opt.Register(search.NewSeed(j.seeds...)); err != nil {
			return err
		}
	}

	if len(algorithms) == 0 {
		algorithms = []search.Strategy{search.NewSurrogate(j.space, j.src)}
	}
	for _, s := range algorithms {
		if err := j.opt.Register(s); err != nil {
			return err
		}
	}
	return nil
}

// sendProgress delivers an update without ever blocking the run loop.
func sendProgress(ch chan<- Progress, p Progress) {
	if ch == nil {
		return
	}
	select {
	case ch <- p:
	default:
	}
}
