package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/medlar-opt/medlar/internal/logging"
	"github.com/medlar-opt/medlar/internal/objective"
	"github.com/medlar-opt/medlar/internal/runspec"
	"github.com/medlar-opt/medlar/job"
	"github.com/medlar-opt/medlar/storage"
	"github.com/medlar-opt/medlar/tui"
)

var (
	runTrials      int
	runParallelism int
	runResume      bool
	runNoProgress  bool

	topCount int
)

var runCmd = &cobra.Command{
	Use:   "run <spec.yaml>",
	Short: "Run an optimization job from a spec file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List stored jobs",
	Args:  cobra.NoArgs,
	RunE:  runJobs,
}

var bestCmd = &cobra.Command{
	Use:   "best <job>",
	Short: "Show the best trial of a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runBest,
}

var topCmd = &cobra.Command{
	Use:   "top <job>",
	Short: "Show the best trials of a job",
	Args:  cobra.ExactArgs(1),
	RunE:  runTop,
}

var objectivesCmd = &cobra.Command{
	Use:   "objectives",
	Short: "List built-in benchmark objectives",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range objective.Names() {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().IntVar(&runTrials, "trials", 0, "trial budget, overrides spec and config")
	runCmd.Flags().IntVar(&runParallelism, "parallelism", 0, "concurrent evaluations, overrides spec and config")
	runCmd.Flags().BoolVar(&runResume, "resume", false, "resume an existing job instead of creating one")
	runCmd.Flags().BoolVar(&runNoProgress, "no-progress", false, "disable the progress display")

	topCmd.Flags().IntVarP(&topCount, "count", "n", 10, "number of trials to show")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	spec, err := runspec.Parse(args[0])
	if err != nil {
		return err
	}

	log := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	space, err := spec.BuildSpace()
	if err != nil {
		return err
	}
	opt, err := spec.BuildOptimizer()
	if err != nil {
		return err
	}
	src := spec.Source()
	algorithms, err := spec.BuildAlgorithms(space, src)
	if err != nil {
		return err
	}
	obj, err := objective.Lookup(spec.Objective)
	if err != nil {
		return err
	}

	locator := spec.Storage
	if locator == "" {
		locator = cfg.General.Storage
	}

	settings := job.Settings{
		Name:      spec.Name,
		Locator:   locator,
		Optimizer: opt,
		Rand:      src,
		Logger:    log,
	}

	var j *job.Job
	if runResume {
		j, err = job.Load(space, settings)
	} else {
		j, err = job.Create(space, settings)
		if errors.Is(err, job.ErrDuplicatedJob) {
			return fmt.Errorf("%w (use --resume to continue it)", err)
		}
	}
	if err != nil {
		return err
	}

	runCfg := job.RunConfig{
		Trials:      pick(runTrials, spec.Trials, cfg.Run.Trials),
		Parallelism: pick(runParallelism, spec.Parallelism, cfg.Run.Parallelism),
		Algorithms:  algorithms,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if cfg.Run.Progress && !runNoProgress {
		err = runWithProgress(ctx, j, obj, runCfg)
	} else {
		err = j.Do(ctx, obj, runCfg)
	}
	if err != nil {
		return err
	}

	return printSummary(j, time.Since(start))
}

// runWithProgress drives the run on a background goroutine while the
// TUI consumes progress events on the foreground one.
func runWithProgress(ctx context.Context, j *job.Job, obj job.Objective, cfg job.RunConfig) error {
	progress := make(chan job.Progress, 16)
	done := make(chan error, 1)
	cfg.Progress = progress

	go func() {
		done <- j.Do(ctx, obj, cfg)
	}()

	return tui.Run(j.Name, progress, done)
}

func printSummary(j *job.Job, elapsed time.Duration) error {
	count, err := j.TrialsCount()
	if err != nil {
		return err
	}
	fmt.Printf("job %s: %s trials in %s\n",
		j.Name, humanize.Comma(count), elapsed.Round(time.Millisecond))

	best, err := j.BestTrial()
	if err != nil {
		return err
	}
	if best == nil {
		fmt.Println("no finished trials")
		return nil
	}
	fmt.Printf("best %g at %s\n", best.Objective, formatParams(best.Config.Params))
	return nil
}

func runJobs(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	jobs, err := store.Jobs()
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Println("no jobs")
		return nil
	}

	for _, info := range jobs {
		count, err := store.TrialsCount(info.ID)
		if err != nil {
			return err
		}
		best, err := store.BestTrial(info.ID)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("%-24s %8s trials", info.Name, humanize.Comma(count))
		if best != nil {
			line += fmt.Sprintf("  best %g", best.Objective)
		}
		fmt.Println(line)
	}
	return nil
}

func runBest(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := resolveJob(store, args[0])
	if err != nil {
		return err
	}

	best, err := store.BestTrial(id)
	if err != nil {
		return err
	}
	if best == nil {
		fmt.Println("no finished trials")
		return nil
	}

	fmt.Printf("trial %d  objective %g\n", best.ID, best.Objective)
	fmt.Println(formatParams(best.Config.Params))
	return nil
}

func runTop(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := resolveJob(store, args[0])
	if err != nil {
		return err
	}

	trials, err := store.TopTrials(id, topCount)
	if err != nil {
		return err
	}
	if len(trials) == 0 {
		fmt.Println("no finished trials")
		return nil
	}

	for i, t := range trials {
		fmt.Printf("%-4s trial %-4d %-12g %s  %s\n",
			humanize.Ordinal(i+1), t.ID, t.Objective, t.Config.Requestor, formatParams(t.Config.Params))
	}
	return nil
}

func openStore() (storage.Storage, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return storage.Open(cfg.General.Storage)
}

func resolveJob(store storage.Storage, name string) (int64, error) {
	id, ok, err := store.JobIDByName(name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: %q", job.ErrJobNotFound, name)
	}
	return id, nil
}

func formatParams(params map[string]any) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%v", name, params[name]))
	}
	return strings.Join(parts, " ")
}

// pick returns the first positive value.
func pick(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
