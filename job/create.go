package job

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/medlar-opt/medlar/ensemble"
	"github.com/medlar-opt/medlar/param"
	"github.com/medlar-opt/medlar/search"
	"github.com/medlar-opt/medlar/storage"
)

// Settings configures job creation and loading. The zero value picks
// sensible defaults: a generated name, an in-memory SQLite store, a
// round-robin ensemble and a time-seeded random source.
type Settings struct {
	// Name identifies the job in storage. Defaults to a generated
	// "job-<id>" name on Create; required on Load.
	Name string

	// Storage is the backend to use. When nil, Locator is opened
	// instead.
	Storage storage.Storage

	// Locator selects a backend when Storage is nil, e.g.
	// "sqlite:///tuning.db". Empty means in-memory SQLite.
	Locator string

	// Optimizer is the ensemble answering Ask calls. Defaults to a
	// fresh round-robin ensemble.
	Optimizer *ensemble.Meta

	// Rand is the random source threaded into default strategies.
	Rand search.Source

	// Logger receives run-loop progress and warnings. Defaults to
	// slog.Default().
	Logger *slog.Logger
}

// Create registers a new job in storage. A name collision yields
// ErrDuplicatedJob.
func Create(space *param.Space, s Settings) (*Job, error) {
	j, err := build(space, &s)
	if err != nil {
		return nil, err
	}

	exists, err := j.store.JobExists(j.Name)
	if err != nil {
		return nil, fmt.Errorf("checking job name: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicatedJob, j.Name)
	}

	id, err := j.store.InsertJob(j.Name)
	if err != nil {
		return nil, fmt.Errorf("inserting job: %w", err)
	}
	j.ID = id

	return j, nil
}

// Load reconstructs a job from storage and replays its persisted
// trials into a fresh ensemble, so strategy state resumes where the
// previous run stopped. The pending counter is not touched and nothing
// is re-persisted.
func Load(space *param.Space, s Settings) (*Job, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("%w: no name given", ErrJobNotFound)
	}

	j, err := build(space, &s)
	if err != nil {
		return nil, err
	}

	id, ok, err := j.store.JobIDByName(j.Name)
	if err != nil {
		return nil, fmt.Errorf("resolving job name: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrJobNotFound, j.Name)
	}
	j.ID = id

	trials, err := j.store.TrialsByJob(id)
	if err != nil {
		return nil, fmt.Errorf("loading trials: %w", err)
	}
	for _, t := range trials {
		if t.Terminal() {
			j.replay(t)
		}
	}

	return j, nil
}

func build(space *param.Space, s *Settings) (*Job, error) {
	if space == nil || space.Len() == 0 {
		return nil, fmt.Errorf("empty search space")
	}

	store := s.Storage
	if store == nil {
		var err error
		store, err = storage.Open(s.Locator)
		if err != nil {
			return nil, err
		}
	}

	name := s.Name
	if name == "" {
		name = "job-" + uuid.NewString()[:8]
	}

	opt := s.Optimizer
	if opt == nil {
		opt = ensemble.NewRoundRobin()
	}

	src := s.Rand
	if src == nil {
		src = search.NewSource()
	}

	log := s.Logger
	if log == nil {
		log = slog.Default()
	}

	return &Job{
		Name:  name,
		space: space,
		store: store,
		opt:   opt,
		src:   src,
		log:   log,
	}, nil
}
