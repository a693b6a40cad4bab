// Package storage defines the durable record of jobs and experiments
// and provides two backends: a SQLite relational store and a JSON
// document-file store. The engine core is a single writer: trials are
// inserted or updated, never deleted.
package storage

import (
	"errors"

	"github.com/medlar-opt/medlar/trial"
)

// ErrInvalidStorage is returned for a malformed storage locator.
var ErrInvalidStorage = errors.New("invalid storage locator")

// JobInfo is the persisted identity of a job.
type JobInfo struct {
	ID   int64
	Name string
}

// Storage is the persistence contract required by the engine core.
type Storage interface {
	// JobExists reports whether a job with the given name exists.
	JobExists(name string) (bool, error)

	// InsertJob records a new job and returns its id.
	InsertJob(name string) (int64, error)

	// JobIDByName resolves a job name; ok is false when absent.
	JobIDByName(name string) (id int64, ok bool, err error)

	// Jobs lists all persisted jobs in id order.
	Jobs() ([]JobInfo, error)

	// InsertTrial upserts a trial keyed by (job id, trial id).
	InsertTrial(t *trial.Trial) error

	// TrialsByJob returns a job's trials ordered by trial id.
	TrialsByJob(jobID int64) ([]*trial.Trial, error)

	// TrialsCount returns the number of persisted trials for a job.
	TrialsCount(jobID int64) (int64, error)

	// BestTrial returns the terminal trial with the minimal objective,
	// or nil when the job has no terminal trials.
	BestTrial(jobID int64) (*trial.Trial, error)

	// TopTrials returns up to n terminal trials ascending by
	// objective.
	TopTrials(jobID int64, n int) ([]*trial.Trial, error)

	Close() error
}
