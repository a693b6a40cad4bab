package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/medlar-opt/medlar/trial"
)

// DocStore is a document-file storage backend: a single JSON file
// holding all jobs and experiments. It suits small local runs and
// tests; every mutation rewrites the file.
type DocStore struct {
	path string
	doc  document
}

type document struct {
	Jobs        []JobInfo  `json:"jobs"`
	Experiments []docTrial `json:"experiments"`
}

// docTrial is the file representation of a trial. The objective is a
// formatted string so the +Inf failure sentinel survives JSON, which
// has no infinity literal.
type docTrial struct {
	ID         int64              `json:"id"`
	JobID      int64              `json:"job_id"`
	State      string             `json:"state"`
	Hash       string             `json:"hash"`
	Objective  string             `json:"objective,omitempty"`
	Requestor  string             `json:"requestor"`
	Params     map[string]any     `json:"params"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	FinishedAt *time.Time         `json:"finished_at,omitempty"`
}

// NewDocStore opens (or creates) a JSON document store at path.
func NewDocStore(path string) (*DocStore, error) {
	s := &DocStore{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("reading document store %s: %w", path, err)
	}
	return s, nil
}

func (s *DocStore) Close() error { return nil }

func (s *DocStore) save() error {
	data, err := json.MarshalIndent(&s.doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func (s *DocStore) JobExists(name string) (bool, error) {
	for _, j := range s.doc.Jobs {
		if j.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (s *DocStore) InsertJob(name string) (int64, error) {
	id := int64(1)
	for _, j := range s.doc.Jobs {
		if j.ID >= id {
			id = j.ID + 1
		}
	}
	s.doc.Jobs = append(s.doc.Jobs, JobInfo{ID: id, Name: name})
	return id, s.save()
}

func (s *DocStore) JobIDByName(name string) (int64, bool, error) {
	for _, j := range s.doc.Jobs {
		if j.Name == name {
			return j.ID, true, nil
		}
	}
	return 0, false, nil
}

func (s *DocStore) Jobs() ([]JobInfo, error) {
	jobs := make([]JobInfo, len(s.doc.Jobs))
	copy(jobs, s.doc.Jobs)
	return jobs, nil
}

func (s *DocStore) InsertTrial(t *trial.Trial) error {
	dt := encodeDocTrial(t)
	for i, existing := range s.doc.Experiments {
		if existing.ID == t.ID && existing.JobID == t.JobID {
			s.doc.Experiments[i] = dt
			return s.save()
		}
	}
	s.doc.Experiments = append(s.doc.Experiments, dt)
	return s.save()
}

func (s *DocStore) TrialsByJob(jobID int64) ([]*trial.Trial, error) {
	var trials []*trial.Trial
	for _, dt := range s.doc.Experiments {
		if dt.JobID != jobID {
			continue
		}
		t, err := decodeDocTrial(dt)
		if err != nil {
			return nil, err
		}
		trials = append(trials, t)
	}
	sort.Slice(trials, func(i, j int) bool { return trials[i].ID < trials[j].ID })
	return trials, nil
}

func (s *DocStore) TrialsCount(jobID int64) (int64, error) {
	var n int64
	for _, dt := range s.doc.Experiments {
		if dt.JobID == jobID {
			n++
		}
	}
	return n, nil
}

func (s *DocStore) BestTrial(jobID int64) (*trial.Trial, error) {
	top, err := s.TopTrials(jobID, 1)
	if err != nil {
		return nil, err
	}
	if len(top) == 0 {
		return nil, nil
	}
	return top[0], nil
}

func (s *DocStore) TopTrials(jobID int64, n int) ([]*trial.Trial, error) {
	all, err := s.TrialsByJob(jobID)
	if err != nil {
		return nil, err
	}

	var terminal []*trial.Trial
	for _, t := range all {
		if t.Terminal() {
			terminal = append(terminal, t)
		}
	}
	sort.SliceStable(terminal, func(i, j int) bool {
		return terminal[i].Objective < terminal[j].Objective
	})
	if len(terminal) > n {
		terminal = terminal[:n]
	}
	return terminal, nil
}

func encodeDocTrial(t *trial.Trial) docTrial {
	dt := docTrial{
		ID:         t.ID,
		JobID:      t.JobID,
		State:      string(t.State),
		Hash:       t.Hash,
		Requestor:  t.Config.Requestor,
		Params:     t.Config.Params,
		Metrics:    t.Metrics,
		CreatedAt:  t.CreatedAt,
		FinishedAt: t.FinishedAt,
	}
	if t.Terminal() {
		dt.Objective = strconv.FormatFloat(t.Objective, 'g', -1, 64)
	}
	return dt
}

func decodeDocTrial(dt docTrial) (*trial.Trial, error) {
	t := &trial.Trial{
		ID:         dt.ID,
		JobID:      dt.JobID,
		State:      trial.State(dt.State),
		Hash:       dt.Hash,
		Config:     trial.Config{Params: dt.Params, Requestor: dt.Requestor},
		Metrics:    dt.Metrics,
		CreatedAt:  dt.CreatedAt,
		FinishedAt: dt.FinishedAt,
	}
	if dt.Objective != "" {
		v, err := strconv.ParseFloat(dt.Objective, 64)
		if err != nil {
			return nil, fmt.Errorf("trial %d objective %q: %w", dt.ID, dt.Objective, err)
		}
		t.Objective = v
	}
	return t, nil
}

var _ Storage = (*DocStore)(nil)
