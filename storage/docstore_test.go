package storage

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/medlar-opt/medlar/trial"
)

func newTestDocStore(t *testing.T) (*DocStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.json")
	s, err := NewDocStore(path)
	if err != nil {
		t.Fatal(err)
	}
	return s, path
}

func TestDocStoreJobLifecycle(t *testing.T) {
	s, _ := newTestDocStore(t)

	id, err := s.InsertJob("tuning")
	if err != nil {
		t.Fatal(err)
	}
	id2, err := s.InsertJob("other")
	if err != nil {
		t.Fatal(err)
	}
	if id2 <= id {
		t.Errorf("ids must grow: got %d then %d", id, id2)
	}

	exists, _ := s.JobExists("tuning")
	if !exists {
		t.Error("job must exist after insert")
	}

	got, ok, _ := s.JobIDByName("other")
	if !ok || got != id2 {
		t.Errorf("JobIDByName: got (%d, %v)", got, ok)
	}

	jobs, _ := s.Jobs()
	if len(jobs) != 2 {
		t.Errorf("Jobs: got %d, want 2", len(jobs))
	}
}

func TestDocStorePersistsAcrossReopen(t *testing.T) {
	s, path := newTestDocStore(t)
	jobID, err := s.InsertJob("tuning")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.InsertTrial(makeTrial(jobID, 0, 2.5)); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewDocStore(path)
	if err != nil {
		t.Fatal(err)
	}

	id, ok, err := reopened.JobIDByName("tuning")
	if err != nil || !ok {
		t.Fatalf("job lost across reopen: (%d, %v, %v)", id, ok, err)
	}
	trials, err := reopened.TrialsByJob(jobID)
	if err != nil {
		t.Fatal(err)
	}
	if len(trials) != 1 || trials[0].Objective != 2.5 {
		t.Fatalf("trials lost across reopen: %v", trials)
	}
}

func TestDocStoreUpserts(t *testing.T) {
	s, _ := newTestDocStore(t)
	jobID, _ := s.InsertJob("tuning")

	tr := trial.New(jobID, 0, trial.NewConfig(map[string]any{"x": 1.0}, "random"))
	if err := s.InsertTrial(tr); err != nil {
		t.Fatal(err)
	}
	tr.MarkSucceeded()
	tr.ApplyResult(trial.Result{Objective: 0.75})
	if err := s.InsertTrial(tr); err != nil {
		t.Fatal(err)
	}

	count, _ := s.TrialsCount(jobID)
	if count != 1 {
		t.Fatalf("count: got %d, want 1", count)
	}
	trials, _ := s.TrialsByJob(jobID)
	if trials[0].Objective != 0.75 || trials[0].State != trial.StateSucceeded {
		t.Errorf("upsert did not apply: %+v", trials[0])
	}
}

func TestDocStoreInfiniteObjectiveSurvivesJSON(t *testing.T) {
	s, path := newTestDocStore(t)
	jobID, _ := s.InsertJob("tuning")

	failed := trial.New(jobID, 0, trial.NewConfig(map[string]any{"x": 1.0}, "random"))
	failed.MarkFailed()
	if err := s.InsertTrial(failed); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewDocStore(path)
	if err != nil {
		t.Fatal(err)
	}
	trials, err := reopened.TrialsByJob(jobID)
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsInf(trials[0].Objective, 1) {
		t.Errorf("objective: got %v, want +Inf", trials[0].Objective)
	}
}

func TestDocStoreTopTrials(t *testing.T) {
	s, _ := newTestDocStore(t)
	jobID, _ := s.InsertJob("tuning")

	for i, obj := range []float64{3.0, 1.0, 2.0} {
		if err := s.InsertTrial(makeTrial(jobID, int64(i), obj)); err != nil {
			t.Fatal(err)
		}
	}
	pending := trial.New(jobID, 3, trial.NewConfig(map[string]any{"x": 0.0}, "random"))
	if err := s.InsertTrial(pending); err != nil {
		t.Fatal(err)
	}

	top, err := s.TopTrials(jobID, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 || top[0].Objective != 1.0 || top[1].Objective != 2.0 {
		t.Fatalf("top: got %v", top)
	}

	best, _ := s.BestTrial(jobID)
	if best == nil || best.Objective != 1.0 {
		t.Fatalf("best: got %+v", best)
	}
}
