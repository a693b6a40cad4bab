package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"

	"github.com/medlar-opt/medlar/trial"
	_ "modernc.org/sqlite"
)

// SQLite is the relational storage backend. Use ":memory:" as the
// path for an ephemeral store.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) a SQLite store at the given path and
// applies the schema.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) JobExists(name string) (bool, error) {
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM jobs WHERE name = ?`, name).Scan(&n)
	return n > 0, err
}

func (s *SQLite) InsertJob(name string) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO jobs (name) VALUES (?)`, name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLite) JobIDByName(name string) (int64, bool, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM jobs WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

func (s *SQLite) Jobs() ([]JobInfo, error) {
	rows, err := s.db.Query(`SELECT id, name FROM jobs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []JobInfo
	for rows.Next() {
		var j JobInfo
		if err := rows.Scan(&j.ID, &j.Name); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (s *SQLite) InsertTrial(t *trial.Trial) error {
	paramsJSON, err := json.Marshal(t.Config.Params)
	if err != nil {
		return err
	}
	metricsJSON, err := json.Marshal(t.Metrics)
	if err != nil {
		return err
	}

	var objective sql.NullFloat64
	if t.Terminal() {
		objective = sql.NullFloat64{Float64: encodeObjective(t.Objective), Valid: true}
	}
	var finished sql.NullTime
	if t.FinishedAt != nil {
		finished = sql.NullTime{Time: *t.FinishedAt, Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT INTO experiments (id, job_id, state, hash, objective, requestor, params, metrics, created_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id, job_id) DO UPDATE SET
			state = excluded.state,
			hash = excluded.hash,
			objective = excluded.objective,
			requestor = excluded.requestor,
			params = excluded.params,
			metrics = excluded.metrics,
			finished_at = excluded.finished_at
	`,
		t.ID,
		t.JobID,
		string(t.State),
		t.Hash,
		objective,
		t.Config.Requestor,
		string(paramsJSON),
		string(metricsJSON),
		t.CreatedAt,
		finished,
	)
	return err
}

const selectTrial = `SELECT id, job_id, state, hash, objective, requestor, params, metrics, created_at, finished_at FROM experiments`

func (s *SQLite) TrialsByJob(jobID int64) ([]*trial.Trial, error) {
	rows, err := s.db.Query(selectTrial+` WHERE job_id = ? ORDER BY id`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrials(rows)
}

func (s *SQLite) TrialsCount(jobID int64) (int64, error) {
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM experiments WHERE job_id = ?`, jobID).Scan(&n)
	return n, err
}

func (s *SQLite) BestTrial(jobID int64) (*trial.Trial, error) {
	trials, err := s.TopTrials(jobID, 1)
	if err != nil {
		return nil, err
	}
	if len(trials) == 0 {
		return nil, nil
	}
	return trials[0], nil
}

func (s *SQLite) TopTrials(jobID int64, n int) ([]*trial.Trial, error) {
	rows, err := s.db.Query(
		selectTrial+` WHERE job_id = ? AND state != ? ORDER BY objective ASC, id ASC LIMIT ?`,
		jobID, string(trial.StatePending), n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrials(rows)
}

func scanTrials(rows *sql.Rows) ([]*trial.Trial, error) {
	var trials []*trial.Trial
	for rows.Next() {
		var (
			t          trial.Trial
			state      string
			requestor  string
			paramsJSON string
			metrics    sql.NullString
			objective  sql.NullFloat64
			finished   sql.NullTime
		)
		err := rows.Scan(&t.ID, &t.JobID, &state, &t.Hash, &objective,
			&requestor, &paramsJSON, &metrics, &t.CreatedAt, &finished)
		if err != nil {
			return nil, err
		}

		t.State = trial.State(state)
		if objective.Valid {
			t.Objective = decodeObjective(objective.Float64)
		}
		if finished.Valid {
			ts := finished.Time
			t.FinishedAt = &ts
		}

		params := make(map[string]any)
		if err := json.Unmarshal([]byte(paramsJSON), &params); err != nil {
			return nil, fmt.Errorf("trial %d params: %w", t.ID, err)
		}
		t.Config = trial.Config{Params: params, Requestor: requestor}

		if metrics.Valid && metrics.String != "" && metrics.String != "null" {
			m := make(map[string]float64)
			if err := json.Unmarshal([]byte(metrics.String), &m); err != nil {
				return nil, fmt.Errorf("trial %d metrics: %w", t.ID, err)
			}
			t.Metrics = m
		}

		trials = append(trials, &t)
	}
	return trials, rows.Err()
}

// encodeObjective maps the +Inf failure sentinel to MaxFloat64 so the
// value round-trips through the REAL column and still sorts last.
func encodeObjective(v float64) float64 {
	if math.IsInf(v, 1) {
		return math.MaxFloat64
	}
	return v
}

func decodeObjective(v float64) float64 {
	if v == math.MaxFloat64 {
		return math.Inf(1)
	}
	return v
}

var _ Storage = (*SQLite)(nil)
