package storage

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS experiments (
    id INTEGER NOT NULL,
    job_id INTEGER NOT NULL REFERENCES jobs(id),
    state TEXT NOT NULL,
    hash TEXT NOT NULL,
    objective REAL,
    requestor TEXT,
    params TEXT NOT NULL,
    metrics TEXT,
    created_at TIMESTAMP,
    finished_at TIMESTAMP,
    PRIMARY KEY (id, job_id)
);

CREATE INDEX IF NOT EXISTS idx_experiments_job ON experiments(job_id);
CREATE INDEX IF NOT EXISTS idx_experiments_hash ON experiments(job_id, hash);
`
