package queue

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLite is the durable Queue implementation, backed by a pure-Go
// SQLite database file so a worker process can crash and resume
// without losing queued or in-flight jobs.
type SQLite struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id TEXT PRIMARY KEY,
	match_id TEXT NOT NULL,
	status TEXT NOT NULL,
	priority INTEGER NOT NULL,
	payload TEXT NOT NULL DEFAULT '',
	attempts INTEGER NOT NULL DEFAULT 0,
	max_attempts INTEGER NOT NULL,
	worker_id TEXT,
	claimed_at INTEGER,
	finished_at INTEGER,
	error TEXT
);
`

// OpenSQLite opens (creating if needed) a durable queue at path.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open queue db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init queue schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the underlying database handle.
func (q *SQLite) Close() error { return q.db.Close() }

func (q *SQLite) Enqueue(matchID string, priority int, payload string) (Job, error) {
	j := Job{ID: uuid.NewString(), MatchID: matchID, Status: StatusPending, Priority: priority, Payload: payload, MaxAttempts: MaxAttempts}
	_, err := q.db.Exec(
		`INSERT INTO jobs (id, match_id, status, priority, payload, attempts, max_attempts) VALUES (?, ?, ?, ?, ?, 0, ?)`,
		j.ID, j.MatchID, string(j.Status), j.Priority, j.Payload, j.MaxAttempts,
	)
	if err != nil {
		return Job{}, fmt.Errorf("enqueue: %w", err)
	}
	return j, nil
}

// Claim atomically picks the highest-priority, oldest pending job and
// marks it claimed, within a single transaction so concurrent workers
// never double-claim.
func (q *SQLite) Claim(workerID string) (Job, bool, error) {
	tx, err := q.db.Begin()
	if err != nil {
		return Job{}, false, fmt.Errorf("claim: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRow(
		`SELECT id, match_id, priority, payload, attempts, max_attempts FROM jobs
		 WHERE status = ? ORDER BY priority DESC, rowid ASC LIMIT 1`,
		string(StatusPending),
	)
	var j Job
	if err := row.Scan(&j.ID, &j.MatchID, &j.Priority, &j.Payload, &j.Attempts, &j.MaxAttempts); err != nil {
		if err == sql.ErrNoRows {
			return Job{}, false, nil
		}
		return Job{}, false, fmt.Errorf("claim: %w", err)
	}

	now := time.Now()
	j.Attempts++
	j.Status = StatusClaimed
	j.WorkerID = workerID
	j.ClaimedAt = &now

	_, err = tx.Exec(
		`UPDATE jobs SET status = ?, worker_id = ?, attempts = ?, claimed_at = ? WHERE id = ?`,
		string(j.Status), j.WorkerID, j.Attempts, now.Unix(), j.ID,
	)
	if err != nil {
		return Job{}, false, fmt.Errorf("claim: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Job{}, false, fmt.Errorf("claim: %w", err)
	}
	return j, true, nil
}

func (q *SQLite) Complete(jobID string) error {
	_, err := q.db.Exec(
		`UPDATE jobs SET status = ?, finished_at = ? WHERE id = ?`,
		string(StatusDone), time.Now().Unix(), jobID,
	)
	if err != nil {
		return fmt.Errorf("complete job %s: %w", jobID, err)
	}
	return nil
}

func (q *SQLite) Fail(jobID string, reason string) error {
	row := q.db.QueryRow(`SELECT attempts, max_attempts FROM jobs WHERE id = ?`, jobID)
	var attempts, maxAttempts int
	if err := row.Scan(&attempts, &maxAttempts); err != nil {
		return fmt.Errorf("fail job %s: %w", jobID, err)
	}
	if attempts >= maxAttempts {
		_, err := q.db.Exec(
			`UPDATE jobs SET status = ?, error = ?, finished_at = ? WHERE id = ?`,
			string(StatusFailed), reason, time.Now().Unix(), jobID,
		)
		if err != nil {
			return fmt.Errorf("fail job %s: %w", jobID, err)
		}
		return nil
	}
	_, err := q.db.Exec(
		`UPDATE jobs SET status = ?, error = ?, worker_id = NULL, claimed_at = NULL WHERE id = ?`,
		string(StatusPending), reason, jobID,
	)
	if err != nil {
		return fmt.Errorf("fail job %s: %w", jobID, err)
	}
	return nil
}

func (q *SQLite) StatusCounts() (map[Status]int, error) {
	rows, err := q.db.Query(`SELECT status, COUNT(*) FROM jobs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("status counts: %w", err)
	}
	defer rows.Close()
	counts := make(map[Status]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("status counts: %w", err)
		}
		counts[Status(status)] = count
	}
	return counts, rows.Err()
}
