// Package queue implements the durable match job queue: enqueue,
// atomic claim-by-worker, complete, and bounded-retry fail.
package queue

import "time"

// Status is the lifecycle state of one queued job.
type Status string

const (
	StatusPending   Status = "pending"
	StatusClaimed   Status = "claimed"
	StatusDone      Status = "done"
	StatusFailed    Status = "failed"
)

// MaxAttempts bounds how many times a job may be claimed before it's
// permanently failed.
const MaxAttempts = 3

// Job is one match waiting to run (or having run). Payload carries the
// job's match setup (map path, per-player bot source) as an opaque
// JSON blob the worker decodes — the queue itself has no opinion on
// its shape.
type Job struct {
	ID          string
	MatchID     string
	Status      Status
	Priority    int
	Payload     string
	Attempts    int
	MaxAttempts int
	WorkerID    string
	ClaimedAt   *time.Time
	FinishedAt  *time.Time
	Error       string
}

// Queue is the durable job-queue contract; both the in-memory and
// sqlite-backed implementations satisfy it.
type Queue interface {
	Enqueue(matchID string, priority int, payload string) (Job, error)
	// Claim atomically assigns the oldest pending job of highest
	// priority to workerID, or returns found=false if none is
	// available.
	Claim(workerID string) (job Job, found bool, err error)
	Complete(jobID string) error
	Fail(jobID string, reason string) error
	StatusCounts() (map[Status]int, error)
}
