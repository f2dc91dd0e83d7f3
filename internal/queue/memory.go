package queue

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Queue, used for tests and single-process
// live-match-only deployments where durability across restarts isn't
// needed.
type Memory struct {
	mu    sync.Mutex
	jobs  map[string]*Job
	order []string // job ids in enqueue order
}

// NewMemory returns an empty in-memory queue.
func NewMemory() *Memory {
	return &Memory{jobs: make(map[string]*Job)}
}

func (m *Memory) Enqueue(matchID string, priority int, payload string) (Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	j := &Job{
		ID: uuid.NewString(), MatchID: matchID, Status: StatusPending,
		Priority: priority, Payload: payload, MaxAttempts: MaxAttempts,
	}
	m.jobs[j.ID] = j
	m.order = append(m.order, j.ID)
	return *j, nil
}

func (m *Memory) Claim(workerID string) (Job, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var candidates []*Job
	for _, id := range m.order {
		if j := m.jobs[id]; j.Status == StatusPending {
			candidates = append(candidates, j)
		}
	}
	if len(candidates) == 0 {
		return Job{}, false, nil
	}
	sort.SliceStable(candidates, func(i, k int) bool {
		return candidates[i].Priority > candidates[k].Priority
	})
	j := candidates[0]
	j.Status = StatusClaimed
	j.WorkerID = workerID
	j.Attempts++
	now := time.Now()
	j.ClaimedAt = &now
	return *j, true, nil
}

func (m *Memory) Complete(jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobID]
	if !ok {
		return fmt.Errorf("complete job %s: not found", jobID)
	}
	j.Status = StatusDone
	now := time.Now()
	j.FinishedAt = &now
	return nil
}

func (m *Memory) Fail(jobID string, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	j, ok := m.jobs[jobID]
	if !ok {
		return fmt.Errorf("fail job %s: not found", jobID)
	}
	j.Error = reason
	if j.Attempts >= j.MaxAttempts {
		j.Status = StatusFailed
		now := time.Now()
		j.FinishedAt = &now
	} else {
		j.Status = StatusPending
		j.WorkerID = ""
		j.ClaimedAt = nil
	}
	return nil
}

func (m *Memory) StatusCounts() (map[Status]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[Status]int)
	for _, j := range m.jobs {
		counts[j.Status]++
	}
	return counts, nil
}
