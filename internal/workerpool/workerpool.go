// Package workerpool bounds how many headless matches run at once,
// mirroring the original engine's atomic-counter worker pool. Each
// spawned match gets its own goroutine running against the pool's base
// context; one match's failure must never cancel or otherwise affect
// any other match running concurrently, so admission is gated by a
// semaphore rather than by errgroup.WithContext's shared-cancellation-
// on-first-error semantics.
package workerpool

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Pool runs up to size headless matches concurrently.
type Pool struct {
	size   int
	sem    *semaphore.Weighted
	active atomic.Int64
	wg     sync.WaitGroup
	ctx    context.Context
}

// New returns a Pool whose matches are canceled on ctx's cancellation
// (process shutdown) and allowing at most size concurrent matches.
func New(ctx context.Context, size int) *Pool {
	return &Pool{size: size, sem: semaphore.NewWeighted(int64(size)), ctx: ctx}
}

// HasCapacity reports whether another match could be spawned right
// now without exceeding size.
func (p *Pool) HasCapacity() bool {
	return p.active.Load() < int64(p.size)
}

// ActiveCount returns the number of matches currently running.
func (p *Pool) ActiveCount() int64 {
	return p.active.Load()
}

// Spawn runs fn in a pool goroutine if capacity allows, returning
// false immediately if the pool is already at size. The done callback
// runs after fn finishes (successfully or not), matching the original
// pool's completion-callback dispatch. fn's error is reported only to
// done — it never propagates to any other in-flight match or to Wait.
func (p *Pool) Spawn(matchID string, fn func(ctx context.Context) error, done func(matchID string, err error)) bool {
	if p.size <= 0 || !p.sem.TryAcquire(1) {
		return false
	}
	p.active.Add(1)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.active.Add(-1)
		defer p.sem.Release(1)
		err := fn(p.ctx)
		if done != nil {
			done(matchID, err)
		}
	}()
	return true
}

// Wait blocks until every spawned match has finished.
func (p *Pool) Wait() error {
	p.wg.Wait()
	return nil
}
