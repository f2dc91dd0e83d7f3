package workerpool

import (
	"context"
	"sync"
	"testing"
)

func TestSpawnRespectsCapacity(t *testing.T) {
	p := New(context.Background(), 2)

	var mu sync.Mutex
	var started int
	release := make(chan struct{})

	for i := 0; i < 2; i++ {
		ok := p.Spawn("m", func(ctx context.Context) error {
			mu.Lock()
			started++
			mu.Unlock()
			<-release
			return nil
		}, nil)
		if !ok {
			t.Fatalf("Spawn %d: expected capacity", i)
		}
	}

	if p.HasCapacity() {
		t.Fatalf("HasCapacity: true, want false at full capacity")
	}
	if ok := p.Spawn("m", func(ctx context.Context) error { return nil }, nil); ok {
		t.Fatalf("Spawn beyond capacity succeeded, want rejected")
	}

	close(release)
	if err := p.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
}

func TestZeroCapacityNeverSpawns(t *testing.T) {
	p := New(context.Background(), 0)
	if p.Spawn("m", func(ctx context.Context) error { return nil }, nil) {
		t.Fatalf("Spawn on a zero-capacity pool succeeded")
	}
}
