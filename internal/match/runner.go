// Package match runs a single game to completion, either paced to wall
// clock for live spectating or as fast as possible for headless worker
// execution, recording a replay as it goes.
package match

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"arena/internal/engine"
	"arena/internal/replay"
)

// Result is what a finished match reports back to its caller (the
// worker pool, or a live process's shutdown path).
type Result struct {
	MatchID     string
	Ticks       int64
	FinalScores map[uint64]int
	WinnerID    *uint64
	Replay      []byte
}

// RunHeadless ticks game until it reports Finished() (score limit
// reached, or game.MaxTicks hit; MaxTicks 0 = unbounded), recording
// every tick's delta into a replay.
// It runs as fast as the host can compute, with no wall-clock pacing.
func RunHeadless(ctx context.Context, matchID string, game *engine.Game) (Result, error) {
	rec := replay.NewRecorder()
	prev := game.Snapshot()

	for !game.Finished() {
		select {
		case <-ctx.Done():
			return Result{}, fmt.Errorf("match %s: %w", matchID, ctx.Err())
		default:
		}
		game.Tick()
		cur := game.Snapshot()
		delta := engine.ComputeDelta(cur, prev)
		prev = cur
		if err := recordDelta(rec, delta); err != nil {
			return Result{}, err
		}
	}

	return finish(rec, matchID, game)
}

// RunLive ticks game once every TickDeltaMS, calling onTick with each
// tick's delta (for broadcast to spectators/clients), until game
// finishes or ctx is cancelled.
func RunLive(ctx context.Context, matchID string, game *engine.Game, onTick func(engine.Delta)) (Result, error) {
	rec := replay.NewRecorder()
	prev := game.Snapshot()
	ticker := time.NewTicker(engine.TickDeltaMS * time.Millisecond)
	defer ticker.Stop()

	for !game.Finished() {
		select {
		case <-ctx.Done():
			return Result{}, fmt.Errorf("match %s: %w", matchID, ctx.Err())
		case <-ticker.C:
			game.Tick()
			cur := game.Snapshot()
			delta := engine.ComputeDelta(cur, prev)
			prev = cur
			if err := recordDelta(rec, delta); err != nil {
				return Result{}, err
			}
			if onTick != nil {
				onTick(delta)
			}
		}
	}

	return finish(rec, matchID, game)
}

func recordDelta(rec *replay.Recorder, delta engine.Delta) error {
	b, err := json.Marshal(delta)
	if err != nil {
		return fmt.Errorf("marshal delta: %w", err)
	}
	rec.Record(b)
	return nil
}

func finish(rec *replay.Recorder, matchID string, game *engine.Game) (Result, error) {
	replayBytes, err := rec.Finish()
	if err != nil {
		return Result{}, fmt.Errorf("finish replay: %w", err)
	}
	scores := make(map[uint64]int, len(game.Players))
	for id, p := range game.Players {
		scores[id] = p.Score
	}
	var winner *uint64
	if id, ok := game.Winner(); ok {
		winner = &id
	}
	return Result{
		MatchID: matchID, Ticks: game.TickCount(),
		FinalScores: scores, WinnerID: winner, Replay: replayBytes,
	}, nil
}
