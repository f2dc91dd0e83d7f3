package match

import (
	"context"
	"testing"

	"arena/internal/creature"
	"arena/internal/engine"
	"arena/internal/tilemap"
)

func TestRunHeadlessStopsAtMaxTicks(t *testing.T) {
	world := tilemap.NewWorld(10, 10)
	for y := 1; y < 9; y++ {
		for x := 1; x < 9; x++ {
			world.SetType(x, y, tilemap.TilePlain)
		}
	}
	game := engine.NewGame(world, 1, nil)
	game.MaxTicks = 5
	game.AddPlayer(1, "bot", nil)
	game.SpawnCreature(1, creature.Small, tilemap.TileCenter(4), tilemap.TileCenter(4))

	result, err := RunHeadless(context.Background(), "m1", game)
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if result.Ticks != 5 {
		t.Fatalf("Ticks = %d, want 5", result.Ticks)
	}
	if len(result.Replay) == 0 {
		t.Fatalf("Replay is empty")
	}
}

func TestRunHeadlessStopsAtScoreLimit(t *testing.T) {
	world := tilemap.NewWorld(10, 10)
	for y := 1; y < 9; y++ {
		for x := 1; x < 9; x++ {
			world.SetType(x, y, tilemap.TilePlain)
		}
	}
	game := engine.NewGame(world, 1, nil)
	game.MaxTicks = 100000
	game.ScoreLimit = 1
	game.AddPlayer(1, "bot", nil)
	game.ChangeScore(1, 1)

	result, err := RunHeadless(context.Background(), "m2", game)
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if result.WinnerID == nil || *result.WinnerID != 1 {
		t.Fatalf("WinnerID = %v, want 1", result.WinnerID)
	}
}
