package engine

import (
	"testing"

	"arena/internal/creature"
	"arena/internal/tilemap"
)

func openWorld(size int) *tilemap.World {
	w := tilemap.NewWorld(size, size)
	for y := 1; y < size-1; y++ {
		for x := 1; x < size-1; x++ {
			w.SetType(x, y, tilemap.TilePlain)
		}
	}
	return w
}

func TestSuicideAppliesPenaltyAndDropsPartialFood(t *testing.T) {
	w := openWorld(10)
	g := NewGame(w, 1, nil)
	g.AddPlayer(1, "p1", nil)
	c := g.SpawnCreature(1, creature.Small, tilemap.TileCenter(5), tilemap.TileCenter(5))
	c.Food = 300
	Suicide(c)

	g.Tick()

	if g.Players[1].Score != scoreSuicide {
		t.Fatalf("Score = %d, want %d", g.Players[1].Score, scoreSuicide)
	}
	if _, ok := g.Creatures[c.ID]; ok {
		t.Fatalf("creature still present after suicide")
	}
	tx, ty := tilemap.PixelToTile(c.X), tilemap.PixelToTile(c.Y)
	if got := w.GetFood(tx, ty); got != 100 {
		t.Fatalf("dropped food = %d, want 100 (1/3 of 300)", got)
	}
}

func TestStarvationAppliesPenalty(t *testing.T) {
	w := openWorld(10)
	g := NewGame(w, 1, nil)
	g.AddPlayer(1, "p1", nil)
	c := g.SpawnCreature(1, creature.Small, tilemap.TileCenter(5), tilemap.TileCenter(5))
	c.Health = 1 // dies from aging this tick

	g.Tick()

	if g.Players[1].Score != scoreStarvation {
		t.Fatalf("Score = %d, want %d", g.Players[1].Score, scoreStarvation)
	}
}

func TestSpawnCompletionAwardsScore(t *testing.T) {
	w := openWorld(10)
	g := NewGame(w, 1, nil)
	g.AddPlayer(1, "p1", nil)
	parent := g.SpawnCreature(1, creature.Big, tilemap.TileCenter(5), tilemap.TileCenter(5))
	parent.Health = creature.MaxHealth[creature.Big]
	parent.SetState(creature.Spawn)
	parent.SpawnFood = creature.SpawnFood[creature.Big] // ready to complete this tick

	before := len(g.Creatures)
	g.Tick()

	if g.Players[1].Score != scoreSpawn {
		t.Fatalf("Score = %d, want %d", g.Players[1].Score, scoreSpawn)
	}
	if len(g.Creatures) != before+1 {
		t.Fatalf("len(Creatures) = %d, want %d", len(g.Creatures), before+1)
	}
}

func TestKothAwardsScoreAfterHoldDuration(t *testing.T) {
	w := openWorld(10)
	g := NewGame(w, 1, nil)
	g.AddPlayer(1, "p1", nil)
	kx, ky := w.KothCenterPixels()
	g.SpawnCreature(1, creature.Small, kx, ky)

	ticksForHold := kothHoldMS / TickDeltaMS
	for i := 0; i < ticksForHold; i++ {
		g.Tick()
	}

	if g.Players[1].Score != kothScorePerHold {
		t.Fatalf("Score = %d, want %d after holding KoTH for %dms", g.Players[1].Score, kothScorePerHold, kothHoldMS)
	}
}

func TestKothToleratesMultipleCreaturesFromSamePlayer(t *testing.T) {
	w := openWorld(10)
	g := NewGame(w, 1, nil)
	g.AddPlayer(1, "p1", nil)
	kx, ky := w.KothCenterPixels()
	g.SpawnCreature(1, creature.Small, kx, ky)
	g.SpawnCreature(1, creature.Small, kx, ky) // same player, same tile: still uncontested

	ticksForHold := kothHoldMS / TickDeltaMS
	for i := 0; i < ticksForHold; i++ {
		g.Tick()
	}

	if g.Players[1].Score != kothScorePerHold {
		t.Fatalf("Score = %d, want %d: two creatures from the same player should not contest the tile", g.Players[1].Score, kothScorePerHold)
	}
}

func TestKothContestedByDistinctPlayersAwardsNothing(t *testing.T) {
	w := openWorld(10)
	g := NewGame(w, 1, nil)
	g.AddPlayer(1, "p1", nil)
	g.AddPlayer(2, "p2", nil)
	kx, ky := w.KothCenterPixels()
	g.SpawnCreature(1, creature.Small, kx, ky)
	g.SpawnCreature(2, creature.Small, kx, ky)

	ticksForHold := kothHoldMS / TickDeltaMS
	for i := 0; i < ticksForHold; i++ {
		g.Tick()
	}

	if g.Players[1].Score != 0 || g.Players[2].Score != 0 {
		t.Fatalf("Scores = %d/%d, want 0/0: tile held by two distinct players is contested", g.Players[1].Score, g.Players[2].Score)
	}
}

func TestAttackDamageScalesWithTickDuration(t *testing.T) {
	w := openWorld(10)
	g := NewGame(w, 1, nil)
	g.AddPlayer(1, "p1", nil)
	g.AddPlayer(2, "p2", nil)
	attacker := g.SpawnCreature(1, creature.Big, tilemap.TileCenter(5), tilemap.TileCenter(5))
	victim := g.SpawnCreature(2, creature.Big, tilemap.TileCenter(5), tilemap.TileCenter(5))
	attacker.SetTarget(victim.ID)
	attacker.SetState(creature.Attack)

	g.Tick()

	// Hitpoints[Big][Big] = 1500/s; one 100ms tick deals 150, not 1500.
	// Aging (Aging[Big] per 100ms) is applied before the attack in the
	// same tick.
	wantHealth := creature.MaxHealth[creature.Big] - creature.Aging[creature.Big] - 150
	if victim.Health != wantHealth {
		t.Fatalf("victim Health = %d, want %d (150 damage for a 100ms tick)", victim.Health, wantHealth)
	}
}

type printingThinker struct{ lines []string }

func (p printingThinker) Think(playerID uint64, events []Event) ([]string, error) {
	return p.lines, nil
}

func TestSnapshotCarriesPlayerPrintOutput(t *testing.T) {
	w := openWorld(10)
	g := NewGame(w, 1, nil)
	g.AddPlayer(1, "p1", printingThinker{lines: []string{"hello"}})

	g.Tick()
	snap := g.Snapshot()

	var got []string
	for _, p := range snap.Players {
		if p.ID == 1 {
			got = p.Output
		}
	}
	if len(got) != 1 || got[0] != "hello" {
		t.Fatalf("Players[0].Output = %v, want [\"hello\"]", got)
	}
}

func TestComputeDeltaOnlyReportsChangedCreatures(t *testing.T) {
	w := openWorld(10)
	g := NewGame(w, 1, nil)
	g.AddPlayer(1, "p1", nil)
	c1 := g.SpawnCreature(1, creature.Small, 100, 100)
	_ = g.SpawnCreature(1, creature.Small, 200, 200)

	prev := g.Snapshot()
	c1.Health -= 1
	cur := g.Snapshot()

	delta := ComputeDelta(cur, prev)
	if len(delta.Changed) != 1 || delta.Changed[0].ID != c1.ID {
		t.Fatalf("Changed = %+v, want exactly creature %d", delta.Changed, c1.ID)
	}
	if len(delta.Removed) != 0 {
		t.Fatalf("Removed = %v, want none", delta.Removed)
	}
}
