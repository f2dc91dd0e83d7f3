package engine

import (
	"arena/internal/creature"
	"arena/internal/tilemap"
)

// CreatureView is the read-only data the script sandbox exposes for
// any creature, friend or enemy.
type CreatureView struct {
	ID         uint64
	PlayerID   uint64
	Type       int
	State      int
	X, Y       int
	Food       int
	MaxFood    int
	HealthPct  int // 0-100, matching the original API's percentage convention
	Speed      int
}

// Creature returns a read-only view of creature id, if it exists.
func (g *Game) Creature(id uint64) (CreatureView, bool) {
	c, ok := g.Creatures[id]
	if !ok {
		return CreatureView{}, false
	}
	pct := 0
	if creature.MaxHealth[c.Type] > 0 {
		pct = c.Health * 100 / creature.MaxHealth[c.Type]
	}
	return CreatureView{
		ID: c.ID, PlayerID: c.PlayerID, Type: int(c.Type), State: int(c.State),
		X: c.X, Y: c.Y, Food: c.Food, MaxFood: creature.MaxFood[c.Type],
		HealthPct: pct, Speed: c.Speed(),
	}, true
}

// CreaturesOwnedBy returns the ids of every creature belonging to
// playerID, used by the sandbox to enumerate a bot's own units.
func (g *Game) CreaturesOwnedBy(playerID uint64) []uint64 {
	var ids []uint64
	for id, c := range g.Creatures {
		if c.PlayerID == playerID {
			ids = append(ids, id)
		}
	}
	return ids
}

// checkOwnership reports whether playerID may mutate creature id.
func (g *Game) checkOwnership(id, playerID uint64) (*creature.Creature, bool) {
	c, ok := g.Creatures[id]
	if !ok || c.PlayerID != playerID {
		return nil, false
	}
	return c, true
}

// SetPath walks (from tile to tile, via pathfinding on the world) and
// puts the creature into Walk state; ownership-gated.
func (g *Game) SetPath(id, playerID uint64, destX, destY int) bool {
	c, ok := g.checkOwnership(id, playerID)
	if !ok {
		return false
	}
	path := g.World.FindPath(tilemap.PixelToTile(c.X), tilemap.PixelToTile(c.Y), tilemap.PixelToTile(destX), tilemap.PixelToTile(destY))
	if path == nil {
		return false
	}
	c.Path = make([]struct{ X, Y int }, len(path))
	for i, p := range path {
		c.Path[i] = struct{ X, Y int }{p.X, p.Y}
	}
	c.SetState(creature.Walk)
	return true
}

// SetState sets creature id's state directly (for non-movement
// states); ownership-gated.
func (g *Game) SetState(id, playerID uint64, state int) bool {
	c, ok := g.checkOwnership(id, playerID)
	if !ok {
		return false
	}
	c.SetState(creature.State(state))
	return true
}

// GetState reads any creature's current state (unrestricted read).
func (g *Game) GetState(id uint64) (int, bool) {
	c, ok := g.Creatures[id]
	if !ok {
		return 0, false
	}
	return int(c.State), true
}

// SetTarget sets an attack/feed/convert target; ownership-gated.
func (g *Game) SetTarget(id, playerID, target uint64) bool {
	c, ok := g.checkOwnership(id, playerID)
	if !ok {
		return false
	}
	return c.SetTarget(target)
}

// SetConvert requests a type conversion; ownership-gated.
func (g *Game) SetConvert(id, playerID uint64, toType int) bool {
	c, ok := g.checkOwnership(id, playerID)
	if !ok {
		return false
	}
	return c.SetConversionType(creature.Type(toType))
}

// SuicideCreature marks creature id (owned by playerID) to die at the start of
// the next tick's creature pass.
func (g *Game) SuicideCreature(id, playerID uint64) bool {
	c, ok := g.checkOwnership(id, playerID)
	if !ok {
		return false
	}
	Suicide(c)
	return true
}

// SetMessage sets the chat bubble text for creature id; ownership-gated.
func (g *Game) SetMessage(id, playerID uint64, msg string) bool {
	c, ok := g.checkOwnership(id, playerID)
	if !ok {
		return false
	}
	c.SetMessage(msg)
	return true
}

// GameTimeMS returns the elapsed simulated time in milliseconds.
func (g *Game) GameTimeMS() int64 { return g.GameTime }

// TileFood/TileType are unrestricted reads of world state.
func (g *Game) TileFood(x, y int) int           { return g.World.GetFood(x, y) }
func (g *Game) TileType(x, y int) int           { return int(g.World.GetType(x, y)) }
func (g *Game) WorldSizePixels() (int, int, int, int) { return g.World.WorldSizePixels() }
func (g *Game) KothPosPixels() (int, int)       { return g.World.KothCenterPixels() }

// Distance returns the pixel distance between two creatures, if both
// exist.
func (g *Game) Distance(a, b uint64) (int, bool) {
	ca, ok := g.Creatures[a]
	if !ok {
		return 0, false
	}
	cb, ok := g.Creatures[b]
	if !ok {
		return 0, false
	}
	dx, dy := cb.X-ca.X, cb.Y-ca.Y
	return isqrtPub(dx*dx + dy*dy), true
}

func isqrtPub(v int) int {
	if v <= 0 {
		return 0
	}
	x := v
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + v/x) / 2
	}
	return x
}

// NearestEnemyResult is the shape returned by NearestEnemy.
type NearestEnemyResult struct {
	ID       uint64
	X, Y     int
	PlayerID uint64
	Distance int
}

// NearestEnemy finds the nearest creature not owned by playerID to
// creature id, via the spatial index built at the start of this tick.
func (g *Game) NearestEnemy(id, playerID uint64) (NearestEnemyResult, bool) {
	c, ok := g.Creatures[id]
	if !ok {
		return NearestEnemyResult{}, false
	}
	e, found := g.Spatial.FindNearestEnemy(c.X, c.Y, playerID)
	if !found {
		return NearestEnemyResult{}, false
	}
	dx, dy := e.X-c.X, e.Y-c.Y
	return NearestEnemyResult{ID: e.ID, X: e.X, Y: e.Y, PlayerID: e.PlayerID, Distance: isqrtPub(dx*dx + dy*dy)}, true
}

// PlayerExists, KingPlayer, PlayerScore are unrestricted reads of
// player/game state.
func (g *Game) PlayerExists(id uint64) bool { _, ok := g.Players[id]; return ok }

func (g *Game) KingPlayer() (uint64, bool) {
	if g.KingPlayerID == nil {
		return 0, false
	}
	return *g.KingPlayerID, true
}

func (g *Game) PlayerScore(id uint64) (int, bool) {
	p, ok := g.Players[id]
	if !ok {
		return 0, false
	}
	return p.Score, true
}
