package engine

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"arena/internal/creature"
	"arena/internal/spatial"
	"arena/internal/tilemap"
)

// TickDeltaMS is the fixed simulation step width.
const TickDeltaMS = 100

// DefaultScoreLimit is the default Game.ScoreLimit; 0 disables the
// score-limit win condition. A non-zero ScoreLimit ends the match once
// any player reaches it.
const DefaultScoreLimit = 0

// Scoring deltas, pinned to the original engine's table.
const (
	scoreSpawn        = 10
	scoreSuicide       = -40
	scoreStarvation    = -3
	scoreSmallKilledByBig   = -3
	scoreKillSmallAsBig     = 10
	scoreBigKilledByBig     = -8
	scoreKillBigAsBig       = 15
	scoreFlyerKilled        = -4
	scoreKillFlyer          = 12
	kothHoldMS              = 10000
	kothScorePerHold        = 30
)

// Game owns the whole simulation: world, creatures, players, and the
// tick orchestration.
type Game struct {
	World    *tilemap.World
	Creatures map[uint64]*creature.Creature
	Players   map[uint64]*Player
	playerOrder []uint64

	Spatial *spatial.Grid

	GameTime     int64
	KingPlayerID *uint64
	KingHoldMS   int64

	ScoreLimit int
	MaxTicks   int64
	tickCount  int64

	nextCreatureID uint64
	rng            *rand.Rand

	broadcastEvents []Event

	log *zap.SugaredLogger
}

// NewGame constructs a Game over world with no creatures or players
// yet. seed fixes the deterministic RNG stream (food spawner placement,
// random-map generation callers use their own stream).
func NewGame(world *tilemap.World, seed int64, log *zap.SugaredLogger) *Game {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Game{
		World:     world,
		Creatures: make(map[uint64]*creature.Creature),
		Players:   make(map[uint64]*Player),
		Spatial:   spatial.New(),
		rng:       rand.New(rand.NewSource(seed)),
		log:       log,
	}
}

// AddPlayer registers a player under id with its Thinker, appending it
// to the think order.
func (g *Game) AddPlayer(id uint64, name string, thinker Thinker) {
	g.Players[id] = &Player{ID: id, Name: name, Thinker: thinker}
	g.playerOrder = append(g.playerOrder, id)
}

// SpawnCreature creates and registers a new creature, returning it.
func (g *Game) SpawnCreature(playerID uint64, typ creature.Type, x, y int) *creature.Creature {
	g.nextCreatureID++
	c := creature.New(g.nextCreatureID, playerID, typ, x, y)
	g.Creatures[c.ID] = c
	return c
}

// Tick advances the simulation by one fixed step: rebuild the spatial
// index, run every player's think call, dispatch creature actions,
// resolve KoTH, drop spawner food, and advance the clock.
func (g *Game) Tick() {
	start := time.Now()

	g.rebuildSpatial()
	g.processPlayerThink()
	g.processCreatures(TickDeltaMS)
	g.processKoth()
	g.processFoodSpawners()

	g.GameTime += TickDeltaMS
	g.tickCount++

	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		g.log.Warnw("tick_over_budget", "tick", g.tickCount, "elapsed_us", elapsed.Microseconds())
	}
}

func (g *Game) rebuildSpatial() {
	entries := make([]spatial.Entry, 0, len(g.Creatures))
	for _, c := range g.Creatures {
		entries = append(entries, spatial.Entry{ID: c.ID, PlayerID: c.PlayerID, X: c.X, Y: c.Y})
	}
	g.Spatial.Rebuild(entries)
}

func (g *Game) processPlayerThink() {
	for _, pid := range g.playerOrder {
		p := g.Players[pid]
		if p.Thinker == nil {
			continue
		}
		events := p.pendingEvents
		p.pendingEvents = nil
		out, err := p.Thinker.Think(pid, events)
		if err != nil {
			g.log.Warnw("player_think_error", "player", pid, "error", err)
			out = append(out, err.Error())
		}
		p.output = append(p.output, out...)
	}
}

// ChangeScore adjusts a player's score by delta, a no-op if the player
// doesn't exist.
func (g *Game) ChangeScore(playerID uint64, delta int) {
	if p, ok := g.Players[playerID]; ok {
		p.Score += delta
	}
}

// broadcastEvent appends ev to the broadcast log drained by Snapshot
// and to every player's pending queue.
func (g *Game) broadcastEvent(ev Event) {
	g.broadcastEvents = append(g.broadcastEvents, ev)
	for _, p := range g.Players {
		p.pendingEvents = append(p.pendingEvents, ev)
	}
}

// killCreature removes c, applies the scoring rule for killerID (0 =
// none: starvation), drops its food, and emits a death event.
func (g *Game) killCreature(c *creature.Creature, killerID uint64, suicide bool) {
	delete(g.Creatures, c.ID)

	dropFraction := 1
	if suicide {
		dropFraction = 3
	}
	g.World.AddFood(tilemap.PixelToTile(c.X), tilemap.PixelToTile(c.Y), c.Food/dropFraction)

	switch {
	case suicide:
		g.ChangeScore(c.PlayerID, scoreSuicide)
	case killerID == 0:
		g.ChangeScore(c.PlayerID, scoreStarvation)
	default:
		killer, ok := g.Creatures[killerID]
		killerType := creature.Big
		if ok {
			killerType = killer.Type
		}
		g.applyCombatScore(c.Type, killerType, c.PlayerID, killerID)
	}

	g.broadcastEvent(Event{Type: EventCreatureDied, CreatureID: c.ID, PlayerID: c.PlayerID, KillerID: killerID})
}

func (g *Game) applyCombatScore(victimType, killerType creature.Type, victimPlayer, killerID uint64) {
	killer, ok := g.Creatures[killerID]
	var killerPlayer uint64
	if ok {
		killerPlayer = killer.PlayerID
	}
	switch {
	case victimType == creature.Small && killerType == creature.Big:
		g.ChangeScore(victimPlayer, scoreSmallKilledByBig)
		g.ChangeScore(killerPlayer, scoreKillSmallAsBig)
	case victimType == creature.Big && killerType == creature.Big:
		g.ChangeScore(victimPlayer, scoreBigKilledByBig)
		g.ChangeScore(killerPlayer, scoreKillBigAsBig)
	case victimType == creature.Flyer && (killerType == creature.Small || killerType == creature.Big):
		g.ChangeScore(victimPlayer, scoreFlyerKilled)
		g.ChangeScore(killerPlayer, scoreKillFlyer)
	}
}

// Winner reports the id of the player who has reached ScoreLimit, if
// any is set and reached.
func (g *Game) Winner() (uint64, bool) {
	if g.ScoreLimit <= 0 {
		return 0, false
	}
	for _, p := range g.Players {
		if p.Score >= g.ScoreLimit {
			return p.ID, true
		}
	}
	return 0, false
}

// TickCount returns how many ticks have been simulated so far.
func (g *Game) TickCount() int64 { return g.tickCount }

// Finished reports whether the match should stop: a score-limit winner
// was reached, or MaxTicks was hit.
func (g *Game) Finished() bool {
	if _, ok := g.Winner(); ok {
		return true
	}
	return g.MaxTicks > 0 && g.tickCount >= g.MaxTicks
}
