package engine

import (
	"arena/internal/creature"
	"arena/internal/tilemap"
)

// suicideRequests and attack/spawn results are collected during the
// main per-creature loop and applied after it, so that killing a
// creature mid-iteration never invalidates another creature's turn.
type pendingKill struct {
	id       uint64
	killerID uint64
	suicide  bool
}

type pendingSpawn struct {
	parentID uint64
	typ      creature.Type
	x, y     int
}

// processCreatures ages every creature, then dispatches its current
// state's action, deferring kills and new spawns to apply after the
// whole pass completes.
func (g *Game) processCreatures(deltaMS int) {
	var kills []pendingKill
	var spawns []pendingSpawn

	for id, c := range g.Creatures {
		if c.State == creature.Idle && c.TargetID == suicideMarker {
			kills = append(kills, pendingKill{id: id, suicide: true})
		}
	}
	for _, k := range kills {
		if c, ok := g.Creatures[k.id]; ok {
			g.killCreature(c, 0, true)
		}
	}
	kills = nil

	for id, c := range g.Creatures {
		if c.DoAge(deltaMS) {
			kills = append(kills, pendingKill{id: id})
		}
	}
	for _, k := range kills {
		if c, ok := g.Creatures[k.id]; ok {
			g.killCreature(c, 0, false)
		}
	}
	kills = nil

	for id, c := range g.Creatures {
		switch c.State {
		case creature.Walk:
			c.DoWalk(deltaMS)
		case creature.Heal:
			c.DoHeal(deltaMS)
		case creature.Eat:
			tx, ty := tilemap.PixelToTile(c.X), tilemap.PixelToTile(c.Y)
			amount, _ := c.DoEat(deltaMS, g.World.GetFood(tx, ty))
			g.World.EatFood(tx, ty, amount)
		case creature.Attack:
			g.processAttack(id, c, deltaMS, &kills)
		case creature.Convert:
			c.DoConvert(deltaMS)
		case creature.Spawn:
			if c.DoSpawn(deltaMS) {
				spawns = append(spawns, pendingSpawn{parentID: id, typ: creature.Type(creature.SpawnType[c.Type]), x: c.X, y: c.Y})
			}
		case creature.Feed:
			g.processFeed(c, deltaMS)
		}
	}

	for _, k := range kills {
		if c, ok := g.Creatures[k.id]; ok {
			g.killCreature(c, k.killerID, false)
		}
	}

	for _, sp := range spawns {
		parent, ok := g.Creatures[sp.parentID]
		if !ok || sp.typ < 0 {
			continue
		}
		child := g.SpawnCreature(parent.PlayerID, sp.typ, sp.x, sp.y)
		child.Health = creature.SpawnHealth[parent.Type]
		g.ChangeScore(parent.PlayerID, scoreSpawn)
		g.broadcastEvent(Event{Type: EventCreatureSpawned, CreatureID: child.ID, PlayerID: parent.PlayerID})
	}
}

// suicideMarker is the sentinel TargetID Suicide() sets to flag a
// creature for removal on the next tick's suicide pass.
const suicideMarker = ^uint64(0)

// Suicide marks c to be removed (with the suicide scoring penalty) at
// the start of the next creature-processing pass.
func Suicide(c *creature.Creature) {
	c.SetState(creature.Idle)
	c.TargetID = suicideMarker
}

func (g *Game) processAttack(attackerID uint64, c *creature.Creature, deltaMS int, kills *[]pendingKill) {
	target, ok := g.Creatures[c.TargetID]
	if !ok {
		c.SetState(creature.Idle)
		return
	}
	dx, dy := target.X-c.X, target.Y-c.Y
	distSq := dx*dx + dy*dy
	maxDist := creature.AttackDistance[c.Type][target.Type]
	if maxDist <= 0 || distSq > maxDist*maxDist {
		c.SetState(creature.Idle)
		return
	}
	// Hitpoints is a per-second damage rate; scale to the elapsed tick
	// the same way processFeed scales its per-second feed rate.
	damage := creature.Hitpoints[c.Type][target.Type] * deltaMS / 1000
	if damage <= 0 {
		c.SetState(creature.Idle)
		return
	}
	target.Health -= damage
	if target.Health <= 0 {
		*kills = append(*kills, pendingKill{id: target.ID, killerID: attackerID})
	}
}

func (g *Game) processFeed(c *creature.Creature, deltaMS int) {
	target, ok := g.Creatures[c.TargetID]
	if !ok {
		c.SetState(creature.Idle)
		return
	}
	dx, dy := target.X-c.X, target.Y-c.Y
	distSq := dx*dx + dy*dy
	maxDist := creature.FeedDistance[c.Type]
	if maxDist <= 0 || distSq > maxDist*maxDist {
		c.SetState(creature.Idle)
		return
	}
	deficit := creature.MaxFood[target.Type] - target.Food
	if deficit <= 0 {
		c.SetState(creature.Idle)
		return
	}
	amount := creature.FeedSpeed[c.Type] * deltaMS / 1000
	if amount > deficit {
		amount = deficit
	}
	if amount > c.Food {
		amount = c.Food
	}
	c.Food -= amount
	target.Food += amount
}

func (g *Game) processKoth() {
	playersOnTile := make(map[uint64]bool)
	for _, c := range g.Creatures {
		if tilemap.PixelToTile(c.X) == g.World.KothX && tilemap.PixelToTile(c.Y) == g.World.KothY {
			playersOnTile[c.PlayerID] = true
		}
	}

	if len(playersOnTile) != 1 {
		g.KingPlayerID = nil
		g.KingHoldMS = 0
		return
	}
	var occupant uint64
	for pid := range playersOnTile {
		occupant = pid
	}

	if g.KingPlayerID == nil || *g.KingPlayerID != occupant {
		g.KingPlayerID = &occupant
		g.KingHoldMS = 0
	}
	g.KingHoldMS += TickDeltaMS
	if g.KingHoldMS >= kothHoldMS {
		g.KingHoldMS -= kothHoldMS
		g.ChangeScore(occupant, kothScorePerHold)
		g.broadcastEvent(Event{Type: EventKothCaptured, PlayerID: occupant})
	}
}

func (g *Game) processFoodSpawners() {
	for _, sp := range g.World.Spawners {
		if sp.IntervalMS <= 0 || g.GameTime%sp.IntervalMS != 0 {
			continue
		}
		x := sp.X + g.rng.Intn(2*sp.Radius+1) - sp.Radius
		y := sp.Y + g.rng.Intn(2*sp.Radius+1) - sp.Radius
		if !g.World.IsWalkable(x, y) {
			continue
		}
		g.World.AddFood(x, y, sp.Amount)
	}
}
