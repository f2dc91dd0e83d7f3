package engine

// Snapshot captures the current game state and drains each player's
// accumulated print output and the broadcast event log for this tick.
func (g *Game) Snapshot() Snapshot {
	creatures := make([]CreatureSnapshot, 0, len(g.Creatures))
	for _, c := range g.Creatures {
		creatures = append(creatures, CreatureSnapshot{
			ID: c.ID, PlayerID: c.PlayerID, Type: c.Type, State: c.State,
			X: c.X, Y: c.Y, Health: c.Health, Food: c.Food,
		})
	}

	players := make([]PlayerSnapshot, 0, len(g.Players))
	for _, p := range g.Players {
		players = append(players, PlayerSnapshot{ID: p.ID, Name: p.Name, Score: p.Score, Output: p.output})
		p.output = nil
	}

	events := g.broadcastEvents
	g.broadcastEvents = nil

	var king *uint64
	if g.KingPlayerID != nil {
		k := *g.KingPlayerID
		king = &k
	}

	return Snapshot{
		GameTime:     g.GameTime,
		Creatures:    creatures,
		Players:      players,
		KingPlayerID: king,
		Events:       events,
	}
}

func (c CreatureSnapshot) equalIgnoringID(o CreatureSnapshot) bool {
	return c.PlayerID == o.PlayerID && c.Type == o.Type && c.State == o.State &&
		c.X == o.X && c.Y == o.Y && c.Health == o.Health && c.Food == o.Food
}

// ComputeDelta reduces current against previous to only the creatures
// that are new or changed, plus the ids that disappeared. Players,
// king, and events are always carried in full since they're small and
// every tick's worth is meaningful on its own.
func ComputeDelta(current, previous Snapshot) Delta {
	prevByID := make(map[uint64]CreatureSnapshot, len(previous.Creatures))
	for _, c := range previous.Creatures {
		prevByID[c.ID] = c
	}

	var changed []CreatureSnapshot
	seen := make(map[uint64]bool, len(current.Creatures))
	for _, c := range current.Creatures {
		seen[c.ID] = true
		if prev, ok := prevByID[c.ID]; !ok || !prev.equalIgnoringID(c) {
			changed = append(changed, c)
		}
	}

	var removed []uint64
	for id := range prevByID {
		if !seen[id] {
			removed = append(removed, id)
		}
	}

	return Delta{
		GameTime:     current.GameTime,
		Changed:      changed,
		Removed:      removed,
		Players:      current.Players,
		KingPlayerID: current.KingPlayerID,
		Events:       current.Events,
	}
}
