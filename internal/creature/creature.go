package creature

// Creature is one simulated entity: its position, stats, current
// action, and the per-action accumulators those actions need across
// ticks.
type Creature struct {
	ID       uint64
	PlayerID uint64
	Type     Type
	State    State

	X, Y int // pixel-space position
	Path []struct{ X, Y int }

	Health int
	Food   int

	TargetID uint64 // attack/feed/convert target, 0 = none
	ConvertTo Type

	ConvertFood int // accumulated toward ConversionFood[Type][ConvertTo]
	SpawnFood   int // accumulated toward SpawnFood[Type]

	AgeCarryMS int64 // sub-100ms remainder carried between ticks

	Message string
}

// New constructs a creature of the given type at full health and zero
// food, idle at (x, y).
func New(id, playerID uint64, typ Type, x, y int) *Creature {
	return &Creature{
		ID: id, PlayerID: playerID, Type: typ,
		State: Idle, X: x, Y: y,
		Health: MaxHealth[typ], Food: 0,
	}
}

// Speed returns the creature's current movement speed in pixels per
// second (DoWalk moves Speed()*deltaMS/1000 pixels), capped at 1000 the
// way the original engine caps it.
func (c *Creature) Speed() int {
	s := BaseSpeed[c.Type] + HealthSpeed[c.Type]*c.Health/MaxHealth[c.Type]
	if s > 1000 {
		s = 1000
	}
	return s
}

// SetState transitions to a new state, resetting the convert/spawn
// accumulators only when leaving Convert or Spawn into something else.
func (c *Creature) SetState(s State) {
	if c.State != s && (c.State == Convert || c.State == Spawn) {
		c.ConvertFood = 0
		c.SpawnFood = 0
	}
	c.State = s
}

// SetTarget sets the attack/feed/convert target, rejecting self-
// targeting.
func (c *Creature) SetTarget(id uint64) bool {
	if id == c.ID {
		return false
	}
	c.TargetID = id
	return true
}

// SetConversionType validates that converting from the creature's
// current type to to is allowed and resets the conversion accumulator
// on any change of target type.
func (c *Creature) SetConversionType(to Type) bool {
	if ConversionFood[c.Type][to] <= 0 {
		return false
	}
	if c.ConvertTo != to {
		c.ConvertFood = 0
	}
	c.ConvertTo = to
	return true
}

// SetMessage truncates msg to 8 runes, matching the original engine's
// client-message length cap.
func (c *Creature) SetMessage(msg string) {
	r := []rune(msg)
	if len(r) > 8 {
		r = r[:8]
	}
	c.Message = string(r)
}

// DoWalk advances the creature deltaMS along its path, returning true
// if the path is now exhausted (the creature reverts to Idle).
func (c *Creature) DoWalk(deltaMS int) bool {
	if len(c.Path) == 0 {
		c.SetState(Idle)
		return true
	}
	remaining := c.Speed() * deltaMS / 1000
	if remaining < 1 {
		remaining = 1
	}
	for remaining > 0 && len(c.Path) > 0 {
		wp := c.Path[0]
		dx, dy := wp.X-c.X, wp.Y-c.Y
		dist := isqrt(dx*dx + dy*dy)
		if dist <= remaining {
			c.X, c.Y = wp.X, wp.Y
			c.Path = c.Path[1:]
			remaining -= dist
		} else {
			c.X += dx * remaining / max1(dist)
			c.Y += dy * remaining / max1(dist)
			remaining = 0
		}
	}
	if len(c.Path) == 0 {
		c.SetState(Idle)
		return true
	}
	return false
}

func max1(v int) int {
	if v == 0 {
		return 1
	}
	return v
}

func isqrt(v int) int {
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

// DoHeal converts deltaMS of heal-rate food into health, bounded by the
// remaining health deficit and available food. Returns true once fully
// healed.
func (c *Creature) DoHeal(deltaMS int) bool {
	deficit := MaxHealth[c.Type] - c.Health
	if deficit <= 0 {
		c.SetState(Idle)
		return true
	}
	amount := HealRate[c.Type] * deltaMS / 1000
	if amount > deficit {
		amount = deficit
	}
	if amount > c.Food {
		amount = c.Food
	}
	c.Health += amount
	c.Food -= amount
	if c.Health >= MaxHealth[c.Type] {
		c.SetState(Idle)
		return true
	}
	return false
}

// DoEat takes up to deltaMS worth of eat-rate food, bounded by tileFood
// (the food available on the creature's tile; the caller removes the
// eaten amount from the tile), and returns the amount consumed and
// whether the creature's food store is now full.
func (c *Creature) DoEat(deltaMS int, tileFood int) (amount int, finished bool) {
	deficit := MaxFood[c.Type] - c.Food
	if deficit <= 0 {
		c.SetState(Idle)
		return 0, true
	}
	amount = EatRate[c.Type] * deltaMS / 1000
	if amount > deficit {
		amount = deficit
	}
	if amount > tileFood {
		amount = tileFood
	}
	c.Food += amount
	if c.Food >= MaxFood[c.Type] {
		c.SetState(Idle)
		finished = true
	}
	return amount, finished
}

// DoConvert invests up to deltaMS worth of conversion rate from the
// creature's own food store into its conversion progress, bounded by
// both the remaining progress needed and the food on hand, and on
// completion morphs the creature into ConvertTo (resetting health to
// the new type's max).
func (c *Creature) DoConvert(deltaMS int) (morphed bool) {
	need := ConversionFood[c.Type][c.ConvertTo]
	if need <= 0 {
		c.SetState(Idle)
		return false
	}
	rate := ConversionSpeed[c.Type] * deltaMS / 1000
	invest := min3(rate, c.Food, need-c.ConvertFood)
	if invest > 0 {
		c.Food -= invest
		c.ConvertFood += invest
	}
	if c.ConvertFood < need {
		return false
	}
	c.Type = c.ConvertTo
	c.Health = MaxHealth[c.Type]
	c.ConvertFood = 0
	c.SetState(Idle)
	return true
}

// DoSpawn invests up to deltaMS worth of spawn rate from the creature's
// own food store into its spawn progress, bounded by both the
// remaining progress needed and the food on hand, and on completion
// deducts SpawnHealth and reports that an offspring should be created.
func (c *Creature) DoSpawn(deltaMS int) (ready bool) {
	need := SpawnFood[c.Type]
	if need <= 0 || SpawnType[c.Type] < 0 {
		c.SetState(Idle)
		return false
	}
	rate := SpawnSpeed[c.Type] * deltaMS / 1000
	invest := min3(rate, c.Food, need-c.SpawnFood)
	if invest > 0 {
		c.Food -= invest
		c.SpawnFood += invest
	}
	if c.SpawnFood < need {
		return false
	}
	c.SpawnFood = 0
	c.Health -= SpawnHealth[c.Type]
	c.SetState(Idle)
	return true
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// DoAge drains Aging[Type] health per elapsed 100ms tick, carrying any
// sub-100ms remainder between calls, and reports whether the creature
// died of old age/starvation this call.
func (c *Creature) DoAge(deltaMS int) (died bool) {
	c.AgeCarryMS += int64(deltaMS)
	ticks := c.AgeCarryMS / 100
	c.AgeCarryMS %= 100
	if ticks <= 0 {
		return c.Health <= 0
	}
	c.Health -= Aging[c.Type] * int(ticks)
	return c.Health <= 0
}
