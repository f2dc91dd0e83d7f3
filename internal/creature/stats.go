// Package creature implements the per-creature state machine: stats,
// actions (walk/heal/eat/attack/convert/spawn/feed), and aging.
package creature

// Type identifies one of the three creature kinds. A fourth slot is
// reserved (unused) in every stat table to match the original engine's
// fixed-size arrays.
type Type int

const (
	Small Type = 0
	Big   Type = 1
	Flyer Type = 2
	none  Type = 3
)

// State is the current action a creature is performing.
type State int

const (
	Idle State = iota
	Walk
	Heal
	Eat
	Attack
	Convert
	Spawn
	Feed
)

// Stat tables indexed by Type, pinned to the original engine's exact
// values.
var (
	MaxHealth   = [4]int{10000, 20000, 5000, 0}
	MaxFood     = [4]int{10000, 20000, 5000, 0}
	Aging       = [4]int{5, 7, 5, 0} // health drained per 100ms tick
	BaseSpeed   = [4]int{200, 400, 800, 0}
	HealthSpeed = [4]int{625, 0, 0, 0}
	HealRate    = [4]int{500, 300, 600, 0}
	EatRate     = [4]int{800, 400, 600, 0}

	// SpawnFood/Speed/Health are the resources an offspring costs and
	// starts with; SpawnType is the offspring's type, -1 meaning the
	// type cannot spawn at all.
	SpawnFood  = [4]int{0, 5000, 0, 0}
	SpawnSpeed = [4]int{0, 2000, 0, 0}
	SpawnHealth = [4]int{0, 4000, 0, 0}
	SpawnType  = [4]int{-1, 0, -1, -1}

	FeedDistance = [4]int{256, 0, 256, 0}
	FeedSpeed    = [4]int{400, 0, 400, 0}

	ConversionSpeed = [4]int{1000, 1000, 1000, 0}
)

// Hitpoints[attacker][target] is the damage dealt per second of
// attacking; the engine scales it by the elapsed tick width.
var Hitpoints = [4][4]int{
	Small: {0, 0, 1000, 0},
	Big:   {1500, 1500, 1500, 0},
	Flyer: {0, 0, 0, 0},
}

// AttackDistance[attacker][target] is the max pixel distance an attack
// can be initiated from.
var AttackDistance = [4][4]int{
	Small: {0, 0, 768, 0},
	Big:   {512, 512, 512, 0},
	Flyer: {0, 0, 0, 0},
}

// ConversionFood[from][to] is the food cost to convert from one type
// to another; 0 means the conversion is not allowed.
var ConversionFood = [4][4]int{
	Small: {0, 8000, 5000, 0},
	Big:   {8000, 0, 0, 0},
	Flyer: {5000, 0, 0, 0},
}
