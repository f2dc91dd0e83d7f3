// Package script embeds a per-player Lua sandbox (gopher-lua) bound to
// the game's ownership-gated mutation API and unrestricted read API,
// with an instruction budget enforced per think call.
package script

import "arena/internal/engine"

// Host is the subset of *engine.Game the sandbox needs; engine.Game
// satisfies this interface structurally, so this package can bind to
// it without the engine package importing script.
type Host interface {
	Creature(id uint64) (engine.CreatureView, bool)
	CreaturesOwnedBy(playerID uint64) []uint64

	SetPath(id, playerID uint64, destX, destY int) bool
	SetState(id, playerID uint64, state int) bool
	GetState(id uint64) (int, bool)
	SetTarget(id, playerID, target uint64) bool
	SetConvert(id, playerID uint64, toType int) bool
	SuicideCreature(id, playerID uint64) bool
	SetMessage(id, playerID uint64, msg string) bool

	TileFood(x, y int) int
	TileType(x, y int) int
	WorldSizePixels() (int, int, int, int)
	KothPosPixels() (int, int)
	Distance(a, b uint64) (int, bool)
	NearestEnemy(id, playerID uint64) (engine.NearestEnemyResult, bool)

	PlayerExists(id uint64) bool
	KingPlayer() (uint64, bool)
	PlayerScore(id uint64) (int, bool)

	GameTimeMS() int64
}
