package script

import (
	"testing"
	"time"

	"arena/internal/engine"
)

// fakeHost is a minimal Host stub for exercising the bound API surface
// without a real engine.Game.
type fakeHost struct {
	creatures map[uint64]engine.CreatureView
	gameTime  int64
}

func (h *fakeHost) Creature(id uint64) (engine.CreatureView, bool) {
	v, ok := h.creatures[id]
	return v, ok
}
func (h *fakeHost) CreaturesOwnedBy(playerID uint64) []uint64 { return nil }
func (h *fakeHost) SetPath(id, playerID uint64, destX, destY int) bool { return true }
func (h *fakeHost) SetState(id, playerID uint64, state int) bool      { return true }
func (h *fakeHost) GetState(id uint64) (int, bool)                    { return 0, true }
func (h *fakeHost) SetTarget(id, playerID, target uint64) bool        { return true }
func (h *fakeHost) SetConvert(id, playerID uint64, toType int) bool   { return true }
func (h *fakeHost) SuicideCreature(id, playerID uint64) bool          { return true }
func (h *fakeHost) SetMessage(id, playerID uint64, msg string) bool   { return true }
func (h *fakeHost) TileFood(x, y int) int                             { return 42 }
func (h *fakeHost) TileType(x, y int) int                             { return 1 }
func (h *fakeHost) WorldSizePixels() (int, int, int, int)             { return 256, 256, 2560, 2560 }
func (h *fakeHost) KothPosPixels() (int, int)                         { return 1280, 1280 }
func (h *fakeHost) Distance(a, b uint64) (int, bool)                  { return 100, true }
func (h *fakeHost) NearestEnemy(id, playerID uint64) (engine.NearestEnemyResult, bool) {
	return engine.NearestEnemyResult{}, false
}
func (h *fakeHost) PlayerExists(id uint64) bool          { return true }
func (h *fakeHost) KingPlayer() (uint64, bool)           { return 0, false }
func (h *fakeHost) PlayerScore(id uint64) (int, bool)    { return 7, true }
func (h *fakeHost) GameTimeMS() int64                    { return h.gameTime }

func newTestVM(t *testing.T, code string) (*VM, *fakeHost) {
	t.Helper()
	host := &fakeHost{creatures: map[uint64]engine.CreatureView{
		1: {ID: 1, PlayerID: 1, Type: 0, X: 10, Y: 20, Food: 500, MaxFood: 10000, HealthPct: 80, Speed: 200},
	}, gameTime: 1000}
	vm, err := New(host, 1, code, 10000)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return vm, host
}

func TestThinkCallsGetPos(t *testing.T) {
	vm, _ := newTestVM(t, `
function think(events)
    local x, y = get_pos(1)
    print(x, y)
end
`)
	defer vm.Close()
	out, err := vm.Think(1, nil)
	if err != nil {
		t.Fatalf("Think: %v", err)
	}
	if len(out) != 1 || out[0] != "10\t20" {
		t.Fatalf("output = %v, want [\"10\\t20\"]", out)
	}
}

func TestGetCPUUsageAlwaysZero(t *testing.T) {
	vm, _ := newTestVM(t, `
function think(events)
    print(get_cpu_usage())
end
`)
	defer vm.Close()
	out, err := vm.Think(1, nil)
	if err != nil {
		t.Fatalf("Think: %v", err)
	}
	if len(out) != 1 || out[0] != "0" {
		t.Fatalf("output = %v, want [\"0\"]", out)
	}
}

func TestInstructionBudgetExceeded(t *testing.T) {
	host := &fakeHost{creatures: map[uint64]engine.CreatureView{1: {ID: 1}}}
	vm, err := New(host, 1, `
function think(events)
    for i = 1, 100 do
        get_cpu_usage()
    end
end
`, 5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer vm.Close()
	if _, err := vm.Think(1, nil); err == nil {
		t.Fatalf("Think: expected an instruction-budget error")
	}
}

func TestPureComputeLoopIsBoundedByWallClockTimeout(t *testing.T) {
	host := &fakeHost{creatures: map[uint64]engine.CreatureView{1: {ID: 1}}}
	vm, err := New(host, 1, `
function think(events)
    while true do
    end
end
`, 10000)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer vm.Close()
	vm.thinkTimeout = 5 * time.Millisecond
	if _, err := vm.Think(1, nil); err == nil {
		t.Fatalf("Think: expected a timeout error for a host-call-free infinite loop")
	}
}

func TestWorldSizeReturnsFourValues(t *testing.T) {
	vm, _ := newTestVM(t, `
function think(events)
    local ox, oy, w, h = world_size()
    print(ox, oy, w, h)
end
`)
	defer vm.Close()
	out, err := vm.Think(1, nil)
	if err != nil {
		t.Fatalf("Think: %v", err)
	}
	if len(out) != 1 || out[0] != "256\t256\t2560\t2560" {
		t.Fatalf("output = %v", out)
	}
}
