package script

import (
	"context"
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"

	"arena/internal/creature"
	"arena/internal/engine"
)

// Constants registered into every VM's global table, mirroring the
// original engine's numeric constant set.
var luaConstants = map[string]int{
	"CREATURE_SMALL": int(creature.Small),
	"CREATURE_BIG":   int(creature.Big),
	"CREATURE_FLYER": int(creature.Flyer),

	"STATE_IDLE":    int(creature.Idle),
	"STATE_WALK":    int(creature.Walk),
	"STATE_HEAL":    int(creature.Heal),
	"STATE_EAT":     int(creature.Eat),
	"STATE_ATTACK":  int(creature.Attack),
	"STATE_CONVERT": int(creature.Convert),
	"STATE_SPAWN":   int(creature.Spawn),
	"STATE_FEED":    int(creature.Feed),

	"TILE_SOLID": 0,
	"TILE_PLAIN": 1,
}

// budgetExceededMessage is raised as a Lua runtime error when a think
// call's host-call budget is exhausted, and is also the error text
// Think reports when the call's wall-clock timeout expires.
const budgetExceededMessage = "instruction budget exceeded"

// DefaultThinkTimeout bounds the wall-clock duration of a single
// Think call. gopher-lua's chargeCall counter only meters host-API
// calls, so a script that loops without ever touching the bound API
// (e.g. "while true do end") would otherwise never be charged; the
// context deadline set on the Lua state is checked by the VM between
// instructions regardless of what the script is doing, closing that
// gap.
const DefaultThinkTimeout = 20 * time.Millisecond

// VM is one player's persistent Lua state. It is not safe for
// concurrent use — the match runner calls Think for at most one
// player at a time, matching the original engine's non-Send VM note.
type VM struct {
	L            *lua.LState
	host         Host
	playerID     uint64
	maxCalls     int
	callsUsed    int
	printBuf     []string
	thinkTimeout time.Duration
}

// New compiles code into a fresh VM bound to host on behalf of
// playerID, with maxCalls host-API invocations allowed per Think call.
func New(host Host, playerID uint64, code string, maxCalls int) (*VM, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm := &VM{L: L, host: host, playerID: playerID, maxCalls: maxCalls, thinkTimeout: DefaultThinkTimeout}

	for name, val := range luaConstants {
		L.SetGlobal(name, lua.LNumber(val))
	}
	vm.registerFunctions()

	if err := L.DoString(code); err != nil {
		L.Close()
		return nil, fmt.Errorf("script load: %w", err)
	}
	return vm, nil
}

// Close releases the underlying Lua state.
func (vm *VM) Close() {
	vm.L.Close()
}

// Think calls the script's global think(events) function once,
// enforcing the instruction budget and recovering from any runtime
// panic raised by a host callback.
func (vm *VM) Think(playerID uint64, events []engine.Event) (output []string, err error) {
	vm.callsUsed = 0
	vm.printBuf = nil

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("script panic: %v", r)
		}
	}()

	fn := vm.L.GetGlobal("think")
	if fn.Type() != lua.LTFunction {
		return nil, nil
	}

	eventsTable := vm.L.NewTable()
	for i, ev := range events {
		t := vm.L.NewTable()
		t.RawSetString("type", lua.LNumber(ev.Type))
		t.RawSetString("creature_id", lua.LNumber(ev.CreatureID))
		t.RawSetString("player_id", lua.LNumber(ev.PlayerID))
		t.RawSetString("killer_id", lua.LNumber(ev.KillerID))
		t.RawSetString("message", lua.LString(ev.Message))
		eventsTable.RawSetInt(i+1, t)
	}

	ctx, cancel := context.WithTimeout(context.Background(), vm.thinkTimeout)
	defer cancel()
	vm.L.SetContext(ctx)

	callErr := vm.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, eventsTable)
	if ctx.Err() == context.DeadlineExceeded {
		return vm.printBuf, fmt.Errorf("script runtime: %s", budgetExceededMessage)
	}
	if callErr != nil {
		return vm.printBuf, fmt.Errorf("script runtime: %w", callErr)
	}
	return vm.printBuf, nil
}

// chargeCall increments the per-tick host-call counter and raises a
// Lua error once the budget is exhausted, matching the original
// engine's per-nth-instruction hook in spirit (gopher-lua has no
// native opcode-count hook, so host calls are the metered unit here).
func (vm *VM) chargeCall(L *lua.LState) bool {
	vm.callsUsed++
	if vm.maxCalls > 0 && vm.callsUsed > vm.maxCalls {
		L.RaiseError(budgetExceededMessage)
		return false
	}
	return true
}
