package script

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// registerFunctions binds the full host API surface into vm.L,
// matching the original engine's bound-function set exactly.
func (vm *VM) registerFunctions() {
	reg := func(name string, fn lua.LGFunction) {
		vm.L.SetGlobal(name, vm.L.NewFunction(fn))
	}

	reg("set_path", vm.luaSetPath)
	reg("set_state", vm.luaSetState)
	reg("get_state", vm.luaGetState)
	reg("set_target", vm.luaSetTarget)
	reg("set_convert", vm.luaSetConvert)
	reg("suicide", vm.luaSuicide)

	reg("get_pos", vm.luaGetPos)
	reg("get_type", vm.luaGetType)
	reg("get_food", vm.luaGetFood)
	reg("get_health", vm.luaGetHealth)
	reg("get_speed", vm.luaGetSpeed)
	reg("get_max_food", vm.luaGetMaxFood)

	reg("get_tile_food", vm.luaGetTileFood)
	reg("get_tile_type", vm.luaGetTileType)
	reg("get_distance", vm.luaGetDistance)
	reg("get_nearest_enemy", vm.luaGetNearestEnemy)

	reg("set_message", vm.luaSetMessage)
	reg("creature_exists", vm.luaCreatureExists)
	reg("creature_player", vm.luaCreaturePlayer)

	reg("world_size", vm.luaWorldSize)
	reg("game_time", vm.luaGameTime)
	reg("get_koth_pos", vm.luaGetKothPos)
	reg("player_exists", vm.luaPlayerExists)
	reg("king_player", vm.luaKingPlayer)
	reg("player_score", vm.luaPlayerScore)
	reg("get_cpu_usage", vm.luaGetCPUUsage)

	reg("print", vm.luaPrint)
	reg("client_print", vm.luaPrint)
}

func argInt(L *lua.LState, n int) uint64 {
	return uint64(L.CheckInt64(n))
}

func (vm *VM) luaSetPath(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	id := argInt(L, 1)
	x := L.CheckInt(2)
	y := L.CheckInt(3)
	L.Push(lua.LBool(vm.host.SetPath(id, vm.playerID, x, y)))
	return 1
}

func (vm *VM) luaSetState(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	id := argInt(L, 1)
	state := L.CheckInt(2)
	L.Push(lua.LBool(vm.host.SetState(id, vm.playerID, state)))
	return 1
}

func (vm *VM) luaGetState(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	id := argInt(L, 1)
	state, ok := vm.host.GetState(id)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(state))
	return 1
}

func (vm *VM) luaSetTarget(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	id := argInt(L, 1)
	target := argInt(L, 2)
	L.Push(lua.LBool(vm.host.SetTarget(id, vm.playerID, target)))
	return 1
}

func (vm *VM) luaSetConvert(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	id := argInt(L, 1)
	to := L.CheckInt(2)
	L.Push(lua.LBool(vm.host.SetConvert(id, vm.playerID, to)))
	return 1
}

func (vm *VM) luaSuicide(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	id := argInt(L, 1)
	L.Push(lua.LBool(vm.host.SuicideCreature(id, vm.playerID)))
	return 1
}

func (vm *VM) luaGetPos(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	id := argInt(L, 1)
	view, ok := vm.host.Creature(id)
	if !ok {
		L.Push(lua.LNil)
		L.Push(lua.LNil)
		return 2
	}
	L.Push(lua.LNumber(view.X))
	L.Push(lua.LNumber(view.Y))
	return 2
}

func (vm *VM) luaGetType(L *lua.LState) int {
	return vm.pushCreatureField(L, func(v pushableView) lua.LValue { return lua.LNumber(v.Type) })
}

func (vm *VM) luaGetFood(L *lua.LState) int {
	return vm.pushCreatureField(L, func(v pushableView) lua.LValue { return lua.LNumber(v.Food) })
}

func (vm *VM) luaGetHealth(L *lua.LState) int {
	return vm.pushCreatureField(L, func(v pushableView) lua.LValue { return lua.LNumber(v.HealthPct) })
}

func (vm *VM) luaGetSpeed(L *lua.LState) int {
	return vm.pushCreatureField(L, func(v pushableView) lua.LValue { return lua.LNumber(v.Speed) })
}

func (vm *VM) luaGetMaxFood(L *lua.LState) int {
	return vm.pushCreatureField(L, func(v pushableView) lua.LValue { return lua.LNumber(v.MaxFood) })
}

type pushableView struct {
	Type, Food, HealthPct, Speed, MaxFood int
}

func (vm *VM) pushCreatureField(L *lua.LState, get func(pushableView) lua.LValue) int {
	if !vm.chargeCall(L) {
		return 0
	}
	id := argInt(L, 1)
	view, ok := vm.host.Creature(id)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(get(pushableView{Type: view.Type, Food: view.Food, HealthPct: view.HealthPct, Speed: view.Speed, MaxFood: view.MaxFood}))
	return 1
}

func (vm *VM) luaGetTileFood(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	x, y := L.CheckInt(1), L.CheckInt(2)
	L.Push(lua.LNumber(vm.host.TileFood(x, y)))
	return 1
}

func (vm *VM) luaGetTileType(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	x, y := L.CheckInt(1), L.CheckInt(2)
	L.Push(lua.LNumber(vm.host.TileType(x, y)))
	return 1
}

func (vm *VM) luaGetDistance(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	a, b := argInt(L, 1), argInt(L, 2)
	d, ok := vm.host.Distance(a, b)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(d))
	return 1
}

func (vm *VM) luaGetNearestEnemy(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	id := argInt(L, 1)
	res, ok := vm.host.NearestEnemy(id, vm.playerID)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	t := L.NewTable()
	t.RawSetString("id", lua.LNumber(res.ID))
	t.RawSetString("x", lua.LNumber(res.X))
	t.RawSetString("y", lua.LNumber(res.Y))
	t.RawSetString("player", lua.LNumber(res.PlayerID))
	t.RawSetString("distance", lua.LNumber(res.Distance))
	L.Push(t)
	return 1
}

func (vm *VM) luaSetMessage(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	id := argInt(L, 1)
	msg := L.CheckString(2)
	L.Push(lua.LBool(vm.host.SetMessage(id, vm.playerID, msg)))
	return 1
}

func (vm *VM) luaCreatureExists(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	id := argInt(L, 1)
	_, ok := vm.host.Creature(id)
	L.Push(lua.LBool(ok))
	return 1
}

func (vm *VM) luaCreaturePlayer(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	id := argInt(L, 1)
	view, ok := vm.host.Creature(id)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(view.PlayerID))
	return 1
}

func (vm *VM) luaWorldSize(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	ox, oy, w, h := vm.host.WorldSizePixels()
	L.Push(lua.LNumber(ox))
	L.Push(lua.LNumber(oy))
	L.Push(lua.LNumber(w))
	L.Push(lua.LNumber(h))
	return 4
}

func (vm *VM) luaGameTime(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	L.Push(lua.LNumber(vm.host.GameTimeMS()))
	return 1
}

func (vm *VM) luaGetKothPos(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	x, y := vm.host.KothPosPixels()
	L.Push(lua.LNumber(x))
	L.Push(lua.LNumber(y))
	return 2
}

func (vm *VM) luaPlayerExists(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	id := argInt(L, 1)
	L.Push(lua.LBool(vm.host.PlayerExists(id)))
	return 1
}

func (vm *VM) luaKingPlayer(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	id, ok := vm.host.KingPlayer()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(id))
	return 1
}

func (vm *VM) luaPlayerScore(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	id := argInt(L, 1)
	score, ok := vm.host.PlayerScore(id)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(score))
	return 1
}

// luaGetCPUUsage is a reserved stub: scripts never see real usage
// numbers, matching the original engine's contract exactly.
func (vm *VM) luaGetCPUUsage(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	L.Push(lua.LNumber(0))
	return 1
}

func (vm *VM) luaPrint(L *lua.LState) int {
	if !vm.chargeCall(L) {
		return 0
	}
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	vm.printBuf = append(vm.printBuf, strings.Join(parts, "\t"))
	return 0
}
