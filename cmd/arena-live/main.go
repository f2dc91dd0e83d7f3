// Command arena-live runs a single live match, ticking at wall-clock
// speed and logging each tick's delta — a minimal spectator-less
// stand-in for the full live broadcast surface, which is out of this
// core's scope.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arena/internal/config"
	"arena/internal/creature"
	"arena/internal/engine"
	"arena/internal/match"
	"arena/internal/obslog"
	"arena/internal/script"
	"arena/internal/tilemap"
)

func main() {
	cfgPath := flag.String("config", "arena.toml", "path to TOML config")
	bot1Path := flag.String("bot1", "", "path to player 1's Lua bot source (omit for a scriptless/idle player)")
	bot2Path := flag.String("bot2", "", "path to player 2's Lua bot source (omit for a scriptless/idle player)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	log, err := obslog.New(cfg.Development)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	data, err := os.ReadFile(cfg.MapPath)
	if err != nil {
		log.Fatalw("read map", "error", err)
	}
	world, err := tilemap.LoadMapJSON(data)
	if err != nil {
		log.Fatalw("load map", "error", err)
	}

	game := engine.NewGame(world, time.Now().UnixNano(), log)
	game.MaxTicks = cfg.MaxTicks
	game.ScoreLimit = cfg.ScoreLimit

	var vms []*script.VM
	defer func() {
		for _, vm := range vms {
			vm.Close()
		}
	}()

	botPaths := map[uint64]string{1: *bot1Path, 2: *bot2Path}
	for _, pid := range []uint64{1, 2} {
		var thinker engine.Thinker
		if path := botPaths[pid]; path != "" {
			src, err := os.ReadFile(path)
			if err != nil {
				log.Fatalw("read bot source", "player", pid, "path", path, "error", err)
			}
			vm, err := script.New(game, pid, string(src), cfg.LuaInstructionBudget)
			if err != nil {
				log.Fatalw("load bot", "player", pid, "error", err)
			}
			vms = append(vms, vm)
			thinker = vm
		}
		game.AddPlayer(pid, fmt.Sprintf("player-%d", pid), thinker)
		pos, ok := world.FindPlainTile(func(n int) int { return int(time.Now().UnixNano()) % n })
		if !ok {
			log.Fatalw("map has no walkable tiles")
		}
		game.SpawnCreature(pid, creature.Small, tilemap.TileCenter(pos.X), tilemap.TileCenter(pos.Y))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := match.RunLive(ctx, "live-1", game, func(delta engine.Delta) {
		log.Infow("tick", "game_time", delta.GameTime, "changed", len(delta.Changed), "removed", len(delta.Removed))
	})
	if err != nil {
		log.Errorw("match ended with error", "error", err)
		return
	}
	log.Infow("match finished", "ticks", result.Ticks, "winner", result.WinnerID)
}
