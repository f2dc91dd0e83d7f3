// Command arena-worker polls the durable job queue and runs headless
// matches up to the configured worker-pool concurrency.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"arena/internal/config"
	"arena/internal/creature"
	"arena/internal/engine"
	"arena/internal/match"
	"arena/internal/obslog"
	"arena/internal/queue"
	"arena/internal/script"
	"arena/internal/tilemap"
	"arena/internal/workerpool"
)

// botSpec is the per-match description carried in a job's Payload:
// which map to load and which players (with Lua source) take part.
// Real bot code resolution (fetching a bot version's source from
// wherever bots are stored) is an external collaborator's concern;
// this worker only expects the source text to already be in the
// payload by the time it claims the job.
type botSpec struct {
	MapPath string   `json:"map_path"`
	Players []player `json:"players"`
}

type player struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	LuaSource string `json:"lua_source"`
	APIStyle  string `json:"api_style"` // "state" (default) or "oo"
}

func main() {
	cfgPath := flag.String("config", "arena.toml", "path to TOML config")
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

	q, err := queue.OpenSQLite(cfg.QueueDBPath)
	if err != nil {
		log.Fatalw("open queue", "error", err)
	}
	defer q.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := workerpool.New(ctx, cfg.WorkerPoolSize)
	log.Infow("worker started", "pool_size", cfg.WorkerPoolSize)

	ticker := time.NewTicker(time.Duration(cfg.QueuePollInterval) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			pool.Wait()
			return
		case <-ticker.C:
			if !pool.HasCapacity() {
				continue
			}
			job, found, err := q.Claim("worker-1")
			if err != nil {
				log.Warnw("claim failed", "error", err)
				continue
			}
			if !found {
				continue
			}
			pool.Spawn(job.ID, func(ctx context.Context) error {
				return runMatch(ctx, cfg, job.MatchID, job.Payload, log)
			}, func(matchID string, err error) {
				if err != nil {
					log.Warnw("match failed", "match", matchID, "error", err)
					q.Fail(job.ID, err.Error())
					return
				}
				q.Complete(job.ID)
			})
		}
	}
}

func runMatch(ctx context.Context, cfg config.Config, matchID, payload string, log *zap.SugaredLogger) error {
	var spec botSpec
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &spec); err != nil {
			return fmt.Errorf("decode job payload: %w", err)
		}
	}
	mapPath := cfg.MapPath
	if spec.MapPath != "" {
		mapPath = spec.MapPath
	}

	data, err := os.ReadFile(mapPath)
	if err != nil {
		return err
	}
	world, err := tilemap.LoadMapJSON(data)
	if err != nil {
		return err
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

	players := spec.Players
	if len(players) == 0 {
		players = []player{{ID: 1, Name: "player-1"}, {ID: 2, Name: "player-2"}}
	}
	for _, p := range players {
		var thinker engine.Thinker
		if p.LuaSource != "" {
			style := script.StyleState
			if p.APIStyle == "oo" {
				style = script.StyleOO
			}
			vm, err := script.NewWithStyle(game, p.ID, style, p.LuaSource, cfg.LuaInstructionBudget)
			if err != nil {
				return fmt.Errorf("load bot %d: %w", p.ID, err)
			}
			vms = append(vms, vm)
			thinker = vm
		}
		game.AddPlayer(p.ID, p.Name, thinker)
		pos, ok := world.FindPlainTile(func(n int) int { return rand.Intn(n) })
		if !ok {
			return fmt.Errorf("map %s has no walkable tile to spawn player %d", mapPath, p.ID)
		}
		game.SpawnCreature(p.ID, creature.Small, tilemap.TileCenter(pos.X), tilemap.TileCenter(pos.Y))
	}

	result, err := match.RunHeadless(ctx, matchID, game)
	if err != nil {
		return err
	}
	_ = json.NewEncoder(os.Stdout).Encode(result.FinalScores)
	return nil
}
