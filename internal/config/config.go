// Package config loads the process-wide TOML configuration, applying
// defaults before decode so a partial or missing file still produces a
// runnable configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full set of tunables a live or worker process reads at
// startup.
type Config struct {
	ListenAddr         string `toml:"listen_addr"`
	TickWidthMS        int    `toml:"tick_width_ms"`
	MaxTicks           int64  `toml:"max_ticks"`
	ScoreLimit         int    `toml:"score_limit"`
	WorkerPoolSize     int    `toml:"worker_pool_size"`
	QueuePollInterval  int    `toml:"queue_poll_interval_ms"`
	LuaInstructionBudget int  `toml:"lua_instruction_budget"`
	MapPath            string `toml:"map_path"`
	QueueDBPath        string `toml:"queue_db_path"`
	Development        bool   `toml:"development"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		ListenAddr:           ":8080",
		TickWidthMS:          100,
		MaxTicks:             0,
		ScoreLimit:           0,
		WorkerPoolSize:       4,
		QueuePollInterval:    2000,
		LuaInstructionBudget: 100000,
		MapPath:              "maps/default.json",
		QueueDBPath:          "arena-queue.db",
		Development:          false,
	}
}

// Load reads path, overlaying it onto Default(); a missing file is not
// an error, matching the original config loader's forgiving behavior.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
