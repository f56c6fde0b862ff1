// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Report  ReportConfig  `toml:"report"`
	Store   StoreConfig   `toml:"store"`
	Routine RoutineConfig `toml:"routine"`
}

// ReportConfig maps report-related settings.
type ReportConfig struct {
	Company          *string `toml:"company"`
	Timezone         *string `toml:"timezone"`
	Range            *string `toml:"range"`
	LeaderboardLimit *int    `toml:"leaderboard-limit"`
	TopLimit         *int    `toml:"top-limit"`
	HistoryDays      *int    `toml:"history-days"`
}

// StoreConfig maps database settings.
type StoreConfig struct {
	Path      *string `toml:"path"`
	CacheSize *int    `toml:"cache-size"`
}

// RoutineConfig maps daily routine settings.
type RoutineConfig struct {
	Size   *int     `toml:"size"`
	Factor *float64 `toml:"factor"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
