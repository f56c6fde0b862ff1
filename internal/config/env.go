package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds overrides read from the environment. Empty values are unset.
type EnvConfig struct {
	DBPath    string `env:"DESKPILOT_DB"`
	Timezone  string `env:"DESKPILOT_TIMEZONE"`
	CompanyID string `env:"DESKPILOT_COMPANY"`
	ConfigDir string `env:"DESKPILOT_CONFIG_DIR"`
}

// LoadEnv parses EnvConfig from the process environment.
func LoadEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ConfigPath returns the config file location, honoring DESKPILOT_CONFIG_DIR.
func (e EnvConfig) ConfigPath() string {
	if e.ConfigDir != "" {
		return filepath.Join(e.ConfigDir, "config.toml")
	}
	return DefaultConfigPath()
}

// Apply fills fc from non-empty environment values, which take precedence
// over the file.
func (e EnvConfig) Apply(fc *FileConfig) {
	if e.DBPath != "" {
		fc.Store.Path = &e.DBPath
	}
	if e.Timezone != "" {
		fc.Report.Timezone = &e.Timezone
	}
	if e.CompanyID != "" {
		fc.Report.Company = &e.CompanyID
	}
}
