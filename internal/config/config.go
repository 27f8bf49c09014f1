// Package config loads the toolrec YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/toolrec/toolrec/internal/ema"
)

// Config holds tuning parameters and filesystem paths.
type Config struct {
	K  int `yaml:"k"`  // recent blocks tracked
	T  int `yaml:"t"`  // frequency table cap
	NR int `yaml:"nr"` // picks from recent
	NF int `yaml:"nf"` // picks from frequency table
	NS int `yaml:"ns"` // single tools exposed

	StateDir string `yaml:"state_dir"`
	DBPath   string `yaml:"db_path"`
	Listen   string `yaml:"listen"`
}

// Default returns the stock configuration with paths under ~/.toolrec.
func Default() Config {
	home, _ := os.UserHomeDir()
	base := filepath.Join(home, ".toolrec")
	p := ema.DefaultParams()
	return Config{
		K: p.K, T: p.T, NR: p.NR, NF: p.NF, NS: p.NS,
		StateDir: filepath.Join(base, "state"),
		DBPath:   filepath.Join(base, "toolrec.db"),
		Listen:   "localhost:8081",
	}
}

// Load reads a YAML config file over the defaults. A missing file (or
// an empty path) returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Params returns the engine tuning held in the config.
func (c Config) Params() ema.Params {
	return ema.Params{K: c.K, T: c.T, NR: c.NR, NF: c.NF, NS: c.NS}
}
