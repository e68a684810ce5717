package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Versifine/strider/internal/locomotion"
)

type Config struct {
	Logging  LoggingConfig     `yaml:"logging"`
	Sandbox  SandboxConfig     `yaml:"sandbox"`
	Movement locomotion.Config `yaml:"movement"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// SandboxConfig shapes the interactive sandbox the binary runs: a flat
// test arena with one vaultable obstacle, ticked at a fixed rate.
type SandboxConfig struct {
	TickRate      int     `yaml:"tick_rate"`
	ArenaSize     int     `yaml:"arena_size"`
	SpawnHeight   float32 `yaml:"spawn_height"`
	CapsuleRadius float32 `yaml:"capsule_radius"`
}

// Default returns the configuration the sandbox runs with when no file
// overrides it.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Sandbox: SandboxConfig{
			TickRate:      60,
			ArenaSize:     32,
			SpawnHeight:   2,
			CapsuleRadius: 0.3,
		},
		Movement: locomotion.DefaultConfig(),
	}
}

// Load reads a YAML config file over the defaults, so a partial file only
// overrides the keys it names.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
