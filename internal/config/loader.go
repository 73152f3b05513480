package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

// LocalPath is checked when no explicit path is given.
const LocalPath = "configs/sim.yaml"

// Load loads the tunables.
// Search order: customPath -> ./configs/sim.yaml -> embedded default.
// Fields missing from a file keep their default values.
func Load(customPath string) (Config, error) {
	cfg := Default()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	if data, err := os.ReadFile(LocalPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.Validate()
		}
		cfg = Default()
	}

	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// Validate rejects tunables the simulation cannot run with.
func (c Config) Validate() error {
	switch {
	case c.GridSize <= 0:
		return fmt.Errorf("config: grid_size must be positive, got %v", c.GridSize)
	case c.Map.Width < 3 || c.Map.Height < 3:
		return fmt.Errorf("config: map %dx%d is too small", c.Map.Width, c.Map.Height)
	case c.Map.BorderRows*2 >= c.Map.Height || c.Map.BorderCols*2 >= c.Map.Width:
		return fmt.Errorf("config: border bands leave no interior")
	case c.ArmorFloor > 0:
		return fmt.Errorf("config: armor_floor must not be positive, got %v", c.ArmorFloor)
	case c.Economy.StartingGold < 0 || c.Economy.StartingLives <= 0:
		return fmt.Errorf("config: invalid starting economy")
	}
	return nil
}

// ParseLevel maps the configured log level onto the logger's levels.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
