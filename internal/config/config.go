package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvPath overrides the config path given on the command line.
const EnvPath = "RPGBATTLE_CONFIG"

// BattleSim holds all configuration for the battle simulator.
type BattleSim struct {
	LogLevel string `yaml:"log_level"`

	// ContentPath points at a yaml content table; empty uses the embedded one.
	ContentPath string `yaml:"content_path"`

	// Database
	Database DatabaseConfig `yaml:"database"`

	// Simulation
	Simulation Simulation `yaml:"simulation"`
}

// Simulation controls automatic battles.
type Simulation struct {
	Battles     int    `yaml:"battles"`
	Seed        uint64 `yaml:"seed"`
	RoundCap    int    `yaml:"round_cap"`
	Concurrency int    `yaml:"concurrency"`
	PlayerID    int64  `yaml:"player_id"`
	Enemy       string `yaml:"enemy"`    // empty picks by player level
	Strategy    string `yaml:"strategy"` // attack | tactical
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	// URL, when set, is used verbatim instead of the fields above.
	URL string `yaml:"url"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultBattleSim returns BattleSim config with sensible defaults.
func DefaultBattleSim() BattleSim {
	return BattleSim{
		LogLevel: "info",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "rpgbattle",
			Password: "rpgbattle",
			DBName:   "rpgbattle",
			SSLMode:  "disable",
		},
		Simulation: Simulation{
			Battles:     100,
			Seed:        1,
			RoundCap:    200,
			Concurrency: 8,
			PlayerID:    1,
			Strategy:    "tactical",
		},
	}
}

// Validate checks value ranges.
func (c BattleSim) Validate() error {
	var errs []error
	s := c.Simulation
	if s.Battles < 0 {
		errs = append(errs, fmt.Errorf("simulation.battles must not be negative, got %d", s.Battles))
	}
	if s.RoundCap < 1 {
		errs = append(errs, fmt.Errorf("simulation.round_cap must be at least 1, got %d", s.RoundCap))
	}
	if s.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("simulation.concurrency must be at least 1, got %d", s.Concurrency))
	}
	if s.Strategy != "attack" && s.Strategy != "tactical" {
		errs = append(errs, fmt.Errorf("simulation.strategy must be attack or tactical, got %q", s.Strategy))
	}
	return errors.Join(errs...)
}

// LoadBattleSim loads simulator config from a YAML file.
// The RPGBATTLE_CONFIG environment variable, when set, replaces path.
// If the file doesn't exist, returns defaults.
func LoadBattleSim(path string) (BattleSim, error) {
	cfg := DefaultBattleSim()

	if env := os.Getenv(EnvPath); env != "" {
		path = env
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}
