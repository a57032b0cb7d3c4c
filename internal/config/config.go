// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings the terminal app starts with.
type Config struct {
	// StatePath is the SQLite file the selected mode is saved in. Empty means
	// the user config directory.
	StatePath string `env:"CALC_STATE_PATH"`
	// LogFile receives the app log. Empty discards it; stderr belongs to the
	// screen while the app runs.
	LogFile         string        `env:"CALC_LOG_FILE"`
	ErrorClearDelay time.Duration `env:"CALC_ERROR_CLEAR_DELAY" envDefault:"800ms"`
	ClockInterval   time.Duration `env:"CALC_CLOCK_INTERVAL" envDefault:"1s"`
	Splash          bool          `env:"CALC_SPLASH" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment and fills derived defaults.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.ErrorClearDelay <= 0 {
		return Config{}, fmt.Errorf("CALC_ERROR_CLEAR_DELAY must be positive, got %s", cfg.ErrorClearDelay)
	}
	if cfg.ClockInterval <= 0 {
		return Config{}, fmt.Errorf("CALC_CLOCK_INTERVAL must be positive, got %s", cfg.ClockInterval)
	}
	if cfg.StatePath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve config dir: %w", err)
		}
		cfg.StatePath = filepath.Join(dir, "multicalc", "state.db")
	}
	return cfg, nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
