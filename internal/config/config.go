// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the application needs to run. Values come
// from the environment (optionally seeded from a .env file), falling
// back to per-user defaults under the home directory.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string `env:"QUICKSPLIT_DB"`

	// SessionFile stores the active login token between invocations.
	SessionFile string `env:"QUICKSPLIT_SESSION"`

	// SessionSecret signs session tokens. A fixed default keeps a
	// purely local install working out of the box; set it for any
	// shared database.
	SessionSecret string `env:"QUICKSPLIT_SECRET"`

	// SessionTTL is how long a login remains valid.
	SessionTTL time.Duration `env:"QUICKSPLIT_SESSION_TTL"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL"`
}

// Load reads a .env file when present, then the environment, then
// fills defaults for anything still unset.
func Load() (*Config, error) {
	// Missing .env is fine; only a malformed one is an error.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env config: %w", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	stateDir := filepath.Join(home, ".quicksplit")

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(stateDir, "quicksplit.db")
	}
	if cfg.SessionFile == "" {
		cfg.SessionFile = filepath.Join(stateDir, "session")
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "quicksplit-local-dev-secret"
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}
