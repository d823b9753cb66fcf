// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string        `env:"CALC_HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"CALC_SHUTDOWN_TIMEOUT" envDefault:"5s"`

	SessionTTL             time.Duration `env:"CALC_SESSION_TTL" envDefault:"20m"`
	SessionCleanupInterval time.Duration `env:"CALC_SESSION_CLEANUP_INTERVAL" envDefault:"1m"`

	// OTLPLogs tees the application logger into the OTLP log exporter.
	OTLPLogs bool `env:"CALC_OTLP_LOGS" envDefault:"false"`

	// LogFile receives the terminal interface's logs. Empty discards them.
	LogFile  string `env:"CALC_LOG_FILE"`
	LogLevel string `env:"CALC_LOG_LEVEL" envDefault:"info"`
}

// Load reads .env when present, then the process environment. Variables
// already set in the process are not overridden by .env.
func Load() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("CALC_SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.SessionCleanupInterval <= 0 {
		return Config{}, fmt.Errorf("CALC_SESSION_CLEANUP_INTERVAL must be positive, got %s", cfg.SessionCleanupInterval)
	}

	return cfg, nil
}

func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}
