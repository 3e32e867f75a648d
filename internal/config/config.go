package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the server configuration, read from the environment
type Config struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	RoomTTL         time.Duration `env:"ROOM_TTL" envDefault:"1h"`
	SweepInterval   time.Duration `env:"SWEEP_INTERVAL" envDefault:"5m"`
	LobbyEvictDelay time.Duration `env:"LOBBY_EVICT_DELAY" envDefault:"30s"`
	OriginAllowlist []string      `env:"ORIGIN_ALLOWLIST" envSeparator:"," envDefault:"localhost:8080,127.0.0.1:8080"`
	PublicURL       string        `env:"PUBLIC_URL"`
	Debug           bool          `env:"DEBUG"`
}

// Load reads an optional .env file and parses the environment into a Config
func Load(files ...string) (Config, error) {
	// A missing .env is fine; the environment alone is enough
	_ = godotenv.Load(files...)
	return Parse()
}

// Parse parses the environment into a Config and validates it
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot run with
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.RoomTTL <= 0 {
		return errors.New("ROOM_TTL must be positive")
	}
	if c.SweepInterval <= 0 {
		return errors.New("SWEEP_INTERVAL must be positive")
	}
	if c.LobbyEvictDelay < 0 {
		return errors.New("LOBBY_EVICT_DELAY must not be negative")
	}
	return nil
}

// Addr is the listen address
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
