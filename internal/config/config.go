// Package config loads daemon and warmup settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every setting the respcache binaries read from env vars.
type Config struct {
	// SocketPath is the Unix socket the daemon listens on. Empty resolves
	// to ~/.cache/respcache/cache.sock.
	SocketPath string `env:"RESPCACHE_SOCK"`
	// DBPath is the bolt database file. Empty resolves to
	// ~/.cache/respcache/cache.db.
	DBPath string `env:"RESPCACHE_DB"`
	// DefaultTTL applies to daemon puts that carry no TTL.
	DefaultTTL time.Duration `env:"RESPCACHE_DEFAULT_TTL" envDefault:"15m"`
	// WarmBaseURL is the invoicing API base the warmup command targets.
	WarmBaseURL string `env:"RESPCACHE_WARM_URL"`
	// LogLevel is the apex/log level name.
	LogLevel string `env:"RESPCACHE_LOG" envDefault:"info"`
}

// Load parses the environment and fills in path defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SocketPath == "" {
		cfg.SocketPath = defaultPath("cache.sock")
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultPath("cache.db")
	}
	return cfg, nil
}

func defaultPath(name string) string {
	home, _ := os.UserHomeDir()
	if home == "" {
		home = "."
	}
	return filepath.Join(home, ".cache", "respcache", name)
}
