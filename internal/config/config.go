// Package config loads the jarvis.toml configuration file with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the full service configuration.
type Config struct {
	Server   Server   `toml:"server"`
	TickTick TickTick `toml:"ticktick"`
	Sync     Sync     `toml:"sync"`
}

// Server holds the HTTP listener settings.
type Server struct {
	Port   string `toml:"port"`
	DBPath string `toml:"db-path"`
}

// TickTick holds remote API settings.
type TickTick struct {
	BaseURL string `toml:"base-url"`
	Token   string `toml:"token"`
}

// Sync holds background sync settings.
type Sync struct {
	// Interval between periodic background syncs; 0 disables the loop.
	Interval duration `toml:"interval"`
	// InitialBackoff and MaxBackoff bound the retry policy for failed syncs.
	InitialBackoff duration `toml:"initial-backoff"`
	MaxBackoff     duration `toml:"max-backoff"`
}

// duration lets TOML carry values like "15m".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Load reads the config file at path if it exists, then applies environment
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	if err == nil {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.Server.DBPath = v
	}
	if v := os.Getenv("TICKTICK_BASE_URL"); v != "" {
		cfg.TickTick.BaseURL = v
	}
	if v := os.Getenv("TICKTICK_TOKEN"); v != "" {
		cfg.TickTick.Token = v
	}
	if v := os.Getenv("SYNC_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Sync.Interval.Duration = parsed
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.DBPath == "" {
		cfg.Server.DBPath = "./data/jarvis.db"
	}
	if cfg.Sync.InitialBackoff.Duration == 0 {
		cfg.Sync.InitialBackoff.Duration = 30 * time.Second
	}
	if cfg.Sync.MaxBackoff.Duration == 0 {
		cfg.Sync.MaxBackoff.Duration = 10 * time.Minute
	}
}

// SyncInterval returns the periodic sync interval.
func (c *Config) SyncInterval() time.Duration { return c.Sync.Interval.Duration }
