package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/nightfall/internal/logging"
)

// Config holds all configuration for the application
type Config struct {
	Game    GameConfig
	Redis   RedisConfig    `envPrefix:"REDIS_"`
	Discord DiscordConfig  `envPrefix:"DISCORD_"`
	Log     logging.Config `envPrefix:"LOG_"`
}

// GameConfig holds the data files and output location
type GameConfig struct {
	// CatalogPath is a YAML or JSON catalog; empty uses the built-in one
	CatalogPath string `env:"NIGHTFALL_CATALOG"`
	// PolicyPath is a TOML ratio policy; empty uses the default policy
	PolicyPath  string `env:"NIGHTFALL_POLICY"`
	TemplateDir string `env:"NIGHTFALL_TEMPLATE_DIR"`
	OutputDir   string `env:"NIGHTFALL_OUTPUT_DIR" envDefault:"out"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// URL enables the Redis run archive, e.g. redis://localhost:6379/0
	URL    string        `env:"URL"`
	RunTTL time.Duration `env:"RUN_TTL" envDefault:"720h"`
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token             string `env:"TOKEN"`
	NarratorChannelID string `env:"NARRATOR_CHANNEL_ID"`
}

// Enabled reports whether Discord delivery can be used
func (d DiscordConfig) Enabled() bool {
	return d.Token != ""
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Log.Format != "json" && cfg.Log.Format != "console" {
		return nil, fmt.Errorf("LOG_FORMAT must be json or console, got %q", cfg.Log.Format)
	}
	if cfg.Redis.RunTTL <= 0 {
		return nil, fmt.Errorf("REDIS_RUN_TTL must be positive, got %s", cfg.Redis.RunTTL)
	}

	return cfg, nil
}
