package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Address     string `env:"ADDRESS"`
	DatabaseDSN string `env:"DATABASE_DSN"`
	LogLevel    string `env:"LOG_LEVEL"`

	MetricsEnabled bool   `env:"METRICS_ENABLED"`
	MetricsToken   string `env:"METRICS_TOKEN"`

	// IssueLimitPerMin caps POST /identifiers per client IP; 0 disables it.
	IssueLimitPerMin int `env:"ISSUE_LIMIT_PER_MIN"`
}

// New loads configuration from the environment, with an optional .env file.
// An empty DATABASE_DSN selects the transient in-memory sqlite database.
func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	if cfg.Address == "" {
		cfg.Address = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg
}
