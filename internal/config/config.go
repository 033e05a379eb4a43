// Package config resolves process configuration from flags and environment.
package config

import "os"

// Environment variable names.
const (
	EnvPagerDutyToken   = "SLIPWAY_PAGERDUTY_TOKEN"
	EnvPagerDutyBaseURL = "SLIPWAY_PAGERDUTY_URL"
	EnvRedisAddr        = "SLIPWAY_REDIS_ADDR"
	EnvRedisPassword    = "SLIPWAY_REDIS_PASSWORD"
)

// Config carries the resolved runtime settings.
type Config struct {
	// SpreadsheetPath is the xlsx workbook backing the row store.
	SpreadsheetPath string

	// DeckPath is an optional YAML deck; empty selects the built-in deck.
	DeckPath string

	// PagerDutyToken selects the live directory client when non-empty;
	// otherwise the offline fixture is used.
	PagerDutyToken string

	// PagerDutyBaseURL overrides the API endpoint (defaults to the public one).
	PagerDutyBaseURL string

	// RedisAddr selects the Redis session store when non-empty; otherwise
	// sessions live in process memory.
	RedisAddr     string
	RedisPassword string
}

// FromEnv fills the environment-sourced fields of a Config.
func FromEnv(cfg Config) Config {
	if cfg.PagerDutyToken == "" {
		cfg.PagerDutyToken = os.Getenv(EnvPagerDutyToken)
	}
	if cfg.PagerDutyBaseURL == "" {
		cfg.PagerDutyBaseURL = os.Getenv(EnvPagerDutyBaseURL)
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = os.Getenv(EnvRedisAddr)
	}
	if cfg.RedisPassword == "" {
		cfg.RedisPassword = os.Getenv(EnvRedisPassword)
	}
	return cfg
}
