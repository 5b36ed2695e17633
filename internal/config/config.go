// Package config loads ledger configuration from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mmynk/splitledger/pkg/logging"
)

// minJWTSecretLength guards against guessable HMAC secrets.
const minJWTSecretLength = 32

// Config holds the settings shared by the server, worker and CLI.
type Config struct {
	Port       int    `mapstructure:"PORT"`
	DBPath     string `mapstructure:"DB_PATH"`
	StaticPath string `mapstructure:"STATIC_PATH"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// JWTSecret enables bearer-token auth when set.
	JWTSecret string        `mapstructure:"JWT_SECRET"`
	TokenTTL  time.Duration `mapstructure:"TOKEN_TTL"`

	// CacheTTL bounds how long ledger query results are cached; 0 disables the cache.
	CacheTTL time.Duration `mapstructure:"CACHE_TTL"`

	RecurringInterval time.Duration `mapstructure:"RECURRING_INTERVAL"`
}

var defaults = map[string]any{
	"PORT":               8080,
	"DB_PATH":            "./data/ledger.db",
	"STATIC_PATH":        "",
	"LOG_LEVEL":          "info",
	"LOG_FORMAT":         "text",
	"JWT_SECRET":         "",
	"TOKEN_TTL":          "24h",
	"CACHE_TTL":          "5m",
	"RECURRING_INTERVAL": "1h",
}

// Load reads .env (if present) and the environment, applies defaults and
// validates the result.
func Load() (*Config, error) {
	// Missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AuthEnabled reports whether RPCs require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Sprintf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, "DB_PATH is required")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL: %v", err))
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be text or json, got %q", c.LogFormat))
	}
	if c.JWTSecret != "" && len(c.JWTSecret) < minJWTSecretLength {
		errs = append(errs, fmt.Sprintf("JWT_SECRET must be at least %d characters", minJWTSecretLength))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, "TOKEN_TTL must be positive")
	}
	if c.CacheTTL < 0 {
		errs = append(errs, "CACHE_TTL cannot be negative")
	}
	if c.RecurringInterval <= 0 {
		errs = append(errs, "RECURRING_INTERVAL must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

// LoggingOptions returns the logging setup for this configuration.
func (c *Config) LoggingOptions() logging.Options {
	return logging.Options{Level: c.LogLevel, Format: c.LogFormat}
}
