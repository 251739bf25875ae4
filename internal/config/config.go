package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config represents runtime configuration for the service. Values come from
// the environment (prefix SAFETYBOT), optionally seeded from a .env file.
type Config struct {
	HTTPBind string `envconfig:"http_bind" default:"0.0.0.0:8090"`

	DatabaseDriver string `envconfig:"database_driver" default:"sqlite3"`
	DatabaseDSN    string `envconfig:"database_dsn" default:"community_safety.db"`

	RedisAddr     string `envconfig:"redis_addr" default:""`
	RedisUsername string `envconfig:"redis_username" default:""`
	RedisPassword string `envconfig:"redis_password" default:""`
	RedisDB       int    `envconfig:"redis_db" default:"0"`

	GeminiAPIKey string `envconfig:"gemini_api_key" default:""`
	GeminiModel  string `envconfig:"gemini_model" default:"gemini-1.5-flash-latest"`

	TokenTTLHours      int    `envconfig:"token_ttl_hours" default:"24"`
	AdminSeedPassword  string `envconfig:"admin_seed_password" default:"admin123"`
	TemplatesGlob      string `envconfig:"templates_glob" default:"web/templates/*.html"`
	MetricsEnabled     bool   `envconfig:"metrics_enabled" default:"true"`
	AICallTimeoutSecs  int    `envconfig:"ai_call_timeout_seconds" default:"60"`
	TokenPurgeInterval int    `envconfig:"token_purge_interval_minutes" default:"60"`
}

// Load reads the environment into a Config. A missing .env file is not an
// error; explicit environment variables always win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment variables")
	}
	cfg := &Config{}
	if err := envconfig.Process("safetybot", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if cfg.DatabaseDSN == "" {
		return nil, fmt.Errorf("database dsn must be configured")
	}
	return cfg, nil
}

// TokenTTL returns the configured session token lifetime.
func (c *Config) TokenTTL() time.Duration {
	if c.TokenTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// AICallTimeout bounds a single completion call.
func (c *Config) AICallTimeout() time.Duration {
	if c.AICallTimeoutSecs <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.AICallTimeoutSecs) * time.Second
}

// TokenPurgeEvery returns how often the expired-token cleanup job runs.
func (c *Config) TokenPurgeEvery() time.Duration {
	if c.TokenPurgeInterval <= 0 {
		return time.Hour
	}
	return time.Duration(c.TokenPurgeInterval) * time.Minute
}
