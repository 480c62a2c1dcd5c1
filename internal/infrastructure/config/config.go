package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type JWTConfig struct {
	// Secret has no default on purpose: starting without one is a
	// configuration error, not something to paper over at runtime.
	Secret         string `env:"JWT_SECRET, required"`
	Algorithm      string `env:"JWT_ALGORITHM,            default=HS256"`
	AccessTTLMins  int    `env:"ACCESS_TOKEN_TTL_MINUTES, default=30"`
	RefreshTTLDays int    `env:"REFRESH_TOKEN_TTL_DAYS,   default=7"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=marketplace"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// AccessTTL returns the configured access-token lifetime.
func (c JWTConfig) AccessTTL() time.Duration {
	return time.Duration(c.AccessTTLMins) * time.Minute
}

// RefreshTTL returns the configured refresh-token lifetime.
func (c JWTConfig) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTTLDays) * 24 * time.Hour
}

// Load reads configuration from environment variables using go-envconfig.
// Missing required values (the signing secret) or an unsupported signature
// algorithm abort startup.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWT.Algorithm != "HS256" {
		return nil, fmt.Errorf("config: unsupported JWT_ALGORITHM %q (only HS256 is supported)", cfg.JWT.Algorithm)
	}
	return &cfg, nil
}
