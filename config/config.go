// Package config provides environment-based configuration for BioLock.
//
// Configuration is loaded from environment variables using Viper, with
// sensible defaults for development.
//
// # Environment Variables
//
//   - STORE_TYPE: Cache snapshot store (file, sqlite, postgres, mysql). Default: file
//   - DSN: Database connection string for database stores. Default: biolock.db
//   - CACHE_PATH: Snapshot file path for the file store. Default: biolock_cache.jwt
//   - CACHE_SECRET: HMAC key for the signed file snapshot. Default: empty (dev only)
//   - DEFAULT_TTL_MS: Default cache TTL in milliseconds. Default: 30000
//   - PROVIDER: Biometric provider (unsupported, demo). Default: unsupported
//   - LOG_LEVEL: Logging level (debug, info, warn, error). Default: info
//   - PORT: Observability HTTP port. Default: 8080
package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	StoreType        string `mapstructure:"STORE_TYPE"` // file, sqlite, postgres, mysql
	DSN              string `mapstructure:"DSN"`
	CachePath        string `mapstructure:"CACHE_PATH"`
	CacheSecret      string `mapstructure:"CACHE_SECRET"`
	DefaultTTLMillis int    `mapstructure:"DEFAULT_TTL_MS"`
	Provider         string `mapstructure:"PROVIDER"` // unsupported, demo
	LogLevel         string `mapstructure:"LOG_LEVEL"`
	Port             int    `mapstructure:"PORT"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("STORE_TYPE", "file")
	viper.SetDefault("DSN", "biolock.db")
	viper.SetDefault("CACHE_PATH", "biolock_cache.jwt")
	viper.SetDefault("CACHE_SECRET", "")
	viper.SetDefault("DEFAULT_TTL_MS", 30000)
	viper.SetDefault("PROVIDER", "unsupported")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PORT", 8080)

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
