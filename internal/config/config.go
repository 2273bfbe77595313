// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/flight-search/flight-finder/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Providers ProviderConfig
	Cache     CacheConfig
	HTTP      HTTPConfig
	Search    SearchConfig
	Server    ServerConfig
	Logging   LoggingConfig
}

// ProviderConfig holds the per-backend API credentials. A backend with an
// empty key is disabled.
type ProviderConfig struct {
	SkyscannerAPIKey string `env:"SKYSCANNER_API_KEY"`
	SearchAPIKey     string `env:"SEARCHAPI_KEY"`
	RapidAPIKey      string `env:"RAPIDAPI_KEY"`
	KiwiAPIKey       string `env:"KIWI_API_KEY"`
}

// CacheConfig holds result cache settings.
type CacheConfig struct {
	Enabled    bool `env:"CACHE_ENABLED" envDefault:"true"`
	TTLSeconds int  `env:"CACHE_TTL_SECONDS" envDefault:"300"`
	MaxSize    int  `env:"CACHE_MAX_SIZE" envDefault:"1000"`
}

// TTL returns the cache entry lifetime as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// HTTPConfig holds outbound HTTP client settings.
type HTTPConfig struct {
	TimeoutSeconds int `env:"HTTP_TIMEOUT_SECONDS" envDefault:"30"`
	MaxRetries     int `env:"HTTP_MAX_RETRIES" envDefault:"3"`
}

// Timeout returns the per-request timeout as a duration.
func (c HTTPConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SearchConfig holds search behavior settings.
type SearchConfig struct {
	MaxResults      int    `env:"MAX_SEARCH_RESULTS" envDefault:"50"`
	DefaultCurrency string `env:"DEFAULT_CURRENCY" envDefault:"USD"`
}

// ServerConfig holds HTTP server settings for the REST entry point.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Ignore error if the .env file doesn't exist.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if !cfg.HasAnyAPIKey() {
		return domain.NewConfigurationError("api_keys",
			"at least one provider API key must be configured")
	}

	if cfg.Cache.TTLSeconds < 0 || cfg.Cache.TTLSeconds > 3600 {
		return domain.NewConfigurationError("CACHE_TTL_SECONDS",
			fmt.Sprintf("must be between 0 and 3600, got %d", cfg.Cache.TTLSeconds))
	}
	if cfg.Cache.MaxSize < 100 || cfg.Cache.MaxSize > 10000 {
		return domain.NewConfigurationError("CACHE_MAX_SIZE",
			fmt.Sprintf("must be between 100 and 10000, got %d", cfg.Cache.MaxSize))
	}

	if cfg.HTTP.TimeoutSeconds < 5 || cfg.HTTP.TimeoutSeconds > 120 {
		return domain.NewConfigurationError("HTTP_TIMEOUT_SECONDS",
			fmt.Sprintf("must be between 5 and 120, got %d", cfg.HTTP.TimeoutSeconds))
	}
	if cfg.HTTP.MaxRetries < 0 || cfg.HTTP.MaxRetries > 10 {
		return domain.NewConfigurationError("HTTP_MAX_RETRIES",
			fmt.Sprintf("must be between 0 and 10, got %d", cfg.HTTP.MaxRetries))
	}

	if cfg.Search.MaxResults < 10 || cfg.Search.MaxResults > 200 {
		return domain.NewConfigurationError("MAX_SEARCH_RESULTS",
			fmt.Sprintf("must be between 10 and 200, got %d", cfg.Search.MaxResults))
	}
	if len(cfg.Search.DefaultCurrency) != 3 {
		return domain.NewConfigurationError("DEFAULT_CURRENCY",
			fmt.Sprintf("must be a 3-letter code, got %q", cfg.Search.DefaultCurrency))
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return domain.NewConfigurationError("SERVER_PORT",
			fmt.Sprintf("must be between 1 and 65535, got %d", cfg.Server.Port))
	}
	if cfg.Server.ReadTimeout <= 0 {
		return domain.NewConfigurationError("SERVER_READ_TIMEOUT", "must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return domain.NewConfigurationError("SERVER_WRITE_TIMEOUT", "must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return domain.NewConfigurationError("LOG_LEVEL",
			fmt.Sprintf("must be one of: debug, info, warn, error; got %q", cfg.Logging.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return domain.NewConfigurationError("LOG_FORMAT",
			fmt.Sprintf("must be one of: json, console; got %q", cfg.Logging.Format))
	}

	return nil
}

// HasAnyAPIKey reports whether at least one backend is configured.
func (c *Config) HasAnyAPIKey() bool {
	p := c.Providers
	return p.SkyscannerAPIKey != "" || p.SearchAPIKey != "" ||
		p.RapidAPIKey != "" || p.KiwiAPIKey != ""
}
