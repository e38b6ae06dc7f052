// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jonathan/job-skill-matcher/internal/ranking"
)

// EnvPrefix prefixes every environment override, e.g. SKILLMATCH_SERVER_PORT.
const EnvPrefix = "SKILLMATCH"

// Suggest algorithms.
const (
	AlgorithmEditDistance = "edit"
	AlgorithmSubsequence  = "subsequence"
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Match     MatchConfig     `mapstructure:"match"`
	Suggest   SuggestConfig   `mapstructure:"suggest"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Breaker   BreakerConfig   `mapstructure:"breaker"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"readtimeout"`
	WriteTimeout time.Duration `mapstructure:"writetimeout"`
	FetchTimeout time.Duration `mapstructure:"fetchtimeout"`
}

// DatabaseConfig holds the PostgreSQL connection URL. Empty means the bundled catalog is used.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// RedisConfig holds the job cache settings. Empty URL disables the cache.
type RedisConfig struct {
	URL      string        `mapstructure:"url"`
	CacheTTL time.Duration `mapstructure:"cachettl"`
}

// CatalogConfig points at an optional catalog file replacing the bundled seed.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// MatchConfig holds match engine settings
type MatchConfig struct {
	Policy   string `mapstructure:"policy"`
	Emphasis string `mapstructure:"emphasis"`
}

// SuggestConfig holds autocomplete settings
type SuggestConfig struct {
	Algorithm string  `mapstructure:"algorithm"`
	Threshold float64 `mapstructure:"threshold"`
	Limit     int     `mapstructure:"limit"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RateLimitConfig holds per-client rate limiting settings. RPS of zero disables limiting.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`

	// Comma-separated client IPs that bypass or are refused by the limiter.
	Whitelist string `mapstructure:"whitelist"`
	Blacklist string `mapstructure:"blacklist"`
}

// BreakerConfig holds circuit breaker settings for the database source
type BreakerConfig struct {
	MaxRequests         uint32        `mapstructure:"maxrequests"`
	Interval            time.Duration `mapstructure:"interval"`
	Timeout             time.Duration `mapstructure:"timeout"`
	ConsecutiveFailures uint32        `mapstructure:"consecutivefailures"`
}

// Load reads configuration from defaults, an optional file and SKILLMATCH_* environment
// variables, in increasing order of precedence. With an empty path it looks for
// skillmatch.{yaml,json} in the working directory and $HOME/.skillmatch, and a
// missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("skillmatch")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.skillmatch")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.applyFallbacks()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// defaults always decode
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readtimeout", 15*time.Second)
	v.SetDefault("server.writetimeout", 15*time.Second)
	v.SetDefault("server.fetchtimeout", 5*time.Second)

	v.SetDefault("database.url", "")

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.cachettl", 5*time.Minute)

	v.SetDefault("catalog.path", "")

	v.SetDefault("match.policy", string(ranking.DefaultPolicy))
	v.SetDefault("match.emphasis", ranking.DefaultEmphasis)

	v.SetDefault("suggest.algorithm", AlgorithmEditDistance)
	v.SetDefault("suggest.threshold", 0.4)
	v.SetDefault("suggest.limit", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("ratelimit.rps", 10.0)
	v.SetDefault("ratelimit.burst", 20)
	v.SetDefault("ratelimit.whitelist", "")
	v.SetDefault("ratelimit.blacklist", "")

	v.SetDefault("breaker.maxrequests", 1)
	v.SetDefault("breaker.interval", time.Minute)
	v.SetDefault("breaker.timeout", 30*time.Second)
	v.SetDefault("breaker.consecutivefailures", 3)
}

// applyFallbacks honors the conventional unprefixed variables.
func (c *Config) applyFallbacks() {
	if c.Database.URL == "" {
		c.Database.URL = os.Getenv("DATABASE_URL")
	}
	if c.Redis.URL == "" {
		c.Redis.URL = os.Getenv("REDIS_URL")
	}
	if p := os.Getenv("PORT"); p != "" && os.Getenv(EnvPrefix+"_SERVER_PORT") == "" {
		var port int
		if _, err := fmt.Sscanf(p, "%d", &port); err == nil {
			c.Server.Port = port
		}
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.FetchTimeout < 0 {
		return fmt.Errorf("config error: server timeouts must be non-negative")
	}

	if _, err := ranking.ParsePolicy(c.Match.Policy); err != nil {
		return fmt.Errorf("config error: 'match.policy': %w", err)
	}

	switch c.Suggest.Algorithm {
	case AlgorithmEditDistance, AlgorithmSubsequence:
	default:
		return fmt.Errorf("config error: 'suggest.algorithm' must be %q or %q, got %q",
			AlgorithmEditDistance, AlgorithmSubsequence, c.Suggest.Algorithm)
	}
	if c.Suggest.Threshold < 0 || c.Suggest.Threshold > 1 {
		return fmt.Errorf("config error: 'suggest.threshold' must be between 0 and 1, got %v", c.Suggest.Threshold)
	}
	if c.Suggest.Limit < 0 {
		return fmt.Errorf("config error: 'suggest.limit' must be non-negative")
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("config error: 'log.format' must be \"json\" or \"console\", got %q", c.Log.Format)
	}

	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("config error: rate limit values must be non-negative")
	}
	if c.Redis.CacheTTL < 0 {
		return fmt.Errorf("config error: 'redis.cachettl' must be non-negative")
	}

	return nil
}
