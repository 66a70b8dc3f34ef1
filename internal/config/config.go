// Package config loads service and CLI configuration from an optional file and
// the environment.
package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Surya0265/CareerNav/internal/extraction"
	"github.com/Surya0265/CareerNav/internal/sections"
	"github.com/Surya0265/CareerNav/internal/server/ratelimit"
	"github.com/Surya0265/CareerNav/internal/taxonomy"
)

// EnvPrefix prefixes every environment override, e.g. CAREERNAV_SERVER_PORT.
const EnvPrefix = "CAREERNAV"

// Config is the full application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Cache      CacheConfig      `mapstructure:"cache"`
	RateLimit  RateLimitConfig  `mapstructure:"rate-limit"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	MaxUploadBytes  int64         `mapstructure:"max-upload-bytes"`
	ReadTimeout     time.Duration `mapstructure:"read-timeout"`
	WriteTimeout    time.Duration `mapstructure:"write-timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
	AllowedOrigin   string        `mapstructure:"allowed-origin"`
}

// ExtractionConfig tunes the extractor.
type ExtractionConfig struct {
	PhonePattern string `mapstructure:"phone-pattern"`
	MaxEntries   int    `mapstructure:"max-entries"`
	HeaderMatch  string `mapstructure:"header-match"` // "prefix" or "substring"
	Concurrency  int    `mapstructure:"concurrency"`

	// TaxonomyFile replaces the built-in skill catalog with a JSON one.
	TaxonomyFile string `mapstructure:"taxonomy-file"`
}

// DatabaseConfig enables extraction persistence when URL is set.
type DatabaseConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CacheConfig enables the Redis result cache when URL is set.
type CacheConfig struct {
	URL     string        `mapstructure:"url"`
	TTL     time.Duration `mapstructure:"ttl"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RateLimitConfig tunes the per-client request limiter. Limits are requests
// per minute except DefaultLimit, which is per DefaultWindow.
type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultLimit    int           `mapstructure:"default-limit"`
	DefaultWindow   time.Duration `mapstructure:"default-window"`
	UploadLimit     int           `mapstructure:"upload-limit"`
	ExtractLimit    int           `mapstructure:"extract-limit"`
	CleanupInterval time.Duration `mapstructure:"cleanup-interval"`
	IdleTimeout     time.Duration `mapstructure:"idle-timeout"`
	Whitelist       []string      `mapstructure:"whitelist"`
	Blacklist       []string      `mapstructure:"blacklist"`
}

// LogConfig selects the log encoding and level.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			MaxUploadBytes:  16 << 20,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			AllowedOrigin:   "*",
		},
		Extraction: ExtractionConfig{
			PhonePattern: extraction.DefaultPhonePattern,
			MaxEntries:   sections.DefaultMaxEntries,
			HeaderMatch:  sections.MatchPrefix.String(),
			Concurrency:  4,
		},
		Database: DatabaseConfig{Timeout: 5 * time.Second},
		Cache:    CacheConfig{TTL: 24 * time.Hour, Timeout: 2 * time.Second},
		RateLimit: RateLimitConfig{
			Enabled:         true,
			DefaultLimit:    ratelimit.DefaultLimit,
			DefaultWindow:   time.Minute,
			UploadLimit:     ratelimit.DefaultUploadLimit,
			ExtractLimit:    ratelimit.DefaultExtractLimit,
			CleanupInterval: 5 * time.Minute,
			IdleTimeout:     time.Hour,
		},
	}
}

// rateLimitKeys also answer to their unprefixed RATE_LIMIT_* names.
var rateLimitKeys = []string{
	"enabled", "default-limit", "default-window", "upload-limit", "extract-limit",
	"cleanup-interval", "idle-timeout", "whitelist", "blacklist",
}

// NewViper returns a viper instance seeded with defaults and environment
// bindings. Callers may bind command-line flags to it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Conventional unprefixed names used by hosting platforms.
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")
	_ = v.BindEnv("database.url", EnvPrefix+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("cache.url", EnvPrefix+"_CACHE_URL", "REDIS_URL")
	for _, key := range rateLimitKeys {
		env := "RATE_LIMIT_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
		_ = v.BindEnv("rate-limit."+key, EnvPrefix+"_"+env, env)
	}

	return v
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.max-upload-bytes", d.Server.MaxUploadBytes)
	v.SetDefault("server.read-timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write-timeout", d.Server.WriteTimeout)
	v.SetDefault("server.shutdown-timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.allowed-origin", d.Server.AllowedOrigin)

	v.SetDefault("extraction.phone-pattern", d.Extraction.PhonePattern)
	v.SetDefault("extraction.max-entries", d.Extraction.MaxEntries)
	v.SetDefault("extraction.header-match", d.Extraction.HeaderMatch)
	v.SetDefault("extraction.concurrency", d.Extraction.Concurrency)
	v.SetDefault("extraction.taxonomy-file", d.Extraction.TaxonomyFile)

	v.SetDefault("database.url", d.Database.URL)
	v.SetDefault("database.timeout", d.Database.Timeout)

	v.SetDefault("cache.url", d.Cache.URL)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("cache.timeout", d.Cache.Timeout)

	v.SetDefault("rate-limit.enabled", d.RateLimit.Enabled)
	v.SetDefault("rate-limit.default-limit", d.RateLimit.DefaultLimit)
	v.SetDefault("rate-limit.default-window", d.RateLimit.DefaultWindow)
	v.SetDefault("rate-limit.upload-limit", d.RateLimit.UploadLimit)
	v.SetDefault("rate-limit.extract-limit", d.RateLimit.ExtractLimit)
	v.SetDefault("rate-limit.cleanup-interval", d.RateLimit.CleanupInterval)
	v.SetDefault("rate-limit.idle-timeout", d.RateLimit.IdleTimeout)

	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.debug", d.Log.Debug)
}

// Load reads path (YAML, JSON or TOML by extension) when it is non-empty,
// applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	return LoadWith(NewViper(), path)
}

// LoadWith is Load on a caller-supplied viper instance from NewViper.
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and that the phone pattern compiles.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("config error: 'server.max-upload-bytes' must be positive")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("config error: server timeouts must be positive")
	}

	if c.Extraction.MaxEntries <= 0 {
		return fmt.Errorf("config error: 'extraction.max-entries' must be positive")
	}
	if c.Extraction.Concurrency <= 0 {
		return fmt.Errorf("config error: 'extraction.concurrency' must be positive")
	}
	if _, ok := sections.ParseMatchMode(c.Extraction.HeaderMatch); !ok {
		return fmt.Errorf("config error: 'extraction.header-match' must be \"prefix\" or \"substring\", got %q", c.Extraction.HeaderMatch)
	}
	if _, err := regexp.Compile(c.Extraction.PhonePattern); err != nil {
		return fmt.Errorf("config error: 'extraction.phone-pattern' does not compile: %w", err)
	}

	if c.Cache.URL != "" && c.Cache.TTL <= 0 {
		return fmt.Errorf("config error: 'cache.ttl' must be positive when the cache is enabled")
	}

	if rl := c.RateLimit; rl.Enabled {
		if rl.DefaultLimit <= 0 || rl.UploadLimit <= 0 || rl.ExtractLimit <= 0 {
			return fmt.Errorf("config error: 'rate-limit' limits must be positive when rate limiting is enabled")
		}
		if rl.DefaultWindow <= 0 || rl.CleanupInterval <= 0 || rl.IdleTimeout <= 0 {
			return fmt.Errorf("config error: 'rate-limit' durations must be positive when rate limiting is enabled")
		}
	}

	return nil
}

// Taxonomy returns the configured skill catalog: the taxonomy file when one
// is set, the built-in catalog otherwise.
func (c *Config) Taxonomy() (*taxonomy.Taxonomy, error) {
	if c.Extraction.TaxonomyFile == "" {
		return taxonomy.Default(), nil
	}
	return taxonomy.LoadFile(c.Extraction.TaxonomyFile)
}

// ExtractorOptions translates the extraction settings into extractor options.
func (c *Config) ExtractorOptions() ([]extraction.Option, error) {
	tax, err := c.Taxonomy()
	if err != nil {
		return nil, err
	}

	mode, _ := sections.ParseMatchMode(c.Extraction.HeaderMatch)
	opts := []extraction.Option{
		extraction.WithTaxonomy(tax),
		extraction.WithHeaderMatch(mode),
		extraction.WithMaxEntries(c.Extraction.MaxEntries),
	}
	if c.Extraction.PhonePattern != "" {
		opts = append(opts, extraction.WithPhonePattern(c.Extraction.PhonePattern))
	}
	return opts, nil
}

// RateLimiter translates the rate-limit settings into limiter configuration.
func (c *Config) RateLimiter() *ratelimit.Config {
	rl := c.RateLimit
	if !rl.Enabled {
		return &ratelimit.Config{Enabled: false}
	}
	return &ratelimit.Config{
		Enabled:         true,
		DefaultLimit:    rl.DefaultLimit,
		DefaultWindow:   rl.DefaultWindow,
		CleanupInterval: rl.CleanupInterval,
		IdleTimeout:     rl.IdleTimeout,
		Whitelist:       ratelimit.IPSet(rl.Whitelist),
		Blacklist:       ratelimit.IPSet(rl.Blacklist),
		EndpointConfigs: ratelimit.DefaultEndpointConfigs(rl.UploadLimit, rl.ExtractLimit),
	}
}
