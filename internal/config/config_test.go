package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Surya0265/CareerNav/internal/extraction"
	"github.com/Surya0265/CareerNav/internal/server/ratelimit"
	"github.com/Surya0265/CareerNav/internal/taxonomy"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, Defaults(), *cfg)
	assert.Equal(t, int64(16<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "prefix", cfg.Extraction.HeaderMatch)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, "careernav.yaml", `
server:
  port: 9090
  read-timeout: 10s
extraction:
  max-entries: 5
  header-match: substring
cache:
  url: redis://localhost:6379/0
  ttl: 1h
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 5, cfg.Extraction.MaxEntries)
	assert.Equal(t, "substring", cfg.Extraction.HeaderMatch)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.URL)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeConfig(t, "careernav.json", `{"extraction": {"concurrency": 8}, "log": {"json": true}}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Extraction.Concurrency)
	assert.True(t, cfg.Log.JSON)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("CAREERNAV_EXTRACTION_MAX_ENTRIES", "7")
	t.Setenv("DATABASE_URL", "postgres://localhost/careernav")
	t.Setenv("PORT", "3000")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Extraction.MaxEntries)
	assert.Equal(t, "postgres://localhost/careernav", cfg.Database.URL)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "bad.yaml", "server: [unclosed")

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		contains string
	}{
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"zero upload limit", func(c *Config) { c.Server.MaxUploadBytes = 0 }, "max-upload-bytes"},
		{"zero timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, "timeouts"},
		{"zero entries", func(c *Config) { c.Extraction.MaxEntries = 0 }, "max-entries"},
		{"zero concurrency", func(c *Config) { c.Extraction.Concurrency = 0 }, "concurrency"},
		{"unknown header match", func(c *Config) { c.Extraction.HeaderMatch = "regex" }, "header-match"},
		{"bad phone pattern", func(c *Config) { c.Extraction.PhonePattern = `(\d` }, "phone-pattern"},
		{"cache without ttl", func(c *Config) { c.Cache.URL = "redis://x"; c.Cache.TTL = 0 }, "cache.ttl"},
		{"zero rate limit", func(c *Config) { c.RateLimit.UploadLimit = 0 }, "'rate-limit' limits"},
		{"zero rate window", func(c *Config) { c.RateLimit.DefaultWindow = 0 }, "'rate-limit' durations"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}

	cfg := Defaults()
	assert.NoError(t, cfg.Validate())

	cfg.RateLimit = RateLimitConfig{Enabled: false}
	assert.NoError(t, cfg.Validate())
}

func TestExtractorOptions(t *testing.T) {
	cfg := Defaults()
	cfg.Extraction.MaxEntries = 1
	cfg.Extraction.HeaderMatch = "substring"

	opts, err := cfg.ExtractorOptions()
	require.NoError(t, err)
	e, err := extraction.New(opts...)
	require.NoError(t, err)

	res := e.ExtractBasicInfo("x", "My experience:\n- One\n- Two")
	assert.Equal(t, []string{"One"}, res.ExperienceEntries)
	assert.Same(t, taxonomy.Default(), e.Taxonomy())
}

func TestExtractorOptions_TaxonomyFile(t *testing.T) {
	cfg := Defaults()
	cfg.Extraction.TaxonomyFile = writeConfig(t, "taxonomy.json",
		`[{"name": "stores", "entries": [{"name": "Redis", "aliases": ["redis"]}]}]`)

	opts, err := cfg.ExtractorOptions()
	require.NoError(t, err)
	e, err := extraction.New(opts...)
	require.NoError(t, err)

	res := e.ExtractBasicInfo("Redis and Python", "")
	assert.Equal(t, []string{"Redis"}, res.Skills)
	assert.NotEqual(t, taxonomy.Default().Fingerprint(), e.Taxonomy().Fingerprint())

	cfg.Extraction.TaxonomyFile = filepath.Join(t.TempDir(), "missing.json")
	_, err = cfg.ExtractorOptions()
	assert.ErrorContains(t, err, "failed to read taxonomy file")
}

func TestLoad_RateLimitSection(t *testing.T) {
	path := writeConfig(t, "careernav.yaml", `
rate-limit:
  default-limit: 10
  default-window: 30s
  upload-limit: 12
  whitelist: ["127.0.0.1", "::1"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.RateLimit.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.DefaultWindow)
	assert.Equal(t, ratelimit.DefaultExtractLimit, cfg.RateLimit.ExtractLimit)

	rl := cfg.RateLimiter()
	assert.True(t, rl.Enabled)
	assert.Equal(t, 10, rl.DefaultLimit)
	assert.Equal(t, map[string]bool{"127.0.0.1": true, "::1": true}, rl.Whitelist)
	assert.Empty(t, rl.Blacklist)

	rule := ratelimit.MatchEndpoint("/extract-resume", "POST", rl.EndpointConfigs)
	require.NotNil(t, rule)
	assert.Equal(t, 12, rule.Limit)
	assert.Equal(t, 2, rule.Burst)
}

func TestLoad_RateLimitEnvironment(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "unprefixed names",
			env: map[string]string{
				"RATE_LIMIT_DEFAULT_LIMIT":  "42",
				"RATE_LIMIT_DEFAULT_WINDOW": "10s",
				"RATE_LIMIT_BLACKLIST":      "10.0.0.1,10.0.0.2",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 42, cfg.RateLimit.DefaultLimit)
				assert.Equal(t, 10*time.Second, cfg.RateLimit.DefaultWindow)
				assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.RateLimiter().Blacklist)
			},
		},
		{
			name: "prefixed names",
			env:  map[string]string{"CAREERNAV_RATE_LIMIT_EXTRACT_LIMIT": "7"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7, cfg.RateLimit.ExtractLimit)
			},
		},
		{
			name: "disabled",
			env:  map[string]string{"RATE_LIMIT_ENABLED": "false", "RATE_LIMIT_DEFAULT_LIMIT": "0"},
			check: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.RateLimit.Enabled)
				assert.False(t, cfg.RateLimiter().Enabled)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load("")
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
