package ratelimit

import (
	"strings"
	"time"
)

// Requests per minute applied when no limit is configured.
const (
	DefaultLimit        = 600
	DefaultUploadLimit  = 30
	DefaultExtractLimit = 120
)

// EndpointConfig is the limit applied to one route. A Path ending in "/"
// matches every path below it.
type EndpointConfig struct {
	Path   string
	Method string

	// Limit is the number of requests allowed per Window.
	Limit  int
	Window time.Duration

	// Burst is the bucket capacity. Zero means Limit.
	Burst int
}

func (e *EndpointConfig) capacity() int {
	if e.Burst > 0 {
		return e.Burst
	}
	return e.Limit
}

// DefaultConfig is the limiter configuration used when none is supplied.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    DefaultLimit,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		EndpointConfigs: DefaultEndpointConfigs(DefaultUploadLimit, DefaultExtractLimit),
	}
}

// DefaultEndpointConfigs limits file uploads hardest, then text extraction.
// Reads fall through to the default limit.
func DefaultEndpointConfigs(uploadLimit, extractLimit int) []EndpointConfig {
	uploadBurst := max(1, uploadLimit/6)
	extractBurst := max(1, extractLimit/6)
	return []EndpointConfig{
		{Path: "/extract-resume", Method: "POST", Limit: uploadLimit, Window: time.Minute, Burst: uploadBurst},
		{Path: "/extract-skills", Method: "POST", Limit: uploadLimit, Window: time.Minute, Burst: uploadBurst},
		{Path: "/extract", Method: "POST", Limit: extractLimit, Window: time.Minute, Burst: extractBurst},
		{Path: "/skills/normalize", Method: "POST", Limit: extractLimit, Window: time.Minute, Burst: extractBurst},
		{Path: "/extractions/", Method: "GET", Limit: extractLimit, Window: time.Minute, Burst: extractBurst},
		{Path: "/extractions", Method: "GET", Limit: extractLimit, Window: time.Minute, Burst: extractBurst},
	}
}

// IPSet builds a client address set, skipping blank entries.
func IPSet(ips []string) map[string]bool {
	result := make(map[string]bool, len(ips))
	for _, ip := range ips {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
