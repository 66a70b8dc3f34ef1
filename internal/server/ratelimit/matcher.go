package ratelimit

import (
	"strings"
)

// unlimited lists routes that are never limited, keyed "METHOD path".
var unlimited = map[string]bool{
	"GET /health":          true,
	"OPTIONS *":            true,
	"GET /skills/taxonomy": true,
}

var unlimitedRule = &EndpointConfig{}

// MatchEndpoint returns the rule for a request, or nil when only the default
// limit applies. Exact paths win over prefix rules; among prefix rules the
// longest prefix wins.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimited[method+" "+path] || unlimited[method+" *"] {
		return unlimitedRule
	}

	for i := range configs {
		if configs[i].Method == method && configs[i].Path == path {
			return &configs[i]
		}
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method || !strings.HasSuffix(c.Path, "/") || !strings.HasPrefix(path, c.Path) {
			continue
		}
		if best == nil || len(c.Path) > len(best.Path) {
			best = c
		}
	}
	return best
}
