package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(cfg *Config) (*Limiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	cfg.CleanupInterval = 0
	l := NewLimiter(cfg)
	l.now = clock.Now
	return l, clock
}

func TestBucket_Take(t *testing.T) {
	start := time.Now()
	b := newBucket(3, 1.0, start)

	for i := 0; i < 3; i++ {
		allowed, remaining, _ := b.take(start)
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 2-i, remaining)
	}

	allowed, remaining, reset := b.take(start)
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, start.Add(3*time.Second), reset)
	assert.Equal(t, time.Second, b.retryAfter())

	allowed, _, _ = b.take(start.Add(time.Second))
	assert.True(t, allowed)
}

func TestBucket_RefillCapped(t *testing.T) {
	start := time.Now()
	b := newBucket(2, 10, start)
	b.take(start)

	_, remaining, reset := b.take(start.Add(time.Hour))
	assert.Equal(t, 1, remaining)
	assert.True(t, reset.After(start.Add(time.Hour)))
}

func TestLimiter_DefaultLimit(t *testing.T) {
	l, clock := newTestLimiter(&Config{Enabled: true, DefaultLimit: 5, DefaultWindow: time.Minute})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("127.0.0.1", "/anything", "GET")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 5, info.Limit)
		assert.Equal(t, 4-i, info.Remaining)
	}

	allowed, info := l.Allow("127.0.0.1", "/anything", "GET")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))

	// Other clients and other paths have their own buckets.
	allowed, _ = l.Allow("10.0.0.1", "/anything", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("127.0.0.1", "/other", "GET")
	assert.True(t, allowed)

	clock.Advance(13 * time.Second)
	allowed, _ = l.Allow("127.0.0.1", "/anything", "GET")
	assert.True(t, allowed)
}

func TestLimiter_EndpointRules(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(6, 60),
	})
	defer l.Stop()

	// Upload burst is limit/6.
	allowed, info := l.Allow("c", "/extract-resume", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 6, info.Limit)
	allowed, _ = l.Allow("c", "/extract-resume", "POST")
	assert.False(t, allowed)

	// GET on the same path uses the default limit.
	allowed, info = l.Allow("c", "/extract-resume", "GET")
	assert.True(t, allowed)
	assert.Equal(t, 100, info.Limit)
}

func TestLimiter_PrefixRuleSharesBucket(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/extractions/", Method: "GET", Limit: 2, Window: time.Minute},
		},
	})
	defer l.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := l.Allow("c", fmt.Sprintf("/extractions/%d", i), "GET")
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("c", "/extractions/99", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 1, bucketCount(l))
}

func TestLimiter_Unlimited(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("c", "/health", "GET")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
	assert.Equal(t, 0, bucketCount(l))
}

func TestLimiter_WhitelistBlacklistDisabled(t *testing.T) {
	l, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"good": true},
		Blacklist:     map[string]bool{"bad": true},
	})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("good", "/x", "GET")
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("bad", "/x", "GET")
	assert.False(t, allowed)

	disabled, _ := newTestLimiter(&Config{Enabled: false})
	defer disabled.Stop()
	for i := 0; i < 5; i++ {
		allowed, _ := disabled.Allow("c", "/x", "GET")
		assert.True(t, allowed)
	}
}

func TestLimiter_EvictIdle(t *testing.T) {
	l, clock := newTestLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute, IdleTimeout: time.Minute})
	defer l.Stop()

	l.Allow("a", "/x", "GET")
	clock.Advance(2 * time.Minute)
	l.Allow("b", "/x", "GET")
	require.Equal(t, 2, bucketCount(l))

	l.evictIdle()
	assert.Equal(t, 1, bucketCount(l))
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour})
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("c", "/x", "GET"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowedCount)
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()
	l.Stop()

	allowed, info := l.Allow("c", "/x", "GET")
	assert.True(t, allowed)
	assert.Equal(t, DefaultLimit, info.Limit)
}

func bucketCount(l *Limiter) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
