//go:build integration
// +build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Surya0265/CareerNav/internal/extraction"
)

func setupTestCache(t *testing.T) *Cache {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping integration test: TEST_REDIS_URL not set")
	}

	c, err := New(context.Background(), url, time.Minute)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to redis: %v", err)
	}
	return c
}

func TestCache_SetGet(t *testing.T) {
	c := setupTestCache(t)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	hash := "test-" + uuid.NewString()
	defer func() {
		_ = c.client.Del(ctx, Key("s1", hash), Key("s2", hash)).Err()
	}()

	_, found, err := c.Get(ctx, "s1", hash)
	require.NoError(t, err)
	assert.False(t, found)

	res := extraction.Empty()
	res.Skills = []string{"Go"}
	require.NoError(t, c.Set(ctx, "s1", hash, res))

	got, found, err := c.Get(ctx, "s1", hash)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"Go"}, got.Skills)
	assert.Nil(t, got.Email)

	_, found, err = c.Get(ctx, "s2", hash)
	require.NoError(t, err)
	assert.False(t, found, "other settings must not see the entry")
}

func TestCache_EvictsUndecodableEntry(t *testing.T) {
	c := setupTestCache(t)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	key := Key("s1", "test-"+uuid.NewString())
	require.NoError(t, c.client.Set(ctx, key, "not json", time.Minute).Err())
	defer func() { _ = c.client.Del(ctx, key).Err() }()

	hash := key[len(KeyPrefix+"s1:"):]
	_, found, err := c.Get(ctx, "s1", hash)
	assert.Error(t, err)
	assert.False(t, found)

	exists, err := c.client.Exists(ctx, key).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}
