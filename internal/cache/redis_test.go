package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "careernav:extraction:f00d:abc", Key("f00d", "abc"))
	assert.NotEqual(t, Key("f00d", "abc"), Key("beef", "abc"))
}

func TestNew_InvalidURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"wrong scheme", "http://localhost:6379"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(context.Background(), tt.url, time.Minute)
			assert.Error(t, err)
			assert.Nil(t, c)
		})
	}
}

func TestNewWithClient_DefaultTTL(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer func() { _ = client.Close() }()

	c := NewWithClient(client, 0)
	require.NotNil(t, c)
	assert.Equal(t, DefaultTTL, c.TTL())

	c = NewWithClient(client, time.Minute)
	assert.Equal(t, time.Minute, c.TTL())
}
