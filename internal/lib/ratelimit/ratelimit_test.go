package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/store-rating/internal/config"
)

func setupWindow(t *testing.T, limit int, window time.Duration) (*Window, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := NewRedisClient(context.Background(), config.RedisConnection{
		AddressRedis: mr.Addr(),
		DialTimeout:  time.Second,
		TimeoutRedis: time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewWindow(client, "auth", limit, window), mr
}

func TestWindow_Allow(t *testing.T) {
	w, mr := setupWindow(t, 3, time.Minute)
	ctx := context.Background()

	for i := range 3 {
		ok, err := w.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "request %d should pass", i+1)
	}

	ok, err := w.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok, "fourth request should be limited")

	ok, err = w.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok, "other clients have their own counter")

	assert.Equal(t, time.Minute, mr.TTL("auth:10.0.0.1"))

	mr.FastForward(time.Minute + time.Second)

	ok, err = w.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok, "window should reset after expiry")
}

func TestWindow_RedisDown(t *testing.T) {
	w, mr := setupWindow(t, 3, time.Minute)
	mr.Close()

	_, err := w.Allow(context.Background(), "10.0.0.1")
	require.Error(t, err)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := NewRedisClient(context.Background(), config.RedisConnection{
		AddressRedis: "127.0.0.1:1",
		DialTimeout:  100 * time.Millisecond,
	})
	require.Error(t, err)
}

func TestLocal_Allow(t *testing.T) {
	l := NewLocal(1, 2)
	current := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }
	l.lastSweep = current
	ctx := context.Background()

	ok, _ := l.Allow(ctx, "a")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "a")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "a")
	assert.False(t, ok, "burst exhausted")

	ok, _ = l.Allow(ctx, "b")
	assert.True(t, ok, "separate bucket per key")

	current = current.Add(time.Second)
	ok, _ = l.Allow(ctx, "a")
	assert.True(t, ok, "token refilled after one second")
}

func TestLocal_SweepsIdleVisitors(t *testing.T) {
	l := NewLocal(1, 1)
	current := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }
	l.lastSweep = current

	_, _ = l.Allow(context.Background(), "a")
	_, _ = l.Allow(context.Background(), "b")
	assert.Equal(t, 2, l.size())

	current = current.Add(idleTTL + time.Minute)
	_, _ = l.Allow(context.Background(), "c")
	assert.Equal(t, 1, l.size())
}

func TestNewLocalWindow(t *testing.T) {
	l := NewLocalWindow(5, 15*time.Minute)
	for range 5 {
		ok, err := l.Allow(context.Background(), "ip")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := l.Allow(context.Background(), "ip")
	assert.False(t, ok)
}
