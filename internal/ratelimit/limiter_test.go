package ratelimit

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signature_go/internal/config"
	"signature_go/internal/redis"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestMemoryLimiterSlidingWindow(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	l := NewMemoryLimiter(3, time.Minute)
	l.now = clock.now
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok, "requisição %d", i)
		clock.advance(10 * time.Second)
	}

	ok, _ := l.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)

	// Outro cliente não é afetado
	ok, _ = l.Allow(ctx, "10.0.0.2")
	assert.True(t, ok)

	// A primeira requisição (t=0) sai da janela em t=60s
	clock.advance(31 * time.Second)
	ok, _ = l.Allow(ctx, "10.0.0.1")
	assert.True(t, ok)

	ok, _ = l.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)
}

func TestMemoryLimiterSweepsIdleClients(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	l := NewMemoryLimiter(5, time.Second)
	l.now = clock.now
	ctx := context.Background()

	_, _ = l.Allow(ctx, "a")
	_, _ = l.Allow(ctx, "b")
	assert.Equal(t, 2, l.Clients())

	clock.advance(3 * time.Second)
	_, _ = l.Allow(ctx, "c")
	assert.Equal(t, 1, l.Clients())
}

func TestRedisLimiterFallsBackWhenDisabled(t *testing.T) {
	client := redis.NewClient(config.RedisConfig{Enabled: false})
	l := NewRedisLimiter(client, "validate", 2, time.Minute)
	ctx := context.Background()

	ok, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "10.0.0.1")
	assert.True(t, ok)
	ok, _ = l.Allow(ctx, "10.0.0.1")
	assert.False(t, ok)
}

func TestClientIdentifier(t *testing.T) {
	r := httptest.NewRequest("POST", "/normalize", nil)
	r.RemoteAddr = "192.168.0.9:51234"
	assert.Equal(t, "192.168.0.9", ClientIdentifier(r))

	r.Header.Set("X-Real-IP", "172.16.0.4")
	assert.Equal(t, "172.16.0.4", ClientIdentifier(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", ClientIdentifier(r))
}
