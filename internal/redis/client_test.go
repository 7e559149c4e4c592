package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"signature_go/internal/config"
)

func TestDisabledClient(t *testing.T) {
	c := NewClient(config.RedisConfig{Enabled: false, Prefix: "signature"})

	assert.False(t, c.IsConnected())
	assert.Nil(t, c.GetClient())
	assert.Error(t, c.Connect(context.Background()))
	assert.NoError(t, c.Close())
}

func TestFormatKey(t *testing.T) {
	c := NewClient(config.RedisConfig{Prefix: "signature"})
	assert.Equal(t, "signature:ratelimit:normalize:10.0.0.1", c.FormatKey("ratelimit:normalize:10.0.0.1"))

	bare := NewClient(config.RedisConfig{})
	assert.Equal(t, "chave", bare.FormatKey("chave"))
}

func TestIsConnectedWaitsBeforeRetrying(t *testing.T) {
	// Porta 1 recusa conexões: todo ping falha
	c := NewClient(config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1})
	defer c.Close()

	now := time.Date(2025, 11, 14, 10, 30, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	assert.False(t, c.IsConnected())
	assert.Equal(t, now, c.lastAttempt)

	// Dentro do intervalo nenhuma nova tentativa é feita
	first := now
	now = now.Add(reconnectInterval / 2)
	assert.False(t, c.IsConnected())
	assert.Equal(t, first, c.lastAttempt)

	now = now.Add(reconnectInterval)
	assert.False(t, c.IsConnected())
	assert.Equal(t, now, c.lastAttempt)
}

func TestMarkDisconnectedStartsCooldown(t *testing.T) {
	c := NewClient(config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1})
	defer c.Close()

	now := time.Date(2025, 11, 14, 10, 30, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	c.setConnected(true)
	assert.True(t, c.IsConnected())

	c.MarkDisconnected()
	assert.False(t, c.IsConnected())
	assert.Equal(t, now, c.lastAttempt)
}
