package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"signature_go/internal/redis"
	"signature_go/pkg/logger"
)

// RedisLimiter mantém a janela em um ZSET por cliente, compartilhado entre
// instâncias. Sem Redis disponível usa o limitador em memória.
type RedisLimiter struct {
	client   *redis.Client
	name     string
	limit    int
	window   time.Duration
	fallback *MemoryLimiter
	now      func() time.Time
}

// NewRedisLimiter cria um limitador identificado por name (ex.: "normalize")
func NewRedisLimiter(client *redis.Client, name string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:   client,
		name:     name,
		limit:    limit,
		window:   window,
		fallback: NewMemoryLimiter(limit, window),
		now:      time.Now,
	}
}

// Allow aplica a janela no Redis; em caso de falha recorre à memória
func (l *RedisLimiter) Allow(ctx context.Context, id string) (bool, error) {
	if l.client == nil || !l.client.IsConnected() {
		return l.fallback.Allow(ctx, id)
	}

	allowed, err := l.allowRedis(ctx, id)
	if err != nil {
		logger.Warnf("Rate limit via Redis falhou, usando memória: %v", err)
		l.client.MarkDisconnected()
		return l.fallback.Allow(ctx, id)
	}
	return allowed, nil
}

func (l *RedisLimiter) allowRedis(ctx context.Context, id string) (bool, error) {
	rdb := l.client.GetClient()
	key := l.client.FormatKey(fmt.Sprintf("ratelimit:%s:%s", l.name, id))

	now := l.now()
	start := now.Add(-l.window).UnixNano()
	member := fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString())

	var card *goredis.IntCmd
	_, err := rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(start, 10))
		pipe.ZAdd(ctx, key, &goredis.Z{Score: float64(now.UnixNano()), Member: member})
		card = pipe.ZCard(ctx, key)
		pipe.Expire(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return false, errors.Wrap(err, "pipeline de rate limit")
	}

	if card.Val() > int64(l.limit) {
		// Recusada: não ocupa espaço na janela
		if err := rdb.ZRem(ctx, key, member).Err(); err != nil {
			return false, errors.Wrap(err, "remover requisição recusada")
		}
		return false, nil
	}

	return true, nil
}
