package cache

import (
	"context"
	"testing"
	"time"

	"github.com/erp/selling/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableRedis points at a port nothing listens on
var unreachableRedis = config.RedisConfig{Host: "127.0.0.1", Port: 1}

func TestNewIdempotencyStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory backend", func(t *testing.T) {
		cfg := &config.Config{Idempotency: config.IdempotencyConfig{Backend: BackendMemory, TTL: time.Hour}}
		store, err := NewIdempotencyStore(ctx, cfg, nil)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &MemoryStore{}, store)
	})

	t.Run("redis unavailable outside production falls back", func(t *testing.T) {
		cfg := &config.Config{
			App:         config.AppConfig{Env: "development"},
			Redis:       unreachableRedis,
			Idempotency: config.IdempotencyConfig{Backend: BackendRedis, TTL: time.Hour},
		}
		store, err := NewIdempotencyStore(ctx, cfg, nil)
		require.NoError(t, err)
		defer store.Close()
		assert.IsType(t, &MemoryStore{}, store)
	})

	t.Run("redis unavailable in production fails", func(t *testing.T) {
		cfg := &config.Config{
			App:         config.AppConfig{Env: "production"},
			Redis:       unreachableRedis,
			Idempotency: config.IdempotencyConfig{Backend: BackendRedis},
		}
		_, err := NewIdempotencyStore(ctx, cfg, nil)
		assert.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := &config.Config{Idempotency: config.IdempotencyConfig{Backend: "memcached"}}
		_, err := NewIdempotencyStore(ctx, cfg, nil)
		assert.EqualError(t, err, `unknown idempotency backend "memcached"`)
	})
}

func TestRedisStore_WrapsClientErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        unreachableRedis.Addr(),
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	store := NewRedisStore(client, "")
	defer store.Close()

	_, err := store.MarkProcessed(context.Background(), "submit:SO-00001", time.Hour)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mark submit:SO-00001 processed")

	_, err = store.IsProcessed(context.Background(), "submit:SO-00001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check submit:SO-00001 processed")
}
