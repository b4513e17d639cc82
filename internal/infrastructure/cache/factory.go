package cache

import (
	"context"
	"fmt"

	"github.com/erp/selling/internal/domain/shared"
	"github.com/erp/selling/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Idempotency backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// NewIdempotencyStore builds the store selected by cfg.Backend. When Redis is
// selected but unreachable outside production, it falls back to memory with a warning.
func NewIdempotencyStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (shared.IdempotencyStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Idempotency.Backend {
	case BackendMemory, "":
		logger.Info("using in-memory idempotency store")
		return NewMemoryStore(DefaultSweepInterval), nil
	case BackendRedis:
		client, err := NewRedisClient(ctx, cfg.Redis)
		if err == nil {
			logger.Info("using Redis idempotency store", zap.String("addr", cfg.Redis.Addr()))
			return NewRedisStore(client, ""), nil
		}
		if cfg.App.Env == "production" {
			return nil, fmt.Errorf("redis idempotency store unavailable: %w", err)
		}
		logger.Warn("Redis unavailable, falling back to in-memory idempotency store", zap.Error(err))
		return NewMemoryStore(DefaultSweepInterval), nil
	default:
		return nil, fmt.Errorf("unknown idempotency backend %q", cfg.Idempotency.Backend)
	}
}
