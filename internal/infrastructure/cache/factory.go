package cache

import (
	"github.com/dovoc/backend/internal/domain/shared"
	"github.com/dovoc/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// IdempotencyStoreFactory creates the checkout duplicate-submission
// store based on configuration: Redis when enabled and reachable,
// in-memory otherwise.
type IdempotencyStoreFactory struct {
	redisConfig config.RedisConfig
	logger      *zap.Logger
}

// NewIdempotencyStoreFactory creates a new factory
func NewIdempotencyStoreFactory(cfg config.RedisConfig, logger *zap.Logger) *IdempotencyStoreFactory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IdempotencyStoreFactory{
		redisConfig: cfg,
		logger:      logger,
	}
}

// CreateStore creates an idempotency store. When Redis is enabled it is
// tried first; connection failure falls back to the in-memory store so
// checkout keeps working on a single instance.
func (f *IdempotencyStoreFactory) CreateStore() shared.IdempotencyStore {
	if !f.redisConfig.Enabled {
		f.logger.Info("redis disabled, using in-memory idempotency store")
		return NewInMemoryIdempotencyStore()
	}

	store, err := NewRedisIdempotencyStore(f.redisConfig)
	if err != nil {
		f.logger.Warn("redis unavailable, falling back to in-memory idempotency store",
			zap.String("addr", f.redisConfig.Addr()),
			zap.Error(err))
		return NewInMemoryIdempotencyStore()
	}

	f.logger.Info("using redis idempotency store",
		zap.String("addr", f.redisConfig.Addr()))
	return store
}
