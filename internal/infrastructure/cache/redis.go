package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"eventbot/internal/ports/output"
)

var _ output.Cache = (*Redis)(nil)

const keyPrefix = "eventbot:"

// Redis shares the cache between bot instances. Errors are logged and
// treated as misses.
type Redis struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedis(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *Redis {
	if logger == nil {
		logger = slog.Default()
	}
	return &Redis{rdb: rdb, ttl: ttl, logger: logger}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	v, err := r.rdb.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false
	}
	if err != nil {
		r.logger.Warn("cache get failed", "key", key, "error", err)
		return "", false
	}
	return v, true
}

func (r *Redis) Put(ctx context.Context, key, value string) {
	if err := r.rdb.Set(ctx, keyPrefix+key, value, r.ttl).Err(); err != nil {
		r.logger.Warn("cache put failed", "key", key, "error", err)
	}
}
