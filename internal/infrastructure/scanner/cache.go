package scanner

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResponseCache stores raw upstream responses for a short freshness window.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type redisCache struct {
	client *redis.Client
}

// NewRedisCache adapts a Redis client to ResponseCache.
func NewRedisCache(client *redis.Client) ResponseCache {
	return &redisCache{client: client}
}

func (r *redisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (r *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func cacheKey(ticker string) string {
	return "options:scan:" + ticker
}
