package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrMiss reports a key that is absent or expired.
var ErrMiss = errors.New("cache miss")

// CacheService caches computed metric results. A miss is ErrMiss, never an
// empty value.
type CacheService interface {
	GetJSON(ctx context.Context, key string, out any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error

	// InvalidateMetrics drops every cached metric result. Called after each
	// store mutation.
	InvalidateMetrics(ctx context.Context) error
}

const keyPrefix = "rentledger:"

// MetricsKey builds a namespaced cache key for a metric result.
func MetricsKey(parts ...string) string {
	return keyPrefix + "metrics:" + strings.Join(parts, ":")
}

type redisCacheService struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisCacheService connects to Redis at addr ("host:port" or a
// redis:// URL). A failed ping is logged, not fatal; individual operations
// surface their own errors.
func NewRedisCacheService(addr, password string, db int, logger zerolog.Logger) CacheService {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", parsedAddr).Msg("redis ping failed on initialization")
	}

	return &redisCacheService{client: client, logger: logger}
}

func (r *redisCacheService) GetJSON(ctx context.Context, key string, out any) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return fmt.Errorf("cache get %s: %w", key, err)
	}
	return json.Unmarshal(data, out)
}

func (r *redisCacheService) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) InvalidateMetrics(ctx context.Context) error {
	pattern := MetricsKey("*")
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan %s: %w", pattern, err)
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
