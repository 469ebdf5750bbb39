package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"github.com/mmcdole/marquee/internal/metrics"
)

// Backend names accepted by New
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

const redisKeyPrefix = "marquee:catalog:"

// Cache stores raw catalog response bodies by request key
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// Options configures New
type Options struct {
	Backend   string
	TTL       time.Duration
	RedisAddr string
	RedisDB   int
}

// New returns the cache for the configured backend, or nil when caching is disabled
func New(opts Options, logger *slog.Logger) (Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TTL <= 0 {
		return nil, nil
	}
	switch opts.Backend {
	case "", BackendNone:
		return nil, nil
	case BackendMemory:
		return NewMemory(opts.TTL), nil
	case BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: opts.RedisAddr, DB: opts.RedisDB})
		return NewRedis(client, opts.TTL, logger), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}

// Memory is a process-local cache with per-entry expiry
type Memory struct {
	c *gocache.Cache
}

// NewMemory creates a memory cache whose entries live for ttl
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{c: gocache.New(ttl, 2*ttl)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := m.c.Get(key)
	if !ok {
		metrics.CacheMissesTotal.WithLabelValues(BackendMemory).Inc()
		return nil, false
	}
	metrics.CacheHitsTotal.WithLabelValues(BackendMemory).Inc()
	return v.([]byte), true
}

func (m *Memory) Set(_ context.Context, key string, value []byte) {
	m.c.SetDefault(key, value)
}

// Redis shares cached responses between processes
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedis(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Redis {
	if logger == nil {
		logger = slog.Default()
	}
	return &Redis{client: client, ttl: ttl, logger: logger}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("redis cache read failed", "key", key, "error", err)
		}
		metrics.CacheMissesTotal.WithLabelValues(BackendRedis).Inc()
		return nil, false
	}
	metrics.CacheHitsTotal.WithLabelValues(BackendRedis).Inc()
	return data, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) {
	if err := r.client.Set(ctx, redisKeyPrefix+key, value, r.ttl).Err(); err != nil {
		r.logger.Warn("redis cache write failed", "key", key, "error", err)
	}
}
