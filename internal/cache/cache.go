package cache

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/bundestweets/bundestweets/pkg/config"
	"github.com/bundestweets/bundestweets/pkg/logging"
)

// Cache stores serialized aggregation results. Keys carry the corpus
// snapshot key, so a new snapshot never reads stale entries.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Close() error
}

// New returns a Redis-backed cache when configured, otherwise an
// in-process one.
func New(cfg *config.RedisConfig) (Cache, error) {
	if !cfg.Enabled {
		logging.GetLogger().Info("Redis cache disabled, using in-process cache")
		return NewMemory(), nil
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logging.GetLogger().Info("Redis connection established")
	return &redisCache{client: client, ttl: time.Hour}, nil
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte) {
	c.client.Set(ctx, key, value, c.ttl)
}

func (c *redisCache) Close() error {
	return c.client.Close()
}

// memoryCache is a process-local cache for single-instance deployments and
// tests.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemory creates an in-process cache
func NewMemory() Cache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

func (c *memoryCache) Close() error {
	return nil
}
