// internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache is the caching surface the services depend on. Values are stored as
// JSON; Get unmarshals into out and reports whether the key was present.
type Cache interface {
	Get(ctx context.Context, key string, out interface{}) bool
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Health(ctx context.Context) error
	Close() error
}

// ===============================
// REDIS IMPLEMENTATION
// ===============================

type redisCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(addr, password string, db int, logger *zap.Logger) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logger.Info("Redis cache connected", zap.String("addr", addr))
	return &redisCache{client: client, logger: logger}, nil
}

func (c *redisCache) Get(ctx context.Context, key string, out interface{}) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Warn("Cache value unmarshal failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *redisCache) Health(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Close() error {
	return c.client.Close()
}

// ===============================
// MEMORY FALLBACK
// ===============================

type memoryItem struct {
	raw       []byte
	expiresAt time.Time
}

type memoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryItem
}

// NewMemoryCache returns an in-process cache for deployments without Redis.
func NewMemoryCache() Cache {
	return &memoryCache{items: make(map[string]memoryItem)}
}

func (c *memoryCache) Get(_ context.Context, key string, out interface{}) bool {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return false
	}
	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return false
	}
	return json.Unmarshal(item.raw, out) == nil
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	var expires time.Time
	if ttl > 0 {
		expires = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = memoryItem{raw: raw, expiresAt: expires}
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) Health(context.Context) error { return nil }

func (c *memoryCache) Close() error { return nil }
