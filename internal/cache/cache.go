// Package cache fronts room-listing queries with a shared Redis instance.
// Every cache failure here is logged and swallowed: the relational store is
// always the fallback source of truth, and a slow or dead cache must never
// fail a request.
package cache

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is the key-value capability the lifecycle consumes. Implementations
// may fail independently of the store; callers treat every error as a
// degradation, not a request failure.
type Cache interface {
	// Get returns the stored bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// redisCache implements Cache on a shared go-redis client.
type redisCache struct {
	rdb *redis.Client
}

// NewRedis wraps an existing Redis client. The client is process-wide and
// injected rather than reached for globally, so tests can substitute a fake.
func NewRedis(rdb *redis.Client) Cache {
	return &redisCache{rdb: rdb}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	bs, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return bs, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// DeleteByPrefix walks matching keys with SCAN and removes them. Partial
// failure leaves entries to age out via their TTL.
func (c *redisCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// NewRedisClient connects to Redis and verifies the connection with a short
// ping. It returns nil when the server is unreachable; callers should degrade
// by running without the cache.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis at %s unreachable, running without room cache: %v", addr, err)
		return nil
	}
	return client
}
