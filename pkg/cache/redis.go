package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig configures [NewRedisCache].
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces every key, e.g. "pearls:".
	Prefix string
	// DialTimeout bounds connection attempts (default 2s).
	DialTimeout time.Duration
}

// RedisCache is a [Cache] backed by Redis, for servers sharing one cache.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a client. It does not connect; call
// [RedisCache.Ping] to check reachability up front.
func NewRedisCache(cfg RedisConfig) *RedisCache {
	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: timeout,
		// Retries happen in RetryWithBackoff.
		MaxRetries: -1,
	})
	return &RedisCache{client: client, prefix: cfg.Prefix}
}

// Ping checks the connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: redis ping: %v", ErrNetwork, err)
	}
	return nil
}

func (c *RedisCache) key(k string) string { return c.prefix + k }

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		data []byte
		hit  bool
	)
	err := RetryWithBackoff(ctx, func() error {
		b, err := c.client.Get(ctx, c.key(key)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return Retryable(fmt.Errorf("%w: redis get: %v", ErrNetwork, err))
		}
		data, hit = b, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return data, hit, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return RetryWithBackoff(ctx, func() error {
		if err := c.client.Set(ctx, c.key(key), data, ttl).Err(); err != nil {
			return Retryable(fmt.Errorf("%w: redis set: %v", ErrNetwork, err))
		}
		return nil
	})
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: redis del: %v", ErrNetwork, err)
	}
	return nil
}

// Clear deletes every key under the prefix. Without a prefix it refuses,
// since that would wipe the whole database.
func (c *RedisCache) Clear(ctx context.Context) error {
	if c.prefix == "" {
		return errors.New("redis clear requires a key prefix")
	}
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 256).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 256 {
			if err := c.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("%w: redis del: %v", ErrNetwork, err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("%w: redis scan: %v", ErrNetwork, err)
	}
	if len(batch) > 0 {
		if err := c.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("%w: redis del: %v", ErrNetwork, err)
		}
	}
	return nil
}

func (c *RedisCache) Close() error { return c.client.Close() }

var (
	_ Cache   = (*RedisCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
