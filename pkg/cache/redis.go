package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultRedisPrefix namespaces chileviz keys in a shared Redis database.
const DefaultRedisPrefix = "chileviz:"

// RedisCache stores msgpack-encoded entries in Redis. Expiry is left to
// Redis.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// RedisOptions configure [NewRedisCache].
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string // DefaultRedisPrefix when empty
}

// NewRedisCache connects to Redis and checks the connection with PING.
func NewRedisCache(ctx context.Context, opts RedisOptions) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return NewRedisCacheFromClient(client, opts.Prefix), nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client, prefix string) *RedisCache {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var e entry
	if err := msgpack.Unmarshal(raw, &e); err != nil {
		_ = c.client.Del(ctx, c.prefix+key).Err()
		return nil, false, nil
	}
	return e.Data, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	raw, err := msgpack.Marshal(newEntry(data, ttl))
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+key, raw, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.prefix+key).Err()
}

// Clear deletes every key under the cache prefix.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	var removed int
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, iter.Err()
}

func (c *RedisCache) Close() error { return c.client.Close() }

var (
	_ Cache   = (*RedisCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
