package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisAdapter stores each key as a Redis string under a namespace prefix.
type RedisAdapter struct {
	client *redis.Client
	prefix string
}

// NewRedisAdapter wraps client. Every key is stored as prefix+key.
func NewRedisAdapter(client *redis.Client, prefix string) *RedisAdapter {
	return &RedisAdapter{client: client, prefix: prefix}
}

// DialRedis connects to addr and verifies the connection with a ping.
func DialRedis(ctx context.Context, addr, prefix string) (*RedisAdapter, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return NewRedisAdapter(client, prefix), nil
}

// Get returns the stored value or nil when the key is absent.
func (a *RedisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := a.client.Get(ctx, a.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, a.wrap("get", key, err)
	}
	return b, nil
}

// Set replaces the value stored under key. Values never expire.
func (a *RedisAdapter) Set(ctx context.Context, key string, value []byte) error {
	return a.wrap("set", key, a.client.Set(ctx, a.prefix+key, value, 0).Err())
}

// Remove deletes key. Deleting an absent key is not an error.
func (a *RedisAdapter) Remove(ctx context.Context, key string) error {
	return a.wrap("remove", key, a.client.Del(ctx, a.prefix+key).Err())
}

// Close closes the underlying client.
func (a *RedisAdapter) Close() error {
	return a.client.Close()
}

func (a *RedisAdapter) wrap(op, key string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, redis.ErrClosed) {
		err = ErrClosed
	}
	return fmt.Errorf("redis %s %q: %w", op, key, err)
}
