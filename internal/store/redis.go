package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists session state in Redis so it survives restarts.
type RedisStore struct {
	client *redis.Client
}

// OpenRedis connects to Redis using a redis:// URL and verifies the
// connection with a ping.
func OpenRedis(ctx context.Context, redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Get returns the value for key, or ErrNotFound when Redis has no entry.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// Set stores value under key with no expiry; user state has no natural TTL.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
