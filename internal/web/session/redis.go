package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisPrefix  = "authgw:session:"
	redisCommandTimeout = 5 * time.Second
)

// RedisStorage is a fiber.Storage on top of go-redis.
type RedisStorage struct {
	client redis.UniversalClient
	prefix string
}

var _ fiber.Storage = (*RedisStorage)(nil)

// NewRedisStorage parses a redis:// URL and connects lazily.
func NewRedisStorage(rawURL string) (*RedisStorage, error) {
	if rawURL == "" {
		return nil, errors.New("redis session backend needs a redis url")
	}

	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	return NewRedisStorageWithClient(redis.NewClient(opts), defaultRedisPrefix), nil
}

// NewRedisStorageWithClient wraps an existing client. Keys are stored as prefix+id.
func NewRedisStorageWithClient(client redis.UniversalClient, prefix string) *RedisStorage {
	return &RedisStorage{
		client: client,
		prefix: prefix,
	}
}

// Get returns nil without error for missing keys, like the other fiber storages.
func (s *RedisStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisCommandTimeout)
	defer cancel()

	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, fmt.Errorf("redis get: %w", err)
	}

	return val, nil
}

// Set stores val; exp <= 0 keeps the key without expiry.
func (s *RedisStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}

	if exp < 0 {
		exp = 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisCommandTimeout)
	defer cancel()

	return s.client.Set(ctx, s.prefix+key, val, exp).Err()
}

// Delete removes key.
func (s *RedisStorage) Delete(key string) error {
	if key == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisCommandTimeout)
	defer cancel()

	return s.client.Del(ctx, s.prefix+key).Err()
}

// Reset deletes every key under the prefix.
func (s *RedisStorage) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), redisCommandTimeout)
	defer cancel()

	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
	}

	return iter.Err()
}

// Close closes the client.
func (s *RedisStorage) Close() error {
	return s.client.Close()
}
