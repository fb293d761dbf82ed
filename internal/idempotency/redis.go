// Package idempotency guards settlement against duplicate submissions of the
// same client-supplied key.
package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/nikolayk812/bistro/internal/port"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "bistro:idempotency:"

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) (port.IdempotencyStore, error) {
	if client == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("ttl must be positive")
	}

	return &redisStore{client: client, ttl: ttl}, nil
}

func (s *redisStore) Reserve(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, fmt.Errorf("key is empty")
	}

	reserved, err := s.client.SetNX(ctx, keyPrefix+key, time.Now().UTC().Format(time.RFC3339Nano), s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("client.SetNX: %w", err)
	}

	return reserved, nil
}

func (s *redisStore) Release(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("client.Del: %w", err)
	}

	return nil
}
