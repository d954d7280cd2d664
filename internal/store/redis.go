package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/i474232898/weather-search/internal/weather"
)

const keyPrefix = "weather-search:payload:"

// RedisStore is a payload cache shared between backend instances. Expiry is
// delegated to Redis key TTLs.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to addr and verifies the connection with PING.
func NewRedisStore(ctx context.Context, addr string, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// Save stores payload as JSON under key with the configured TTL.
func (s *RedisStore) Save(ctx context.Context, key string, payload weather.Payload) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return s.client.Set(ctx, keyPrefix+key, b, s.ttl).Err()
}

// Get returns the cached payload for key.
func (s *RedisStore) Get(ctx context.Context, key string) (weather.Payload, error) {
	b, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return weather.Payload{}, ErrNotFound
		}
		return weather.Payload{}, err
	}
	var p weather.Payload
	if err := json.Unmarshal(b, &p); err != nil {
		return weather.Payload{}, fmt.Errorf("unmarshal payload: %w", err)
	}
	return p, nil
}

// Prune is a no-op; Redis expires keys on its own.
func (s *RedisStore) Prune(context.Context) int {
	return 0
}

// Close releases the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
