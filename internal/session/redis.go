package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/mortgage-calculator/pkg/mortgage"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps results in redis as JSON with a sliding expiry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// OpenRedisStore connects to redis and verifies the connection.
func OpenRedisStore(addr string, db int, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return NewRedisStore(client, ttl), nil
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: defaultTTL(ttl)}
}

// Load returns the result saved for id and refreshes its expiry.
func (s *RedisStore) Load(ctx context.Context, id string) (mortgage.RepaymentResult, error) {
	data, err := s.client.GetEx(ctx, key(id), s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return mortgage.RepaymentResult{}, ErrNotFound
	}
	if err != nil {
		return mortgage.RepaymentResult{}, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	var result mortgage.RepaymentResult
	if err := json.Unmarshal(data, &result); err != nil {
		return mortgage.RepaymentResult{}, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return result, nil
}

// Save stores result for id, replacing any earlier result.
func (s *RedisStore) Save(ctx context.Context, id string, result mortgage.RepaymentResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", id, err)
	}
	if err := s.client.Set(ctx, key(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", id, err)
	}
	return nil
}

// Delete removes the result for id.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
