package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "conversation:"

// RedisStore keeps conversation contexts in Redis with a per-key TTL,
// refreshed on every write. It is the production alternative to
// MemoryStore when chat runs behind more than one process.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore. ttl <= 0 falls back to 24h.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Get returns the stored context for id, or (nil, nil) when the key is
// missing or expired.
func (s *RedisStore) Get(ctx context.Context, id string) (*Context, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading conversation %s: %w", id, err)
	}

	var c Context
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decoding conversation %s: %w", id, err)
	}
	return &c, nil
}

// Upsert stores c and refreshes its TTL.
func (s *RedisStore) Upsert(ctx context.Context, c *Context) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding conversation %s: %w", c.ID, err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+c.ID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("writing conversation %s: %w", c.ID, err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
