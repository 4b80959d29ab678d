package assessmentstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "assessment:"

// RedisStore persists records as JSON values with an optional TTL. A zero TTL
// keeps records until evicted.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Find(ctx context.Context, fingerprint string) (*Record, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("store is nil")
	}
	fingerprint = strings.TrimSpace(fingerprint)
	if fingerprint == "" {
		return nil, fmt.Errorf("fingerprint is required")
	}
	raw, err := s.client.Get(ctx, redisKeyPrefix+fingerprint).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &rec, nil
}

func (s *RedisStore) Save(ctx context.Context, rec *Record) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("store is nil")
	}
	if rec == nil {
		return fmt.Errorf("record is required")
	}
	fingerprint := strings.TrimSpace(rec.Fingerprint)
	if fingerprint == "" {
		return fmt.Errorf("fingerprint is required")
	}
	stored := *rec
	now := time.Now()
	stored.UpdatedAt = now
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return s.client.Set(ctx, redisKeyPrefix+fingerprint, raw, s.ttl).Err()
}
