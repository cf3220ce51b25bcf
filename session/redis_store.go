package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the session under a single namespaced key, for headless
// embedders (server-side merchants) without a stable filesystem. Sessions
// are stored without TTL; lifetime is governed by the gateway's credential
// expiry, not by Redis.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore describes the newredisstore operation and its observable behavior.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		key:    prefix + ":session",
	}
}

// Hydrate describes the hydrate operation and its observable behavior.
func (s *RedisStore) Hydrate(ctx context.Context) (*Record, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, nil
	}
	if !rec.Valid() {
		return nil, nil
	}
	return &rec, nil
}

// Persist describes the persist operation and its observable behavior.
func (s *RedisStore) Persist(ctx context.Context, rec *Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Clear describes the clear operation and its observable behavior.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
