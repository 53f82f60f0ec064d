package redis

// Package redis provides Redis-based adapters for the job board UI.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Kabuna254/Job-App/internal/ports"
)

// DefaultKeyPrefix namespaces client state keys.
const DefaultKeyPrefix = "jobboard:"

// KVStore is a Redis-backed client state store for production use.
// Every write refreshes the key's TTL when one is configured.
type KVStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ ports.KVStore = (*KVStore)(nil)

// KVStoreOptions configures a KVStore.
type KVStoreOptions struct {
	Prefix string
	TTL    time.Duration // zero keeps keys until deleted
}

// NewKVStore creates a Redis-backed KV store.
func NewKVStore(client redis.UniversalClient, opts KVStoreOptions) *KVStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &KVStore{client: client, prefix: prefix, ttl: opts.TTL}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ports.ErrKeyNotFound
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return val, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
