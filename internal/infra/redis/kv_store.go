package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"career-guidance-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// KVStore is a Redis-backed implementation of app.KeyValueStore.
// Keys are namespaced per profile:
//
//	career:profile:{profileID}:{key}
//
// A zero ttl keeps entries until they are deleted.
type KVStore struct {
	client    *redis.Client
	profileID string
	ttl       time.Duration
}

func NewKVStore(client *redis.Client, profileID string, ttl time.Duration) *KVStore {
	if profileID == "" {
		profileID = "default"
	}
	return &KVStore{
		client:    client,
		profileID: profileID,
		ttl:       ttl,
	}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

func (s *KVStore) Put(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) key(key string) string {
	return "career:profile:" + s.profileID + ":" + key
}
