package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pendingKeyPrefix = "pending:reg:"

// RedisPendingStore Redis实现，TTL由SET的EX参数强制执行
type RedisPendingStore struct {
	client *redis.Client
}

var _ PendingStore = (*RedisPendingStore)(nil)

func NewRedisPendingStore(client *redis.Client) *RedisPendingStore {
	return &RedisPendingStore{client: client}
}

func (s *RedisPendingStore) Put(ctx context.Context, handle string, reg PendingRegistration, ttl time.Duration) error {
	data, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("failed to marshal pending registration: %w", err)
	}
	// SET覆盖旧值并重置过期时间，天然满足后写覆盖语义
	return s.client.Set(ctx, pendingKeyPrefix+handle, data, ttl).Err()
}

func (s *RedisPendingStore) Get(ctx context.Context, handle string) (PendingRegistration, error) {
	data, err := s.client.Get(ctx, pendingKeyPrefix+handle).Bytes()
	if errors.Is(err, redis.Nil) {
		return PendingRegistration{}, ErrPendingNotFound
	}
	if err != nil {
		return PendingRegistration{}, fmt.Errorf("failed to load pending registration: %w", err)
	}

	var reg PendingRegistration
	if err := json.Unmarshal(data, &reg); err != nil {
		return PendingRegistration{}, fmt.Errorf("failed to unmarshal pending registration: %w", err)
	}
	return reg, nil
}

func (s *RedisPendingStore) Delete(ctx context.Context, handle string) error {
	return s.client.Del(ctx, pendingKeyPrefix+handle).Err()
}
