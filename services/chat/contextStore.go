// File: services/chat/contextStore.go
package chat

import (
	"context"
	"encoding/json"
	"time"

	"lexbook/models"

	"github.com/go-redis/redis/v8"
)

const chatContextPrefix = "chat:ctx:"

// ContextStore keeps the rolling conversation history per visitor.
type ContextStore interface {
	Get(ctx context.Context, visitorID string) (*models.ChatContext, error)
	Set(ctx context.Context, visitorID string, chatCtx *models.ChatContext) error
	Clear(ctx context.Context, visitorID string) error
}

type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) Get(ctx context.Context, visitorID string) (*models.ChatContext, error) {
	key := chatContextPrefix + visitorID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return &models.ChatContext{}, nil
	}
	if err != nil {
		return nil, err
	}
	var chatCtx models.ChatContext
	if err := json.Unmarshal([]byte(data), &chatCtx); err != nil {
		return nil, err
	}
	return &chatCtx, nil
}

func (s *RedisContextStore) Set(ctx context.Context, visitorID string, chatCtx *models.ChatContext) error {
	key := chatContextPrefix + visitorID
	b, err := json.Marshal(chatCtx)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, visitorID string) error {
	key := chatContextPrefix + visitorID
	return s.client.Del(ctx, key).Err()
}
