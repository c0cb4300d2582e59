package ai

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"closetcircle/models"

	"github.com/go-redis/redis/v8"
)

const conversationPrefix = "assistant:conv:"

// RedisContextStore persists one Conversation per id with a sliding TTL.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

// Get returns the stored conversation, or a fresh one when none exists.
func (s *RedisContextStore) Get(ctx context.Context, conversationID string) (*models.Conversation, error) {
	data, err := s.client.Get(ctx, conversationPrefix+conversationID).Bytes()
	if errors.Is(err, redis.Nil) {
		return &models.Conversation{ID: conversationID}, nil
	}
	if err != nil {
		return nil, err
	}
	var conv models.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, err
	}
	conv.ID = conversationID
	return &conv, nil
}

func (s *RedisContextStore) Set(ctx context.Context, conv *models.Conversation) error {
	conv.UpdatedAt = time.Now().UTC()
	b, err := json.Marshal(conv)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, conversationPrefix+conv.ID, b, s.ttl).Err()
}

// ClearSession resets the search session and keeps the identity slot.
func (s *RedisContextStore) ClearSession(ctx context.Context, conversationID string) error {
	conv, err := s.Get(ctx, conversationID)
	if err != nil {
		return err
	}
	conv.Session = models.SessionState{}
	return s.Set(ctx, conv)
}

// Clear drops the whole conversation, identity included.
func (s *RedisContextStore) Clear(ctx context.Context, conversationID string) error {
	return s.client.Del(ctx, conversationPrefix+conversationID).Err()
}
