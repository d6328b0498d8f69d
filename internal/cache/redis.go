package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/termbridge/backend/internal/models"
)

const (
	approvedContentKey     = "content:approved"
	moderationEventChannel = "moderation:events"
)

type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client
func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client: client,
		ctx:    ctx,
	}, nil
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// Approved-content cache
//
// The public approved list is the only hot read in the system. Any
// moderation decision or delete invalidates it.

// GetApprovedContent returns the cached approved list, or found=false on a
// miss.
func (r *RedisClient) GetApprovedContent() ([]models.ContentResponse, bool, error) {
	data, err := r.client.Get(r.ctx, approvedContentKey).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var contents []models.ContentResponse
	if err := json.Unmarshal([]byte(data), &contents); err != nil {
		return nil, false, err
	}
	return contents, true, nil
}

// SetApprovedContent caches the approved list
func (r *RedisClient) SetApprovedContent(contents []models.ContentResponse, ttl time.Duration) error {
	data, err := json.Marshal(contents)
	if err != nil {
		return err
	}
	return r.client.Set(r.ctx, approvedContentKey, data, ttl).Err()
}

// InvalidateApprovedContent drops the cached approved list
func (r *RedisClient) InvalidateApprovedContent() error {
	return r.client.Del(r.ctx, approvedContentKey).Err()
}

// Moderation event fan-out

// PublishModerationEvent broadcasts an event to all server instances
func (r *RedisClient) PublishModerationEvent(event models.ModerationEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.client.Publish(r.ctx, moderationEventChannel, data).Err()
}

// SubscribeModerationEvents subscribes to the moderation event channel.
// The caller owns the returned subscription.
func (r *RedisClient) SubscribeModerationEvents() *redis.PubSub {
	return r.client.Subscribe(r.ctx, moderationEventChannel)
}
