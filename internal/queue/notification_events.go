package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"memory-backend/internal/database"
)

const NotificationEventsChannel = "notification_events"

// NotificationEvent is fanned out over Redis pub/sub so connected websocket
// clients see new notifications without polling.
type NotificationEvent struct {
	NotificationID string    `json:"notification_id"`
	UserID         string    `json:"user_id"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}

// PublishNotificationEvent publishes an event to the notification channel.
func PublishNotificationEvent(ctx context.Context, notificationID, userID uuid.UUID, message string) error {
	if database.RedisClient == nil {
		return fmt.Errorf("Redis client not initialized")
	}

	event := NotificationEvent{
		NotificationID: notificationID.String(),
		UserID:         userID.String(),
		Message:        message,
		CreatedAt:      time.Now(),
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := database.RedisClient.Publish(ctx, NotificationEventsChannel, eventJSON).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// SubscribeNotificationEvents subscribes to the notification channel. The
// caller owns the returned PubSub and must Close it.
func SubscribeNotificationEvents(ctx context.Context) (*redis.PubSub, error) {
	if database.RedisClient == nil {
		return nil, fmt.Errorf("Redis client not initialized")
	}
	return database.RedisClient.Subscribe(ctx, NotificationEventsChannel), nil
}
