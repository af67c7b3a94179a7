package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"memory-backend/internal/models"
	"memory-backend/internal/queue"
)

// NotificationService delivers notification events to live channels.
// Durable storage of the Notification row itself happens inside the
// moderation transaction; this service only handles best-effort fan-out.
type NotificationService struct {
	WebhookURL string

	client *http.Client
}

var NotificationSvc *NotificationService

func InitNotificationService(webhookURL string) *NotificationService {
	NotificationSvc = &NotificationService{
		WebhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
	return NotificationSvc
}

// Push fans a stored notification out to the Redis event channel and the
// configured webhook, if any. Errors are reported but non-fatal.
func (ns *NotificationService) Push(ctx context.Context, n models.Notification) error {
	var firstErr error

	if err := queue.PublishNotificationEvent(ctx, n.ID, n.UserID, n.Message); err != nil {
		log.Printf("⚠️  Failed to publish notification event: %v", err)
		firstErr = err
	}

	if ns.WebhookURL != "" {
		if err := ns.sendWebhook(ctx, n); err != nil {
			log.Printf("⚠️  Failed to deliver notification webhook: %v", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

func (ns *NotificationService) sendWebhook(ctx context.Context, n models.Notification) error {
	payload := map[string]interface{}{
		"notification_id": n.ID.String(),
		"user_id":         n.UserID.String(),
		"message":         n.Message,
		"created_at":      n.CreatedAt,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ns.WebhookURL, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ns.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
