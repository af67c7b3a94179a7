package handlers

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gofiber/websocket/v2"

	"memory-backend/config"
	"memory-backend/internal/queue"
	"memory-backend/internal/utils"
)

// HandleNotificationSocket streams notification events to an authenticated
// owner. The token travels as a query parameter because browsers cannot set
// headers on websocket upgrades.
func HandleNotificationSocket(c *websocket.Conn) {
	defer c.Close()

	claims, err := utils.ParseToken(c.Query("token"), config.Cfg.JWTSecret)
	if err != nil {
		_ = c.WriteJSON(map[string]string{"error": "Authentication required"})
		return
	}
	userID, _, err := utils.ClaimsToIdentity(claims)
	if err != nil {
		_ = c.WriteJSON(map[string]string{"error": "Authentication required"})
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubsub, err := queue.SubscribeNotificationEvents(ctx)
	if err != nil {
		_ = c.WriteJSON(map[string]string{"error": "Live notifications unavailable"})
		return
	}
	defer pubsub.Close()

	// Drain client frames so we notice the peer going away.
	go func() {
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			return
		}

		var event queue.NotificationEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("⚠️  Malformed notification event: %v", err)
			continue
		}
		if event.UserID != userID.String() {
			continue
		}

		if err := c.WriteJSON(event); err != nil {
			return
		}
	}
}
