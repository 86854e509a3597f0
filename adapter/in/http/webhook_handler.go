package http

import (
	"context"
	"encoding/base64"
	"sync/atomic"
	"time"

	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// NotificationHandler consumes a decoded Gmail push notification.
type NotificationHandler interface {
	HandleNotification(ctx context.Context, notification domain.PushNotification) error
}

// GmailPushNotification is the Pub/Sub push envelope.
type GmailPushNotification struct {
	Message struct {
		Data        string `json:"data"`
		MessageID   string `json:"messageId"`
		PublishTime string `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// WebhookMetrics counts webhook deliveries.
type WebhookMetrics struct {
	Processed  atomic.Int64
	Duplicates atomic.Int64
	Errors     atomic.Int64
}

// WebhookHandler receives Gmail push notifications from Pub/Sub.
// Every delivery is acknowledged with 200 so Pub/Sub never retries a
// permanently broken message.
type WebhookHandler struct {
	ingest         NotificationHandler
	redisClient    *redis.Client
	idempotencyTTL time.Duration
	metrics        WebhookMetrics
}

// NewWebhookHandler creates a WebhookHandler. The redis client is
// optional; without it duplicate suppression falls back to the
// database unique index alone.
func NewWebhookHandler(ingest NotificationHandler, redisClient *redis.Client, idempotencyTTL time.Duration) *WebhookHandler {
	if idempotencyTTL <= 0 {
		idempotencyTTL = 5 * time.Minute
	}
	return &WebhookHandler{
		ingest:         ingest,
		redisClient:    redisClient,
		idempotencyTTL: idempotencyTTL,
	}
}

// Register mounts the webhook route. It sits outside the authenticated
// API group.
func (h *WebhookHandler) Register(router fiber.Router) {
	router.Post("/webhooks/gmail", h.HandleGmailPush)
}

// Metrics exposes the delivery counters.
func (h *WebhookHandler) Metrics() map[string]int64 {
	return map[string]int64{
		"processed":  h.metrics.Processed.Load(),
		"duplicates": h.metrics.Duplicates.Load(),
		"errors":     h.metrics.Errors.Load(),
	}
}

// HandleGmailPush parses the Pub/Sub envelope and runs ingestion.
func (h *WebhookHandler) HandleGmailPush(c *fiber.Ctx) error {
	var envelope GmailPushNotification
	if err := c.BodyParser(&envelope); err != nil {
		logger.Warn("Webhook with unparseable body: %v", err)
		h.metrics.Errors.Add(1)
		return c.SendStatus(fiber.StatusOK)
	}

	if h.isDuplicateDelivery(c.Context(), envelope.Message.MessageID) {
		h.metrics.Duplicates.Add(1)
		return c.SendStatus(fiber.StatusOK)
	}

	notification, err := decodeNotification(envelope.Message.Data)
	if err != nil {
		logger.Warn("Webhook with undecodable payload: %v", err)
		h.metrics.Errors.Add(1)
		return c.SendStatus(fiber.StatusOK)
	}

	if err := h.ingest.HandleNotification(c.Context(), notification); err != nil {
		logger.Warn("Ingestion failed for %s: %v", notification.EmailAddress, err)
		h.metrics.Errors.Add(1)
		return c.SendStatus(fiber.StatusOK)
	}

	h.metrics.Processed.Add(1)
	return c.SendStatus(fiber.StatusOK)
}

func (h *WebhookHandler) isDuplicateDelivery(ctx context.Context, messageID string) bool {
	if h.redisClient == nil || messageID == "" {
		return false
	}

	key := "webhook:gmail:" + messageID
	set, err := h.redisClient.SetNX(ctx, key, "1", h.idempotencyTTL).Result()
	if err != nil {
		logger.Warn("Webhook idempotency check failed: %v", err)
		return false
	}
	return !set
}

func decodeNotification(data string) (domain.PushNotification, error) {
	var notification domain.PushNotification

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return notification, err
	}
	if err := json.Unmarshal(decoded, &notification); err != nil {
		return notification, err
	}
	return notification, nil
}
