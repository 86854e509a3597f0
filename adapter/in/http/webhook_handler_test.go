package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/kisxo/SikshaSathi-Backend/core/domain"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
)

type fakeIngest struct {
	notifications []domain.PushNotification
	err           error
}

func (f *fakeIngest) HandleNotification(ctx context.Context, notification domain.PushNotification) error {
	f.notifications = append(f.notifications, notification)
	return f.err
}

func newWebhookApp(ingest *fakeIngest) *fiber.App {
	app := fiber.New()
	handler := NewWebhookHandler(ingest, nil, 0)
	handler.Register(app)
	return app
}

func pushBody(t *testing.T, emailAddress string, historyID uint64) []byte {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"emailAddress": emailAddress,
		"historyId":    historyID,
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	body, err := json.Marshal(map[string]any{
		"message": map[string]any{
			"data":      base64.StdEncoding.EncodeToString(payload),
			"messageId": "pubsub-1",
		},
		"subscription": "projects/p/subscriptions/s",
	})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return body
}

func postWebhook(t *testing.T, app *fiber.App, body []byte) int {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, "/webhooks/gmail", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestGmailPushDecodesNotification(t *testing.T) {
	ingest := &fakeIngest{}
	app := newWebhookApp(ingest)

	status := postWebhook(t, app, pushBody(t, "student@gmail.com", 42))
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	if len(ingest.notifications) != 1 {
		t.Fatalf("expected one notification, got %d", len(ingest.notifications))
	}
	got := ingest.notifications[0]
	if got.EmailAddress != "student@gmail.com" || got.HistoryID != 42 {
		t.Errorf("unexpected notification %+v", got)
	}
}

func TestGmailPushDecodesStringHistoryID(t *testing.T) {
	ingest := &fakeIngest{}
	app := newWebhookApp(ingest)

	// Pub/Sub payloads carry historyId as a quoted string.
	payload := []byte(`{"emailAddress":"student@gmail.com","historyId":"123"}`)
	body, err := json.Marshal(map[string]any{
		"message": map[string]any{
			"data":      base64.StdEncoding.EncodeToString(payload),
			"messageId": "pubsub-2",
		},
		"subscription": "projects/p/subscriptions/s",
	})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}

	if status := postWebhook(t, app, body); status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(ingest.notifications) != 1 {
		t.Fatalf("expected one notification, got %d", len(ingest.notifications))
	}
	got := ingest.notifications[0]
	if got.EmailAddress != "student@gmail.com" || got.HistoryID != 123 {
		t.Errorf("unexpected notification %+v", got)
	}
}

func TestGmailPushAcksBadPayload(t *testing.T) {
	ingest := &fakeIngest{}
	app := newWebhookApp(ingest)

	body := []byte(`{"message": {"data": "not-base64!!", "messageId": "m"}}`)
	if status := postWebhook(t, app, body); status != fiber.StatusOK {
		t.Fatalf("bad payload must still ack, got %d", status)
	}
	if len(ingest.notifications) != 0 {
		t.Error("bad payload must not reach ingestion")
	}
}

func TestGmailPushAcksIngestionFailure(t *testing.T) {
	ingest := &fakeIngest{err: fmt.Errorf("downstream unavailable")}
	app := newWebhookApp(ingest)

	if status := postWebhook(t, app, pushBody(t, "student@gmail.com", 7)); status != fiber.StatusOK {
		t.Fatalf("ingestion failure must still ack, got %d", status)
	}
}

func TestGmailPushMetrics(t *testing.T) {
	ingest := &fakeIngest{}
	handler := NewWebhookHandler(ingest, nil, 0)
	app := fiber.New()
	handler.Register(app)

	postWebhook(t, app, pushBody(t, "student@gmail.com", 1))
	postWebhook(t, app, []byte(`{"message": {"data": "???"}}`))

	metrics := handler.Metrics()
	if metrics["processed"] != 1 {
		t.Errorf("expected 1 processed, got %d", metrics["processed"])
	}
	if metrics["errors"] != 1 {
		t.Errorf("expected 1 error, got %d", metrics["errors"])
	}
}
