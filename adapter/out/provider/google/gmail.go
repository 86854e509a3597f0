// Package google provides Gmail and YouTube API adapters.
package google

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/core/port/out"
	"github.com/kisxo/SikshaSathi-Backend/pkg/apperr"
	"github.com/kisxo/SikshaSathi-Backend/pkg/httputil"

	json "github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// gmailProvider implements out.MailProvider against the Gmail API.
// It is stateless: every call carries the caller's access token. The
// endpoint override exists for tests running against a local server.
type gmailProvider struct {
	endpoint string
}

// NewGmailProvider creates a Gmail provider using the shared pooled
// HTTP client.
func NewGmailProvider() out.MailProvider {
	return &gmailProvider{}
}

func (p *gmailProvider) service(ctx context.Context, accessToken string) (*gmail.Service, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httputil.GoogleClient())
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}))

	opts := []option.ClientOption{option.WithHTTPClient(client)}
	if p.endpoint != "" {
		opts = append(opts, option.WithEndpoint(p.endpoint))
	}

	service, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}
	return service, nil
}

// FetchMessage retrieves a message in full format and normalizes it.
func (p *gmailProvider) FetchMessage(ctx context.Context, accessToken, messageID string) (*domain.GmailMessage, error) {
	service, err := p.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	msg, err := service.Users.Messages.Get("me", messageID).
		Format("full").
		Context(ctx).
		Do()
	if err != nil {
		return nil, mapGoogleError(err)
	}

	return normalizeMessage(msg), nil
}

// LatestMessageID returns the newest inbox message id. An empty inbox
// yields an empty id with no error.
func (p *gmailProvider) LatestMessageID(ctx context.Context, accessToken string) (string, error) {
	service, err := p.service(ctx, accessToken)
	if err != nil {
		return "", err
	}

	resp, err := service.Users.Messages.List("me").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", mapGoogleError(err)
	}
	if len(resp.Messages) == 0 {
		return "", nil
	}
	return resp.Messages[0].Id, nil
}

// ListMessageIDs returns up to maxResults recent message ids.
func (p *gmailProvider) ListMessageIDs(ctx context.Context, accessToken string, maxResults int64) ([]string, error) {
	service, err := p.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	resp, err := service.Users.Messages.List("me").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, mapGoogleError(err)
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		ids = append(ids, m.Id)
	}
	return ids, nil
}

// StartWatch registers a push subscription on the INBOX label.
func (p *gmailProvider) StartWatch(ctx context.Context, accessToken, topicName string) (*domain.WatchReceipt, error) {
	service, err := p.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	req := &gmail.WatchRequest{
		TopicName:         topicName,
		LabelIds:          []string{"INBOX"},
		LabelFilterAction: "include",
	}

	resp, err := service.Users.Watch("me", req).Context(ctx).Do()
	if err != nil {
		return nil, mapGoogleError(err)
	}

	return &domain.WatchReceipt{
		HistoryID:  resp.HistoryId,
		Expiration: resp.Expiration,
	}, nil
}

// mapGoogleError converts Gmail API failures into provider errors that
// carry the upstream status and body.
func mapGoogleError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return apperr.ProviderError(gerr.Code, gerr.Message)
	}
	return apperr.Wrap(err, apperr.CodeProviderError, "gmail request failed", 502)
}

// normalizeMessage flattens the Gmail message into header fields and a
// decoded body.
func normalizeMessage(msg *gmail.Message) *domain.GmailMessage {
	gm := &domain.GmailMessage{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
	}

	if msg.Payload != nil {
		for _, header := range msg.Payload.Headers {
			switch header.Name {
			case "From":
				gm.From = header.Value
			case "To":
				gm.To = header.Value
			case "Subject":
				gm.Subject = header.Value
			case "Date":
				gm.Date = header.Value
			}
		}
		gm.Body = extractBody(msg.Payload)
	}

	if gm.Body == "" {
		gm.Body = "(No content found)"
	}

	if raw, err := json.Marshal(msg); err == nil {
		gm.Raw = raw
	}

	return gm
}

// extractBody walks the MIME tree depth-first and returns the first
// decodable plain-text or HTML part. Attachments and decode errors are
// skipped, not surfaced. Invalid UTF-8 sequences are dropped.
func extractBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}

	if isTextPart(payload.MimeType) && payload.Body != nil && payload.Body.Data != "" {
		if data, err := base64.URLEncoding.DecodeString(payload.Body.Data); err == nil {
			return strings.ToValidUTF8(string(data), "")
		}
	}

	for _, part := range payload.Parts {
		if body := extractBody(part); body != "" {
			return body
		}
	}

	return ""
}

func isTextPart(mimeType string) bool {
	return mimeType == "text/plain" || mimeType == "text/html"
}

// Ensure gmailProvider implements out.MailProvider
var _ out.MailProvider = (*gmailProvider)(nil)
