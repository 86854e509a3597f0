package out

import (
	"context"

	"github.com/kisxo/SikshaSathi-Backend/core/domain"
)

// MailProvider talks to the Gmail API on behalf of a user. All calls
// take a valid access token obtained from the token lifecycle.
type MailProvider interface {
	// FetchMessage retrieves a single message in full and normalizes
	// its headers and body.
	FetchMessage(ctx context.Context, accessToken, messageID string) (*domain.GmailMessage, error)

	// LatestMessageID returns the most recent inbox message id, or an
	// empty string with no error when the inbox is empty.
	LatestMessageID(ctx context.Context, accessToken string) (string, error)

	// ListMessageIDs returns up to maxResults recent message ids.
	ListMessageIDs(ctx context.Context, accessToken string, maxResults int64) ([]string, error)

	// StartWatch registers a push subscription on the user's inbox.
	StartWatch(ctx context.Context, accessToken, topicName string) (*domain.WatchReceipt, error)
}
