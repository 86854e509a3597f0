package persistence

import (
	"context"

	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/core/port/out"

	"github.com/jmoiron/sqlx"
)

// EmailAdapter implements out.EmailRepository using PostgreSQL.
type EmailAdapter struct {
	db *sqlx.DB
}

// NewEmailAdapter creates a new EmailAdapter.
func NewEmailAdapter(db *sqlx.DB) *EmailAdapter {
	return &EmailAdapter{db: db}
}

// Create inserts an ingested email. A unique index on
// (user_id, message_id) backs duplicate detection under concurrency.
func (a *EmailAdapter) Create(ctx context.Context, email *domain.Email) error {
	query := `
		INSERT INTO emails (user_id, message_id, thread_id, sender, recipient,
		                    subject, date, body, raw)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := a.db.QueryRowContext(ctx, query,
		email.UserID,
		email.MessageID,
		email.ThreadID,
		email.Sender,
		email.Recipient,
		email.Subject,
		email.Date,
		email.Body,
		email.Raw,
	).Scan(&email.ID, &email.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// ExistsByMessageID reports whether a message was already ingested.
func (a *EmailAdapter) ExistsByMessageID(ctx context.Context, userID int64, messageID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM emails WHERE user_id = $1 AND message_id = $2)`

	if err := a.db.GetContext(ctx, &exists, query, userID, messageID); err != nil {
		return false, err
	}
	return exists, nil
}

// ListByUserID returns ingested emails, newest first.
func (a *EmailAdapter) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*domain.Email, error) {
	var emails []*domain.Email
	query := `
		SELECT id, user_id, message_id, thread_id, sender, recipient,
		       subject, date, body, raw, created_at
		FROM emails
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	if err := a.db.SelectContext(ctx, &emails, query, userID, limit, offset); err != nil {
		return nil, err
	}
	return emails, nil
}

// Ensure EmailAdapter implements out.EmailRepository
var _ out.EmailRepository = (*EmailAdapter)(nil)
