package persistence

import (
	"context"

	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/core/port/out"

	"github.com/jmoiron/sqlx"
)

// SummaryAdapter implements out.SummaryRepository using PostgreSQL.
type SummaryAdapter struct {
	db *sqlx.DB
}

// NewSummaryAdapter creates a new SummaryAdapter.
func NewSummaryAdapter(db *sqlx.DB) *SummaryAdapter {
	return &SummaryAdapter{db: db}
}

// Create inserts an email summary. The unique index on
// (user_id, message_id) rejects concurrent duplicates.
func (a *SummaryAdapter) Create(ctx context.Context, summary *domain.EmailSummary) error {
	query := `
		INSERT INTO email_summaries (user_id, message_id, summary)
		VALUES ($1, $2, $3)
		RETURNING id, created_date`

	err := a.db.QueryRowContext(ctx, query,
		summary.UserID,
		summary.MessageID,
		summary.Summary,
	).Scan(&summary.ID, &summary.CreatedDate)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// ExistsByMessageID reports whether a summary already exists for the
// message.
func (a *SummaryAdapter) ExistsByMessageID(ctx context.Context, userID int64, messageID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM email_summaries WHERE user_id = $1 AND message_id = $2)`

	if err := a.db.GetContext(ctx, &exists, query, userID, messageID); err != nil {
		return false, err
	}
	return exists, nil
}

// ListByUserID returns summaries, newest first.
func (a *SummaryAdapter) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*domain.EmailSummary, error) {
	var summaries []*domain.EmailSummary
	query := `
		SELECT id, user_id, message_id, summary, created_date
		FROM email_summaries
		WHERE user_id = $1
		ORDER BY created_date DESC
		LIMIT $2 OFFSET $3`

	if err := a.db.SelectContext(ctx, &summaries, query, userID, limit, offset); err != nil {
		return nil, err
	}
	return summaries, nil
}

// Delete removes a summary owned by the user.
func (a *SummaryAdapter) Delete(ctx context.Context, userID, summaryID int64) error {
	query := `DELETE FROM email_summaries WHERE id = $1 AND user_id = $2`

	result, err := a.db.ExecContext(ctx, query, summaryID, userID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Ensure SummaryAdapter implements out.SummaryRepository
var _ out.SummaryRepository = (*SummaryAdapter)(nil)
