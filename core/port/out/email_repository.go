package out

import (
	"context"

	"github.com/kisxo/SikshaSathi-Backend/core/domain"
)

// EmailRepository persists ingested Gmail messages.
type EmailRepository interface {
	Create(ctx context.Context, email *domain.Email) error
	ExistsByMessageID(ctx context.Context, userID int64, messageID string) (bool, error)
	ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*domain.Email, error)
}

// SummaryRepository persists LLM email summaries.
type SummaryRepository interface {
	Create(ctx context.Context, summary *domain.EmailSummary) error
	ExistsByMessageID(ctx context.Context, userID int64, messageID string) (bool, error)
	ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*domain.EmailSummary, error)
	Delete(ctx context.Context, userID, summaryID int64) error
}
