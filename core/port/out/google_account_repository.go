package out

import (
	"context"
	"time"

	"github.com/kisxo/SikshaSathi-Backend/core/domain"
)

// GoogleAccountRepository persists linked Google accounts and their
// OAuth tokens.
type GoogleAccountRepository interface {
	Upsert(ctx context.Context, account *domain.GoogleAccount) error
	GetByUserID(ctx context.Context, userID int64) (*domain.GoogleAccount, error)
	GetByEmail(ctx context.Context, googleEmail string) (*domain.GoogleAccount, error)

	// UpdateTokens overwrites the access token and expiry after a
	// successful refresh. Both fields change together or not at all.
	UpdateTokens(ctx context.Context, userID int64, accessToken string, expiry time.Time) error
}
