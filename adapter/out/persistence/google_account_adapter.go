package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/core/port/out"
	"github.com/kisxo/SikshaSathi-Backend/pkg/crypto"
	"github.com/kisxo/SikshaSathi-Backend/pkg/logger"

	"github.com/jmoiron/sqlx"
)

// GoogleAccountAdapter implements out.GoogleAccountRepository using
// PostgreSQL. OAuth tokens are encrypted at rest when an encryption key
// is configured.
type GoogleAccountAdapter struct {
	db                *sqlx.DB
	encryptionEnabled bool
}

// NewGoogleAccountAdapter creates a new GoogleAccountAdapter.
func NewGoogleAccountAdapter(db *sqlx.DB) *GoogleAccountAdapter {
	err := crypto.Init()
	encryptionEnabled := err == nil
	if !encryptionEnabled {
		logger.Warn("Token encryption disabled: %v", err)
	} else {
		logger.Info("Token encryption enabled")
	}

	return &GoogleAccountAdapter{
		db:                db,
		encryptionEnabled: encryptionEnabled,
	}
}

// encryptToken encrypts a token if encryption is enabled
func (a *GoogleAccountAdapter) encryptToken(token string) string {
	if !a.encryptionEnabled || token == "" {
		return token
	}
	encrypted, err := crypto.EncryptToken(token)
	if err != nil {
		logger.Warn("Failed to encrypt token: %v", err)
		return token
	}
	return encrypted
}

// decryptToken decrypts a token if it appears to be encrypted
func (a *GoogleAccountAdapter) decryptToken(token string) string {
	if token == "" || !crypto.IsEncrypted(token) {
		return token
	}
	decrypted, err := crypto.DecryptToken(token)
	if err != nil {
		// Token might not be encrypted (legacy), return as-is
		return token
	}
	return decrypted
}

func (a *GoogleAccountAdapter) decryptAccount(account *domain.GoogleAccount) {
	if account == nil {
		return
	}
	account.AccessToken = a.decryptToken(account.AccessToken)
	account.RefreshToken = a.decryptToken(account.RefreshToken)
}

const googleAccountColumns = `google_account_id, user_id, google_email,
       access_token, refresh_token, token_expiry, created_at`

// Upsert inserts or replaces the linked account for the user. Each
// user holds at most one row. A returning user keeps their existing
// refresh token when Google omits one from the new grant. Linking a
// Google email already held by another user fails with ErrDuplicate.
func (a *GoogleAccountAdapter) Upsert(ctx context.Context, account *domain.GoogleAccount) error {
	query := `
		INSERT INTO google_accounts (user_id, google_email, access_token,
		                             refresh_token, token_expiry)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET google_email = EXCLUDED.google_email,
		    access_token = EXCLUDED.access_token,
		    refresh_token = CASE
		        WHEN EXCLUDED.refresh_token = '' THEN google_accounts.refresh_token
		        ELSE EXCLUDED.refresh_token
		    END,
		    token_expiry = EXCLUDED.token_expiry
		RETURNING google_account_id, created_at`

	err := a.db.QueryRowContext(ctx, query,
		account.UserID,
		account.GoogleEmail,
		a.encryptToken(account.AccessToken),
		a.encryptToken(account.RefreshToken),
		account.TokenExpiry,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		// The google_email unique constraint fires when the email is
		// linked to a different user.
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByUserID returns the linked account for a user.
func (a *GoogleAccountAdapter) GetByUserID(ctx context.Context, userID int64) (*domain.GoogleAccount, error) {
	var account domain.GoogleAccount
	query := `SELECT ` + googleAccountColumns + ` FROM google_accounts WHERE user_id = $1`

	if err := a.db.GetContext(ctx, &account, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	a.decryptAccount(&account)
	return &account, nil
}

// GetByEmail returns the linked account for a Google email address.
func (a *GoogleAccountAdapter) GetByEmail(ctx context.Context, googleEmail string) (*domain.GoogleAccount, error) {
	var account domain.GoogleAccount
	query := `SELECT ` + googleAccountColumns + ` FROM google_accounts WHERE google_email = $1`

	if err := a.db.GetContext(ctx, &account, query, googleEmail); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	a.decryptAccount(&account)
	return &account, nil
}

// UpdateTokens overwrites the access token and expiry in one statement.
func (a *GoogleAccountAdapter) UpdateTokens(ctx context.Context, userID int64, accessToken string, expiry time.Time) error {
	query := `
		UPDATE google_accounts
		SET access_token = $1, token_expiry = $2
		WHERE user_id = $3`

	result, err := a.db.ExecContext(ctx, query, a.encryptToken(accessToken), expiry, userID)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Ensure GoogleAccountAdapter implements out.GoogleAccountRepository
var _ out.GoogleAccountRepository = (*GoogleAccountAdapter)(nil)
