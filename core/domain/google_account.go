package domain

import "time"

// GoogleAccount links a user to a Google identity and stores the OAuth
// token pair. Tokens are encrypted at rest by the persistence layer.
type GoogleAccount struct {
	ID           int64     `json:"google_account_id" db:"google_account_id"`
	UserID       int64     `json:"user_id" db:"user_id"`
	GoogleEmail  string    `json:"google_email" db:"google_email"`
	AccessToken  string    `json:"-" db:"access_token"`
	RefreshToken string    `json:"-" db:"refresh_token"`
	TokenExpiry  time.Time `json:"token_expiry" db:"token_expiry"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// OAuthTokens is the token material received from the provider after an
// authorization code exchange or a refresh.
type OAuthTokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}
