// Package domain defines the core business entities.
package domain

import "time"

// User is a registered account.
type User struct {
	ID             int64     `json:"user_id" db:"user_id"`
	FullName       string    `json:"user_full_name" db:"user_full_name"`
	Email          string    `json:"user_email" db:"user_email"`
	Phone          string    `json:"user_phone" db:"user_phone"`
	HashedPassword string    `json:"-" db:"user_hashed_password"`
	IsAdmin        bool      `json:"user_is_admin" db:"user_is_admin"`
	DataConsent    bool      `json:"user_data" db:"user_data"`
	CreatedDate    time.Time `json:"user_created_date" db:"user_created_date"`
}

// CreateUserInput is the payload for registering a user.
type CreateUserInput struct {
	FullName string `json:"user_full_name"`
	Email    string `json:"user_email"`
	Phone    string `json:"user_phone"`
	Password string `json:"user_password"`
}

// UpdateUserInput holds optional fields for a user update.
type UpdateUserInput struct {
	FullName *string `json:"user_full_name"`
	Phone    *string `json:"user_phone"`
	Password *string `json:"user_password"`
}

// LoginInput is the credential payload for password login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair is the issued session token.
type TokenPair struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
