// Package persistence provides database adapters.
package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/core/port/out"

	"github.com/jmoiron/sqlx"
)

// UserAdapter implements out.UserRepository using PostgreSQL.
type UserAdapter struct {
	db *sqlx.DB
}

// NewUserAdapter creates a new UserAdapter.
func NewUserAdapter(db *sqlx.DB) *UserAdapter {
	return &UserAdapter{db: db}
}

const userColumns = `user_id, user_full_name, user_email, user_phone,
       user_hashed_password, user_is_admin, user_data, user_created_date`

// Create inserts a user and fills in the generated id.
func (a *UserAdapter) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (user_full_name, user_email, user_phone,
		                   user_hashed_password, user_is_admin, user_data)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING user_id, user_created_date`

	err := a.db.QueryRowContext(ctx, query,
		user.FullName,
		user.Email,
		user.Phone,
		user.HashedPassword,
		user.IsAdmin,
		user.DataConsent,
	).Scan(&user.ID, &user.CreatedDate)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByID returns a user by id.
func (a *UserAdapter) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	if err := a.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns a user by email.
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE user_email = $1`

	if err := a.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// List returns users ordered by creation date.
func (a *UserAdapter) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	var users []*domain.User
	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY user_created_date DESC
		LIMIT $1 OFFSET $2`

	if err := a.db.SelectContext(ctx, &users, query, limit, offset); err != nil {
		return nil, err
	}
	return users, nil
}

// Update rewrites the mutable user fields.
func (a *UserAdapter) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET user_full_name = $1, user_phone = $2, user_hashed_password = $3,
		    user_is_admin = $4, user_data = $5
		WHERE user_id = $6`

	result, err := a.db.ExecContext(ctx, query,
		user.FullName,
		user.Phone,
		user.HashedPassword,
		user.IsAdmin,
		user.DataConsent,
		user.ID,
	)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a user. Dependent rows cascade.
func (a *UserAdapter) Delete(ctx context.Context, id int64) error {
	result, err := a.db.ExecContext(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return err
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Ensure UserAdapter implements out.UserRepository
var _ out.UserRepository = (*UserAdapter)(nil)
