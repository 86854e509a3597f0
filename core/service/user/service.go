// Package user implements account management.
package user

import (
	"context"
	"errors"
	"strings"

	"github.com/kisxo/SikshaSathi-Backend/adapter/out/persistence"
	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/core/port/out"
	"github.com/kisxo/SikshaSathi-Backend/core/service/auth"
	"github.com/kisxo/SikshaSathi-Backend/pkg/apperr"
	"github.com/kisxo/SikshaSathi-Backend/pkg/logger"
)

// Service manages user accounts.
type Service struct {
	users out.UserRepository
}

// NewService creates a user Service.
func NewService(users out.UserRepository) *Service {
	return &Service{users: users}
}

// Create registers a new account.
func (s *Service) Create(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FullName:       strings.TrimSpace(input.FullName),
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:          input.Phone,
		HashedPassword: hashed,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, persistence.ErrDuplicate) {
			return nil, apperr.BadRequest("Email Already exists!")
		}
		return nil, err
	}

	logger.Info("Registered user %d", user.ID)
	return user, nil
}

// GetByID returns a user.
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, apperr.NotFound("user")
		}
		return nil, err
	}
	return user, nil
}

// List returns a page of users.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return s.users.List(ctx, limit, offset)
}

// Update applies a partial update to a user.
func (s *Service) Update(ctx context.Context, id int64, input domain.UpdateUserInput) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		name := strings.TrimSpace(*input.FullName)
		if len(name) < 5 || len(name) > 30 {
			return nil, apperr.BadRequest("Full name must be 5 to 30 characters")
		}
		user.FullName = name
	}
	if input.Phone != nil {
		if len(*input.Phone) > 10 {
			return nil, apperr.BadRequest("Phone number must be at most 10 digits")
		}
		user.Phone = *input.Phone
	}
	if input.Password != nil {
		hashed, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = hashed
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user and their dependent data.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return apperr.NotFound("user")
		}
		return err
	}
	return nil
}

func validateCreateInput(input domain.CreateUserInput) error {
	name := strings.TrimSpace(input.FullName)
	if len(name) < 5 || len(name) > 30 {
		return apperr.BadRequest("Full name must be 5 to 30 characters")
	}
	email := strings.TrimSpace(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return apperr.BadRequest("A valid email is required")
	}
	if len(input.Phone) > 10 {
		return apperr.BadRequest("Phone number must be at most 10 digits")
	}
	if len(input.Password) < 8 {
		return apperr.BadRequest("Password must be at least 8 characters")
	}
	return nil
}
