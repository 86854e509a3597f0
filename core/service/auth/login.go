package auth

import (
	"context"
	"errors"
	"time"

	"github.com/kisxo/SikshaSathi-Backend/adapter/out/persistence"
	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/core/port/out"
	"github.com/kisxo/SikshaSathi-Backend/pkg/apperr"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Service handles password login and token issuance.
type Service struct {
	users     out.UserRepository
	jwtSecret []byte
	jwtExpiry time.Duration
}

// NewService creates an auth Service.
func NewService(users out.UserRepository, jwtSecret string, jwtExpiry time.Duration) *Service {
	if jwtExpiry == 0 {
		jwtExpiry = 24 * time.Hour
	}
	return &Service{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		jwtExpiry: jwtExpiry,
	}
}

// Login verifies credentials and issues a session token. Wrong email
// and wrong password return the same error.
func (s *Service) Login(ctx context.Context, input domain.LoginInput) (*domain.TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return nil, apperr.Unauthorized("Incorrect email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.Password)); err != nil {
		return nil, apperr.Unauthorized("Incorrect email or password")
	}

	return s.IssueToken(user)
}

// IssueToken signs a JWT for the user.
func (s *Service) IssueToken(user *domain.User) (*domain.TokenPair, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":       user.ID,
		"user_is_admin": user.IsAdmin,
		"iat":           now.Unix(),
		"exp":           now.Add(s.jwtExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken: signed,
		TokenType:   "bearer",
	}, nil
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
