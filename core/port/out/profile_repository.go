package out

import (
	"context"

	"github.com/kisxo/SikshaSathi-Backend/core/domain"
)

// ProfileRepository persists study profiles, one per user.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
	DeleteByUserID(ctx context.Context, userID int64) error
}
