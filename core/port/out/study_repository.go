package out

import (
	"context"

	"github.com/kisxo/SikshaSathi-Backend/core/domain"
)

// GoalRepository persists generated study plans.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) error
	ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*domain.Goal, error)
}

// ResourceRepository persists saved study resources.
type ResourceRepository interface {
	Create(ctx context.Context, resource *domain.Resource) error
	ListByUserID(ctx context.Context, userID int64, resourceType string, limit, offset int) ([]*domain.Resource, error)
}

// ChatRepository persists saved chat sessions.
type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) error
	ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*domain.Chat, error)
}
