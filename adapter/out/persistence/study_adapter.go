package persistence

import (
	"context"

	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/core/port/out"

	"github.com/jmoiron/sqlx"
)

// GoalAdapter implements out.GoalRepository using PostgreSQL.
type GoalAdapter struct {
	db *sqlx.DB
}

// NewGoalAdapter creates a new GoalAdapter.
func NewGoalAdapter(db *sqlx.DB) *GoalAdapter {
	return &GoalAdapter{db: db}
}

// Create inserts a generated study plan.
func (a *GoalAdapter) Create(ctx context.Context, goal *domain.Goal) error {
	query := `
		INSERT INTO goals (user_id, data)
		VALUES ($1, $2)
		RETURNING id, created_date`

	return a.db.QueryRowContext(ctx, query, goal.UserID, goal.Data).
		Scan(&goal.ID, &goal.CreatedDate)
}

// ListByUserID returns study plans, newest first.
func (a *GoalAdapter) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*domain.Goal, error) {
	var goals []*domain.Goal
	query := `
		SELECT id, user_id, data, created_date
		FROM goals
		WHERE user_id = $1
		ORDER BY created_date DESC
		LIMIT $2 OFFSET $3`

	if err := a.db.SelectContext(ctx, &goals, query, userID, limit, offset); err != nil {
		return nil, err
	}
	return goals, nil
}

// ResourceAdapter implements out.ResourceRepository using PostgreSQL.
type ResourceAdapter struct {
	db *sqlx.DB
}

// NewResourceAdapter creates a new ResourceAdapter.
func NewResourceAdapter(db *sqlx.DB) *ResourceAdapter {
	return &ResourceAdapter{db: db}
}

// Create inserts a saved resource.
func (a *ResourceAdapter) Create(ctx context.Context, resource *domain.Resource) error {
	query := `
		INSERT INTO resources (user_id, data, resource_type)
		VALUES ($1, $2, $3)
		RETURNING id, created_date`

	return a.db.QueryRowContext(ctx, query,
		resource.UserID,
		resource.Data,
		resource.ResourceType,
	).Scan(&resource.ID, &resource.CreatedDate)
}

// ListByUserID returns resources, optionally filtered by type.
func (a *ResourceAdapter) ListByUserID(ctx context.Context, userID int64, resourceType string, limit, offset int) ([]*domain.Resource, error) {
	var resources []*domain.Resource

	if resourceType != "" {
		query := `
			SELECT id, user_id, data, resource_type, created_date
			FROM resources
			WHERE user_id = $1 AND resource_type = $2
			ORDER BY created_date DESC
			LIMIT $3 OFFSET $4`
		if err := a.db.SelectContext(ctx, &resources, query, userID, resourceType, limit, offset); err != nil {
			return nil, err
		}
		return resources, nil
	}

	query := `
		SELECT id, user_id, data, resource_type, created_date
		FROM resources
		WHERE user_id = $1
		ORDER BY created_date DESC
		LIMIT $2 OFFSET $3`
	if err := a.db.SelectContext(ctx, &resources, query, userID, limit, offset); err != nil {
		return nil, err
	}
	return resources, nil
}

// ChatAdapter implements out.ChatRepository using PostgreSQL.
type ChatAdapter struct {
	db *sqlx.DB
}

// NewChatAdapter creates a new ChatAdapter.
func NewChatAdapter(db *sqlx.DB) *ChatAdapter {
	return &ChatAdapter{db: db}
}

// Create inserts a saved chat session.
func (a *ChatAdapter) Create(ctx context.Context, chat *domain.Chat) error {
	query := `
		INSERT INTO chats (user_id, chat_title, data)
		VALUES ($1, $2, $3)
		RETURNING id, created_date`

	return a.db.QueryRowContext(ctx, query,
		chat.UserID,
		chat.Title,
		chat.Data,
	).Scan(&chat.ID, &chat.CreatedDate)
}

// ListByUserID returns saved chats, newest first.
func (a *ChatAdapter) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*domain.Chat, error) {
	var chats []*domain.Chat
	query := `
		SELECT id, user_id, chat_title, data, created_date
		FROM chats
		WHERE user_id = $1
		ORDER BY created_date DESC
		LIMIT $2 OFFSET $3`

	if err := a.db.SelectContext(ctx, &chats, query, userID, limit, offset); err != nil {
		return nil, err
	}
	return chats, nil
}

// Interface guards
var (
	_ out.GoalRepository     = (*GoalAdapter)(nil)
	_ out.ResourceRepository = (*ResourceAdapter)(nil)
	_ out.ChatRepository     = (*ChatAdapter)(nil)
)
