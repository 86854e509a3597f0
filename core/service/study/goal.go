// Package study implements AI study plans, resources, and chat.
package study

import (
	"context"

	"github.com/kisxo/SikshaSathi-Backend/core/agent/llm"
	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/core/port/out"
	"github.com/kisxo/SikshaSathi-Backend/pkg/apperr"
	"github.com/kisxo/SikshaSathi-Backend/pkg/logger"

	json "github.com/goccy/go-json"
)

// GoalService generates and lists AI study plans.
type GoalService struct {
	planner out.LLM
	goals   out.GoalRepository
}

// NewGoalService creates a GoalService. The planner should be the
// larger model.
func NewGoalService(planner out.LLM, goals out.GoalRepository) *GoalService {
	return &GoalService{planner: planner, goals: goals}
}

// Generate produces a study plan for the exam or topic and persists it.
// Model output is validated before anything is stored.
func (s *GoalService) Generate(ctx context.Context, userID int64, exam string) (*domain.Goal, error) {
	if exam == "" {
		return nil, apperr.MissingField("exam")
	}

	raw, err := s.planner.CompleteJSON(ctx, llm.GoalSystemPrompt(), llm.GoalUserPrompt(exam))
	if err != nil {
		return nil, apperr.LLMError(err)
	}

	payload, err := llm.ValidateGoalPayload(raw)
	if err != nil {
		logger.Warn("Rejected goal payload for user %d: %v", userID, err)
		return nil, apperr.BadRequest("AI output is not valid JSON")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	goal := &domain.Goal{
		UserID: userID,
		Data:   data,
	}
	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// List returns the user's study plans.
func (s *GoalService) List(ctx context.Context, userID int64, limit, offset int) ([]*domain.Goal, error) {
	goals, err := s.goals.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return nil, apperr.NotFound("goals")
	}
	return goals, nil
}
