package http

import (
	"github.com/kisxo/SikshaSathi-Backend/core/service/study"
	"github.com/kisxo/SikshaSathi-Backend/pkg/apperr"
	"github.com/kisxo/SikshaSathi-Backend/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// GoalHandler serves AI study goal generation.
type GoalHandler struct {
	goalService *study.GoalService
}

// NewGoalHandler creates a GoalHandler.
func NewGoalHandler(goalService *study.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// Register mounts the goal routes.
func (h *GoalHandler) Register(router fiber.Router) {
	group := router.Group("/goals")
	group.Post("/generate", h.Generate)
	group.Get("/my-goals", h.List)
}

type generateGoalRequest struct {
	Exam string `json:"exam"`
}

// Generate builds a study plan for an exam and stores it.
func (h *GoalHandler) Generate(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	var req generateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	goal, err := h.goalService.Generate(c.Context(), userID, req.Exam)
	if err != nil {
		return err
	}
	return response.Created(c, goal)
}

// List returns the authenticated user's goals.
func (h *GoalHandler) List(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	pagination := response.GetPagination(c, 20, 100)
	goals, err := h.goalService.List(c.Context(), userID, pagination.Limit, pagination.Offset)
	if err != nil {
		return err
	}
	return response.OK(c, goals)
}
