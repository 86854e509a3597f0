package http

import (
	"strconv"

	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/core/service/user"
	"github.com/kisxo/SikshaSathi-Backend/pkg/apperr"
	"github.com/kisxo/SikshaSathi-Backend/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// UserHandler serves account management.
type UserHandler struct {
	userService *user.Service
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userService *user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterPublic mounts the open registration route.
func (h *UserHandler) RegisterPublic(router fiber.Router) {
	router.Post("/users", h.Create)
}

// Register mounts the authenticated user routes. Listing and reading
// arbitrary users is admin-only.
func (h *UserHandler) Register(router fiber.Router) {
	group := router.Group("/users")
	group.Get("/", h.List)
	group.Get("/self", h.GetSelf)
	group.Patch("/self", h.UpdateSelf)
	group.Get("/:id", h.GetByID)
	group.Delete("/:id", h.Delete)
}

// Create registers a new account.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	created, err := h.userService.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return response.Created(c, created)
}

// List returns all users. Admin only.
func (h *UserHandler) List(c *fiber.Ctx) error {
	if err := RequireAdmin(c); err != nil {
		return err
	}

	pagination := response.GetPagination(c, 50, 200)
	users, err := h.userService.List(c.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		return err
	}
	return response.OKWithMeta(c, users, &response.Meta{
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	})
}

// GetSelf returns the authenticated user.
func (h *UserHandler) GetSelf(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	found, err := h.userService.GetByID(c.Context(), userID)
	if err != nil {
		return err
	}
	return response.OK(c, found)
}

// UpdateSelf applies a partial update to the authenticated user.
func (h *UserHandler) UpdateSelf(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return apperr.BadRequest("invalid request body")
	}

	updated, err := h.userService.Update(c.Context(), userID, input)
	if err != nil {
		return err
	}
	return response.OK(c, updated)
}

// GetByID returns any user. Admin only.
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	if err := RequireAdmin(c); err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	found, err := h.userService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, found)
}

// Delete removes a user. Admin only.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := RequireAdmin(c); err != nil {
		return err
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.userService.Delete(c.Context(), id); err != nil {
		return err
	}
	return response.NoContent(c)
}

func parseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest("invalid id")
	}
	return id, nil
}
