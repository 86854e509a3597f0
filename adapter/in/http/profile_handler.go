package http

import (
	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/core/service/profile"
	"github.com/kisxo/SikshaSathi-Backend/pkg/apperr"
	"github.com/kisxo/SikshaSathi-Backend/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler serves study profile management.
type ProfileHandler struct {
	profileService *profile.Service
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(profileService *profile.Service) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// Register mounts the profile routes. Reading and writing another
// user's profile requires admin.
func (h *ProfileHandler) Register(router fiber.Router) {
	group := router.Group("/profiles")
	group.Post("/", h.Create)
	group.Get("/", h.List)
	group.Get("/:user_id", h.GetByUserID)
	group.Put("/:user_id", h.Update)
	group.Delete("/:user_id", h.Delete)
}

// Create creates the profile for the authenticated user.
func (h *ProfileHandler) Create(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.Profile
	if err := c.BodyParser(&input); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	input.UserID = userID

	created, err := h.profileService.Create(c.Context(), &input)
	if err != nil {
		return err
	}
	return response.Created(c, created)
}

// List returns all profiles. Admin only.
func (h *ProfileHandler) List(c *fiber.Ctx) error {
	if err := RequireAdmin(c); err != nil {
		return err
	}

	pagination := response.GetPagination(c, 50, 200)
	profiles, err := h.profileService.List(c.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		return err
	}
	return response.OKWithMeta(c, profiles, &response.Meta{
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	})
}

// GetByUserID returns a user's profile. Self or admin.
func (h *ProfileHandler) GetByUserID(c *fiber.Ctx) error {
	targetID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}
	if err := RequireSelfOrAdmin(c, targetID); err != nil {
		return err
	}

	found, err := h.profileService.GetByUserID(c.Context(), targetID)
	if err != nil {
		return err
	}
	return response.OK(c, found)
}

// Update replaces a user's profile. Self or admin.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	targetID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}
	if err := RequireSelfOrAdmin(c, targetID); err != nil {
		return err
	}

	var input domain.Profile
	if err := c.BodyParser(&input); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	input.UserID = targetID

	updated, err := h.profileService.Update(c.Context(), &input)
	if err != nil {
		return err
	}
	return response.OK(c, updated)
}

// Delete removes a user's profile. Admin only.
func (h *ProfileHandler) Delete(c *fiber.Ctx) error {
	if err := RequireAdmin(c); err != nil {
		return err
	}

	targetID, err := parseIDParam(c, "user_id")
	if err != nil {
		return err
	}

	if err := h.profileService.Delete(c.Context(), targetID); err != nil {
		return err
	}
	return response.NoContent(c)
}
