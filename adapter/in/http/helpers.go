// Package http contains the Fiber HTTP handlers.
package http

import (
	"github.com/kisxo/SikshaSathi-Backend/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// GetUserID extracts the authenticated user id from the request
// context.
func GetUserID(c *fiber.Ctx) (int64, error) {
	userID, ok := c.Locals("user_id").(int64)
	if !ok {
		return 0, apperr.Unauthorized("")
	}
	return userID, nil
}

// IsAdmin reports whether the authenticated user has the admin flag.
func IsAdmin(c *fiber.Ctx) bool {
	isAdmin, _ := c.Locals("user_is_admin").(bool)
	return isAdmin
}

// RequireSelfOrAdmin authorizes access to another user's resource.
func RequireSelfOrAdmin(c *fiber.Ctx, targetUserID int64) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	if userID != targetUserID && !IsAdmin(c) {
		return apperr.Forbidden("")
	}
	return nil
}

// RequireAdmin authorizes admin-only endpoints.
func RequireAdmin(c *fiber.Ctx) error {
	if _, err := GetUserID(c); err != nil {
		return err
	}
	if !IsAdmin(c) {
		return apperr.Forbidden("")
	}
	return nil
}
