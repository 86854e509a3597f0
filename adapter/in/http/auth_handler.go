package http

import (
	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/core/service/auth"
	"github.com/kisxo/SikshaSathi-Backend/pkg/apperr"
	"github.com/kisxo/SikshaSathi-Backend/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AuthHandler serves login and Google account linking.
type AuthHandler struct {
	authService   *auth.Service
	googleService *auth.GoogleService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authService *auth.Service, googleService *auth.GoogleService) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		googleService: googleService,
	}
}

// Register mounts the auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	group := router.Group("/auth")
	group.Post("/login", h.Login)
	group.Get("/google/login", h.GoogleLogin)
	group.Get("/google/callback", h.GoogleCallback)
}

// Login issues a session token for valid credentials.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if input.Email == "" || input.Password == "" {
		return apperr.BadRequest("email and password are required")
	}

	pair, err := h.authService.Login(c.Context(), input)
	if err != nil {
		return err
	}
	return response.OK(c, pair)
}

// GoogleLogin redirects to the Google consent page.
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	state := uuid.NewString()
	return c.Redirect(h.googleService.AuthURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback links the Google account and issues a session token.
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return apperr.BadRequest("missing authorization code")
	}

	user, err := h.googleService.HandleCallback(c.Context(), code)
	if err != nil {
		return err
	}

	pair, err := h.authService.IssueToken(user)
	if err != nil {
		return err
	}
	return response.OK(c, pair)
}
