package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-for-auth-middleware"

func newAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New()
	app.Use(JWTAuth(testSecret))
	app.Get("/me", func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(int64)
		isAdmin, _ := c.Locals("user_is_admin").(bool)
		return c.JSON(fiber.Map{"user_id": userID, "is_admin": isAdmin})
	})
	app.Post("/webhooks/gmail", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"user_id":       float64(7),
		"user_is_admin": true,
		"iat":           now.Unix(),
		"exp":           now.Add(time.Hour).Unix(),
	}
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	app := newAuthApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signToken(t, testSecret, validClaims()))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	app := newAuthApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/me", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	app := newAuthApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signToken(t, "other-secret", validClaims()))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	app := newAuthApp(t)

	claims := validClaims()
	claims["iat"] = time.Now().Add(-2 * time.Hour).Unix()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()

	req := httptest.NewRequest(fiber.MethodGet, "/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signToken(t, testSecret, claims))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestJWTAuthSkipsWebhookPaths(t *testing.T) {
	app := newAuthApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/webhooks/gmail", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("webhook path must bypass auth, got %d", resp.StatusCode)
	}
}
