package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/kisxo/SikshaSathi-Backend/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWTAuth validates HS256 session tokens and stores the user identity
// in request locals. Webhook paths are skipped because Pub/Sub calls
// them without credentials.
func JWTAuth(secret string) fiber.Handler {
	secretBytes := []byte(secret)

	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		path := c.Path()
		if strings.Contains(path, "/webhook/") || strings.Contains(path, "/webhooks/") {
			return c.Next()
		}

		tokenString := bearerToken(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization"})
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unsupported signing method: %v", token.Header["alg"])
			}
			return secretBytes, nil
		})
		if err != nil {
			logger.WithError(err).Warn("JWT validation failed")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}
		if !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid claims"})
		}

		if exp, ok := claims["exp"].(float64); ok {
			if time.Now().Unix() > int64(exp) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "token expired",
					"code":  "TOKEN_EXPIRED",
				})
			}
		}

		// Reject tokens issued in the future, allowing 1 minute skew.
		if iat, ok := claims["iat"].(float64); ok {
			if time.Unix(int64(iat), 0).After(time.Now().Add(time.Minute)) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "token issued in the future",
					"code":  "INVALID_TOKEN_TIME",
				})
			}
		}

		userID, ok := claims["user_id"].(float64)
		if !ok || userID <= 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing user id in token"})
		}

		isAdmin, _ := claims["user_is_admin"].(bool)

		c.Locals("user_id", int64(userID))
		c.Locals("user_is_admin", isAdmin)
		c.Locals("claims", claims)

		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return c.Query("token")
}
