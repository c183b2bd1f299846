package middleware

import (
	"context"
	"strings"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type RevocationChecker interface {
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// AuthRequired accepts identity-provider access tokens and rejects sessions
// that were signed out through this service.
func AuthRequired(secret string, revocations RevocationChecker, signInPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return deny(c, fiber.StatusUnauthorized, "Missing authorization header", signInPath)
		}

		tokenString, ok := utils.BearerToken(authHeader)
		if !ok {
			return deny(c, fiber.StatusUnauthorized, "Invalid authorization header format", signInPath)
		}

		claims, err := utils.ValidateToken(tokenString, secret)
		if err != nil {
			return deny(c, fiber.StatusUnauthorized, "Invalid or expired token", signInPath)
		}

		if revocations != nil && claims.SessionID != "" {
			revoked, err := revocations.IsRevoked(c.Context(), claims.SessionID)
			if err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"success": false,
					"message": "Failed to verify session",
				})
			}
			if revoked {
				return deny(c, fiber.StatusUnauthorized, "Session has been signed out", signInPath)
			}
		}

		c.Locals("user_id", claims.UserID())
		c.Locals("email", claims.Email)
		c.Locals("session_id", claims.SessionID)
		c.Locals("token_expiry", claims.Expiry())

		return c.Next()
	}
}

// deny answers browser navigations with a redirect and API calls with JSON.
func deny(c *fiber.Ctx, status int, message string, signInPath string) error {
	if wantsHTML(c) && signInPath != "" {
		return c.Redirect(signInPath, fiber.StatusSeeOther)
	}
	body := fiber.Map{
		"success": false,
		"message": message,
	}
	if signInPath != "" {
		body["redirect"] = signInPath
	}
	return c.Status(status).JSON(body)
}

func wantsHTML(c *fiber.Ctx) bool {
	accept := c.Get(fiber.HeaderAccept)
	return strings.Contains(accept, fiber.MIMETextHTML)
}
