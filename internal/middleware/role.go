package middleware

import (
	"context"
	"errors"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

type RoleLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// RequireRole lets the request through only when the stored role of the
// authenticated user equals role. It reads, never writes.
func RequireRole(users RoleLookup, role models.Role, signInPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("user_id").(string)
		if !ok || userID == "" {
			return deny(c, fiber.StatusUnauthorized, "Authentication required", signInPath)
		}

		user, err := users.GetByID(c.Context(), userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return deny(c, fiber.StatusUnauthorized, "Account is not registered", signInPath)
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Failed to load account",
			})
		}

		if user.Role != role {
			return deny(c, fiber.StatusForbidden, "This area is only available to "+string(role)+"s", signInPath)
		}

		c.Locals("role", string(user.Role))
		return c.Next()
	}
}
