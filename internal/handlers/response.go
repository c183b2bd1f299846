package handlers

import (
	"errors"
	"strings"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func callerID(c *fiber.Ctx) (string, bool) {
	userID, ok := c.Locals("user_id").(string)
	return userID, ok && userID != ""
}

// mapServiceError is the single translation from service errors to HTTP.
func mapServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, inputMessage(err))
	case errors.Is(err, services.ErrUnauthenticated):
		return respondError(c, fiber.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, services.ErrForbidden):
		return respondError(c, fiber.StatusForbidden, "Forbidden")
	case errors.Is(err, services.ErrTrainerNotFound):
		return respondError(c, fiber.StatusNotFound, "Trainer profile not found")
	case errors.Is(err, services.ErrTraineeNotFound):
		return respondError(c, fiber.StatusNotFound, "Trainee not found")
	case errors.Is(err, services.ErrRequestNotFound):
		return respondError(c, fiber.StatusNotFound, "Request not found")
	case errors.Is(err, services.ErrRequestExists):
		return respondError(c, fiber.StatusConflict, "Request already sent")
	case errors.Is(err, services.ErrInvalidStateTransition):
		return respondError(c, fiber.StatusConflict, "Request is no longer pending")
	case errors.Is(err, services.ErrRoleConflict):
		return respondError(c, fiber.StatusConflict, "Account already registered with a different role")
	case errors.Is(err, services.ErrUpstream):
		return respondError(c, fiber.StatusBadGateway, "Upstream service unavailable")
	case errors.Is(err, pgx.ErrNoRows):
		return respondError(c, fiber.StatusNotFound, "Not found")
	default:
		return respondError(c, fiber.StatusInternalServerError, "Server error")
	}
}

func inputMessage(err error) string {
	message := strings.TrimPrefix(err.Error(), services.ErrInvalidInput.Error()+": ")
	if message == services.ErrInvalidInput.Error() {
		return "Invalid request"
	}
	return message
}
