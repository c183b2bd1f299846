package handlers

import (
	"context"
	"time"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/models"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/services"
	"github.com/gofiber/fiber/v2"
)

type identityApplicationService interface {
	Register(ctx context.Context, identity services.Identity, role string) (*models.User, bool, error)
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
	SignOut(ctx context.Context, identity services.Identity) error
}

// AuthHandler covers the parts of authentication this service owns. Sign-up
// and sign-in happen at the identity provider.
type AuthHandler struct {
	service    identityApplicationService
	signInPath string
}

func NewAuthHandler(service identityApplicationService, signInPath string) *AuthHandler {
	return &AuthHandler{service: service, signInPath: signInPath}
}

type registerRequest struct {
	Role string `json:"role"`
}

func identityFromLocals(c *fiber.Ctx) services.Identity {
	identity := services.Identity{}
	identity.UserID, _ = c.Locals("user_id").(string)
	identity.Email, _ = c.Locals("email").(string)
	identity.SessionID, _ = c.Locals("session_id").(string)
	identity.ExpiresAt, _ = c.Locals("token_expiry").(time.Time)
	return identity
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, created, err := h.service.Register(c.Context(), identityFromLocals(c), req.Role)
	if err != nil {
		return mapServiceError(c, err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	user, err := h.service.CurrentUser(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	if err := h.service.SignOut(c.Context(), identityFromLocals(c)); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"redirect": h.signInPath,
	})
}
