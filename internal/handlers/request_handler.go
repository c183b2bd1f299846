package handlers

import (
	"context"
	"strings"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/models"
	"github.com/gofiber/fiber/v2"
)

type requestApplicationService interface {
	CreateRequest(ctx context.Context, traineeID, trainerProfileID string) (*models.TraineeRequest, error)
	GetRequestStatus(ctx context.Context, traineeID, trainerProfileID string) (models.RequestStatusResult, error)
	ListRequestsForTrainer(ctx context.Context, callerID, trainerID string) ([]models.TraineeRequestDetail, error)
	ListAcceptedTrainees(ctx context.Context, trainerID string) ([]models.AcceptedTrainee, error)
	AcceptRequest(ctx context.Context, callerID, requestID string) (*models.TraineeRequest, error)
	RejectRequest(ctx context.Context, callerID, requestID string) (*models.TraineeRequest, error)
}

type RequestHandler struct {
	service requestApplicationService
}

func NewRequestHandler(service requestApplicationService) *RequestHandler {
	return &RequestHandler{service: service}
}

type createRequestRequest struct {
	TrainerProfileID string `json:"trainer_profile_id"`
}

func (h *RequestHandler) CreateRequest(c *fiber.Ctx) error {
	traineeID, ok := callerID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req createRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(req.TrainerProfileID) == "" {
		return respondError(c, fiber.StatusBadRequest, "Trainer profile id required")
	}

	request, err := h.service.CreateRequest(c.Context(), traineeID, req.TrainerProfileID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"request": request,
	})
}

func (h *RequestHandler) GetRequestStatus(c *fiber.Ctx) error {
	traineeID, ok := callerID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	trainerProfileID := strings.TrimSpace(c.Query("trainer_profile_id"))
	if trainerProfileID == "" {
		return respondError(c, fiber.StatusBadRequest, "Trainer profile id required")
	}

	result, err := h.service.GetRequestStatus(c.Context(), traineeID, trainerProfileID)
	if err != nil {
		return mapServiceError(c, err)
	}

	body := fiber.Map{
		"success": true,
		"exists":  result.Exists,
	}
	if result.Status != nil {
		body["status"] = *result.Status
	}
	return c.JSON(body)
}

func (h *RequestHandler) ListRequests(c *fiber.Ctx) error {
	trainerID, ok := callerID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	requests, err := h.service.ListRequestsForTrainer(c.Context(), trainerID, strings.TrimSpace(c.Query("trainer_id")))
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"requests": requests,
	})
}

func (h *RequestHandler) ListMyTrainees(c *fiber.Ctx) error {
	trainerID, ok := callerID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	trainees, err := h.service.ListAcceptedTrainees(c.Context(), trainerID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"trainees": trainees,
	})
}

func (h *RequestHandler) AcceptRequest(c *fiber.Ctx) error {
	return h.decide(c, h.service.AcceptRequest)
}

func (h *RequestHandler) RejectRequest(c *fiber.Ctx) error {
	return h.decide(c, h.service.RejectRequest)
}

func (h *RequestHandler) decide(
	c *fiber.Ctx,
	action func(ctx context.Context, callerID, requestID string) (*models.TraineeRequest, error),
) error {
	trainerID, ok := callerID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	requestID := strings.TrimSpace(c.Params("id"))
	if requestID == "" {
		return respondError(c, fiber.StatusBadRequest, "Request id required")
	}

	request, err := action(c.Context(), trainerID, requestID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"request": request,
	})
}
