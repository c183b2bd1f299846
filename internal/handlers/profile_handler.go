package handlers

import (
	"context"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/models"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/services"
	"github.com/gofiber/fiber/v2"
)

type profileApplicationService interface {
	GetTraineeProfile(ctx context.Context, userID string) (*models.TraineeProfile, error)
	GetTrainerProfile(ctx context.Context, userID string) (*models.TrainerProfile, error)
	UpsertTraineeProfile(ctx context.Context, userID string, input services.TraineeProfileInput) (*models.TraineeProfile, error)
	UpsertTrainerProfile(ctx context.Context, userID string, input services.TrainerProfileInput) (*models.TrainerProfile, error)
}

type ProfileHandler struct {
	service profileApplicationService
}

func NewProfileHandler(service profileApplicationService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type traineeProfileRequest struct {
	FullName           *string        `json:"full_name"`
	Email              *string        `json:"email"`
	Phone              *string        `json:"phone"`
	Gender             *string        `json:"gender"`
	Height             optionalNumber `json:"height"`
	Weight             optionalNumber `json:"weight"`
	Waist              optionalNumber `json:"waist"`
	ActivityLevel      *string        `json:"activity_level"`
	Goal               *string        `json:"goal"`
	ProfileImage       *string        `json:"profile_image"`
	ProfileImageBase64 *string        `json:"profile_image_base64"`
}

type planRequest struct {
	Price    flexString `json:"price"`
	Duration flexString `json:"duration"`
}

type certificateRequest struct {
	Name string `json:"name"`
	File string `json:"file"`
}

type trainerProfileRequest struct {
	FullName        string                 `json:"full_name"`
	Gender          *string                `json:"gender"`
	Bio             *string                `json:"bio"`
	Specializations map[string]flexString  `json:"specializations"`
	Plans           map[string]planRequest `json:"plans"`
	ProfileImage    *string                `json:"profile_image"`
	Certificates    []certificateRequest   `json:"certificates"`
}

func (h *ProfileHandler) GetTraineeProfile(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	profile, err := h.service.GetTraineeProfile(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"profile": profile,
	})
}

func (h *ProfileHandler) UpsertTraineeProfile(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req traineeProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if message := validateTraineeProfileRequest(req); message != "" {
		return respondError(c, fiber.StatusBadRequest, message)
	}

	image := req.ProfileImage
	if image == nil || *image == "" {
		image = req.ProfileImageBase64
	}

	profile, err := h.service.UpsertTraineeProfile(c.Context(), userID, services.TraineeProfileInput{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		Gender:        req.Gender,
		Height:        req.Height.Value,
		Weight:        req.Weight.Value,
		Waist:         req.Waist.Value,
		ActivityLevel: req.ActivityLevel,
		Goal:          req.Goal,
		ProfileImage:  image,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"profile": profile,
	})
}

func (h *ProfileHandler) GetTrainerProfile(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	profile, err := h.service.GetTrainerProfile(c.Context(), userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"profile": profile,
	})
}

func (h *ProfileHandler) UpsertTrainerProfile(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req trainerProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if message := validateTrainerProfileRequest(req); message != "" {
		return respondError(c, fiber.StatusBadRequest, message)
	}

	input := services.TrainerProfileInput{
		FullName:        req.FullName,
		Gender:          req.Gender,
		Bio:             req.Bio,
		Specializations: make(map[string]string, len(req.Specializations)),
		Plans:           make(map[string]services.PlanInput, len(req.Plans)),
		ProfileImage:    req.ProfileImage,
		Certificates:    make([]services.CertificateInput, 0, len(req.Certificates)),
	}
	for name, years := range req.Specializations {
		input.Specializations[name] = string(years)
	}
	for tier, plan := range req.Plans {
		input.Plans[tier] = services.PlanInput{Price: string(plan.Price), Duration: string(plan.Duration)}
	}
	for _, certificate := range req.Certificates {
		input.Certificates = append(input.Certificates, services.CertificateInput{
			Name: certificate.Name,
			File: certificate.File,
		})
	}

	profile, err := h.service.UpsertTrainerProfile(c.Context(), userID, input)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"profile": profile,
	})
}
