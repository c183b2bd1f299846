package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/models"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/services"
	"github.com/gofiber/fiber/v2"
)

type trainerDirectory interface {
	ListTrainers(ctx context.Context, query services.DirectoryQuery) ([]models.TrainerCard, int, error)
	GetTrainer(ctx context.Context, userID string) (*models.TrainerDetail, error)
}

type trainerMatchmaker interface {
	RecommendForTrainee(ctx context.Context, traineeID string, limit int) ([]models.TrainerCard, error)
}

type TrainerDirectoryHandler struct {
	directory  trainerDirectory
	matchmaker trainerMatchmaker
}

func NewTrainerDirectoryHandler(directory trainerDirectory, matchmaker trainerMatchmaker) *TrainerDirectoryHandler {
	return &TrainerDirectoryHandler{directory: directory, matchmaker: matchmaker}
}

// ListTrainers serves the public directory. Filters: specialization, q.
func (h *TrainerDirectoryHandler) ListTrainers(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	trainers, total, err := h.directory.ListTrainers(c.Context(), services.DirectoryQuery{
		Specialization: strings.TrimSpace(c.Query("specialization")),
		Search:         strings.TrimSpace(c.Query("q")),
		Page:           page,
		Limit:          limit,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"trainers":   trainers,
		"pagination": buildPaginationMeta(page, limit, total),
	})
}

func (h *TrainerDirectoryHandler) GetTrainer(c *fiber.Ctx) error {
	trainer, err := h.directory.GetTrainer(c.Context(), c.Params("id"))
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"trainer": trainer,
	})
}

// GetRecommendedTrainers ranks trainers against the calling trainee's goal.
func (h *TrainerDirectoryHandler) GetRecommendedTrainers(c *fiber.Ctx) error {
	traineeID, ok := callerID(c)
	if !ok {
		return respondError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	_, limit := pageParams(c)
	trainers, err := h.matchmaker.RecommendForTrainee(c.Context(), traineeID, limit)
	if err != nil {
		if errors.Is(err, services.ErrTraineeNotFound) {
			return respondError(c, fiber.StatusNotFound, "Complete your profile to get recommendations")
		}
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"trainers": trainers,
	})
}
