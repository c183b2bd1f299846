package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/models"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

type trainerDirectoryStore interface {
	List(ctx context.Context, filter repository.TrainerListFilter) ([]models.TrainerProfile, int, error)
	GetByUserID(ctx context.Context, userID string) (*models.TrainerProfile, error)
}

// Raw HTML in bios is escaped; WithUnsafe is deliberately not set.
var bioRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

type DirectoryQuery struct {
	Specialization string
	Search         string
	Page           int
	Limit          int
}

type DirectoryService struct {
	trainers trainerDirectoryStore
}

func NewDirectoryService(trainers trainerDirectoryStore) *DirectoryService {
	return &DirectoryService{trainers: trainers}
}

func (s *DirectoryService) ListTrainers(ctx context.Context, query DirectoryQuery) ([]models.TrainerCard, int, error) {
	specialization := strings.ToLower(strings.TrimSpace(query.Specialization))
	if specialization != "" {
		if _, ok := AllowedSpecializations[specialization]; !ok {
			return nil, 0, fmt.Errorf("%w: unknown specialization %q", ErrInvalidInput, specialization)
		}
	}
	page := query.Page
	if page <= 0 {
		page = 1
	}

	profiles, total, err := s.trainers.List(ctx, repository.TrainerListFilter{
		Specialization: specialization,
		Search:         query.Search,
		Offset:         (page - 1) * query.Limit,
		Limit:          query.Limit,
	})
	if err != nil {
		return nil, 0, err
	}

	cards := make([]models.TrainerCard, 0, len(profiles))
	for _, profile := range profiles {
		cards = append(cards, buildTrainerCard(profile))
	}
	return cards, total, nil
}

func (s *DirectoryService) GetTrainer(ctx context.Context, userID string) (*models.TrainerDetail, error) {
	if _, err := uuid.Parse(strings.TrimSpace(userID)); err != nil {
		return nil, ErrTrainerNotFound
	}
	profile, err := s.trainers.GetByUserID(ctx, strings.TrimSpace(userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTrainerNotFound
		}
		return nil, err
	}

	return &models.TrainerDetail{
		TrainerProfile:  *profile,
		BioHTML:         renderBio(profile.Bio),
		TotalExperience: profile.TotalExperience(),
	}, nil
}

func buildTrainerCard(profile models.TrainerProfile) models.TrainerCard {
	card := models.TrainerCard{
		ID:              profile.ID,
		UserID:          profile.UserID,
		FullName:        profile.FullName,
		Specializations: profile.Specializations,
		Plans:           profile.Plans,
		TotalExperience: profile.TotalExperience(),
	}
	if profile.Bio != nil {
		card.Bio = *profile.Bio
	}
	if profile.ProfileImage != nil {
		card.ProfileImage = *profile.ProfileImage
	}
	return card
}

func renderBio(bio *string) string {
	if bio == nil || strings.TrimSpace(*bio) == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := bioRenderer.Convert([]byte(*bio), &buf); err != nil {
		return html.EscapeString(*bio)
	}
	return buf.String()
}
