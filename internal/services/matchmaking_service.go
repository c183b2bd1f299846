package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/models"
	"github.com/jackc/pgx/v5"
)

type TrainerMatcher interface {
	ListAll(ctx context.Context) ([]models.TrainerProfile, error)
}

type traineeProfileReader interface {
	GetByUserID(ctx context.Context, userID string) (*models.TraineeProfile, error)
}

// goalRule maps words found in a trainee's free-text goal to the
// specializations that serve it.
type goalRule struct {
	keywords        []string
	specializations []string
}

var goalRules = []goalRule{
	{keywords: []string{"weight loss", "lose weight", "fat loss", "slim"}, specializations: []string{"diet", "cardio"}},
	{keywords: []string{"muscle", "bulk", "mass", "bodybuilding"}, specializations: []string{"bodybuilding"}},
	{keywords: []string{"strength", "strong", "power"}, specializations: []string{"bodybuilding", "crossfit"}},
	{keywords: []string{"flexib", "mobility", "stretch", "yoga"}, specializations: []string{"yoga"}},
	{keywords: []string{"endurance", "stamina", "running", "cardio"}, specializations: []string{"cardio", "crossfit"}},
	{keywords: []string{"nutrition", "diet", "meal"}, specializations: []string{"diet"}},
	{keywords: []string{"rehab", "posture", "therapy"}, specializations: []string{"ppt"}},
}

type MatchmakingService struct {
	trainers TrainerMatcher
	trainees traineeProfileReader
}

func NewMatchmakingService(trainers TrainerMatcher, trainees traineeProfileReader) *MatchmakingService {
	return &MatchmakingService{trainers: trainers, trainees: trainees}
}

// RecommendForTrainee ranks trainers against the caller's saved profile.
func (s *MatchmakingService) RecommendForTrainee(ctx context.Context, traineeID string, limit int) ([]models.TrainerCard, error) {
	profile, err := s.trainees.GetByUserID(ctx, traineeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTraineeNotFound
		}
		return nil, err
	}
	return s.GetMatchedTrainers(ctx, profile, limit)
}

func (s *MatchmakingService) GetMatchedTrainers(
	ctx context.Context,
	trainee *models.TraineeProfile,
	limit int,
) ([]models.TrainerCard, error) {
	trainers, err := s.trainers.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	wanted := goalSpecializations(trainee)
	matched := make([]models.TrainerCard, 0, len(trainers))
	for _, trainer := range trainers {
		card := buildTrainerCard(trainer)
		card.MatchScore = calculateMatchScore(wanted, &trainer)
		matched = append(matched, card)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].MatchScore == matched[j].MatchScore {
			return matched[i].TotalExperience > matched[j].TotalExperience
		}
		return matched[i].MatchScore > matched[j].MatchScore
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	return matched, nil
}

func calculateMatchScore(wanted map[string]struct{}, trainer *models.TrainerProfile) int {
	score := 0
	for specialization := range wanted {
		if years, ok := trainer.Specializations[specialization]; ok && years > 0 {
			score += 40
		}
	}

	if trainer.TotalExperience() > 3 {
		score += 15
	}
	if len(trainer.Certificates) > 0 {
		score += 10
	}
	if len(trainer.Plans) > 0 {
		score += 10
	}
	if trainer.ProfileImage != nil && *trainer.ProfileImage != "" {
		score += 5
	}

	return score
}

func goalSpecializations(trainee *models.TraineeProfile) map[string]struct{} {
	wanted := make(map[string]struct{})
	if trainee == nil || trainee.Goal == nil {
		return wanted
	}

	goal := normalize(*trainee.Goal)
	if goal == "" {
		return wanted
	}
	if _, ok := AllowedSpecializations[goal]; ok {
		wanted[goal] = struct{}{}
	}
	for _, rule := range goalRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(goal, keyword) {
				for _, specialization := range rule.specializations {
					wanted[specialization] = struct{}{}
				}
				break
			}
		}
	}
	return wanted
}

func normalize(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	value = strings.ReplaceAll(value, "_", " ")
	value = strings.ReplaceAll(value, "-", " ")
	return strings.Join(strings.Fields(value), " ")
}
