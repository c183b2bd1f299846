package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/models"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type TraineeProfileStore interface {
	GetByUserID(ctx context.Context, userID string) (*models.TraineeProfile, error)
	Upsert(ctx context.Context, userID string, input repository.UpsertTraineeProfileInput) (*models.TraineeProfile, error)
}

type TrainerProfileStore interface {
	GetByUserID(ctx context.Context, userID string) (*models.TrainerProfile, error)
	Upsert(ctx context.Context, userID string, input repository.UpsertTrainerProfileInput) (*models.TrainerProfile, error)
}

var AllowedSpecializations = map[string]struct{}{
	"bodybuilding": {},
	"crossfit":     {},
	"yoga":         {},
	"ppt":          {},
	"diet":         {},
	"cardio":       {},
}

var allowedPlanDurations = map[int]struct{}{1: {}, 3: {}, 6: {}, 12: {}}

const defaultPlanDurationMonths = 1

type TraineeProfileInput struct {
	FullName      *string
	Email         *string
	Phone         *string
	Gender        *string
	Height        *float64
	Weight        *float64
	Waist         *float64
	ActivityLevel *string
	Goal          *string
	ProfileImage  *string
}

type PlanInput struct {
	Price    string
	Duration string
}

type CertificateInput struct {
	Name string
	File string
}

// TrainerProfileInput carries form values as sent by the client: map values
// may be blank, in which case the entry is dropped.
type TrainerProfileInput struct {
	FullName        string
	Gender          *string
	Bio             *string
	Specializations map[string]string
	Plans           map[string]PlanInput
	ProfileImage    *string
	Certificates    []CertificateInput
}

type ProfileService struct {
	traineeProfiles TraineeProfileStore
	trainerProfiles TrainerProfileStore
	storage         StorageService
	logger          *zap.Logger
}

func NewProfileService(
	traineeProfiles TraineeProfileStore,
	trainerProfiles TrainerProfileStore,
	storage StorageService,
	logger *zap.Logger,
) *ProfileService {
	if storage == nil {
		storage = UnconfiguredStorage{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		traineeProfiles: traineeProfiles,
		trainerProfiles: trainerProfiles,
		storage:         storage,
		logger:          logger,
	}
}

// GetTraineeProfile returns nil without error when the trainee has not
// saved a profile yet.
func (s *ProfileService) GetTraineeProfile(ctx context.Context, userID string) (*models.TraineeProfile, error) {
	profile, err := s.traineeProfiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) GetTrainerProfile(ctx context.Context, userID string) (*models.TrainerProfile, error) {
	profile, err := s.trainerProfiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) UpsertTraineeProfile(
	ctx context.Context,
	userID string,
	input TraineeProfileInput,
) (*models.TraineeProfile, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	gender, err := normalizeGender(input.Gender)
	if err != nil {
		return nil, err
	}
	for name, value := range map[string]*float64{"height": input.Height, "weight": input.Weight, "waist": input.Waist} {
		if value != nil && *value < 0 {
			return nil, fmt.Errorf("%w: %s must be 0 or greater", ErrInvalidInput, name)
		}
	}

	previous, err := s.GetTraineeProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	image, uploaded, err := s.resolveImage(ctx, input.ProfileImage, path.Join("trainees", userID))
	if err != nil {
		return nil, err
	}

	profile, err := s.traineeProfiles.Upsert(ctx, userID, repository.UpsertTraineeProfileInput{
		FullName:      trimmedOrNil(input.FullName),
		Email:         trimmedOrNil(input.Email),
		Phone:         trimmedOrNil(input.Phone),
		Gender:        gender,
		Height:        input.Height,
		Weight:        input.Weight,
		Waist:         input.Waist,
		ActivityLevel: trimmedOrNil(input.ActivityLevel),
		Goal:          trimmedOrNil(input.Goal),
		ProfileImage:  image,
	})
	if err != nil {
		return nil, err
	}

	if uploaded && previous != nil {
		s.discardImage(ctx, previous.ProfileImage)
	}
	return profile, nil
}

func (s *ProfileService) UpsertTrainerProfile(
	ctx context.Context,
	userID string,
	input TrainerProfileInput,
) (*models.TrainerProfile, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, fmt.Errorf("%w: full_name is required", ErrInvalidInput)
	}
	gender, err := normalizeGender(input.Gender)
	if err != nil {
		return nil, err
	}
	specializations, err := normalizeSpecializations(input.Specializations)
	if err != nil {
		return nil, err
	}
	plans, err := normalizePlans(input.Plans)
	if err != nil {
		return nil, err
	}

	previous, err := s.GetTrainerProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	image, uploaded, err := s.resolveImage(ctx, input.ProfileImage, path.Join("trainers", userID))
	if err != nil {
		return nil, err
	}
	certificates, err := s.resolveCertificates(ctx, input.Certificates, path.Join("trainers", userID, "certificates"))
	if err != nil {
		return nil, err
	}

	profile, err := s.trainerProfiles.Upsert(ctx, userID, repository.UpsertTrainerProfileInput{
		FullName:        fullName,
		Gender:          gender,
		Bio:             trimmedOrNil(input.Bio),
		Specializations: specializations,
		Plans:           plans,
		ProfileImage:    image,
		Certificates:    certificates,
	})
	if err != nil {
		return nil, err
	}

	if uploaded && previous != nil {
		s.discardImage(ctx, previous.ProfileImage)
	}
	return profile, nil
}

// resolveImage turns a submitted image into a stored URL. Data URLs are
// uploaded, http(s) URLs kept, and an empty value keeps whatever is stored.
func (s *ProfileService) resolveImage(ctx context.Context, value *string, folder string) (*string, bool, error) {
	raw := trimmedOrNil(value)
	if raw == nil {
		return nil, false, nil
	}
	url, uploaded, err := s.storeFile(ctx, *raw, folder)
	if err != nil {
		return nil, false, err
	}
	return &url, uploaded, nil
}

func (s *ProfileService) resolveCertificates(
	ctx context.Context,
	inputs []CertificateInput,
	folder string,
) ([]models.Certificate, error) {
	certificates := make([]models.Certificate, 0, len(inputs))
	for _, input := range inputs {
		name := strings.TrimSpace(input.Name)
		file := strings.TrimSpace(input.File)
		if name == "" && file == "" {
			continue
		}
		if name == "" {
			return nil, fmt.Errorf("%w: certificate name is required", ErrInvalidInput)
		}
		if file == "" {
			return nil, fmt.Errorf("%w: certificate %q has no file", ErrInvalidInput, name)
		}
		url, _, err := s.storeFile(ctx, file, folder)
		if err != nil {
			return nil, err
		}
		certificates = append(certificates, models.Certificate{Name: name, File: url})
	}
	return certificates, nil
}

func (s *ProfileService) storeFile(ctx context.Context, value string, folder string) (string, bool, error) {
	switch {
	case IsDataURL(value):
		url, err := s.storage.UploadDataURL(ctx, value, folder)
		if err != nil {
			if errors.Is(err, ErrInvalidDataURL) {
				return "", false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			return "", false, err
		}
		return url, true, nil
	case strings.HasPrefix(value, "https://") || strings.HasPrefix(value, "http://"):
		return value, false, nil
	default:
		return "", false, fmt.Errorf("%w: files must be a data URL or an http(s) URL", ErrInvalidInput)
	}
}

func (s *ProfileService) discardImage(ctx context.Context, previous *string) {
	if previous == nil || *previous == "" {
		return
	}
	if err := s.storage.DeleteFile(ctx, *previous); err != nil {
		s.logger.Debug("previous profile image not removed", zap.String("url", *previous), zap.Error(err))
	}
}

var allowedGenders = map[string]struct{}{
	"male":              {},
	"female":            {},
	"other":             {},
	"prefer_not_to_say": {},
}

func normalizeGender(value *string) (*string, error) {
	gender := trimmedOrNil(value)
	if gender == nil {
		return nil, nil
	}
	normalized := strings.ToLower(*gender)
	if _, ok := allowedGenders[normalized]; !ok {
		return nil, fmt.Errorf("%w: gender must be one of: male, female, other, prefer_not_to_say", ErrInvalidInput)
	}
	return &normalized, nil
}

// normalizeSpecializations keeps entries with a name and a positive number
// of years. Unknown specialization names are rejected.
func normalizeSpecializations(raw map[string]string) (map[string]int, error) {
	specializations := make(map[string]int, len(raw))
	for name, value := range raw {
		key := strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		if _, ok := AllowedSpecializations[key]; !ok {
			return nil, fmt.Errorf("%w: unknown specialization %q", ErrInvalidInput, key)
		}
		years, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: years for %q must be a whole number", ErrInvalidInput, key)
		}
		if years <= 0 {
			continue
		}
		specializations[key] = years
	}
	return specializations, nil
}

func normalizePlans(raw map[string]PlanInput) (map[models.PlanTier]models.Plan, error) {
	plans := make(map[models.PlanTier]models.Plan, len(raw))
	for name, input := range raw {
		tier := models.PlanTier(strings.ToLower(strings.TrimSpace(name)))
		priceText := strings.TrimSpace(input.Price)
		if tier == "" || priceText == "" {
			continue
		}
		if !tier.Valid() {
			return nil, fmt.Errorf("%w: plan must be one of: bronze, silver, gold", ErrInvalidInput)
		}
		price, err := decimal.NewFromString(priceText)
		if err != nil {
			return nil, fmt.Errorf("%w: price for %s plan must be a number", ErrInvalidInput, tier)
		}
		if !price.IsPositive() {
			continue
		}

		duration := defaultPlanDurationMonths
		if durationText := strings.TrimSpace(input.Duration); durationText != "" {
			duration, err = strconv.Atoi(durationText)
			if err != nil {
				return nil, fmt.Errorf("%w: duration for %s plan must be a whole number of months", ErrInvalidInput, tier)
			}
			if _, ok := allowedPlanDurations[duration]; !ok {
				return nil, fmt.Errorf("%w: duration for %s plan must be 1, 3, 6 or 12 months", ErrInvalidInput, tier)
			}
		}

		plans[tier] = models.Plan{Price: price.Round(2), DurationMonths: duration}
	}
	return plans, nil
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
