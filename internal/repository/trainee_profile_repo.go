package repository

import (
	"context"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/models"
)

type UpsertTraineeProfileInput struct {
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

type TraineeProfileRepository struct {
	db DBTX
}

func NewTraineeProfileRepository(db DBTX) *TraineeProfileRepository {
	return &TraineeProfileRepository{db: db}
}

func (r *TraineeProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.TraineeProfile, error) {
	query := `
		SELECT id, user_id, full_name, email, phone, gender, height, weight, waist,
			   activity_level, goal, profile_image, created_at, updated_at
		FROM trainee_profiles
		WHERE user_id = $1
	`
	var profile models.TraineeProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.Email,
		&profile.Phone,
		&profile.Gender,
		&profile.Height,
		&profile.Weight,
		&profile.Waist,
		&profile.ActivityLevel,
		&profile.Goal,
		&profile.ProfileImage,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert writes every field as given except profile_image, which keeps the
// stored value when the input leaves it nil.
func (r *TraineeProfileRepository) Upsert(
	ctx context.Context,
	userID string,
	input UpsertTraineeProfileInput,
) (*models.TraineeProfile, error) {
	query := `
		INSERT INTO trainee_profiles (
			user_id, full_name, email, phone, gender, height, weight, waist,
			activity_level, goal, profile_image
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE
		SET full_name = EXCLUDED.full_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			gender = EXCLUDED.gender,
			height = EXCLUDED.height,
			weight = EXCLUDED.weight,
			waist = EXCLUDED.waist,
			activity_level = EXCLUDED.activity_level,
			goal = EXCLUDED.goal,
			profile_image = COALESCE(EXCLUDED.profile_image, trainee_profiles.profile_image),
			updated_at = NOW()
		RETURNING id, user_id, full_name, email, phone, gender, height, weight, waist,
				  activity_level, goal, profile_image, created_at, updated_at
	`
	var profile models.TraineeProfile
	err := r.db.QueryRow(ctx, query,
		userID,
		input.FullName,
		input.Email,
		input.Phone,
		input.Gender,
		input.Height,
		input.Weight,
		input.Waist,
		input.ActivityLevel,
		input.Goal,
		input.ProfileImage,
	).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.Email,
		&profile.Phone,
		&profile.Gender,
		&profile.Height,
		&profile.Weight,
		&profile.Waist,
		&profile.ActivityLevel,
		&profile.Goal,
		&profile.ProfileImage,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
