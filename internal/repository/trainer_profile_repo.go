package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/models"
	"github.com/jackc/pgx/v5"
)

// likeEscaper makes user search text match literally inside ILIKE.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

type UpsertTrainerProfileInput struct {
	FullName        string
	Gender          *string
	Bio             *string
	Specializations map[string]int
	Plans           map[models.PlanTier]models.Plan
	ProfileImage    *string
	Certificates    []models.Certificate
}

type TrainerListFilter struct {
	Specialization string
	Search         string
	Offset         int
	Limit          int
}

type TrainerProfileRepository struct {
	db DBTX
}

func NewTrainerProfileRepository(db DBTX) *TrainerProfileRepository {
	return &TrainerProfileRepository{db: db}
}

const trainerProfileColumns = `
	id, user_id, full_name, gender, bio, specializations, plans,
	profile_image, certificates, created_at, updated_at
`

func scanTrainerProfile(row pgx.Row) (*models.TrainerProfile, error) {
	var profile models.TrainerProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.Gender,
		&profile.Bio,
		&profile.Specializations,
		&profile.Plans,
		&profile.ProfileImage,
		&profile.Certificates,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if profile.Specializations == nil {
		profile.Specializations = map[string]int{}
	}
	if profile.Plans == nil {
		profile.Plans = map[models.PlanTier]models.Plan{}
	}
	if profile.Certificates == nil {
		profile.Certificates = []models.Certificate{}
	}
	return &profile, nil
}

func (r *TrainerProfileRepository) GetByID(ctx context.Context, id string) (*models.TrainerProfile, error) {
	query := `SELECT ` + trainerProfileColumns + ` FROM trainer_profiles WHERE id = $1`
	return scanTrainerProfile(r.db.QueryRow(ctx, query, id))
}

func (r *TrainerProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.TrainerProfile, error) {
	query := `SELECT ` + trainerProfileColumns + ` FROM trainer_profiles WHERE user_id = $1`
	return scanTrainerProfile(r.db.QueryRow(ctx, query, userID))
}

// Upsert replaces the trainer's profile. profile_image survives when the
// input leaves it nil.
func (r *TrainerProfileRepository) Upsert(
	ctx context.Context,
	userID string,
	input UpsertTrainerProfileInput,
) (*models.TrainerProfile, error) {
	specializations := input.Specializations
	if specializations == nil {
		specializations = map[string]int{}
	}
	plans := input.Plans
	if plans == nil {
		plans = map[models.PlanTier]models.Plan{}
	}
	certificates := input.Certificates
	if certificates == nil {
		certificates = []models.Certificate{}
	}

	query := `
		INSERT INTO trainer_profiles (
			user_id, full_name, gender, bio, specializations, plans, profile_image, certificates
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE
		SET full_name = EXCLUDED.full_name,
			gender = EXCLUDED.gender,
			bio = EXCLUDED.bio,
			specializations = EXCLUDED.specializations,
			plans = EXCLUDED.plans,
			profile_image = COALESCE(EXCLUDED.profile_image, trainer_profiles.profile_image),
			certificates = EXCLUDED.certificates,
			updated_at = NOW()
		RETURNING ` + trainerProfileColumns
	return scanTrainerProfile(r.db.QueryRow(ctx, query,
		userID,
		input.FullName,
		input.Gender,
		input.Bio,
		specializations,
		plans,
		input.ProfileImage,
		certificates,
	))
}

func (r *TrainerProfileRepository) List(
	ctx context.Context,
	filter TrainerListFilter,
) ([]models.TrainerProfile, int, error) {
	args := make([]any, 0, 4)
	whereParts := []string{"TRUE"}

	if specialization := strings.ToLower(strings.TrimSpace(filter.Specialization)); specialization != "" {
		args = append(args, specialization)
		whereParts = append(whereParts, fmt.Sprintf("specializations ? $%d", len(args)))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, likeEscaper.Replace(search))
		whereParts = append(whereParts, fmt.Sprintf(`full_name ILIKE '%%' || $%d || '%%' ESCAPE '\'`, len(args)))
	}
	where := strings.Join(whereParts, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM trainer_profiles WHERE ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	args = append(args, limit, filter.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM trainer_profiles
		WHERE %s
		ORDER BY created_at DESC, id ASC
		LIMIT $%d OFFSET $%d
	`, trainerProfileColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	profiles := make([]models.TrainerProfile, 0)
	for rows.Next() {
		profile, err := scanTrainerProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

const matchCandidateLimit = 500

// ListAll returns the newest trainers, capped at matchCandidateLimit, for
// in-process ranking.
func (r *TrainerProfileRepository) ListAll(ctx context.Context) ([]models.TrainerProfile, error) {
	profiles, _, err := r.List(ctx, TrainerListFilter{Limit: matchCandidateLimit})
	return profiles, err
}
