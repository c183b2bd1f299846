package repository

import (
	"context"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/models"
)

type CreateTraineeRequestInput struct {
	ID        string
	TraineeID string
	TrainerID string
}

type TraineeRequestRepository struct {
	db DBTX
}

func NewTraineeRequestRepository(db DBTX) *TraineeRequestRepository {
	return &TraineeRequestRepository{db: db}
}

const traineeRequestColumns = `id, trainee_id, trainer_id, status, created_at, updated_at`

func (r *TraineeRequestRepository) Create(
	ctx context.Context,
	input CreateTraineeRequestInput,
) (*models.TraineeRequest, error) {
	query := `
		INSERT INTO trainee_requests (id, trainee_id, trainer_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + traineeRequestColumns
	var request models.TraineeRequest
	err := r.db.QueryRow(ctx, query,
		input.ID,
		input.TraineeID,
		input.TrainerID,
		models.RequestStatusPending,
	).Scan(
		&request.ID,
		&request.TraineeID,
		&request.TrainerID,
		&request.Status,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *TraineeRequestRepository) GetByID(ctx context.Context, id string) (*models.TraineeRequest, error) {
	query := `SELECT ` + traineeRequestColumns + ` FROM trainee_requests WHERE id = $1`
	var request models.TraineeRequest
	err := r.db.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.TraineeID,
		&request.TrainerID,
		&request.Status,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *TraineeRequestRepository) FindByPair(
	ctx context.Context,
	traineeID string,
	trainerID string,
) (*models.TraineeRequest, error) {
	query := `
		SELECT ` + traineeRequestColumns + `
		FROM trainee_requests
		WHERE trainee_id = $1 AND trainer_id = $2
	`
	var request models.TraineeRequest
	err := r.db.QueryRow(ctx, query, traineeID, trainerID).Scan(
		&request.ID,
		&request.TraineeID,
		&request.TrainerID,
		&request.Status,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListByTrainer returns every entry addressed to the trainer, newest first,
// with the trainee's account and profile snapshot when one exists.
func (r *TraineeRequestRepository) ListByTrainer(
	ctx context.Context,
	trainerID string,
) ([]models.TraineeRequestDetail, error) {
	query := `
		SELECT r.id, r.trainee_id, r.trainer_id, r.status, r.created_at, r.updated_at,
			   u.email,
			   tp.id, tp.full_name, tp.profile_image, tp.goal, tp.height, tp.weight, tp.waist,
			   tp.activity_level, tp.gender
		FROM trainee_requests r
		JOIN users u ON u.id = r.trainee_id
		LEFT JOIN trainee_profiles tp ON tp.user_id = r.trainee_id
		WHERE r.trainer_id = $1
		ORDER BY r.created_at DESC, r.id ASC
	`
	rows, err := r.db.Query(ctx, query, trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]models.TraineeRequestDetail, 0)
	for rows.Next() {
		var (
			detail    models.TraineeRequestDetail
			profileID *string
			snapshot  models.TraineeSnapshot
		)
		if err := rows.Scan(
			&detail.ID,
			&detail.TraineeID,
			&detail.TrainerID,
			&detail.Status,
			&detail.CreatedAt,
			&detail.UpdatedAt,
			&detail.Trainee.Email,
			&profileID,
			&snapshot.FullName,
			&snapshot.ProfileImage,
			&snapshot.Goal,
			&snapshot.Height,
			&snapshot.Weight,
			&snapshot.Waist,
			&snapshot.ActivityLevel,
			&snapshot.Gender,
		); err != nil {
			return nil, err
		}
		detail.Trainee.ID = detail.TraineeID
		if profileID != nil {
			detail.TraineeProfile = &snapshot
		}
		requests = append(requests, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *TraineeRequestRepository) ListAccepted(
	ctx context.Context,
	trainerID string,
) ([]models.AcceptedTrainee, error) {
	query := `
		SELECT r.trainee_id, r.id, r.updated_at,
			   COALESCE(tp.full_name, ''), COALESCE(tp.profile_image, ''), COALESCE(tp.goal, ''),
			   tp.height, tp.weight, tp.waist,
			   COALESCE(tp.activity_level, ''), COALESCE(tp.gender, '')
		FROM trainee_requests r
		LEFT JOIN trainee_profiles tp ON tp.user_id = r.trainee_id
		WHERE r.trainer_id = $1 AND r.status = $2
		ORDER BY r.updated_at DESC, r.id ASC
	`
	rows, err := r.db.Query(ctx, query, trainerID, models.RequestStatusAccepted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trainees := make([]models.AcceptedTrainee, 0)
	for rows.Next() {
		var trainee models.AcceptedTrainee
		if err := rows.Scan(
			&trainee.ID,
			&trainee.RequestID,
			&trainee.AcceptedAt,
			&trainee.FullName,
			&trainee.ProfileImage,
			&trainee.Goal,
			&trainee.Height,
			&trainee.Weight,
			&trainee.Waist,
			&trainee.ActivityLevel,
			&trainee.Gender,
		); err != nil {
			return nil, err
		}
		trainees = append(trainees, trainee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return trainees, nil
}

// UpdateStatusIfCurrent moves the entry only while it still holds
// currentStatus. pgx.ErrNoRows means the entry is gone or already moved.
func (r *TraineeRequestRepository) UpdateStatusIfCurrent(
	ctx context.Context,
	id string,
	currentStatus models.RequestStatus,
	nextStatus models.RequestStatus,
) (*models.TraineeRequest, error) {
	query := `
		UPDATE trainee_requests
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + traineeRequestColumns
	var request models.TraineeRequest
	err := r.db.QueryRow(ctx, query, id, currentStatus, nextStatus).Scan(
		&request.ID,
		&request.TraineeID,
		&request.TrainerID,
		&request.Status,
		&request.CreatedAt,
		&request.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}
