package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/events"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/models"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type requestStore interface {
	Create(ctx context.Context, input repository.CreateTraineeRequestInput) (*models.TraineeRequest, error)
	GetByID(ctx context.Context, id string) (*models.TraineeRequest, error)
	FindByPair(ctx context.Context, traineeID, trainerID string) (*models.TraineeRequest, error)
	ListByTrainer(ctx context.Context, trainerID string) ([]models.TraineeRequestDetail, error)
	ListAccepted(ctx context.Context, trainerID string) ([]models.AcceptedTrainee, error)
	UpdateStatusIfCurrent(ctx context.Context, id string, currentStatus, nextStatus models.RequestStatus) (*models.TraineeRequest, error)
}

type trainerProfileLookup interface {
	GetByID(ctx context.Context, id string) (*models.TrainerProfile, error)
}

type RequestService struct {
	requests requestStore
	trainers trainerProfileLookup
	notifier events.Notifier
	logger   *zap.Logger
}

func NewRequestService(
	requests requestStore,
	trainers trainerProfileLookup,
	notifier events.Notifier,
	logger *zap.Logger,
) *RequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestService{
		requests: requests,
		trainers: trainers,
		notifier: notifier,
		logger:   logger,
	}
}

// resolveTrainer maps a trainer profile id to the owning user id, which is
// what the ledger stores.
func (s *RequestService) resolveTrainer(ctx context.Context, trainerProfileID string) (string, error) {
	if _, err := uuid.Parse(strings.TrimSpace(trainerProfileID)); err != nil {
		return "", ErrTrainerNotFound
	}
	profile, err := s.trainers.GetByID(ctx, strings.TrimSpace(trainerProfileID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrTrainerNotFound
		}
		return "", err
	}
	return profile.UserID, nil
}

func (s *RequestService) CreateRequest(
	ctx context.Context,
	traineeID string,
	trainerProfileID string,
) (*models.TraineeRequest, error) {
	if traineeID == "" {
		return nil, ErrUnauthenticated
	}

	trainerID, err := s.resolveTrainer(ctx, trainerProfileID)
	if err != nil {
		return nil, err
	}
	if trainerID == traineeID {
		return nil, fmt.Errorf("%w: cannot send a request to yourself", ErrInvalidInput)
	}

	if _, err := s.requests.FindByPair(ctx, traineeID, trainerID); err == nil {
		return nil, ErrRequestExists
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	request, err := s.requests.Create(ctx, repository.CreateTraineeRequestInput{
		ID:        uuid.NewString(),
		TraineeID: traineeID,
		TrainerID: trainerID,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrRequestExists
		}
		return nil, err
	}

	s.logger.Info("trainee request created",
		zap.String("request_id", request.ID),
		zap.String("trainee_id", traineeID),
		zap.String("trainer_id", trainerID),
	)
	s.publish(ctx, events.NewRequestEvent(events.RequestCreated, *request))
	return request, nil
}

// GetRequestStatus reports the ledger entry for the pair. A missing entry is
// a normal answer, not an error.
func (s *RequestService) GetRequestStatus(
	ctx context.Context,
	traineeID string,
	trainerProfileID string,
) (models.RequestStatusResult, error) {
	if traineeID == "" {
		return models.RequestStatusResult{}, ErrUnauthenticated
	}

	trainerID, err := s.resolveTrainer(ctx, trainerProfileID)
	if err != nil {
		return models.RequestStatusResult{}, err
	}

	request, err := s.requests.FindByPair(ctx, traineeID, trainerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.RequestStatusResult{Exists: false}, nil
		}
		return models.RequestStatusResult{}, err
	}

	status := request.Status
	return models.RequestStatusResult{Exists: true, Status: &status}, nil
}

func (s *RequestService) ListRequestsForTrainer(
	ctx context.Context,
	callerID string,
	trainerID string,
) ([]models.TraineeRequestDetail, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	if trainerID == "" {
		trainerID = callerID
	}
	if trainerID != callerID {
		return nil, ErrForbidden
	}
	return s.requests.ListByTrainer(ctx, trainerID)
}

func (s *RequestService) ListAcceptedTrainees(
	ctx context.Context,
	trainerID string,
) ([]models.AcceptedTrainee, error) {
	if trainerID == "" {
		return nil, ErrUnauthenticated
	}
	trainees, err := s.requests.ListAccepted(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	for i := range trainees {
		if strings.TrimSpace(trainees[i].FullName) == "" {
			trainees[i].FullName = "Unknown"
		}
	}
	return trainees, nil
}

func (s *RequestService) AcceptRequest(
	ctx context.Context,
	callerID string,
	requestID string,
) (*models.TraineeRequest, error) {
	return s.transition(ctx, callerID, requestID, models.RequestStatusAccepted)
}

func (s *RequestService) RejectRequest(
	ctx context.Context,
	callerID string,
	requestID string,
) (*models.TraineeRequest, error) {
	return s.transition(ctx, callerID, requestID, models.RequestStatusRejected)
}

func (s *RequestService) transition(
	ctx context.Context,
	callerID string,
	requestID string,
	next models.RequestStatus,
) (*models.TraineeRequest, error) {
	if callerID == "" {
		return nil, ErrUnauthenticated
	}
	if _, err := uuid.Parse(strings.TrimSpace(requestID)); err != nil {
		return nil, ErrRequestNotFound
	}
	requestID = strings.TrimSpace(requestID)

	current, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if current.TrainerID != callerID {
		return nil, ErrForbidden
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, ErrInvalidStateTransition
	}

	updated, err := s.requests.UpdateStatusIfCurrent(ctx, requestID, models.RequestStatusPending, next)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidStateTransition
		}
		return nil, err
	}

	s.logger.Info("trainee request decided",
		zap.String("request_id", updated.ID),
		zap.String("trainer_id", callerID),
		zap.String("status", string(updated.Status)),
	)
	s.publish(ctx, events.NewRequestEvent(events.EventForStatus(updated.Status), *updated))
	return updated, nil
}

func (s *RequestService) publish(ctx context.Context, event events.RequestEvent) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Warn("request event not fully delivered",
			zap.String("type", string(event.Type)),
			zap.String("request_id", event.RequestID),
			zap.Error(err),
		)
	}
}
