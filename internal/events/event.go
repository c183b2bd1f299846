package events

import (
	"context"
	"errors"
	"time"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/models"
	"go.uber.org/zap"
)

type EventType string

const (
	RequestCreated  EventType = "request.created"
	RequestAccepted EventType = "request.accepted"
	RequestRejected EventType = "request.rejected"
)

// RequestEvent describes a committed change to a trainee request.
type RequestEvent struct {
	Type       EventType            `json:"type"`
	RequestID  string               `json:"request_id"`
	TraineeID  string               `json:"trainee_id"`
	TrainerID  string               `json:"trainer_id"`
	Status     models.RequestStatus `json:"status"`
	OccurredAt time.Time            `json:"occurred_at"`
}

func NewRequestEvent(eventType EventType, request models.TraineeRequest) RequestEvent {
	return RequestEvent{
		Type:       eventType,
		RequestID:  request.ID,
		TraineeID:  request.TraineeID,
		TrainerID:  request.TrainerID,
		Status:     request.Status,
		OccurredAt: time.Now().UTC(),
	}
}

// EventForStatus maps a terminal status to its event type.
func EventForStatus(status models.RequestStatus) EventType {
	switch status {
	case models.RequestStatusAccepted:
		return RequestAccepted
	case models.RequestStatusRejected:
		return RequestRejected
	default:
		return RequestCreated
	}
}

type Notifier interface {
	Notify(ctx context.Context, event RequestEvent) error
}

type NotifierFunc func(ctx context.Context, event RequestEvent) error

func (f NotifierFunc) Notify(ctx context.Context, event RequestEvent) error {
	return f(ctx, event)
}

// Fanout delivers every event to all notifiers. One failing notifier does
// not stop the rest; their errors are joined.
type Fanout struct {
	notifiers []Notifier
	logger    *zap.Logger
}

func NewFanout(logger *zap.Logger, notifiers ...Notifier) *Fanout {
	if logger == nil {
		logger = zap.NewNop()
	}
	active := make([]Notifier, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			active = append(active, n)
		}
	}
	return &Fanout{notifiers: active, logger: logger}
}

func (f *Fanout) Notify(ctx context.Context, event RequestEvent) error {
	var errs []error
	for _, n := range f.notifiers {
		if err := n.Notify(ctx, event); err != nil {
			f.logger.Warn("request event delivery failed",
				zap.String("type", string(event.Type)),
				zap.String("request_id", event.RequestID),
				zap.Error(err),
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
