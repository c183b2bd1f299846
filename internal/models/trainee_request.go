package models

import "time"

// RequestStatus is the lifecycle state of a trainee's hire request.
// pending is the only initial state; accepted and rejected are terminal.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusRejected RequestStatus = "rejected"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusAccepted, RequestStatusRejected:
		return true
	default:
		return false
	}
}

func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusAccepted || s == RequestStatusRejected
}

func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	return s == RequestStatusPending && next.IsTerminal()
}

type TraineeRequest struct {
	ID        string        `json:"id"`
	TraineeID string        `json:"trainee_id"`
	TrainerID string        `json:"trainer_id"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type RequestTrainee struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// TraineeSnapshot is the slice of the trainee profile a trainer sees
// next to an incoming request.
type TraineeSnapshot struct {
	FullName      *string  `json:"full_name"`
	ProfileImage  *string  `json:"profile_image"`
	Goal          *string  `json:"goal"`
	Height        *float64 `json:"height"`
	Weight        *float64 `json:"weight"`
	Waist         *float64 `json:"waist"`
	ActivityLevel *string  `json:"activity_level"`
	Gender        *string  `json:"gender"`
}

type TraineeRequestDetail struct {
	TraineeRequest
	Trainee        RequestTrainee   `json:"trainee"`
	TraineeProfile *TraineeSnapshot `json:"trainee_profile"`
}

type RequestStatusResult struct {
	Exists bool           `json:"exists"`
	Status *RequestStatus `json:"status,omitempty"`
}

type AcceptedTrainee struct {
	ID            string    `json:"id"`
	RequestID     string    `json:"request_id"`
	FullName      string    `json:"full_name"`
	ProfileImage  string    `json:"profile_image"`
	Goal          string    `json:"goal"`
	Height        *float64  `json:"height"`
	Weight        *float64  `json:"weight"`
	Waist         *float64  `json:"waist"`
	ActivityLevel string    `json:"activity_level"`
	Gender        string    `json:"gender"`
	AcceptedAt    time.Time `json:"accepted_at"`
}
