package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/models"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/services"
	"github.com/gofiber/fiber/v2"
)

type stubRequestService struct {
	request      *models.TraineeRequest
	status       models.RequestStatusResult
	details      []models.TraineeRequestDetail
	accepted     []models.AcceptedTrainee
	err          error
	callerID     string
	targetID     string
	lastDecision models.RequestStatus
}

func (s *stubRequestService) CreateRequest(_ context.Context, traineeID, trainerProfileID string) (*models.TraineeRequest, error) {
	s.callerID, s.targetID = traineeID, trainerProfileID
	return s.request, s.err
}

func (s *stubRequestService) GetRequestStatus(_ context.Context, traineeID, trainerProfileID string) (models.RequestStatusResult, error) {
	s.callerID, s.targetID = traineeID, trainerProfileID
	return s.status, s.err
}

func (s *stubRequestService) ListRequestsForTrainer(_ context.Context, callerID, trainerID string) ([]models.TraineeRequestDetail, error) {
	s.callerID, s.targetID = callerID, trainerID
	return s.details, s.err
}

func (s *stubRequestService) ListAcceptedTrainees(_ context.Context, trainerID string) ([]models.AcceptedTrainee, error) {
	s.callerID = trainerID
	return s.accepted, s.err
}

func (s *stubRequestService) AcceptRequest(_ context.Context, callerID, requestID string) (*models.TraineeRequest, error) {
	s.callerID, s.targetID, s.lastDecision = callerID, requestID, models.RequestStatusAccepted
	return s.request, s.err
}

func (s *stubRequestService) RejectRequest(_ context.Context, callerID, requestID string) (*models.TraineeRequest, error) {
	s.callerID, s.targetID, s.lastDecision = callerID, requestID, models.RequestStatusRejected
	return s.request, s.err
}

func newRequestApp(service *stubRequestService, userID string) *fiber.App {
	handler := NewRequestHandler(service)
	app := fiber.New()
	app.Use(withCaller(userID))
	app.Post("/api/trainee-requests", handler.CreateRequest)
	app.Get("/api/trainee-requests/status", handler.GetRequestStatus)
	app.Get("/api/trainer/requests", handler.ListRequests)
	app.Get("/api/trainer/trainees", handler.ListMyTrainees)
	app.Post("/api/trainer/requests/:id/accept", handler.AcceptRequest)
	app.Post("/api/trainer/requests/:id/reject", handler.RejectRequest)
	return app
}

func TestCreateRequestReturnsCreated(t *testing.T) {
	service := &stubRequestService{request: &models.TraineeRequest{ID: "req-1", Status: models.RequestStatusPending}}
	app := newRequestApp(service, testUserID)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/trainee-requests", map[string]string{
		"trainer_profile_id": "profile-1",
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var body struct {
		Success bool                  `json:"success"`
		Request models.TraineeRequest `json:"request"`
	}
	decodeResponse(t, resp, &body)
	if !body.Success || body.Request.Status != models.RequestStatusPending {
		t.Fatalf("unexpected body: %+v", body)
	}
	if service.callerID != testUserID || service.targetID != "profile-1" {
		t.Fatalf("unexpected service call: caller %q target %q", service.callerID, service.targetID)
	}
}

func TestCreateRequestRequiresTrainerProfileID(t *testing.T) {
	app := newRequestApp(&stubRequestService{}, testUserID)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/trainee-requests", map[string]string{}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCreateRequestMapsServiceErrors(t *testing.T) {
	cases := map[string]struct {
		err    error
		status int
	}{
		"duplicate":        {services.ErrRequestExists, http.StatusConflict},
		"unknown trainer":  {services.ErrTrainerNotFound, http.StatusNotFound},
		"self request":     {services.ErrInvalidInput, http.StatusBadRequest},
		"unauthenticated":  {services.ErrUnauthenticated, http.StatusUnauthorized},
		"unexpected error": {context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			app := newRequestApp(&stubRequestService{err: tc.err}, testUserID)
			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/trainee-requests", map[string]string{
				"trainer_profile_id": "profile-1",
			}))
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.StatusCode)
			}
			var body struct {
				Success bool   `json:"success"`
				Message string `json:"message"`
			}
			decodeResponse(t, resp, &body)
			if body.Success || body.Message == "" {
				t.Fatalf("expected failure envelope, got %+v", body)
			}
		})
	}
}

func TestGetRequestStatusReportsMissingWithoutStatus(t *testing.T) {
	app := newRequestApp(&stubRequestService{status: models.RequestStatusResult{Exists: false}}, testUserID)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/trainee-requests/status?trainer_profile_id=profile-1", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]any
	decodeResponse(t, resp, &body)
	if body["exists"] != false {
		t.Fatalf("expected exists=false, got %+v", body)
	}
	if _, ok := body["status"]; ok {
		t.Fatalf("expected status to be omitted, got %+v", body)
	}
}

func TestGetRequestStatusReturnsCurrentStatus(t *testing.T) {
	status := models.RequestStatusAccepted
	app := newRequestApp(&stubRequestService{status: models.RequestStatusResult{Exists: true, Status: &status}}, testUserID)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/trainee-requests/status?trainer_profile_id=profile-1", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Exists bool                 `json:"exists"`
		Status models.RequestStatus `json:"status"`
	}
	decodeResponse(t, resp, &body)
	if !body.Exists || body.Status != models.RequestStatusAccepted {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestListRequestsForwardsTrainerFilter(t *testing.T) {
	service := &stubRequestService{details: []models.TraineeRequestDetail{{
		TraineeRequest: models.TraineeRequest{ID: "req-1", Status: models.RequestStatusPending},
		Trainee:        models.RequestTrainee{ID: "trainee-1", Email: "ali@example.com"},
	}}}
	app := newRequestApp(service, testUserID)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/trainer/requests?trainer_id=someone-else", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if service.callerID != testUserID || service.targetID != "someone-else" {
		t.Fatalf("expected caller and requested trainer to reach the service, got %q/%q", service.callerID, service.targetID)
	}
	var body struct {
		Requests []models.TraineeRequestDetail `json:"requests"`
	}
	decodeResponse(t, resp, &body)
	if len(body.Requests) != 1 || body.Requests[0].Trainee.Email != "ali@example.com" {
		t.Fatalf("unexpected requests: %+v", body.Requests)
	}
}

func TestListRequestsForbiddenForOtherTrainer(t *testing.T) {
	app := newRequestApp(&stubRequestService{err: services.ErrForbidden}, testUserID)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/trainer/requests?trainer_id=someone-else", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestAcceptAndRejectUseRouteID(t *testing.T) {
	service := &stubRequestService{request: &models.TraineeRequest{ID: "req-9", Status: models.RequestStatusAccepted}}
	app := newRequestApp(service, testUserID)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/trainer/requests/req-9/accept", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || service.targetID != "req-9" || service.lastDecision != models.RequestStatusAccepted {
		t.Fatalf("unexpected accept: status %d target %q decision %q", resp.StatusCode, service.targetID, service.lastDecision)
	}

	service.err = services.ErrInvalidStateTransition
	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/trainer/requests/req-9/reject", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict || service.lastDecision != models.RequestStatusRejected {
		t.Fatalf("expected 409 on reject after accept, got %d (%q)", resp.StatusCode, service.lastDecision)
	}
}

func TestListMyTraineesRequiresCaller(t *testing.T) {
	app := newRequestApp(&stubRequestService{}, "")

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/trainer/trainees", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}
