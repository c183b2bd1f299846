package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/models"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type stubProfileService struct {
	trainee      *models.TraineeProfile
	trainer      *models.TrainerProfile
	err          error
	userID       string
	traineeInput services.TraineeProfileInput
	trainerInput services.TrainerProfileInput
}

func (s *stubProfileService) GetTraineeProfile(_ context.Context, userID string) (*models.TraineeProfile, error) {
	s.userID = userID
	return s.trainee, s.err
}

func (s *stubProfileService) GetTrainerProfile(_ context.Context, userID string) (*models.TrainerProfile, error) {
	s.userID = userID
	return s.trainer, s.err
}

func (s *stubProfileService) UpsertTraineeProfile(_ context.Context, userID string, input services.TraineeProfileInput) (*models.TraineeProfile, error) {
	s.userID = userID
	s.traineeInput = input
	if s.err != nil {
		return nil, s.err
	}
	return &models.TraineeProfile{UserID: userID, FullName: input.FullName, Height: input.Height}, nil
}

func (s *stubProfileService) UpsertTrainerProfile(_ context.Context, userID string, input services.TrainerProfileInput) (*models.TrainerProfile, error) {
	s.userID = userID
	s.trainerInput = input
	if s.err != nil {
		return nil, s.err
	}
	return &models.TrainerProfile{
		UserID:   userID,
		FullName: input.FullName,
		Plans:    map[models.PlanTier]models.Plan{models.PlanBronze: {Price: decimal.NewFromInt(40), DurationMonths: 1}},
	}, nil
}

func newProfileApp(service *stubProfileService, userID string) *fiber.App {
	handler := NewProfileHandler(service)
	app := fiber.New()
	app.Use(withCaller(userID))
	app.Get("/api/trainee-profile", handler.GetTraineeProfile)
	app.Post("/api/trainee-profile", handler.UpsertTraineeProfile)
	app.Get("/api/trainer-profile", handler.GetTrainerProfile)
	app.Post("/api/trainer-profile", handler.UpsertTrainerProfile)
	return app
}

func TestGetTraineeProfileReturnsNullWhenMissing(t *testing.T) {
	app := newProfileApp(&stubProfileService{}, testUserID)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/trainee-profile", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body map[string]any
	decodeResponse(t, resp, &body)
	if profile, ok := body["profile"]; !ok || profile != nil {
		t.Fatalf("expected explicit null profile, got %+v", body)
	}
}

func TestUpsertTraineeProfileAcceptsStringMeasurements(t *testing.T) {
	service := &stubProfileService{}
	app := newProfileApp(service, testUserID)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/trainee-profile", map[string]any{
		"full_name":            "Ali Raza",
		"phone":                "+92 300-1234567",
		"height":               "180.5",
		"weight":               82,
		"waist":                "",
		"profile_image_base64": "data:image/png;base64,AAAA",
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	input := service.traineeInput
	if service.userID != testUserID {
		t.Fatalf("expected caller id to be used, got %q", service.userID)
	}
	if input.Height == nil || *input.Height != 180.5 {
		t.Fatalf("expected height 180.5, got %v", input.Height)
	}
	if input.Weight == nil || *input.Weight != 82 {
		t.Fatalf("expected weight 82, got %v", input.Weight)
	}
	if input.Waist != nil {
		t.Fatalf("expected blank waist to be nil, got %v", *input.Waist)
	}
	if input.ProfileImage == nil || !strings.HasPrefix(*input.ProfileImage, "data:image/png") {
		t.Fatalf("expected base64 image alias to be forwarded, got %v", input.ProfileImage)
	}
}

func TestUpsertTraineeProfileRejectsInvalidPhone(t *testing.T) {
	service := &stubProfileService{}
	app := newProfileApp(service, testUserID)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/trainee-profile", map[string]any{
		"phone": "call me maybe",
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if service.userID != "" {
		t.Fatalf("expected service not to be called")
	}
}

func TestUpsertTraineeProfileRejectsNonNumericHeight(t *testing.T) {
	app := newProfileApp(&stubProfileService{}, testUserID)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/trainee-profile", map[string]any{
		"height": "tall",
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpsertTrainerProfileConvertsFlexibleValues(t *testing.T) {
	service := &stubProfileService{}
	app := newProfileApp(service, testUserID)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/trainer-profile", map[string]any{
		"full_name":       "Sara Khan",
		"specializations": map[string]any{"yoga": 4, "crossfit": "2"},
		"plans": map[string]any{
			"bronze": map[string]any{"price": 40, "duration": "1"},
			"gold":   map[string]any{"price": "120.50", "duration": 6},
		},
		"certificates": []map[string]string{{"name": "ACE", "file": "https://files.example.com/ace.pdf"}},
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	input := service.trainerInput
	if input.Specializations["yoga"] != "4" || input.Specializations["crossfit"] != "2" {
		t.Fatalf("unexpected specializations: %+v", input.Specializations)
	}
	if input.Plans["bronze"].Price != "40" || input.Plans["gold"].Price != "120.50" || input.Plans["gold"].Duration != "6" {
		t.Fatalf("unexpected plans: %+v", input.Plans)
	}
	if len(input.Certificates) != 1 || input.Certificates[0].Name != "ACE" {
		t.Fatalf("unexpected certificates: %+v", input.Certificates)
	}
}

func TestUpsertTrainerProfileRequiresFullName(t *testing.T) {
	service := &stubProfileService{}
	app := newProfileApp(service, testUserID)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/trainer-profile", map[string]any{
		"bio": "Coach",
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &body)
	if body.Success || body.Message != "full_name is required" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestUpsertTrainerProfileSurfacesServiceValidation(t *testing.T) {
	service := &stubProfileService{err: fmt.Errorf("%w: unknown plan tier %q", services.ErrInvalidInput, "platinum")}
	app := newProfileApp(service, testUserID)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/trainer-profile", map[string]any{
		"full_name": "Sara Khan",
		"plans":     map[string]any{"platinum": map[string]any{"price": 10}},
	}))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	var body struct {
		Message string `json:"message"`
	}
	decodeResponse(t, resp, &body)
	if body.Message != `unknown plan tier "platinum"` {
		t.Fatalf("unexpected message: %q", body.Message)
	}
}

func TestProfileRoutesRequireCaller(t *testing.T) {
	app := newProfileApp(&stubProfileService{}, "")

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/trainer-profile", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestIsPhoneNumber(t *testing.T) {
	cases := map[string]bool{
		"+92 300-1234567": true,
		"(042) 555 0101":  true,
		"12+34":           false,
		"abc":             false,
	}
	for in, want := range cases {
		if got := isPhoneNumber(in); got != want {
			t.Errorf("isPhoneNumber(%q) = %v, want %v", in, got, want)
		}
	}
}
