package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/models"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/services"
	"github.com/gofiber/fiber/v2"
)

type stubTrainerDirectory struct {
	cards     []models.TrainerCard
	total     int
	listErr   error
	query     services.DirectoryQuery
	detail    *models.TrainerDetail
	detailErr error
	detailID  string
}

func (s *stubTrainerDirectory) ListTrainers(_ context.Context, query services.DirectoryQuery) ([]models.TrainerCard, int, error) {
	s.query = query
	if s.listErr != nil {
		return nil, 0, s.listErr
	}
	return s.cards, s.total, nil
}

func (s *stubTrainerDirectory) GetTrainer(_ context.Context, userID string) (*models.TrainerDetail, error) {
	s.detailID = userID
	if s.detailErr != nil {
		return nil, s.detailErr
	}
	return s.detail, nil
}

type stubTrainerMatchmaker struct {
	cards     []models.TrainerCard
	err       error
	traineeID string
	limit     int
}

func (s *stubTrainerMatchmaker) RecommendForTrainee(_ context.Context, traineeID string, limit int) ([]models.TrainerCard, error) {
	s.traineeID, s.limit = traineeID, limit
	return s.cards, s.err
}

func TestListTrainersReturnsPaginationAndFilters(t *testing.T) {
	directory := &stubTrainerDirectory{
		cards: []models.TrainerCard{{
			ID:              "profile-1",
			UserID:          "trainer-1",
			FullName:        "Sara Khan",
			Specializations: map[string]int{"yoga": 4},
			TotalExperience: 4,
		}},
		total: 11,
	}
	handler := NewTrainerDirectoryHandler(directory, &stubTrainerMatchmaker{})

	app := fiber.New()
	app.Get("/api/trainers", handler.ListTrainers)

	req := httptest.NewRequest(http.MethodGet, "/api/trainers?specialization=yoga&q=sara&page=2&limit=5", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Success    bool                  `json:"success"`
		Trainers   []models.TrainerCard  `json:"trainers"`
		Pagination models.PaginationMeta `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if directory.query.Specialization != "yoga" || directory.query.Search != "sara" || directory.query.Page != 2 || directory.query.Limit != 5 {
		t.Fatalf("unexpected query: %+v", directory.query)
	}
	if !body.Success || len(body.Trainers) != 1 || body.Trainers[0].TotalExperience != 4 {
		t.Fatalf("unexpected trainers response: %+v", body)
	}
	if body.Pagination.Total != 11 || body.Pagination.TotalPages != 3 || body.Pagination.Page != 2 {
		t.Fatalf("unexpected pagination: %+v", body.Pagination)
	}
}

func TestListTrainersClampsLimit(t *testing.T) {
	directory := &stubTrainerDirectory{}
	app := fiber.New()
	app.Get("/api/trainers", NewTrainerDirectoryHandler(directory, &stubTrainerMatchmaker{}).ListTrainers)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/trainers?limit=500&page=-3", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if directory.query.Limit != maxPageLimit || directory.query.Page != 1 {
		t.Fatalf("expected clamped paging, got %+v", directory.query)
	}
}

func TestListTrainersRejectsUnknownSpecialization(t *testing.T) {
	directory := &stubTrainerDirectory{listErr: fmt.Errorf("%w: unknown specialization %q", services.ErrInvalidInput, "juggling")}
	app := fiber.New()
	app.Get("/api/trainers", NewTrainerDirectoryHandler(directory, &stubTrainerMatchmaker{}).ListTrainers)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/trainers?specialization=juggling", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetTrainerReturnsDetail(t *testing.T) {
	bio := "Strength **first**"
	directory := &stubTrainerDirectory{detail: &models.TrainerDetail{
		TrainerProfile: models.TrainerProfile{
			ID:       "profile-1",
			UserID:   "trainer-1",
			FullName: "Sara Khan",
			Bio:      &bio,
		},
		BioHTML:         "<p>Strength <strong>first</strong></p>\n",
		TotalExperience: 6,
	}}
	app := fiber.New()
	app.Get("/api/trainers/:id", NewTrainerDirectoryHandler(directory, &stubTrainerMatchmaker{}).GetTrainer)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/trainers/trainer-1", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Trainer models.TrainerDetail `json:"trainer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if directory.detailID != "trainer-1" {
		t.Fatalf("expected lookup for trainer-1, got %q", directory.detailID)
	}
	if body.Trainer.FullName != "Sara Khan" || body.Trainer.TotalExperience != 6 || body.Trainer.BioHTML == "" {
		t.Fatalf("unexpected trainer detail: %+v", body.Trainer)
	}
}

func TestGetTrainerReturnsNotFound(t *testing.T) {
	app := fiber.New()
	app.Get("/api/trainers/:id", NewTrainerDirectoryHandler(&stubTrainerDirectory{detailErr: services.ErrTrainerNotFound}, &stubTrainerMatchmaker{}).GetTrainer)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/trainers/missing", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetRecommendedTrainersReturnsMatchScores(t *testing.T) {
	matchmaker := &stubTrainerMatchmaker{cards: []models.TrainerCard{{UserID: "trainer-1", MatchScore: 85}}}
	app := fiber.New()
	app.Use(withCaller(testUserID))
	app.Get("/api/v1/trainers/recommended", NewTrainerDirectoryHandler(&stubTrainerDirectory{}, matchmaker).GetRecommendedTrainers)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/trainers/recommended?limit=3", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Trainers []models.TrainerCard `json:"trainers"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if matchmaker.limit != 3 || matchmaker.traineeID != testUserID {
		t.Fatalf("unexpected matchmaker call: %+v", matchmaker)
	}
	if len(body.Trainers) != 1 || body.Trainers[0].MatchScore != 85 {
		t.Fatalf("unexpected recommended trainers: %+v", body.Trainers)
	}
}

func TestGetRecommendedTrainersWithoutProfile(t *testing.T) {
	app := fiber.New()
	app.Use(withCaller(testUserID))
	app.Get("/api/v1/trainers/recommended", NewTrainerDirectoryHandler(&stubTrainerDirectory{}, &stubTrainerMatchmaker{err: services.ErrTraineeNotFound}).GetRecommendedTrainers)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/trainers/recommended", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
