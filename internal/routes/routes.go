package routes

import (
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/config"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/events"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/handlers"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/middleware"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/models"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/repository"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/services"
	eventws "github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/websocket"
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Dependencies are the long-lived pieces cmd/server owns: the pool, the
// event hub and outbound integrations.
type Dependencies struct {
	DB       repository.DBTX
	Logger   *zap.Logger
	Hub      *eventws.Hub
	Notifier events.Notifier
	Storage  services.StorageService
}

func RegisterRoutes(app *fiber.App, cfg *config.Config, deps Dependencies) error {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	userRepo := repository.NewUserRepository(deps.DB)
	traineeProfileRepo := repository.NewTraineeProfileRepository(deps.DB)
	trainerProfileRepo := repository.NewTrainerProfileRepository(deps.DB)
	requestRepo := repository.NewTraineeRequestRepository(deps.DB)
	revokedSessionRepo := repository.NewRevokedSessionRepository(deps.DB)

	var invalidator services.SessionInvalidator
	if deps.Hub != nil {
		invalidator = deps.Hub
	}

	identityService := services.NewIdentityService(userRepo, revokedSessionRepo, invalidator, logger)
	requestService := services.NewRequestService(requestRepo, trainerProfileRepo, deps.Notifier, logger)
	profileService := services.NewProfileService(traineeProfileRepo, trainerProfileRepo, deps.Storage, logger)
	directoryService := services.NewDirectoryService(trainerProfileRepo)
	matchmakingService := services.NewMatchmakingService(trainerProfileRepo, traineeProfileRepo)

	authHandler := handlers.NewAuthHandler(identityService, cfg.SignInPath)
	requestHandler := handlers.NewRequestHandler(requestService)
	profileHandler := handlers.NewProfileHandler(profileService)
	directoryHandler := handlers.NewTrainerDirectoryHandler(directoryService, matchmakingService)
	eventsHandler := handlers.NewEventsHandler(deps.Hub, cfg.JWTSecret, identityService)

	authRequired := middleware.AuthRequired(cfg.JWTSecret, identityService, cfg.SignInPath)
	traineeOnly := middleware.RequireRole(userRepo, models.RoleTrainee, cfg.SignInPath)
	trainerOnly := middleware.RequireRole(userRepo, models.RoleTrainer, cfg.SignInPath)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authRequired, authHandler.Register)
	auth.Get("/me", authRequired, authHandler.Me)
	auth.Post("/signout", authRequired, authHandler.SignOut)

	trainers := api.Group("/trainers")
	trainers.Get("", directoryHandler.ListTrainers)
	trainers.Get("/:id", directoryHandler.GetTrainer)

	v1 := api.Group("/v1", authRequired)

	v1.Get("/trainers/recommended", traineeOnly, directoryHandler.GetRecommendedTrainers)

	v1.Get("/trainee-profile", traineeOnly, profileHandler.GetTraineeProfile)
	v1.Post("/trainee-profile", traineeOnly, profileHandler.UpsertTraineeProfile)
	v1.Get("/trainer-profile", trainerOnly, profileHandler.GetTrainerProfile)
	v1.Post("/trainer-profile", trainerOnly, profileHandler.UpsertTrainerProfile)

	requests := v1.Group("/requests")
	requests.Post("", traineeOnly, requestHandler.CreateRequest)
	requests.Get("/status", traineeOnly, requestHandler.GetRequestStatus)
	requests.Get("", trainerOnly, requestHandler.ListRequests)
	requests.Post("/:id/accept", trainerOnly, requestHandler.AcceptRequest)
	requests.Post("/:id/reject", trainerOnly, requestHandler.RejectRequest)

	v1.Get("/my-trainees", trainerOnly, requestHandler.ListMyTrainees)

	if deps.Hub != nil {
		app.Use("/api/ws", eventsHandler.WebSocketAuth)
		app.Get("/api/ws", websocket.New(eventsHandler.HandleWebSocket))
	}

	return registerDocsRoutes(app, cfg)
}
