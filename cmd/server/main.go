package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/config"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/database"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/events"
	applogger "github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/logger"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/middleware"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/notify"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/repository"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/routes"
	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/services"
	eventws "github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

const revokedSessionPurgeInterval = time.Hour

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := applogger.New(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect to Database
	if cfg.DBUrl == "" {
		logger.Fatal("DB_URL is required")
	}
	pool, err := database.Connect(ctx, cfg.DBUrl)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// 3. Event delivery
	hub := eventws.NewHub(cfg.SignInPath, logger.Named("ws"))
	go hub.Run(ctx)

	notifiers := []events.Notifier{hub}
	if len(cfg.KafkaBrokers) > 0 {
		publisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger.Named("kafka"))
		defer publisher.Close()
		notifiers = append(notifiers, publisher)
	}
	var sender notify.Sender = notify.NewNoopSender(logger.Named("mail"))
	if cfg.ResendAPIKey != "" {
		sender = notify.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom, logger.Named("mail"))
	}
	notifiers = append(notifiers, events.NewEmailNotifier(sender, repository.NewUserRepository(pool), cfg.PublicAppURL))

	var storage services.StorageService
	if cfg.StorageConfigured() {
		storage = services.NewSupabaseStorageService(cfg.SupabaseURL, cfg.SupabaseBucket, cfg.SupabaseServiceKey)
	} else {
		logger.Warn("image host not configured; uploads will be rejected")
	}

	go purgeRevokedSessions(ctx, repository.NewRevokedSessionRepository(pool), logger)

	// 4. Setup Fiber
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	app.Use(middleware.RequestLogger(logger.Named("http")))

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"success": false,
				"status":  "degraded",
			})
		}
		return c.JSON(fiber.Map{
			"success": true,
			"status":  "ok",
		})
	})
	if err := routes.RegisterRoutes(app, cfg, routes.Dependencies{
		DB:       pool,
		Logger:   logger,
		Hub:      hub,
		Notifier: events.NewFanout(logger.Named("events"), notifiers...),
		Storage:  storage,
	}); err != nil {
		logger.Fatal("Failed to register routes", zap.Error(err))
	}

	// 5. Start Server
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Server starting", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("Server failed to start", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Server error"
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			message = fiberErr.Message
		} else {
			logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": message,
		})
	}
}

type revokedSessionPurger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

func purgeRevokedSessions(ctx context.Context, purger revokedSessionPurger, logger *zap.Logger) {
	ticker := time.NewTicker(revokedSessionPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := purger.PurgeExpired(ctx, now)
			if err != nil {
				logger.Warn("revoked session purge failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				logger.Debug("revoked sessions purged", zap.Int64("removed", removed))
			}
		}
	}
}
