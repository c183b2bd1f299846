package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	applogger "github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/logger"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Usage: migrate [up|down|version|force <version>]
func main() {
	logger, err := applogger.New(os.Getenv("LOG_LEVEL"), true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found")
	}

	dbUrl := os.Getenv("DB_URL")
	if dbUrl == "" {
		logger.Fatal("DB_URL environment variable is required")
	}

	migrationsPath, err := findMigrationsDir()
	if err != nil {
		logger.Fatal("Migrations directory not found", zap.Error(err))
	}

	m, err := migrate.New("file://"+migrationsPath, dbUrl)
	if err != nil {
		logger.Fatal("Failed to open migrations", zap.Error(err))
	}
	defer m.Close()

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal("Migration up failed", zap.Error(err))
		}
		logger.Info("Migration up successful")
	case "down":
		if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			logger.Fatal("Migration down failed", zap.Error(err))
		}
		logger.Info("Migration down successful")
	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			logger.Fatal("Failed to read version", zap.Error(err))
		}
		logger.Info("Migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	case "force":
		if len(os.Args) < 3 {
			logger.Fatal("force requires a version")
		}
		version, err := strconv.Atoi(os.Args[2])
		if err != nil {
			logger.Fatal("Invalid version", zap.String("version", os.Args[2]))
		}
		if err := m.Force(version); err != nil {
			logger.Fatal("Force failed", zap.Error(err))
		}
		logger.Info("Migration version forced", zap.Int("version", version))
	default:
		logger.Fatal("Unknown command", zap.String("command", cmd))
	}
}

// findMigrationsDir walks up from the working directory, then looks next to
// the executable.
func findMigrationsDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	candidates := []string{}
	current := cwd
	for i := 0; i < 6; i++ {
		candidates = append(candidates, filepath.Join(current, "migrations"))
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		candidates = append(candidates,
			filepath.Join(exeDir, "migrations"),
			filepath.Join(exeDir, "..", "migrations"),
		)
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && info.IsDir() {
			return filepath.Abs(candidate)
		}
	}
	return "", fmt.Errorf("searched %d locations", len(candidates))
}
