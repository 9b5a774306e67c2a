package app

import (
	"context"
	"log"
	"log/slog"

	"go-frontier/pkg/config"
	"go-frontier/pkg/database"
	"go-frontier/pkg/dataset"
	"go-frontier/pkg/logging"

	"github.com/joho/godotenv"
)

// AppContext holds the shared application context and dependencies
type AppContext struct {
	MongoDB          *database.MongoDB
	Redis            *database.Redis
	Dataset          dataset.DatasetService
	TelemetryManager *logging.TelemetryManager
	ServiceName      string
	shutdownFuncs    []func(context.Context) error
}

// InitializeApp initializes common application dependencies.
// MongoDB and Redis are optional: when unreachable the application keeps
// running in degraded mode (no run history, no published status).
func InitializeApp(serviceName string) (*AppContext, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading it: %v", err)
	}

	ctx := context.Background()

	telemetryManager := logging.NewTelemetryManager()
	if err := telemetryManager.Initialize(ctx); err != nil {
		log.Printf("Warning: Failed to initialize telemetry: %v", err)
	}

	mongodb, err := database.NewMongoDB(ctx, "frontier")
	if err != nil {
		slog.Warn("MongoDB unavailable, continuing without run history", "error", err)
		mongodb = nil
	}

	redis, err := database.NewRedis(ctx)
	if err != nil {
		slog.Warn("Redis unavailable, continuing without status publishing", "error", err)
		redis = nil
	}

	dataDir := config.GetEnv("FRONTIER_DATA_DIR", "extracted_data")
	datasetService := dataset.NewService(dataDir)
	slog.Info("Dataset service initialized", "data_dir", dataDir)

	appCtx := &AppContext{
		MongoDB:          mongodb,
		Redis:            redis,
		Dataset:          datasetService,
		TelemetryManager: telemetryManager,
		ServiceName:      serviceName,
	}

	if mongodb != nil {
		appCtx.shutdownFuncs = append(appCtx.shutdownFuncs, mongodb.Close)
	}
	if redis != nil {
		appCtx.shutdownFuncs = append(appCtx.shutdownFuncs, func(ctx context.Context) error {
			return redis.Close()
		})
	}
	if telemetryManager != nil {
		appCtx.shutdownFuncs = append(appCtx.shutdownFuncs, telemetryManager.Shutdown)
	}

	return appCtx, nil
}

// Shutdown gracefully shuts down all application dependencies
func (a *AppContext) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application", "service", a.ServiceName)

	for _, shutdown := range a.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
	}

	slog.Info("Application shutdown completed", "service", a.ServiceName)
	return nil
}

// GetPort returns the port from environment or default
func GetPort(defaultPort string) string {
	return config.GetEnv("PORT", defaultPort)
}

// IsProduction returns true if running in production environment
func IsProduction() bool {
	return config.GetEnv("ENVIRONMENT", "development") == "production"
}

// IsDevelopment returns true if running in development environment
func IsDevelopment() bool {
	return !IsProduction()
}
