package extractor

import (
	"context"
	"log/slog"

	"go-frontier/internal/extractor/routes"
	"go-frontier/internal/extractor/services"
	"go-frontier/pkg/database"
	"go-frontier/pkg/module"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
)

// Module represents the extractor module
type Module struct {
	*module.BaseModule
	service *services.Service
	routes  *routes.Module
}

// NewModule creates a new extractor module instance
func NewModule(mongodb *database.MongoDB, redis *database.Redis) *Module {
	service := services.NewService(mongodb, redis)
	routesModule := routes.NewModule(service)

	m := &Module{
		BaseModule: module.NewBaseModule("extractor", mongodb, redis),
		service:    service,
		routes:     routesModule,
	}

	slog.Info("Extractor module initialized",
		"name", m.Name(),
		"mongo_available", mongodb != nil,
		"redis_available", redis != nil)

	return m
}

// RegisterUnifiedRoutes registers all extractor routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	slog.Info("Registering extractor unified routes", "basePath", basePath)

	m.routes.RegisterUnifiedRoutes(api, basePath)

	slog.Info("Extractor unified routes registered successfully", "basePath", basePath)
}

// Routes registers the module's chi routes
func (m *Module) Routes(r chi.Router) {
	m.RegisterHealthRoute(r)
}

// GetService returns the extractor service for other modules and the CLI
func (m *Module) GetService() *services.Service {
	return m.service
}

// StartBackgroundTasks waits for shutdown; runs are launched on demand
func (m *Module) StartBackgroundTasks(ctx context.Context) {
	slog.Info("Starting extractor background tasks")

	select {
	case <-ctx.Done():
		slog.Info("Extractor background tasks stopped due to context cancellation")
	case <-m.StopChannel():
		slog.Info("Extractor background tasks stopped")
	}
}
