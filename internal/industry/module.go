package industry

import (
	"context"
	"log/slog"
	"time"

	"go-frontier/internal/industry/routes"
	"go-frontier/internal/industry/services"
	"go-frontier/pkg/dataset"
	"go-frontier/pkg/module"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
)

// sessionMaxAge is how long an idle selection session survives before
// the background pruner drops it
const sessionMaxAge = 24 * time.Hour

// Module represents the industry module
type Module struct {
	*module.BaseModule
	service *services.Service
	routes  *routes.Module
}

// NewModule creates a new industry module instance
func NewModule(ds dataset.DatasetService) *Module {
	service := services.NewService(ds)
	routesModule := routes.NewModule(service)

	m := &Module{
		BaseModule: module.NewBaseModule("industry", nil, nil),
		service:    service,
		routes:     routesModule,
	}

	slog.Info("Industry module initialized", "name", m.Name())

	return m
}

// RegisterUnifiedRoutes registers all industry routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	slog.Info("Registering industry unified routes", "basePath", basePath)

	m.routes.RegisterUnifiedRoutes(api, basePath)

	slog.Info("Industry unified routes registered successfully", "basePath", basePath)
}

// Routes registers the module's chi routes
func (m *Module) Routes(r chi.Router) {
	m.RegisterHealthRoute(r)
}

// GetService returns the industry service for other modules and the CLI
func (m *Module) GetService() *services.Service {
	return m.service
}

// Rebuild refreshes the engine snapshot, called after a dataset reload
func (m *Module) Rebuild(ctx context.Context) error {
	return m.service.Rebuild(ctx)
}

// StartBackgroundTasks prunes idle selection sessions periodically
func (m *Module) StartBackgroundTasks(ctx context.Context) {
	slog.Info("Starting industry background tasks")

	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Industry background tasks stopped due to context cancellation")
			return
		case <-m.StopChannel():
			slog.Info("Industry background tasks stopped")
			return
		case <-ticker.C:
			if pruned := m.service.Sessions().Prune(sessionMaxAge); pruned > 0 {
				slog.Info("Pruned idle selection sessions", "count", pruned)
			}
		}
	}
}
