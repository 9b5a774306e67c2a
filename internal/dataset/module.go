package dataset

import (
	"context"
	"log/slog"

	"go-frontier/internal/dataset/routes"
	"go-frontier/internal/dataset/services"
	"go-frontier/pkg/config"
	"go-frontier/pkg/database"
	"go-frontier/pkg/dataset"
	"go-frontier/pkg/module"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"
	"github.com/robfig/cron/v3"
)

// Module represents the dataset module
type Module struct {
	*module.BaseModule
	service *services.Service
	routes  *routes.Module
	cron    *cron.Cron
}

// NewModule creates a new dataset module instance
func NewModule(ds dataset.DatasetService, redis *database.Redis) *Module {
	service := services.NewService(ds, redis)
	routesModule := routes.NewModule(service)

	m := &Module{
		BaseModule: module.NewBaseModule("dataset", nil, redis),
		service:    service,
		routes:     routesModule,
	}

	slog.Info("Dataset module initialized", "name", m.Name(), "data_dir", ds.DataDir())

	return m
}

// RegisterUnifiedRoutes registers all dataset routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	slog.Info("Registering dataset unified routes", "basePath", basePath)

	m.routes.RegisterUnifiedRoutes(api, basePath)

	slog.Info("Dataset unified routes registered successfully", "basePath", basePath)
}

// Routes registers the module's chi routes
func (m *Module) Routes(r chi.Router) {
	m.RegisterHealthRoute(r)
}

// GetService returns the dataset service for other modules and the CLI
func (m *Module) GetService() *services.Service {
	return m.service
}

// StartBackgroundTasks schedules periodic dataset reloads when
// DATASET_RELOAD_CRON is set to a cron expression with seconds,
// for example "0 0 4 * * *" for a daily 04:00 reload.
func (m *Module) StartBackgroundTasks(ctx context.Context) {
	schedule := config.GetEnv("DATASET_RELOAD_CRON", "")
	if schedule == "" {
		slog.Info("Dataset auto-reload disabled, no schedule configured")
		return
	}

	m.cron = cron.New(cron.WithSeconds())
	_, err := m.cron.AddFunc(schedule, func() {
		if _, err := m.service.Reload(context.Background()); err != nil {
			slog.Error("Scheduled dataset reload failed", "error", err)
		}
	})
	if err != nil {
		slog.Error("Invalid dataset reload schedule", "schedule", schedule, "error", err)
		return
	}

	m.cron.Start()
	slog.Info("Dataset auto-reload scheduled", "schedule", schedule)

	select {
	case <-ctx.Done():
		slog.Info("Dataset background tasks stopped due to context cancellation")
	case <-m.StopChannel():
		slog.Info("Dataset background tasks stopped")
	}

	cronCtx := m.cron.Stop()
	<-cronCtx.Done()
}
