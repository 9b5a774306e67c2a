package routes

import (
	"context"

	"go-frontier/internal/dataset/dto"
	"go-frontier/internal/dataset/services"

	"github.com/danielgtaylor/huma/v2"
)

// Module represents the dataset routes module
type Module struct {
	service *services.Service
}

// NewModule creates a new dataset routes module
func NewModule(service *services.Service) *Module {
	return &Module{
		service: service,
	}
}

// RegisterUnifiedRoutes registers all dataset routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	huma.Register(api, huma.Operation{
		OperationID: "dataset-reload",
		Method:      "POST",
		Path:        basePath + "/reload",
		Summary:     "Reload Dataset",
		Description: "Discard the in-memory dataset, re-read the data directory and notify downstream consumers.",
		Tags:        []string{"Dataset"},
	}, m.reload)

	huma.Register(api, huma.Operation{
		OperationID: "dataset-get-status",
		Method:      "GET",
		Path:        basePath + "/status",
		Summary:     "Get dataset module status",
		Description: "Returns the health status of the dataset module",
		Tags:        []string{"Module Status"},
	}, func(ctx context.Context, input *struct{}) (*dto.StatusOutput, error) {
		status := m.service.GetStatus(ctx)
		return &dto.StatusOutput{Body: *status}, nil
	})
}

func (m *Module) reload(ctx context.Context, input *struct{}) (*dto.ReloadOutput, error) {
	result, err := m.service.Reload(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to reload dataset", err)
	}
	return &dto.ReloadOutput{Body: *result}, nil
}
