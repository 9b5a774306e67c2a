package routes

import (
	"context"
	"errors"

	"go-frontier/internal/extractor/dto"
	"go-frontier/internal/extractor/services"

	"github.com/danielgtaylor/huma/v2"
)

// Module represents the extractor routes module
type Module struct {
	service *services.Service
}

// NewModule creates a new extractor routes module
func NewModule(service *services.Service) *Module {
	return &Module{
		service: service,
	}
}

// RegisterUnifiedRoutes registers all extractor routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	huma.Register(api, huma.Operation{
		OperationID: "extractor-start-run",
		Method:      "POST",
		Path:        basePath + "/runs",
		Summary:     "Start extraction run",
		Description: "Start a background extraction run over the game resource index. Only one run may be active at a time.",
		Tags:        []string{"Extractor"},
	}, m.startRun)

	huma.Register(api, huma.Operation{
		OperationID: "extractor-list-runs",
		Method:      "GET",
		Path:        basePath + "/runs",
		Summary:     "List extraction runs",
		Description: "List recent extraction runs, newest first.",
		Tags:        []string{"Extractor"},
	}, m.listRuns)

	huma.Register(api, huma.Operation{
		OperationID: "extractor-get-run",
		Method:      "GET",
		Path:        basePath + "/runs/{run_id}",
		Summary:     "Get extraction run",
		Description: "Get a single extraction run with its per-file results.",
		Tags:        []string{"Extractor"},
	}, m.getRun)

	huma.Register(api, huma.Operation{
		OperationID: "extractor-get-status",
		Method:      "GET",
		Path:        basePath + "/status",
		Summary:     "Get extractor module status",
		Description: "Returns the health status of the extractor module",
		Tags:        []string{"Module Status"},
	}, func(ctx context.Context, input *struct{}) (*dto.StatusOutput, error) {
		status := m.service.GetStatus(ctx)
		return &dto.StatusOutput{Body: *status}, nil
	})
}

func (m *Module) startRun(ctx context.Context, input *dto.StartRunInput) (*dto.RunOutput, error) {
	run, err := m.service.StartRun(ctx, &input.Body)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRunInProgress):
			return nil, huma.Error409Conflict("An extraction run is already in progress", err)
		case errors.Is(err, services.ErrInvalidRequest):
			return nil, huma.Error400BadRequest("Invalid extraction request", err)
		default:
			return nil, huma.Error500InternalServerError("Failed to start extraction run", err)
		}
	}
	return &dto.RunOutput{Body: *run}, nil
}

func (m *Module) listRuns(ctx context.Context, input *dto.ListRunsInput) (*dto.RunListOutput, error) {
	runs, err := m.service.ListRuns(ctx, input.Limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list extraction runs", err)
	}
	return &dto.RunListOutput{
		Body: dto.RunListResponse{
			Count: len(runs),
			Runs:  runs,
		},
	}, nil
}

func (m *Module) getRun(ctx context.Context, input *dto.GetRunInput) (*dto.RunOutput, error) {
	run, err := m.service.GetRun(ctx, input.RunID)
	if err != nil {
		if errors.Is(err, services.ErrRunNotFound) {
			return nil, huma.Error404NotFound("Extraction run not found", err)
		}
		return nil, huma.Error500InternalServerError("Failed to load extraction run", err)
	}
	return &dto.RunOutput{Body: *run}, nil
}
