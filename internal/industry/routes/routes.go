package routes

import (
	"context"
	"errors"
	"fmt"

	"go-frontier/internal/industry/dto"
	"go-frontier/internal/industry/services"

	"github.com/danielgtaylor/huma/v2"
)

// Module represents the industry routes module
type Module struct {
	service *services.Service
}

// NewModule creates a new industry routes module
func NewModule(service *services.Service) *Module {
	return &Module{
		service: service,
	}
}

// RegisterUnifiedRoutes registers all industry routes with the provided Huma API
func (m *Module) RegisterUnifiedRoutes(api huma.API, basePath string) {
	huma.Register(api, huma.Operation{
		OperationID: "industry-search-types",
		Method:      "GET",
		Path:        basePath + "/search",
		Summary:     "Search Types and Ships by Name",
		Description: "Case-insensitive substring search across type and ship display names. Ship records win when an ID exists in both mappings. Results are sorted alphabetically.",
		Tags:        []string{"Industry"},
	}, m.searchTypes)

	huma.Register(api, huma.Operation{
		OperationID: "industry-get-dependencies",
		Method:      "GET",
		Path:        basePath + "/types/{type_id}/dependencies",
		Summary:     "Get Dependency Closure",
		Description: "Resolve every type needed to manufacture the given type: the type itself, producing blueprints and all materials, recursively up to max_depth.",
		Tags:        []string{"Industry"},
	}, m.getDependencies)

	huma.Register(api, huma.Operation{
		OperationID: "industry-get-chain",
		Method:      "GET",
		Path:        basePath + "/types/{type_id}/chain",
		Summary:     "Get Manufacturing Chain",
		Description: "Expand the manufacturing chain level by level. Level 0 is the target; each next level holds the materials of the previous level that were not seen before.",
		Tags:        []string{"Industry"},
	}, m.getChain)

	huma.Register(api, huma.Operation{
		OperationID: "industry-list-categories",
		Method:      "GET",
		Path:        basePath + "/categories",
		Summary:     "List Categories",
		Description: "Return every category of the type taxonomy with its member count.",
		Tags:        []string{"Industry"},
	}, m.listCategories)

	huma.Register(api, huma.Operation{
		OperationID: "industry-list-category",
		Method:      "GET",
		Path:        basePath + "/categories/{category}",
		Summary:     "List Category Members",
		Description: "List all type IDs and names in one category, sorted by name.",
		Tags:        []string{"Industry"},
	}, m.listCategory)

	huma.Register(api, huma.Operation{
		OperationID: "industry-export-category",
		Method:      "GET",
		Path:        basePath + "/categories/{category}/export",
		Summary:     "Export Category",
		Description: "Export one category's data. Blueprints export the full blueprint mapping, ships export ship records with type record fallback, every other category exports type records with dogma attributes merged in.",
		Tags:        []string{"Industry", "Export"},
	}, m.exportCategory)

	huma.Register(api, huma.Operation{
		OperationID: "industry-export-blueprints",
		Method:      "GET",
		Path:        basePath + "/blueprints/export",
		Summary:     "Export All Blueprints",
		Description: "Export every blueprint together with all referenced product and material types, optionally expanded through the dependency closure.",
		Tags:        []string{"Industry", "Export"},
	}, m.exportBlueprints)

	huma.Register(api, huma.Operation{
		OperationID: "industry-create-selection",
		Method:      "POST",
		Path:        basePath + "/selections",
		Summary:     "Create Selection Session",
		Description: "Start a new selection session, optionally seeded with type IDs. The returned session ID addresses all further selection calls.",
		Tags:        []string{"Industry", "Selections"},
	}, m.createSelection)

	huma.Register(api, huma.Operation{
		OperationID: "industry-get-selection",
		Method:      "GET",
		Path:        basePath + "/selections/{session_id}",
		Summary:     "Get Selection Session",
		Tags:        []string{"Industry", "Selections"},
	}, m.getSelection)

	huma.Register(api, huma.Operation{
		OperationID: "industry-replace-selection",
		Method:      "PUT",
		Path:        basePath + "/selections/{session_id}",
		Summary:     "Replace Selection",
		Description: "Replace the session's selected type IDs wholesale. An empty list clears the selection.",
		Tags:        []string{"Industry", "Selections"},
	}, m.replaceSelection)

	huma.Register(api, huma.Operation{
		OperationID: "industry-delete-selection",
		Method:      "DELETE",
		Path:        basePath + "/selections/{session_id}",
		Summary:     "Delete Selection Session",
		Tags:        []string{"Industry", "Selections"},
	}, m.deleteSelection)

	huma.Register(api, huma.Operation{
		OperationID: "industry-add-selection-item",
		Method:      "PUT",
		Path:        basePath + "/selections/{session_id}/items/{type_id}",
		Summary:     "Add Type to Selection",
		Tags:        []string{"Industry", "Selections"},
	}, m.addSelectionItem)

	huma.Register(api, huma.Operation{
		OperationID: "industry-remove-selection-item",
		Method:      "DELETE",
		Path:        basePath + "/selections/{session_id}/items/{type_id}",
		Summary:     "Remove Type from Selection",
		Tags:        []string{"Industry", "Selections"},
	}, m.removeSelectionItem)

	huma.Register(api, huma.Operation{
		OperationID: "industry-export-selection",
		Method:      "POST",
		Path:        basePath + "/selections/{session_id}/export",
		Summary:     "Export Selection",
		Description: "Assemble the export payload for the session's selection: types, ships and producing blueprints, optionally expanded through the dependency closure.",
		Tags:        []string{"Industry", "Selections", "Export"},
	}, m.exportSelection)

	huma.Register(api, huma.Operation{
		OperationID: "industry-get-status",
		Method:      "GET",
		Path:        basePath + "/status",
		Summary:     "Get industry module status",
		Description: "Returns the health status of the industry module",
		Tags:        []string{"Module Status"},
	}, func(ctx context.Context, input *struct{}) (*dto.StatusOutput, error) {
		status := m.service.GetStatus(ctx)
		return &dto.StatusOutput{Body: *status}, nil
	})
}

func (m *Module) searchTypes(ctx context.Context, input *dto.SearchInput) (*dto.SearchOutput, error) {
	hits, err := m.service.Engine().Search(input.Query)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to search types", err)
	}
	return &dto.SearchOutput{Body: dto.SearchResponse{
		Query:   input.Query,
		Count:   len(hits),
		Results: hits,
	}}, nil
}

func (m *Module) getDependencies(ctx context.Context, input *dto.DependenciesInput) (*dto.DependenciesOutput, error) {
	result, err := m.service.Engine().Dependencies(input.TypeID, input.MaxDepth)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to resolve dependencies", err)
	}
	return &dto.DependenciesOutput{Body: *result}, nil
}

func (m *Module) getChain(ctx context.Context, input *dto.ChainInput) (*dto.ChainOutput, error) {
	chain, err := m.service.Engine().FullChain(input.TypeID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to expand chain", err)
	}
	return &dto.ChainOutput{Body: *chain}, nil
}

func (m *Module) listCategories(ctx context.Context, input *struct{}) (*dto.CategoryCountsOutput, error) {
	counts, err := m.service.Engine().CategoryCounts()
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to count categories", err)
	}

	body := dto.CategoryCounts{Categories: make(map[string]int, len(counts))}
	for category, count := range counts {
		body.Categories[string(category)] = count
		body.Total += count
	}
	return &dto.CategoryCountsOutput{Body: body}, nil
}

func (m *Module) listCategory(ctx context.Context, input *dto.CategoryInput) (*dto.CategoryListOutput, error) {
	category, err := services.ParseCategory(input.Category)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	items, err := m.service.Engine().ListCategory(category)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list category", err)
	}
	return &dto.CategoryListOutput{Body: dto.CategoryListResponse{
		Category: input.Category,
		Count:    len(items),
		Items:    items,
	}}, nil
}

func (m *Module) exportCategory(ctx context.Context, input *dto.CategoryInput) (*dto.CategoryExportOutput, error) {
	category, err := services.ParseCategory(input.Category)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}

	payload, err := m.service.Engine().ExportCategory(category)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to export category", err)
	}
	return &dto.CategoryExportOutput{Body: payload}, nil
}

func (m *Module) exportBlueprints(ctx context.Context, input *dto.ExportBlueprintsInput) (*dto.BlueprintExportOutput, error) {
	payload, err := m.service.Engine().ExportAllBlueprints(input.IncludeDependencies)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to export blueprints", err)
	}
	return &dto.BlueprintExportOutput{Body: *payload}, nil
}

func (m *Module) createSelection(ctx context.Context, input *dto.CreateSelectionInput) (*dto.SessionOutput, error) {
	view, err := m.service.CreateSession(&input.Body)
	if err != nil {
		return nil, huma.Error400BadRequest(err.Error())
	}
	return &dto.SessionOutput{Body: view}, nil
}

func (m *Module) getSelection(ctx context.Context, input *dto.GetSelectionInput) (*dto.SessionOutput, error) {
	view, err := m.service.Sessions().Get(input.SessionID)
	if err != nil {
		return nil, sessionError(input.SessionID, err)
	}
	return &dto.SessionOutput{Body: view}, nil
}

func (m *Module) replaceSelection(ctx context.Context, input *dto.ReplaceSelectionInput) (*dto.SessionOutput, error) {
	view, err := m.service.ReplaceSession(input.SessionID, &input.Body)
	if err != nil {
		return nil, sessionError(input.SessionID, err)
	}
	return &dto.SessionOutput{Body: view}, nil
}

func (m *Module) deleteSelection(ctx context.Context, input *dto.GetSelectionInput) (*struct{}, error) {
	if err := m.service.Sessions().Delete(input.SessionID); err != nil {
		return nil, sessionError(input.SessionID, err)
	}
	return &struct{}{}, nil
}

func (m *Module) addSelectionItem(ctx context.Context, input *dto.SelectionItemInput) (*dto.SessionOutput, error) {
	view, err := m.service.Sessions().AddItem(input.SessionID, input.TypeID)
	if err != nil {
		return nil, sessionError(input.SessionID, err)
	}
	return &dto.SessionOutput{Body: view}, nil
}

func (m *Module) removeSelectionItem(ctx context.Context, input *dto.SelectionItemInput) (*dto.SessionOutput, error) {
	view, err := m.service.Sessions().RemoveItem(input.SessionID, input.TypeID)
	if err != nil {
		return nil, sessionError(input.SessionID, err)
	}
	return &dto.SessionOutput{Body: view}, nil
}

func (m *Module) exportSelection(ctx context.Context, input *dto.ExportSelectionInput) (*dto.SelectionExportOutput, error) {
	payload, err := m.service.ExportSession(input.SessionID, input.IncludeDependencies)
	if err != nil {
		return nil, sessionError(input.SessionID, err)
	}
	return &dto.SelectionExportOutput{Body: *payload}, nil
}

// sessionError maps a selection failure to the right HTTP error
func sessionError(sessionID string, err error) error {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return huma.Error404NotFound(fmt.Sprintf("Selection session %s not found", sessionID))
	case errors.Is(err, services.ErrInvalidSelection):
		return huma.Error400BadRequest(err.Error())
	default:
		return huma.Error500InternalServerError("Selection operation failed", err)
	}
}
