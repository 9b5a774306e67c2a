package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go-frontier/internal/industry/dto"
	"go-frontier/pkg/dataset"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidSelection marks selection requests that fail validation
var ErrInvalidSelection = errors.New("invalid selection request")

// Service handles industry business logic
type Service struct {
	engine   *Engine
	sessions *SessionStore
	dataset  dataset.DatasetService
	validate *validator.Validate
}

// NewService creates a new industry service
func NewService(ds dataset.DatasetService) *Service {
	return &Service{
		engine:   NewEngine(ds),
		sessions: NewSessionStore(),
		dataset:  ds,
		validate: validator.New(),
	}
}

// Engine exposes the query engine
func (s *Service) Engine() *Engine {
	return s.engine
}

// Sessions exposes the selection session store
func (s *Service) Sessions() *SessionStore {
	return s.sessions
}

// Rebuild refreshes the engine snapshot from the dataset service
func (s *Service) Rebuild(ctx context.Context) error {
	return s.engine.Rebuild(ctx)
}

// CreateSession validates the seed ids and starts a new selection session
func (s *Service) CreateSession(req *dto.CreateSelectionRequest) (dto.SessionView, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.SessionView{}, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}
	return s.sessions.Create(req.TypeIDs), nil
}

// ReplaceSession validates the new ids and replaces the session's
// selection wholesale. An empty list clears the selection.
func (s *Service) ReplaceSession(sessionID string, req *dto.ReplaceSelectionRequest) (dto.SessionView, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.SessionView{}, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}
	return s.sessions.SetItems(sessionID, req.TypeIDs)
}

// ExportSession runs a selection export over a stored session
func (s *Service) ExportSession(sessionID string, includeDependencies bool) (*dto.SelectionExport, error) {
	items, err := s.sessions.Items(sessionID)
	if err != nil {
		return nil, err
	}
	return s.engine.ExportSelection(items, includeDependencies)
}

// GetStatus reports module health plus graph build counters
func (s *Service) GetStatus(ctx context.Context) *dto.StatusResponse {
	if !s.dataset.IsLoaded() {
		if err := s.dataset.Reload(ctx); err != nil {
			return &dto.StatusResponse{
				Module:  "industry",
				Status:  "unhealthy",
				Message: fmt.Sprintf("Dataset not loadable: %v", err),
			}
		}
	}

	stats, err := s.engine.GraphStats()
	if err != nil {
		slog.WarnContext(ctx, "Industry engine not buildable", "error", err)
		return &dto.StatusResponse{
			Module:  "industry",
			Status:  "unhealthy",
			Message: fmt.Sprintf("Engine build failed: %v", err),
		}
	}

	return &dto.StatusResponse{
		Module:            "industry",
		Status:            "healthy",
		Blueprints:        stats.Blueprints,
		Products:          stats.Products,
		ProductConflicts:  stats.ProductConflicts,
		SelectionSessions: s.sessions.Count(),
	}
}
