package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go-frontier/internal/dataset/dto"
	"go-frontier/pkg/database"
	"go-frontier/pkg/dataset"
)

// Redis keys for reload metadata. Writes are best-effort: a nil or
// unreachable Redis never fails a reload.
const (
	lastReloadKey  = "dataset:metadata:last_reload"
	reloadStatsKey = "dataset:metadata:stats"
)

// ReloadListener is notified after every successful dataset reload so
// derived state can be rebuilt. A failing listener does not undo the
// reload.
type ReloadListener func(ctx context.Context) error

// Service exposes dataset status and reload orchestration
type Service struct {
	dataset dataset.DatasetService
	redis   *database.Redis

	mu        sync.Mutex // serializes reloads
	listeners []ReloadListener
}

// NewService creates a new dataset service. Redis may be nil when
// running without shared infrastructure.
func NewService(ds dataset.DatasetService, redis *database.Redis) *Service {
	return &Service{
		dataset: ds,
		redis:   redis,
	}
}

// Dataset returns the wrapped dataset service
func (s *Service) Dataset() dataset.DatasetService {
	return s.dataset
}

// OnReload registers a listener invoked after each successful reload.
// Registration is not synchronized, wire all listeners during startup.
func (s *Service) OnReload(listener ReloadListener) {
	s.listeners = append(s.listeners, listener)
}

// Reload re-reads the data directory and notifies listeners
func (s *Service) Reload(ctx context.Context) (*dto.ReloadResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	if err := s.dataset.Reload(ctx); err != nil {
		return nil, fmt.Errorf("failed to reload dataset: %w", err)
	}

	stats, err := s.dataset.Stats()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset stats: %w", err)
	}

	listenerErrors := 0
	for _, listener := range s.listeners {
		if err := listener(ctx); err != nil {
			listenerErrors++
			slog.WarnContext(ctx, "Reload listener failed", "error", err)
		}
	}

	s.recordReload(ctx, stats)

	duration := time.Since(start)
	slog.InfoContext(ctx, "Dataset reloaded",
		"types", stats.TypeCount,
		"ships", stats.ShipCount,
		"blueprints", stats.BlueprintCount,
		"listeners", len(s.listeners),
		"listener_errors", listenerErrors,
		"duration", duration.String(),
	)

	return &dto.ReloadResponse{
		Reloaded:       true,
		DurationMS:     duration.Milliseconds(),
		TypeCount:      stats.TypeCount,
		ShipCount:      stats.ShipCount,
		BlueprintCount: stats.BlueprintCount,
		DogmaCount:     stats.DogmaCount,
		Listeners:      len(s.listeners),
		ListenerErrors: listenerErrors,
	}, nil
}

// recordReload stores reload metadata in Redis for other instances
func (s *Service) recordReload(ctx context.Context, stats dataset.Stats) {
	if s.redis == nil {
		return
	}

	if err := s.redis.Set(ctx, lastReloadKey, time.Now().Format(time.RFC3339), 0); err != nil {
		slog.WarnContext(ctx, "Failed to record reload timestamp", "error", err)
		return
	}
	if err := s.redis.SetJSON(ctx, reloadStatsKey, stats, 0); err != nil {
		slog.WarnContext(ctx, "Failed to record reload stats", "error", err)
	}
}

// GetStatus returns the dataset module status. Reading stats loads the
// dataset on first call.
func (s *Service) GetStatus(ctx context.Context) *dto.StatusResponse {
	status := &dto.StatusResponse{
		Module:  "dataset",
		DataDir: s.dataset.DataDir(),
		Loaded:  s.dataset.IsLoaded(),
	}

	stats, err := s.dataset.Stats()
	if err != nil {
		status.Status = "unhealthy"
		status.Message = fmt.Sprintf("Dataset unavailable: %v", err)
		return status
	}

	status.Status = "healthy"
	status.Loaded = true
	status.TypeCount = stats.TypeCount
	status.ShipCount = stats.ShipCount
	status.BlueprintCount = stats.BlueprintCount
	status.DogmaCount = stats.DogmaCount
	status.TypesSource = stats.TypesSource
	status.ShipsSource = stats.ShipsSource
	status.BlueprintsShape = stats.BlueprintsShape
	status.LoadedAt = stats.LoadedAt.Format(time.RFC3339)

	if s.redis != nil {
		if lastReload, err := s.redis.Get(ctx, lastReloadKey); err == nil {
			status.LastReload = lastReload
		}
	}

	return status
}
