package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go-frontier/pkg/dataset"
)

// DefaultMaxDepth bounds dependency recursion when the caller does not
// ask for a specific depth.
const DefaultMaxDepth = 10

// snapshot is one immutable view of the dataset plus everything derived
// from it. Queries hold a snapshot pointer for their whole duration, so
// a rebuild never changes results mid-query.
type snapshot struct {
	types      map[int]*dataset.TypeRecord
	ships      map[int]*dataset.ShipRecord
	blueprints map[int]*dataset.Blueprint
	dogma      map[int]dataset.AttributeBag
	graph      *Graph
	categories map[int]Category
	builtAt    time.Time
}

// Engine answers dependency, category, search and export queries over a
// snapshot of the loaded dataset.
type Engine struct {
	dataset dataset.DatasetService

	mu   sync.RWMutex
	snap *snapshot
}

// NewEngine creates an engine bound to a dataset service. Call Rebuild
// before issuing queries.
func NewEngine(ds dataset.DatasetService) *Engine {
	return &Engine{dataset: ds}
}

// Rebuild pulls the current dataset, derives the dependency graph and
// the category assignment, and swaps the new snapshot in. In-flight
// queries keep the old snapshot.
func (e *Engine) Rebuild(ctx context.Context) error {
	start := time.Now()

	types, err := e.dataset.GetAllTypes()
	if err != nil {
		return fmt.Errorf("failed to load types: %w", err)
	}
	ships, err := e.dataset.GetAllShips()
	if err != nil {
		return fmt.Errorf("failed to load ships: %w", err)
	}
	blueprints, err := e.dataset.GetAllBlueprints()
	if err != nil {
		return fmt.Errorf("failed to load blueprints: %w", err)
	}
	dogma, err := e.dataset.GetAllDogma()
	if err != nil {
		return fmt.Errorf("failed to load dogma: %w", err)
	}

	graph := BuildGraph(blueprints)
	snap := &snapshot{
		types:      types,
		ships:      ships,
		blueprints: blueprints,
		dogma:      dogma,
		graph:      graph,
		categories: buildCategories(types, ships, graph),
		builtAt:    time.Now(),
	}

	e.mu.Lock()
	e.snap = snap
	e.mu.Unlock()

	stats := graph.Stats()
	slog.InfoContext(ctx, "Industry engine rebuilt",
		"types", len(types),
		"ships", len(ships),
		"blueprints", stats.Blueprints,
		"products", stats.Products,
		"product_conflicts", stats.ProductConflicts,
		"duration", time.Since(start))

	return nil
}

// snapshotRef returns the current snapshot, building one on first use
func (e *Engine) snapshotRef() (*snapshot, error) {
	e.mu.RLock()
	snap := e.snap
	e.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	if err := e.Rebuild(context.Background()); err != nil {
		return nil, err
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap, nil
}

// GraphStats exposes the current graph build counters
func (e *Engine) GraphStats() (GraphStats, error) {
	snap, err := e.snapshotRef()
	if err != nil {
		return GraphStats{}, err
	}
	return snap.graph.Stats(), nil
}

// BuiltAt reports when the current snapshot was derived
func (e *Engine) BuiltAt() (time.Time, error) {
	snap, err := e.snapshotRef()
	if err != nil {
		return time.Time{}, err
	}
	return snap.builtAt, nil
}

// typeName resolves a display name. The ships mapping wins over types;
// unknown or unnamed ids fall back to a placeholder.
func (s *snapshot) typeName(typeID int) string {
	if ship, ok := s.ships[typeID]; ok {
		if ship.TypeName != "" {
			return ship.TypeName
		}
		return fmt.Sprintf("Type %d", typeID)
	}
	if rec, ok := s.types[typeID]; ok {
		if rec.TypeName != "" {
			return rec.TypeName
		}
	}
	return fmt.Sprintf("Type %d", typeID)
}
