package dataset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// File names recognized in the data directory. The frontier-filtered type
// file and the dependency-enriched ship file are preferred when present.
const (
	typesFrontierFile = "types_frontier.json"
	typesFile         = "types.json"
	shipsEnrichedFile = "ships_with_deps.json"
	shipsFile         = "ships.json"
	blueprintsFile    = "blueprints.json"
	dogmaFile         = "all_dogma.json"
)

// ErrNotFound marks lookups for ids absent from the loaded mappings
var ErrNotFound = errors.New("not found")

// Service provides in-memory access to extracted Frontier data.
// Every loader is non-fatal: a missing or malformed file leaves its
// mapping empty and downstream consumers degrade.
type Service struct {
	types      map[int]*TypeRecord
	ships      map[int]*ShipRecord
	blueprints map[int]*Blueprint
	dogma      map[int]AttributeBag
	stats      Stats
	loaded     bool
	loadMu     sync.Mutex // Only used during loading
	dataDir    string
}

// NewService creates a new dataset service instance
func NewService(dataDir string) *Service {
	return &Service{
		types:      make(map[int]*TypeRecord),
		ships:      make(map[int]*ShipRecord),
		blueprints: make(map[int]*Blueprint),
		dogma:      make(map[int]AttributeBag),
		dataDir:    dataDir,
	}
}

// ensureLoaded loads the dataset if not already loaded
func (s *Service) ensureLoaded() error {
	// Fast path: data already loaded, no locking needed
	if s.loaded {
		return nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	// Double-check after acquiring lock (another goroutine might have loaded it)
	if s.loaded {
		return nil
	}

	return s.loadAll()
}

// loadAll reads every data file. Caller holds loadMu.
func (s *Service) loadAll() error {
	start := time.Now()
	stats := Stats{}

	if err := s.loadTypes(&stats); err != nil {
		slog.Warn("Types unavailable", "error", err)
	}

	if err := s.loadShips(&stats); err != nil {
		slog.Warn("Ships unavailable", "error", err)
	}

	if err := s.loadBlueprints(&stats); err != nil {
		slog.Warn("Blueprints unavailable", "error", err)
	}

	if err := s.loadDogma(&stats); err != nil {
		slog.Debug("Dogma unavailable", "error", err)
	}

	s.enrichShips()

	stats.TypeCount = len(s.types)
	stats.ShipCount = len(s.ships)
	stats.BlueprintCount = len(s.blueprints)
	stats.DogmaCount = len(s.dogma)
	stats.LoadedAt = time.Now()
	stats.LoadDuration = time.Since(start)
	s.stats = stats
	s.loaded = true

	slog.Info("Dataset loaded",
		"types", stats.TypeCount,
		"types_source", stats.TypesSource,
		"ships", stats.ShipCount,
		"ships_source", stats.ShipsSource,
		"blueprints", stats.BlueprintCount,
		"dogma", stats.DogmaCount,
		"duration", stats.LoadDuration.String(),
	)

	return nil
}

// Reload discards loaded data and re-reads the data directory
func (s *Service) Reload(ctx context.Context) error {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.types = make(map[int]*TypeRecord)
	s.ships = make(map[int]*ShipRecord)
	s.blueprints = make(map[int]*Blueprint)
	s.dogma = make(map[int]AttributeBag)
	s.loaded = false

	slog.InfoContext(ctx, "Reloading dataset", "data_dir", s.dataDir)
	if err := s.loadAll(); err != nil {
		return err
	}
	return nil
}

// decodeIDMap unmarshals an object keyed by stringified integer ids,
// skipping non-numeric keys and malformed values.
func decodeIDMap[T any](data []byte) (map[int]*T, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	out := make(map[int]*T, len(raw))
	for key, value := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		record := new(T)
		if err := json.Unmarshal(value, record); err != nil {
			slog.Debug("Skipping malformed record", "id", key, "error", err)
			continue
		}
		out[id] = record
	}
	return out, nil
}

// loadTypes prefers the frontier-filtered type file over the full dump
func (s *Service) loadTypes(stats *Stats) error {
	filePath := filepath.Join(s.dataDir, typesFrontierFile)
	source := typesFrontierFile
	if _, err := os.Stat(filePath); err != nil {
		filePath = filepath.Join(s.dataDir, typesFile)
		source = typesFile
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read types file: %w", err)
	}

	types, err := decodeIDMap[TypeRecord](data)
	if err != nil {
		return fmt.Errorf("failed to unmarshal types: %w", err)
	}

	s.types = types
	stats.TypesSource = source
	return nil
}

// loadShips prefers the dependency-enriched ship file and tolerates the
// exported {"ships": {...}} wrapper around either file.
func (s *Service) loadShips(stats *Stats) error {
	filePath := filepath.Join(s.dataDir, shipsEnrichedFile)
	source := shipsEnrichedFile
	if _, err := os.Stat(filePath); err != nil {
		filePath = filepath.Join(s.dataDir, shipsFile)
		source = shipsFile
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read ships file: %w", err)
	}

	var wrapper struct {
		Ships json.RawMessage `json:"ships"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil && len(wrapper.Ships) > 0 {
		data = wrapper.Ships
	}

	ships, err := decodeIDMap[ShipRecord](data)
	if err != nil {
		return fmt.Errorf("failed to unmarshal ships: %w", err)
	}

	s.ships = ships
	stats.ShipsSource = source
	return nil
}

// loadBlueprints detects the three historical blueprint file shapes:
// a raw cache-table dump, a previously exported wrapper, and a flat
// id-to-blueprint mapping.
func (s *Service) loadBlueprints(stats *Stats) error {
	filePath := filepath.Join(s.dataDir, blueprintsFile)
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read blueprints file: %w", err)
	}

	blueprints, shape, err := ParseBlueprints(data)
	if err != nil {
		return err
	}
	s.blueprints = blueprints
	stats.BlueprintsShape = shape

	return nil
}

// ParseBlueprints decodes a blueprints payload in any of its three
// shipped shapes into the canonical id mapping and reports which shape
// it was: "cache" for a raw SQLite cache-table dump, "wrapped" for a
// {"blueprints": {...}} object, "flat" for the bare id mapping.
func ParseBlueprints(data []byte) (map[int]*Blueprint, string, error) {
	var probe struct {
		Cache      []cacheRow      `json:"cache"`
		Blueprints json.RawMessage `json:"blueprints"`
	}
	// The probe only matters for objects; decode errors fall through to
	// the flat-mapping parser below.
	_ = json.Unmarshal(data, &probe)

	switch {
	case probe.Cache != nil:
		blueprints := make(map[int]*Blueprint, len(probe.Cache))
		for _, row := range probe.Cache {
			var bp Blueprint
			if err := json.Unmarshal([]byte(row.Value), &bp); err != nil {
				slog.Debug("Skipping malformed cache row", "key", row.Key, "error", err)
				continue
			}
			blueprints[bp.BlueprintTypeID] = &bp
		}
		return blueprints, "cache", nil

	case len(probe.Blueprints) > 0:
		blueprints, err := decodeIDMap[Blueprint](probe.Blueprints)
		if err != nil {
			return nil, "", fmt.Errorf("failed to unmarshal wrapped blueprints: %w", err)
		}
		return blueprints, "wrapped", nil

	default:
		blueprints, err := decodeIDMap[Blueprint](data)
		if err != nil {
			return nil, "", fmt.Errorf("failed to unmarshal blueprints: %w", err)
		}
		return blueprints, "flat", nil
	}
}

// cacheRow is one record of the raw SQLite cache-table dump. The value
// column holds a JSON-encoded blueprint as a string.
type cacheRow struct {
	Key   json.Number `json:"key"`
	Value string      `json:"value"`
	Time  json.Number `json:"time,omitempty"`
}

// loadDogma loads the optional per-type dogma attribute bags
func (s *Service) loadDogma(stats *Stats) error {
	filePath := filepath.Join(s.dataDir, dogmaFile)
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read dogma file: %w", err)
	}

	bags, err := decodeIDMap[AttributeBag](data)
	if err != nil {
		return fmt.Errorf("failed to unmarshal dogma: %w", err)
	}

	dogma := make(map[int]AttributeBag, len(bags))
	for id, bag := range bags {
		dogma[id] = *bag
	}
	s.dogma = dogma
	return nil
}

// enrichShips fills missing stats and attribute bags from loaded dogma
func (s *Service) enrichShips() {
	for id, ship := range s.ships {
		if ship.DogmaAttributes == nil {
			if bag, ok := s.dogma[id]; ok {
				ship.DogmaAttributes = bag
			}
		}
		if ship.Stats == nil && ship.DogmaAttributes != nil {
			ship.Stats = DeriveShipStats(ship.DogmaAttributes)
		}
	}
}

// GetType retrieves a type record by id
func (s *Service) GetType(id int) (*TypeRecord, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	record, exists := s.types[id]
	if !exists {
		return nil, fmt.Errorf("type %d: %w", id, ErrNotFound)
	}

	return record, nil
}

// GetShip retrieves a ship record by id
func (s *Service) GetShip(id int) (*ShipRecord, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	ship, exists := s.ships[id]
	if !exists {
		return nil, fmt.Errorf("ship %d: %w", id, ErrNotFound)
	}

	return ship, nil
}

// GetBlueprint retrieves a blueprint by id
func (s *Service) GetBlueprint(id int) (*Blueprint, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	blueprint, exists := s.blueprints[id]
	if !exists {
		return nil, fmt.Errorf("blueprint %d: %w", id, ErrNotFound)
	}

	return blueprint, nil
}

// GetDogma retrieves the attribute bag for a type, nil when absent
func (s *Service) GetDogma(id int) (AttributeBag, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	return s.dogma[id], nil
}

// GetAllTypes returns all type records
func (s *Service) GetAllTypes() (map[int]*TypeRecord, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	// Return a copy to prevent external modification
	types := make(map[int]*TypeRecord, len(s.types))
	for id, record := range s.types {
		types[id] = record
	}

	return types, nil
}

// GetAllShips returns all ship records
func (s *Service) GetAllShips() (map[int]*ShipRecord, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	// Return a copy to prevent external modification
	ships := make(map[int]*ShipRecord, len(s.ships))
	for id, ship := range s.ships {
		ships[id] = ship
	}

	return ships, nil
}

// GetAllBlueprints returns all blueprints
func (s *Service) GetAllBlueprints() (map[int]*Blueprint, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	// Return a copy to prevent external modification
	blueprints := make(map[int]*Blueprint, len(s.blueprints))
	for id, blueprint := range s.blueprints {
		blueprints[id] = blueprint
	}

	return blueprints, nil
}

// GetAllDogma returns all dogma attribute bags
func (s *Service) GetAllDogma() (map[int]AttributeBag, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	dogma := make(map[int]AttributeBag, len(s.dogma))
	for id, bag := range s.dogma {
		dogma[id] = bag
	}

	return dogma, nil
}

// SearchableNames returns the merged display names across types and
// ships, ship names winning on shared ids. Unnamed records are skipped.
func (s *Service) SearchableNames() (map[int]string, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}

	names := make(map[int]string, len(s.types)+len(s.ships))
	for id, record := range s.types {
		if record.TypeName != "" {
			names[id] = record.TypeName
		}
	}
	for id, ship := range s.ships {
		if ship.TypeName != "" {
			names[id] = ship.TypeName
		}
	}

	return names, nil
}

// IsLoaded returns whether the dataset has been loaded
func (s *Service) IsLoaded() bool {
	return s.loaded
}

// Stats returns the snapshot taken at the last load
func (s *Service) Stats() (Stats, error) {
	if err := s.ensureLoaded(); err != nil {
		return Stats{}, err
	}
	return s.stats, nil
}

// DataDir returns the directory the service reads from
func (s *Service) DataDir() string {
	return s.dataDir
}
