package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"go-frontier/internal/extractor/dto"
	"go-frontier/internal/extractor/models"
	"go-frontier/pkg/config"
	"go-frontier/pkg/database"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	runsCollection = "extraction_runs"
	runKeyPrefix   = "extractor:runs:"
	lastRunKey     = "extractor:last_run"
	runKeyTTL      = 24 * time.Hour

	// maxMemoryRuns bounds the in-memory run window used without Mongo
	maxMemoryRuns = 50
)

var (
	// ErrRunInProgress rejects a second trigger while a pipeline runs
	ErrRunInProgress = errors.New("an extraction run is already in progress")
	// ErrRunNotFound marks lookups for unknown run ids
	ErrRunNotFound = errors.New("extraction run not found")
	// ErrInvalidRequest marks trigger requests that fail validation
	ErrInvalidRequest = errors.New("invalid extraction request")
)

// Service orchestrates extraction runs. One pipeline runs at a time;
// history goes to Mongo and progress to Redis when available, with an
// in-memory window as the degraded fallback for both.
type Service struct {
	mongodb  *database.MongoDB
	redis    *database.Redis
	validate *validator.Validate

	runMu   sync.Mutex // held for the duration of a pipeline run
	running atomic.Bool

	memMu sync.RWMutex
	runs  map[string]*models.ExtractionRun
	order []string // run ids, oldest first

	gameDir   string
	outputDir string
}

// NewService creates a new extractor service. Mongo and Redis may be
// nil when running without shared infrastructure.
func NewService(mongodb *database.MongoDB, redis *database.Redis) *Service {
	validate := validator.New()
	dto.RegisterCustomValidators(validate)

	return &Service{
		mongodb:   mongodb,
		redis:     redis,
		validate:  validate,
		runs:      make(map[string]*models.ExtractionRun),
		gameDir:   config.GetEnv("FRONTIER_GAME_DIR", ""),
		outputDir: config.GetEnv("FRONTIER_OUTPUT_DIR", "extracted_data"),
	}
}

// prepareRun validates a trigger request, claims the run lock and
// records the new run in pending state. The caller owns driving the
// pipeline, which releases the lock when it finishes.
func (s *Service) prepareRun(ctx context.Context, req *dto.StartRunRequest) (*models.ExtractionRun, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	gameDir := req.GameDir
	if gameDir == "" {
		gameDir = s.gameDir
	}
	if gameDir == "" {
		return nil, fmt.Errorf("%w: no game directory configured", ErrInvalidRequest)
	}

	outputDir := req.OutputDir
	if outputDir == "" {
		outputDir = s.outputDir
	}

	prefixes := req.Prefixes
	if len(prefixes) == 0 {
		prefixes = []string{defaultPrefix}
	}

	if !s.runMu.TryLock() {
		return nil, ErrRunInProgress
	}
	s.running.Store(true)

	run := &models.ExtractionRun{
		ID:        uuid.New().String(),
		Status:    models.StatusPending,
		GameDir:   gameDir,
		OutputDir: outputDir,
		Prefixes:  prefixes,
		StartedAt: time.Now().UTC(),
	}
	s.storeRun(ctx, run)

	return run, nil
}

// StartRun queues one extraction run and returns it in pending state.
// The pipeline itself runs in the background.
func (s *Service) StartRun(ctx context.Context, req *dto.StartRunRequest) (*models.ExtractionRun, error) {
	run, err := s.prepareRun(ctx, req)
	if err != nil {
		return nil, err
	}

	queued := snapshotRun(run)
	go s.runPipeline(context.Background(), run)

	slog.InfoContext(ctx, "Extraction run queued", "run_id", run.ID, "prefixes", run.Prefixes)

	return queued, nil
}

// RunSync executes one extraction run to completion before returning.
// Used by the CLI, which has no background lifecycle.
func (s *Service) RunSync(ctx context.Context, req *dto.StartRunRequest) (*models.ExtractionRun, error) {
	run, err := s.prepareRun(ctx, req)
	if err != nil {
		return nil, err
	}

	s.runPipeline(ctx, run)

	return s.GetRun(ctx, run.ID)
}

// GetRun returns one run, preferring the live in-memory state
func (s *Service) GetRun(ctx context.Context, runID string) (*models.ExtractionRun, error) {
	s.memMu.RLock()
	run, ok := s.runs[runID]
	s.memMu.RUnlock()
	if ok {
		return run, nil
	}

	if s.mongodb == nil {
		return nil, ErrRunNotFound
	}

	var stored models.ExtractionRun
	err := s.mongodb.Collection(runsCollection).FindOne(ctx, bson.M{"_id": runID}).Decode(&stored)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load extraction run: %w", err)
	}

	return &stored, nil
}

// ListRuns returns the newest runs first, from Mongo when available
func (s *Service) ListRuns(ctx context.Context, limit int) ([]*models.ExtractionRun, error) {
	if s.mongodb != nil {
		opts := options.Find().
			SetSort(bson.D{{Key: "started_at", Value: -1}}).
			SetLimit(int64(limit))

		cursor, err := s.mongodb.Collection(runsCollection).Find(ctx, bson.M{}, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list extraction runs: %w", err)
		}
		defer cursor.Close(ctx)

		var runs []*models.ExtractionRun
		if err := cursor.All(ctx, &runs); err != nil {
			return nil, fmt.Errorf("failed to decode extraction runs: %w", err)
		}
		return runs, nil
	}

	s.memMu.RLock()
	defer s.memMu.RUnlock()

	var runs []*models.ExtractionRun
	for i := len(s.order) - 1; i >= 0 && len(runs) < limit; i-- {
		runs = append(runs, s.runs[s.order[i]])
	}
	return runs, nil
}

// GetStatus returns the extractor module status
func (s *Service) GetStatus(ctx context.Context) *dto.StatusResponse {
	status := &dto.StatusResponse{
		Module:         "extractor",
		GameDir:        s.gameDir,
		OutputDir:      s.outputDir,
		Running:        s.running.Load(),
		MongoAvailable: s.mongodb != nil,
		RedisAvailable: s.redis != nil,
	}

	if run := s.lastRun(); run != nil {
		status.LastRunID = run.ID
		status.LastRunStatus = run.Status
	}

	if s.gameDir == "" {
		status.Status = "unhealthy"
		status.Message = "FRONTIER_GAME_DIR not configured"
		return status
	}

	indexPath := filepath.Join(s.gameDir, "resfileindex.txt")
	if _, err := os.Stat(indexPath); err != nil {
		status.Status = "unhealthy"
		status.Message = fmt.Sprintf("Resource index not found: %s", indexPath)
		return status
	}

	status.Status = "healthy"
	return status
}

// lastRun returns the newest run in the memory window, nil when empty
func (s *Service) lastRun() *models.ExtractionRun {
	s.memMu.RLock()
	defer s.memMu.RUnlock()

	if len(s.order) == 0 {
		return nil
	}
	return s.runs[s.order[len(s.order)-1]]
}

// snapshotRun copies a run so API readers never see pipeline mutation
func snapshotRun(run *models.ExtractionRun) *models.ExtractionRun {
	copied := *run
	copied.Prefixes = append([]string(nil), run.Prefixes...)
	copied.Files = append([]models.FileResult(nil), run.Files...)
	return &copied
}

// storeRun records a run state transition everywhere: memory window,
// Mongo history and Redis progress key. Returns the stored snapshot.
func (s *Service) storeRun(ctx context.Context, run *models.ExtractionRun) *models.ExtractionRun {
	snap := s.publishRun(ctx, run)

	if s.mongodb != nil {
		opts := options.Replace().SetUpsert(true)
		filter := bson.M{"_id": snap.ID}
		if _, err := s.mongodb.Collection(runsCollection).ReplaceOne(ctx, filter, snap, opts); err != nil {
			slog.WarnContext(ctx, "Failed to persist extraction run", "run_id", snap.ID, "error", err)
		}
	}

	return snap
}

// publishRun refreshes the memory window and the Redis progress key.
// Called per processed entry, so Mongo is deliberately not touched.
func (s *Service) publishRun(ctx context.Context, run *models.ExtractionRun) *models.ExtractionRun {
	snap := snapshotRun(run)

	s.memMu.Lock()
	if _, exists := s.runs[snap.ID]; !exists {
		s.order = append(s.order, snap.ID)
		if len(s.order) > maxMemoryRuns {
			delete(s.runs, s.order[0])
			s.order = s.order[1:]
		}
	}
	s.runs[snap.ID] = snap
	s.memMu.Unlock()

	if s.redis != nil {
		if err := s.redis.SetJSON(ctx, runKeyPrefix+snap.ID, snap, runKeyTTL); err != nil {
			slog.DebugContext(ctx, "Failed to publish run progress", "run_id", snap.ID, "error", err)
		}
		if err := s.redis.Set(ctx, lastRunKey, snap.ID, 0); err != nil {
			slog.DebugContext(ctx, "Failed to publish last run id", "error", err)
		}
	}

	return snap
}
