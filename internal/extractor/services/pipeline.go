package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go-frontier/internal/extractor/models"
	"go-frontier/pkg/resfile"
)

// defaultPrefix is walked when a run requests no prefixes
const defaultPrefix = "res:/staticdata/"

// runPipeline drives one extraction run to a terminal state. The run
// mutex is held since StartRun and released here.
func (s *Service) runPipeline(ctx context.Context, run *models.ExtractionRun) {
	defer func() {
		s.running.Store(false)
		s.runMu.Unlock()
	}()

	run.Status = models.StatusInProgress
	s.storeRun(ctx, run)

	if err := s.extract(ctx, run); err != nil {
		now := time.Now().UTC()
		run.Status = models.StatusFailed
		run.Error = err.Error()
		run.CompletedAt = &now
		s.storeRun(ctx, run)
		slog.ErrorContext(ctx, "Extraction run failed", "run_id", run.ID, "error", err)
		return
	}

	now := time.Now().UTC()
	run.Status = models.StatusCompleted
	run.CompletedAt = &now
	s.storeRun(ctx, run)

	slog.InfoContext(ctx, "Extraction run completed",
		"run_id", run.ID,
		"extracted", run.Extracted,
		"skipped", run.Skipped,
		"failed", run.Failed,
	)
}

// extract walks the requested prefixes and processes every entry once
func (s *Service) extract(ctx context.Context, run *models.ExtractionRun) error {
	manifest, err := resfile.LoadManifest(filepath.Join(run.GameDir, "resfileindex.txt"))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(run.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	store := resfile.NewStore(resfile.DefaultRoots(run.GameDir)...)

	seen := make(map[string]bool)
	var entries []*resfile.Entry
	for _, prefix := range run.Prefixes {
		for _, entry := range manifest.FilterPrefix(prefix) {
			if seen[entry.LogicalPath] {
				continue
			}
			seen[entry.LogicalPath] = true
			entries = append(entries, entry)
		}
	}

	slog.InfoContext(ctx, "Extraction run started",
		"run_id", run.ID,
		"index_entries", manifest.Len(),
		"matched", len(entries),
	)

	for _, entry := range entries {
		result := extractEntry(store, entry, run.OutputDir)
		run.Files = append(run.Files, result)

		switch result.Outcome {
		case models.OutcomeExtracted:
			run.Extracted++
		case models.OutcomeSkipped:
			run.Skipped++
		default:
			run.Failed++
			slog.WarnContext(ctx, "Resource extraction failed",
				"run_id", run.ID, "resource", entry.LogicalPath, "error", result.Detail)
		}

		s.publishRun(ctx, run)
	}

	return nil
}

// extractEntry reads one payload and decides its handling by content:
// SQLite databases are dumped to JSON, JSON payloads are copied out
// verbatim, everything else is the vendor's FSD binary format and is
// skipped.
func extractEntry(store *resfile.Store, entry *resfile.Entry, outputDir string) models.FileResult {
	result := models.FileResult{LogicalPath: entry.LogicalPath}

	payload, err := store.Read(entry)
	if err != nil {
		result.Outcome = models.OutcomeFailed
		result.Detail = err.Error()
		return result
	}

	outputName := jsonName(entry.LogicalPath)
	outputFile := filepath.Join(outputDir, outputName)

	switch {
	case IsSQLite(payload):
		tables, err := decodeStaticPayload(payload)
		if err != nil {
			result.Outcome = models.OutcomeFailed
			result.Detail = err.Error()
			return result
		}
		data, err := json.MarshalIndent(tables, "", "  ")
		if err != nil {
			result.Outcome = models.OutcomeFailed
			result.Detail = err.Error()
			return result
		}
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			result.Outcome = models.OutcomeFailed
			result.Detail = err.Error()
			return result
		}
		result.Outcome = models.OutcomeExtracted
		result.OutputFile = outputName

	case json.Valid(payload):
		if err := os.WriteFile(outputFile, payload, 0644); err != nil {
			result.Outcome = models.OutcomeFailed
			result.Detail = err.Error()
			return result
		}
		result.Outcome = models.OutcomeExtracted
		result.OutputFile = outputName

	default:
		result.Outcome = models.OutcomeSkipped
		result.Detail = "binary FSD payload"
	}

	return result
}

// jsonName maps a logical path to its output file name:
// res:/staticdata/blueprints.static becomes blueprints.json
func jsonName(logicalPath string) string {
	base := path.Base(logicalPath)
	ext := path.Ext(base)
	return strings.TrimSuffix(base, ext) + ".json"
}
