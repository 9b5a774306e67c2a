package models

import "time"

// Extraction run states
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Per-resource outcomes within a run
const (
	OutcomeExtracted = "extracted"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

// FileResult is the outcome for one resource the pipeline visited
type FileResult struct {
	LogicalPath string `bson:"logical_path" json:"logical_path"`
	OutputFile  string `bson:"output_file,omitempty" json:"output_file,omitempty"`
	Outcome     string `bson:"outcome" json:"outcome"`
	Detail      string `bson:"detail,omitempty" json:"detail,omitempty"`
}

// ExtractionRun records one extraction attempt. Persisted to Mongo when
// available, always held in the in-memory run window.
type ExtractionRun struct {
	ID          string       `bson:"_id" json:"run_id"`
	Status      string       `bson:"status" json:"status"`
	GameDir     string       `bson:"game_dir" json:"game_dir"`
	OutputDir   string       `bson:"output_dir" json:"output_dir"`
	Prefixes    []string     `bson:"prefixes" json:"prefixes"`
	Extracted   int          `bson:"extracted" json:"extracted"`
	Skipped     int          `bson:"skipped" json:"skipped"`
	Failed      int          `bson:"failed" json:"failed"`
	Files       []FileResult `bson:"files,omitempty" json:"files,omitempty"`
	Error       string       `bson:"error,omitempty" json:"error,omitempty"`
	StartedAt   time.Time    `bson:"started_at" json:"started_at"`
	CompletedAt *time.Time   `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// Done reports whether the run reached a terminal state
func (r *ExtractionRun) Done() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}
