package dto

import "go-frontier/internal/extractor/models"

// StatusResponse reports extractor module health
type StatusResponse struct {
	Module         string `json:"module" description:"Module name"`
	Status         string `json:"status" description:"Health status (healthy, unhealthy)"`
	Message        string `json:"message,omitempty" description:"Status details"`
	GameDir        string `json:"game_dir,omitempty" description:"Configured game installation directory"`
	OutputDir      string `json:"output_dir,omitempty" description:"Configured output directory"`
	Running        bool   `json:"running" description:"A pipeline run is in progress"`
	MongoAvailable bool   `json:"mongo_available" description:"Run history is persisted"`
	RedisAvailable bool   `json:"redis_available" description:"Run progress is published"`
	LastRunID      string `json:"last_run_id,omitempty"`
	LastRunStatus  string `json:"last_run_status,omitempty"`
}

// StatusOutput wraps the status response
type StatusOutput struct {
	Body StatusResponse `json:"body"`
}

// RunOutput wraps a single extraction run
type RunOutput struct {
	Body models.ExtractionRun `json:"body"`
}

// RunListResponse lists recent extraction runs, newest first
type RunListResponse struct {
	Count int                     `json:"count"`
	Runs  []*models.ExtractionRun `json:"runs"`
}

// RunListOutput wraps the run history listing
type RunListOutput struct {
	Body RunListResponse `json:"body"`
}
