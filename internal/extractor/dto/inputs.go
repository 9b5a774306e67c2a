package dto

// StartRunRequest selects what an extraction run should walk. Empty
// fields fall back to the configured environment defaults.
type StartRunRequest struct {
	GameDir   string   `json:"game_dir,omitempty" validate:"omitempty,dir" description:"Game installation directory holding resfileindex.txt"`
	OutputDir string   `json:"output_dir,omitempty" description:"Directory extracted JSON files are written to"`
	Prefixes  []string `json:"prefixes,omitempty" validate:"omitempty,dive,res_prefix" description:"Logical res:/ prefixes to walk, defaults to res:/staticdata/"`
}

// StartRunInput wraps the trigger request body
type StartRunInput struct {
	Body StartRunRequest `json:"body"`
}

// GetRunInput addresses one extraction run
type GetRunInput struct {
	RunID string `path:"run_id" format:"uuid" description:"Extraction run ID"`
}

// ListRunsInput bounds the run history listing
type ListRunsInput struct {
	Limit int `query:"limit" default:"20" minimum:"1" maximum:"100" description:"Newest runs to return"`
}
