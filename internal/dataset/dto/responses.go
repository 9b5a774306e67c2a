package dto

// StatusResponse reports dataset module health and load statistics
type StatusResponse struct {
	Module          string `json:"module" description:"Module name"`
	Status          string `json:"status" description:"Health status (healthy, unhealthy)"`
	Message         string `json:"message,omitempty" description:"Status details"`
	Loaded          bool   `json:"loaded" description:"Dataset held in memory"`
	DataDir         string `json:"data_dir,omitempty" description:"Directory the data files are read from"`
	TypeCount       int    `json:"type_count,omitempty"`
	ShipCount       int    `json:"ship_count,omitempty"`
	BlueprintCount  int    `json:"blueprint_count,omitempty"`
	DogmaCount      int    `json:"dogma_count,omitempty"`
	TypesSource     string `json:"types_source,omitempty" description:"File the types were loaded from"`
	ShipsSource     string `json:"ships_source,omitempty" description:"File the ships were loaded from"`
	BlueprintsShape string `json:"blueprints_shape,omitempty" description:"Detected blueprint file shape (cache, wrapped, flat)"`
	LoadedAt        string `json:"loaded_at,omitempty" format:"date-time" description:"When the in-memory dataset was loaded"`
	LastReload      string `json:"last_reload,omitempty" format:"date-time" description:"Last explicit reload, from Redis metadata"`
}

// StatusOutput wraps the status response
type StatusOutput struct {
	Body StatusResponse `json:"body"`
}

// ReloadResponse reports the outcome of a dataset reload
type ReloadResponse struct {
	Reloaded       bool  `json:"reloaded"`
	DurationMS     int64 `json:"duration_ms"`
	TypeCount      int   `json:"type_count"`
	ShipCount      int   `json:"ship_count"`
	BlueprintCount int   `json:"blueprint_count"`
	DogmaCount     int   `json:"dogma_count"`
	Listeners      int   `json:"listeners" description:"Consumers notified after the reload"`
	ListenerErrors int   `json:"listener_errors,omitempty" description:"Consumers that failed to refresh"`
}

// ReloadOutput wraps the reload response
type ReloadOutput struct {
	Body ReloadResponse `json:"body"`
}
