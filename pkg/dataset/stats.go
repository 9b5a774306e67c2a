package dataset

import "time"

// Stats is a snapshot of the last dataset load
type Stats struct {
	TypeCount       int           `json:"type_count"`
	ShipCount       int           `json:"ship_count"`
	BlueprintCount  int           `json:"blueprint_count"`
	DogmaCount      int           `json:"dogma_count"`
	TypesSource     string        `json:"types_source,omitempty"`
	ShipsSource     string        `json:"ships_source,omitempty"`
	BlueprintsShape string        `json:"blueprints_shape,omitempty"`
	LoadedAt        time.Time     `json:"loaded_at"`
	LoadDuration    time.Duration `json:"load_duration"`
}
