package dataset

import "context"

// DatasetService defines the interface for accessing extracted Frontier data
type DatasetService interface {
	// Type operations
	GetType(id int) (*TypeRecord, error)
	GetAllTypes() (map[int]*TypeRecord, error)

	// Ship operations
	GetShip(id int) (*ShipRecord, error)
	GetAllShips() (map[int]*ShipRecord, error)

	// Blueprint operations
	GetBlueprint(id int) (*Blueprint, error)
	GetAllBlueprints() (map[int]*Blueprint, error)

	// Dogma operations
	GetDogma(id int) (AttributeBag, error)
	GetAllDogma() (map[int]AttributeBag, error)

	// Name resolution across types and ships
	SearchableNames() (map[int]string, error)

	// Service status
	IsLoaded() bool
	Stats() (Stats, error)
	Reload(ctx context.Context) error
	DataDir() string
}
