package dto

import (
	"time"

	"go-frontier/pkg/dataset"
)

// StatusResponse reports industry module health
type StatusResponse struct {
	Module            string `json:"module" description:"Module name"`
	Status            string `json:"status" description:"Health status (healthy, unhealthy)"`
	Message           string `json:"message,omitempty" description:"Status details"`
	Blueprints        int    `json:"blueprints,omitempty" description:"Blueprints in the dependency graph"`
	Products          int    `json:"products,omitempty" description:"Product types mapped to a producing blueprint"`
	ProductConflicts  int    `json:"product_conflicts,omitempty" description:"Products claimed by more than one blueprint"`
	SelectionSessions int    `json:"selection_sessions,omitempty" description:"Live selection sessions"`
}

// StatusOutput wraps the status response
type StatusOutput struct {
	Body StatusResponse `json:"body"`
}

// SearchHit is one search result from the types or ships mapping
type SearchHit struct {
	TypeID    int    `json:"typeID" description:"Type ID"`
	TypeName  string `json:"typeName" description:"Display name"`
	GroupID   int    `json:"groupID,omitempty" description:"Group ID when known"`
	GroupName string `json:"groupName,omitempty" description:"Group name, ship hits only"`
	Source    string `json:"source" enum:"types,ships" description:"Mapping the hit came from"`
}

// SearchResponse lists search hits sorted by name
type SearchResponse struct {
	Query   string      `json:"query" description:"The search term"`
	Count   int         `json:"count" description:"Number of hits"`
	Results []SearchHit `json:"results"`
}

// SearchOutput wraps the search response
type SearchOutput struct {
	Body SearchResponse `json:"body"`
}

// NamedType pairs a type id with its resolved display name
type NamedType struct {
	TypeID   int    `json:"typeID"`
	TypeName string `json:"typeName"`
}

// DependencyResponse carries a resolved dependency closure
type DependencyResponse struct {
	TypeID   int         `json:"typeID" description:"The requested type"`
	TypeName string      `json:"typeName" description:"Display name of the requested type"`
	MaxDepth int         `json:"maxDepth" description:"Recursion bound used"`
	Count    int         `json:"count" description:"Size of the closure"`
	Types    []NamedType `json:"types" description:"Closure members sorted by type ID"`
}

// DependenciesOutput wraps the dependency response
type DependenciesOutput struct {
	Body DependencyResponse `json:"body"`
}

// ChainMaterial is one direct material of a chain entry
type ChainMaterial struct {
	TypeID    int    `json:"typeID"`
	TypeName  string `json:"typeName"`
	Craftable bool   `json:"craftable" description:"A blueprint produces this type"`
}

// ChainEntry is one type within a chain level
type ChainEntry struct {
	TypeID    int             `json:"typeID"`
	TypeName  string          `json:"typeName"`
	Craftable bool            `json:"craftable"`
	Materials []ChainMaterial `json:"materials"`
}

// ChainResponse is the manufacturing chain of a target type by level
type ChainResponse struct {
	Target     int            `json:"target" description:"The requested type"`
	TargetName string         `json:"target_name"`
	Levels     [][]ChainEntry `json:"levels" description:"Level 0 is the target, each next level its unexpanded materials"`
}

// ChainOutput wraps the chain response
type ChainOutput struct {
	Body ChainResponse `json:"body"`
}

// CategoryCounts maps every category to its member count
type CategoryCounts struct {
	Categories map[string]int `json:"categories"`
	Total      int            `json:"total" description:"Types across all categories"`
}

// CategoryCountsOutput wraps the category counts
type CategoryCountsOutput struct {
	Body CategoryCounts `json:"body"`
}

// CategoryItem is one row of a category listing
type CategoryItem struct {
	TypeID   int    `json:"typeID"`
	TypeName string `json:"typeName"`
}

// CategoryListResponse lists a category's members sorted by name
type CategoryListResponse struct {
	Category string         `json:"category"`
	Count    int            `json:"count"`
	Items    []CategoryItem `json:"items"`
}

// CategoryListOutput wraps the category listing
type CategoryListOutput struct {
	Body CategoryListResponse `json:"body"`
}

// CategoryExportOutput wraps a category export. The payload shape is
// category-specific: blueprint records, ship records or type records
// with dogma attached, keyed by type id.
type CategoryExportOutput struct {
	Body interface{} `json:"body"`
}

// SelectionMeta describes how a selection export was assembled
type SelectionMeta struct {
	SelectedCount         int  `json:"selected_count" description:"Requested ids before expansion"`
	TotalWithDependencies int  `json:"total_with_dependencies" description:"Ids after dependency expansion"`
	IncludeDependencies   bool `json:"include_dependencies"`
}

// SelectionExport is the payload for an exported id selection
type SelectionExport struct {
	Meta       SelectionMeta               `json:"meta"`
	Types      map[int]*dataset.TypeRecord `json:"types"`
	Ships      map[int]*dataset.ShipRecord `json:"ships"`
	Blueprints map[int]*dataset.Blueprint  `json:"blueprints"`
}

// SelectionExportOutput wraps a selection export
type SelectionExportOutput struct {
	Body SelectionExport `json:"body"`
}

// BlueprintExportMeta describes an all-blueprints export
type BlueprintExportMeta struct {
	BlueprintCount      int  `json:"blueprint_count"`
	TotalTypes          int  `json:"total_types" description:"Referenced type ids, after optional expansion"`
	IncludeDependencies bool `json:"include_dependencies"`
}

// BlueprintExport carries every blueprint plus all referenced types
// and ships
type BlueprintExport struct {
	Meta       BlueprintExportMeta         `json:"meta"`
	Blueprints map[int]*dataset.Blueprint  `json:"blueprints"`
	Types      map[int]*dataset.TypeRecord `json:"types"`
	Ships      map[int]*dataset.ShipRecord `json:"ships"`
}

// BlueprintExportOutput wraps an all-blueprints export
type BlueprintExportOutput struct {
	Body BlueprintExport `json:"body"`
}

// TypeExport is a type record with its dogma attributes attached
type TypeExport struct {
	dataset.TypeRecord
	DogmaAttributes dataset.AttributeBag `json:"dogmaAttributes,omitempty"`
}

// SessionView is a read-only snapshot of a selection session
type SessionView struct {
	SessionID string    `json:"session_id" format:"uuid"`
	CreatedAt time.Time `json:"created_at" format:"date-time"`
	UpdatedAt time.Time `json:"updated_at" format:"date-time"`
	Count     int       `json:"count" description:"Selected type ids"`
	Items     []int     `json:"items" description:"Selected type ids in ascending order"`
}

// SessionOutput wraps a session view
type SessionOutput struct {
	Body SessionView `json:"body"`
}
