package dto

// SearchInput queries types and ships by display name
type SearchInput struct {
	Query string `query:"q" minLength:"1" maxLength:"100" description:"Substring to match against type and ship names, case-insensitive" example:"Disintegrator"`
}

// DependenciesInput asks for the dependency closure of a type
type DependenciesInput struct {
	TypeID   int `path:"type_id" minimum:"1" description:"Type ID to resolve dependencies for" example:"84213"`
	MaxDepth int `query:"max_depth" default:"10" minimum:"1" maximum:"100" description:"Maximum recursion depth for the closure"`
}

// ChainInput asks for the level-by-level manufacturing chain of a type
type ChainInput struct {
	TypeID int `path:"type_id" minimum:"1" description:"Type ID to expand" example:"84213"`
}

// CategoryInput addresses one category by name
type CategoryInput struct {
	Category string `path:"category" description:"Category name: ships, modules, ammo, materials, components, blueprints, ores or fuel" example:"modules"`
}

// ExportBlueprintsInput controls the all-blueprints export
type ExportBlueprintsInput struct {
	IncludeDependencies bool `query:"include_dependencies" default:"true" description:"Expand referenced types through the dependency closure"`
}

// CreateSelectionInput starts a new selection session
type CreateSelectionInput struct {
	Body CreateSelectionRequest
}

// CreateSelectionRequest optionally seeds the new session
type CreateSelectionRequest struct {
	TypeIDs []int `json:"type_ids,omitempty" validate:"omitempty,max=10000,dive,gt=0" description:"Initial type IDs for the selection"`
}

// GetSelectionInput addresses one selection session
type GetSelectionInput struct {
	SessionID string `path:"session_id" format:"uuid" description:"Selection session ID"`
}

// ReplaceSelectionInput replaces a session's selected ids wholesale
type ReplaceSelectionInput struct {
	SessionID string `path:"session_id" format:"uuid" description:"Selection session ID"`
	Body      ReplaceSelectionRequest
}

// ReplaceSelectionRequest carries the new selection
type ReplaceSelectionRequest struct {
	TypeIDs []int `json:"type_ids" validate:"max=10000,dive,gt=0" description:"Type IDs replacing the current selection"`
}

// SelectionItemInput addresses one type id within a session
type SelectionItemInput struct {
	SessionID string `path:"session_id" format:"uuid" description:"Selection session ID"`
	TypeID    int    `path:"type_id" minimum:"1" description:"Type ID to add or remove"`
}

// ExportSelectionInput triggers an export of a session's selection
type ExportSelectionInput struct {
	SessionID           string `path:"session_id" format:"uuid" description:"Selection session ID"`
	IncludeDependencies bool   `query:"include_dependencies" default:"true" description:"Expand the selection through the dependency closure"`
}
