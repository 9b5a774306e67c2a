package services

import (
	"sort"

	"go-frontier/internal/industry/dto"
	"go-frontier/pkg/dataset"
)

// ExportSelection expands the requested ids through the dependency
// closure (unless disabled) and assembles the types, ships and
// blueprints actually present in the loaded mappings. A type produced
// by a blueprint pulls that blueprint in too.
func (e *Engine) ExportSelection(typeIDs []int, includeDependencies bool) (*dto.SelectionExport, error) {
	snap, err := e.snapshotRef()
	if err != nil {
		return nil, err
	}

	selected := make(map[int]struct{}, len(typeIDs))
	for _, id := range typeIDs {
		selected[id] = struct{}{}
	}
	if includeDependencies {
		for _, id := range typeIDs {
			for dep := range snap.dependencySet(id, DefaultMaxDepth, map[int]struct{}{}) {
				selected[dep] = struct{}{}
			}
		}
	}

	out := &dto.SelectionExport{
		Meta: dto.SelectionMeta{
			SelectedCount:         len(typeIDs),
			TotalWithDependencies: len(selected),
			IncludeDependencies:   includeDependencies,
		},
		Types:      map[int]*dataset.TypeRecord{},
		Ships:      map[int]*dataset.ShipRecord{},
		Blueprints: map[int]*dataset.Blueprint{},
	}

	for id := range selected {
		if ship, ok := snap.ships[id]; ok {
			out.Ships[id] = ship
		}
		if rec, ok := snap.types[id]; ok {
			out.Types[id] = rec
		}
		if bpID, ok := snap.graph.ProducerOf(id); ok {
			out.Blueprints[bpID] = snap.blueprints[bpID]
		}
	}

	return out, nil
}

// ExportAllBlueprints collects every type id any blueprint references,
// optionally expands the set through the dependency closure, and
// returns all blueprints plus the referenced types and ships.
func (e *Engine) ExportAllBlueprints(includeDependencies bool) (*dto.BlueprintExport, error) {
	snap, err := e.snapshotRef()
	if err != nil {
		return nil, err
	}

	referenced := make(map[int]struct{}, len(snap.blueprints))
	for bpID, bp := range snap.blueprints {
		referenced[bpID] = struct{}{}
		for _, activity := range bp.Activities {
			for _, prod := range activity.Products {
				referenced[prod.TypeID] = struct{}{}
			}
			for _, mat := range activity.Materials {
				referenced[mat.TypeID] = struct{}{}
			}
		}
	}

	if includeDependencies {
		expanded := make(map[int]struct{}, len(referenced))
		for id := range referenced {
			for dep := range snap.dependencySet(id, DefaultMaxDepth, map[int]struct{}{}) {
				expanded[dep] = struct{}{}
			}
		}
		referenced = expanded
	}

	out := &dto.BlueprintExport{
		Meta: dto.BlueprintExportMeta{
			BlueprintCount:      len(snap.blueprints),
			TotalTypes:          len(referenced),
			IncludeDependencies: includeDependencies,
		},
		Blueprints: make(map[int]*dataset.Blueprint, len(snap.blueprints)),
		Types:      map[int]*dataset.TypeRecord{},
		Ships:      map[int]*dataset.ShipRecord{},
	}
	for bpID, bp := range snap.blueprints {
		out.Blueprints[bpID] = bp
	}
	for id := range referenced {
		if ship, ok := snap.ships[id]; ok {
			out.Ships[id] = ship
		}
		if rec, ok := snap.types[id]; ok {
			out.Types[id] = rec
		}
	}

	return out, nil
}

// ExportCategory returns a category-specific payload: the whole
// blueprint mapping for blueprints, ship records (with type record
// fallback) for ships, and type records with dogma attributes merged in
// for everything else.
func (e *Engine) ExportCategory(category Category) (any, error) {
	if _, err := ParseCategory(string(category)); err != nil {
		return nil, err
	}
	snap, err := e.snapshotRef()
	if err != nil {
		return nil, err
	}

	switch category {
	case CategoryBlueprints:
		out := make(map[int]*dataset.Blueprint, len(snap.blueprints))
		for id, bp := range snap.blueprints {
			out[id] = bp
		}
		return out, nil

	case CategoryShips:
		out := map[int]any{}
		for id, cat := range snap.categories {
			if cat != CategoryShips {
				continue
			}
			if ship, ok := snap.ships[id]; ok {
				out[id] = ship
			} else if rec, ok := snap.types[id]; ok {
				out[id] = rec
			}
		}
		return out, nil

	default:
		out := map[int]*dto.TypeExport{}
		for id, cat := range snap.categories {
			if cat != category {
				continue
			}
			rec, ok := snap.types[id]
			if !ok {
				continue
			}
			entry := &dto.TypeExport{TypeRecord: *rec}
			if bag, ok := snap.dogma[id]; ok {
				entry.DogmaAttributes = bag
			}
			out[id] = entry
		}
		return out, nil
	}
}

// ListCategory lists a category's members sorted by display name
func (e *Engine) ListCategory(category Category) ([]dto.CategoryItem, error) {
	if _, err := ParseCategory(string(category)); err != nil {
		return nil, err
	}
	snap, err := e.snapshotRef()
	if err != nil {
		return nil, err
	}

	items := []dto.CategoryItem{}
	for id, cat := range snap.categories {
		if cat != category {
			continue
		}
		items = append(items, dto.CategoryItem{TypeID: id, TypeName: snap.typeName(id)})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].TypeName != items[j].TypeName {
			return items[i].TypeName < items[j].TypeName
		}
		return items[i].TypeID < items[j].TypeID
	})
	return items, nil
}

// CategoryCounts returns the member count of every category
func (e *Engine) CategoryCounts() (map[Category]int, error) {
	snap, err := e.snapshotRef()
	if err != nil {
		return nil, err
	}

	counts := make(map[Category]int, 8)
	for _, c := range AllCategories() {
		counts[c] = 0
	}
	for _, cat := range snap.categories {
		counts[cat]++
	}
	return counts, nil
}
