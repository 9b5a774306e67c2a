package services

import (
	"sort"
	"strings"

	"go-frontier/internal/industry/dto"
)

// dependencySet is the recursive closure walk. The visited set is shared
// across the whole call: the first occurrence of a shared material
// expands, later occurrences prune silently. Depth zero or a revisit
// yields nothing.
func (s *snapshot) dependencySet(typeID, depth int, visited map[int]struct{}) map[int]struct{} {
	if depth <= 0 {
		return map[int]struct{}{}
	}
	if _, seen := visited[typeID]; seen {
		return map[int]struct{}{}
	}
	visited[typeID] = struct{}{}

	deps := map[int]struct{}{typeID: {}}

	if bpID, ok := s.graph.ProducerOf(typeID); ok {
		deps[bpID] = struct{}{}
		for matID := range s.graph.requirementsOf[bpID] {
			deps[matID] = struct{}{}
			for sub := range s.dependencySet(matID, depth-1, visited) {
				deps[sub] = struct{}{}
			}
		}
	}

	return deps
}

// DependencySet returns every type id needed to manufacture the given
// type: the id itself, intermediate blueprint ids and all materials,
// recursively up to maxDepth.
func (e *Engine) DependencySet(typeID, maxDepth int) (map[int]struct{}, error) {
	snap, err := e.snapshotRef()
	if err != nil {
		return nil, err
	}
	return snap.dependencySet(typeID, maxDepth, map[int]struct{}{}), nil
}

// Dependencies resolves the closure and attaches display names, sorted
// by type id.
func (e *Engine) Dependencies(typeID, maxDepth int) (*dto.DependencyResponse, error) {
	snap, err := e.snapshotRef()
	if err != nil {
		return nil, err
	}

	set := snap.dependencySet(typeID, maxDepth, map[int]struct{}{})
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	result := &dto.DependencyResponse{
		TypeID:   typeID,
		TypeName: snap.typeName(typeID),
		MaxDepth: maxDepth,
		Count:    len(ids),
		Types:    make([]dto.NamedType, 0, len(ids)),
	}
	for _, id := range ids {
		result.Types = append(result.Types, dto.NamedType{TypeID: id, TypeName: snap.typeName(id)})
	}
	return result, nil
}

// FullChain expands the manufacturing chain breadth-first. Level 0 is
// the target, each next level is the union of materials of the previous
// level not yet visited. Entries and their materials are ordered by
// type id.
func (e *Engine) FullChain(typeID int) (*dto.ChainResponse, error) {
	snap, err := e.snapshotRef()
	if err != nil {
		return nil, err
	}

	chain := &dto.ChainResponse{
		Target:     typeID,
		TargetName: snap.typeName(typeID),
		Levels:     [][]dto.ChainEntry{},
	}

	visited := map[int]struct{}{}
	currentLevel := map[int]struct{}{typeID: {}}

	for len(currentLevel) > 0 {
		ids := make([]int, 0, len(currentLevel))
		for id := range currentLevel {
			ids = append(ids, id)
		}
		sort.Ints(ids)

		level := make([]dto.ChainEntry, 0, len(ids))
		nextLevel := map[int]struct{}{}

		for _, tid := range ids {
			if _, seen := visited[tid]; seen {
				continue
			}
			visited[tid] = struct{}{}

			entry := dto.ChainEntry{
				TypeID:    tid,
				TypeName:  snap.typeName(tid),
				Craftable: snap.graph.Craftable(tid),
				Materials: []dto.ChainMaterial{},
			}

			if bpID, ok := snap.graph.ProducerOf(tid); ok {
				for _, matID := range snap.graph.Requirements(bpID) {
					entry.Materials = append(entry.Materials, dto.ChainMaterial{
						TypeID:    matID,
						TypeName:  snap.typeName(matID),
						Craftable: snap.graph.Craftable(matID),
					})
					if _, seen := visited[matID]; !seen {
						nextLevel[matID] = struct{}{}
					}
				}
			}

			level = append(level, entry)
		}

		if len(level) > 0 {
			chain.Levels = append(chain.Levels, level)
		}
		currentLevel = nextLevel
	}

	return chain, nil
}

// Search matches the query as a case-insensitive substring of display
// names in both the types and ships mappings. Ship hits win when an id
// appears in both. Results sort alphabetically by name.
func (e *Engine) Search(query string) ([]dto.SearchHit, error) {
	snap, err := e.snapshotRef()
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	fromShips := make(map[int]struct{})
	hits := []dto.SearchHit{}

	for id, ship := range snap.ships {
		if ship.TypeName == "" || !strings.Contains(strings.ToLower(ship.TypeName), needle) {
			continue
		}
		fromShips[id] = struct{}{}
		hits = append(hits, dto.SearchHit{
			TypeID:    id,
			TypeName:  ship.TypeName,
			GroupID:   ship.GroupID,
			GroupName: ship.GroupName,
			Source:    "ships",
		})
	}

	for id, rec := range snap.types {
		if _, dup := fromShips[id]; dup {
			continue
		}
		if rec.TypeName == "" || !strings.Contains(strings.ToLower(rec.TypeName), needle) {
			continue
		}
		hits = append(hits, dto.SearchHit{
			TypeID:   id,
			TypeName: rec.TypeName,
			GroupID:  rec.GroupID,
			Source:   "types",
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].TypeName != hits[j].TypeName {
			return hits[i].TypeName < hits[j].TypeName
		}
		return hits[i].TypeID < hits[j].TypeID
	})

	return hits, nil
}
