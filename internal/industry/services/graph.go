package services

import (
	"log/slog"
	"sort"

	"go-frontier/pkg/dataset"
)

// Graph indexes which blueprint produces each type and which materials
// each blueprint consumes. Read-only after construction.
type Graph struct {
	producesFrom   map[int]int
	requirementsOf map[int]map[int]struct{}
	blueprintIDs   map[int]struct{}
	conflicts      int
}

// GraphStats summarizes one graph build
type GraphStats struct {
	Products         int `json:"products"`
	Blueprints       int `json:"blueprints"`
	ProductConflicts int `json:"product_conflicts"`
}

// BuildGraph walks every blueprint activity once. Products map back to
// their blueprint id; when two blueprints claim the same product the
// later one wins and the conflict counter is incremented. Material ids
// of all activities flatten into a single requirement set per blueprint.
func BuildGraph(blueprints map[int]*dataset.Blueprint) *Graph {
	g := &Graph{
		producesFrom:   make(map[int]int),
		requirementsOf: make(map[int]map[int]struct{}),
		blueprintIDs:   make(map[int]struct{}, len(blueprints)),
	}

	for bpID, bp := range blueprints {
		g.blueprintIDs[bpID] = struct{}{}

		requirements, ok := g.requirementsOf[bpID]
		if !ok {
			requirements = make(map[int]struct{})
			g.requirementsOf[bpID] = requirements
		}

		for _, activity := range bp.Activities {
			for _, prod := range activity.Products {
				if prev, taken := g.producesFrom[prod.TypeID]; taken && prev != bpID {
					g.conflicts++
					slog.Debug("Product claimed by multiple blueprints",
						"type_id", prod.TypeID,
						"previous_blueprint", prev,
						"blueprint", bpID)
				}
				g.producesFrom[prod.TypeID] = bpID
			}
			for _, mat := range activity.Materials {
				requirements[mat.TypeID] = struct{}{}
			}
		}
	}

	return g
}

// ProducerOf returns the blueprint that manufactures the given type
func (g *Graph) ProducerOf(typeID int) (int, bool) {
	bpID, ok := g.producesFrom[typeID]
	return bpID, ok
}

// Craftable reports whether any blueprint produces the given type
func (g *Graph) Craftable(typeID int) bool {
	_, ok := g.producesFrom[typeID]
	return ok
}

// Requirements returns the material ids of a blueprint in ascending order
func (g *Graph) Requirements(blueprintID int) []int {
	set, ok := g.requirementsOf[blueprintID]
	if !ok {
		return nil
	}
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// IsBlueprint reports whether the id belongs to a loaded blueprint
func (g *Graph) IsBlueprint(id int) bool {
	_, ok := g.blueprintIDs[id]
	return ok
}

// Stats returns build counters for diagnostics
func (g *Graph) Stats() GraphStats {
	return GraphStats{
		Products:         len(g.producesFrom),
		Blueprints:       len(g.blueprintIDs),
		ProductConflicts: g.conflicts,
	}
}
