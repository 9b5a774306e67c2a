package services

import (
	"fmt"
	"strings"

	"go-frontier/pkg/dataset"
)

// Category is one bucket of the type taxonomy
type Category string

const (
	CategoryShips      Category = "ships"
	CategoryModules    Category = "modules"
	CategoryAmmo       Category = "ammo"
	CategoryMaterials  Category = "materials"
	CategoryComponents Category = "components"
	CategoryBlueprints Category = "blueprints"
	CategoryOres       Category = "ores"
	CategoryFuel       Category = "fuel"
)

// AllCategories lists every category in stable order
func AllCategories() []Category {
	return []Category{
		CategoryShips,
		CategoryModules,
		CategoryAmmo,
		CategoryMaterials,
		CategoryComponents,
		CategoryBlueprints,
		CategoryOres,
		CategoryFuel,
	}
}

// ParseCategory validates a category name from user input
func ParseCategory(s string) (Category, error) {
	all := AllCategories()
	for _, c := range all {
		if string(c) == s {
			return c, nil
		}
	}
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = string(c)
	}
	return "", fmt.Errorf("unknown category %q, valid categories: %s", s, strings.Join(names, ", "))
}

// Frigate, Cruiser, Shuttle, Corvette, Industrial, Destroyer
var shipGroups = map[int]struct{}{
	25: {}, 26: {}, 31: {}, 237: {}, 419: {}, 420: {},
}

// Keyword rules in evaluation order, matched case-insensitively. Names
// can match several lists, so the order must not change.
var (
	oreKeywords        = []string{"ore", "mineral", "young crude", "feral echo", "salvaged", "aestasium"}
	fuelKeywords       = []string{"fuel", "sof", "smart fuel"}
	ammoKeywords       = []string{"charge", "missile", "ammo", "round"}
	weaponKeywords     = []string{"disintegrator", "beam", "torpedo", "launcher", "turret", "cannon", "blaster", "railgun", "artillery"}
	defenseKeywords    = []string{"field array", "shield", "armor", "hull repair", "hardener", "repairer", "plates"}
	propulsionKeywords = []string{"afterburner", "microwarpdrive", "mwd", "engine", "propulsion", "thruster"}
	electronicKeywords = []string{"sensor", "scanner", "scrambler", "disruptor", "web", "ecm", "eccm", "tracking", "target"}
	industryKeywords   = []string{"mining lens", "mining gel", "miner", "strip", "harvester", "tractor", "cargo grid"}
)

func containsAny(lowerName string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lowerName, kw) {
			return true
		}
	}
	return false
}

// classifyType applies the keyword rules to one type record, first match
// wins. Rule order is load-bearing. The final rule splits the remainder
// on craftability.
func classifyType(id int, rec *dataset.TypeRecord, g *Graph) Category {
	if _, ok := shipGroups[rec.GroupID]; ok {
		return CategoryShips
	}
	name := strings.ToLower(rec.TypeName)
	switch {
	case strings.Contains(name, "blueprint"):
		return CategoryBlueprints
	case containsAny(name, oreKeywords):
		return CategoryOres
	case containsAny(name, fuelKeywords):
		return CategoryFuel
	case containsAny(name, ammoKeywords):
		return CategoryAmmo
	case containsAny(name, weaponKeywords),
		containsAny(name, defenseKeywords),
		containsAny(name, propulsionKeywords),
		containsAny(name, electronicKeywords),
		containsAny(name, industryKeywords):
		return CategoryModules
	case g.Craftable(id):
		return CategoryComponents
	default:
		return CategoryMaterials
	}
}

// buildCategories assigns every known type id to exactly one category.
// Keyword rules run over the types mapping, then blueprint ids from the
// graph are forced into blueprints and ship ids from the ships mapping
// are forced into ships. Forcing moves an id, it never duplicates it.
func buildCategories(
	types map[int]*dataset.TypeRecord,
	ships map[int]*dataset.ShipRecord,
	g *Graph,
) map[int]Category {
	byID := make(map[int]Category, len(types)+len(ships))

	for id, rec := range types {
		byID[id] = classifyType(id, rec, g)
	}
	for id := range g.blueprintIDs {
		byID[id] = CategoryBlueprints
	}
	for id := range ships {
		byID[id] = CategoryShips
	}

	return byID
}
