package services

import (
	"testing"

	"go-frontier/pkg/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTypeRules(t *testing.T) {
	g := BuildGraph(fixtureDataset().blueprints)

	tests := []struct {
		name     string
		typeID   int
		record   *dataset.TypeRecord
		expected Category
	}{
		{"ship group wins first", 500, &dataset.TypeRecord{TypeName: "Redshift", GroupID: 25}, CategoryShips},
		{"destroyer group", 501, &dataset.TypeRecord{TypeName: "Sunder", GroupID: 420}, CategoryShips},
		{"blueprint by name", 200, &dataset.TypeRecord{TypeName: "Widget Blueprint", GroupID: 2}, CategoryBlueprints},
		{"ore keyword", 300, &dataset.TypeRecord{TypeName: "Tritanium Ore", GroupID: 18}, CategoryOres},
		{"mineral keyword", 305, &dataset.TypeRecord{TypeName: "Dense Mineral Deposit"}, CategoryOres},
		{"fuel keyword", 301, &dataset.TypeRecord{TypeName: "Helium Fuel Block"}, CategoryFuel},
		{"ammo keyword", 302, &dataset.TypeRecord{TypeName: "Hybrid Charge"}, CategoryAmmo},
		{"weapon keyword", 303, &dataset.TypeRecord{TypeName: "Plasma Disintegrator"}, CategoryModules},
		{"defense keyword", 306, &dataset.TypeRecord{TypeName: "Adaptive Shield Matrix"}, CategoryModules},
		{"propulsion keyword", 307, &dataset.TypeRecord{TypeName: "Ion Thruster Mk II"}, CategoryModules},
		{"electronic keyword", 308, &dataset.TypeRecord{TypeName: "Warp Scrambler"}, CategoryModules},
		{"mining keyword", 309, &dataset.TypeRecord{TypeName: "Surface Harvester"}, CategoryModules},
		{"craftable remainder", 100, &dataset.TypeRecord{TypeName: "Widget", GroupID: 334}, CategoryComponents},
		{"raw remainder", 10, &dataset.TypeRecord{TypeName: "Tritanium", GroupID: 18}, CategoryMaterials},
		{"matching is case-insensitive", 310, &dataset.TypeRecord{TypeName: "SMART FUEL CELL"}, CategoryFuel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyType(tt.typeID, tt.record, g))
		})
	}
}

func TestClassifyRuleOrderIsPreserved(t *testing.T) {
	g := BuildGraph(map[int]*dataset.Blueprint{})

	// "Blueprint" beats the ammo keyword "Charge"
	rec := &dataset.TypeRecord{TypeName: "Hybrid Charge Blueprint"}
	assert.Equal(t, CategoryBlueprints, classifyType(1, rec, g))

	// Ore keyword beats the fuel keyword
	rec = &dataset.TypeRecord{TypeName: "Fuel Ore"}
	assert.Equal(t, CategoryOres, classifyType(2, rec, g))

	// Ship group beats every name rule
	rec = &dataset.TypeRecord{TypeName: "Charge Blueprint", GroupID: 26}
	assert.Equal(t, CategoryShips, classifyType(3, rec, g))

	// Ammo keyword beats the weapon keyword
	rec = &dataset.TypeRecord{TypeName: "Torpedo Charge"}
	assert.Equal(t, CategoryAmmo, classifyType(4, rec, g))
}

func TestBuildCategoriesExclusivity(t *testing.T) {
	ds := fixtureDataset()
	g := BuildGraph(ds.blueprints)
	byID := buildCategories(ds.types, ds.ships, g)

	// Every type id and every blueprint id lands in exactly one category
	for id := range ds.types {
		cat, ok := byID[id]
		require.True(t, ok, "type %d has no category", id)
		_, err := ParseCategory(string(cat))
		assert.NoError(t, err)
	}
	for bpID := range ds.blueprints {
		assert.Equal(t, CategoryBlueprints, byID[bpID], "blueprint %d", bpID)
	}
}

func TestBuildCategoriesForcesShips(t *testing.T) {
	types := map[int]*dataset.TypeRecord{
		// Would classify as materials without the ships override
		700: {TypeName: "Protean", GroupID: 999},
	}
	ships := map[int]*dataset.ShipRecord{
		700: {TypeName: "Protean", GroupID: 999, GroupName: "Experimental"},
	}
	g := BuildGraph(map[int]*dataset.Blueprint{})

	byID := buildCategories(types, ships, g)
	assert.Equal(t, CategoryShips, byID[700])
}

func TestBuildCategoriesIncludesBlueprintOnlyIDs(t *testing.T) {
	ds := fixtureDataset()
	g := BuildGraph(ds.blueprints)
	byID := buildCategories(ds.types, ds.ships, g)

	// Blueprints 220/221/230/231 have no type record but are categorized
	assert.Equal(t, CategoryBlueprints, byID[220])
	assert.Equal(t, CategoryBlueprints, byID[221])
}

func TestParseCategory(t *testing.T) {
	for _, c := range AllCategories() {
		parsed, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := ParseCategory("weapons")
	assert.Error(t, err)
	_, err = ParseCategory("")
	assert.Error(t, err)
}
