package services

import (
	"context"
	"testing"

	"go-frontier/pkg/dataset"

	"go-frontier/internal/industry/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportSelectionWithoutDependencies(t *testing.T) {
	engine := newTestEngine(t)

	// Round trip: a bare type lands in types only
	out, err := engine.ExportSelection([]int{112}, false)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Meta.SelectedCount)
	assert.Equal(t, 1, out.Meta.TotalWithDependencies)
	assert.False(t, out.Meta.IncludeDependencies)

	require.Len(t, out.Types, 1)
	assert.Equal(t, "Base Metal", out.Types[112].TypeName)
	assert.Empty(t, out.Ships)
	assert.Empty(t, out.Blueprints)
}

func TestExportSelectionExpandsDependencies(t *testing.T) {
	engine := newTestEngine(t)

	out, err := engine.ExportSelection([]int{100}, true)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Meta.SelectedCount)
	assert.Equal(t, 3, out.Meta.TotalWithDependencies)
	assert.True(t, out.Meta.IncludeDependencies)

	// Widget, its blueprint's type record and Tritanium
	assert.Contains(t, out.Types, 100)
	assert.Contains(t, out.Types, 10)
	assert.Contains(t, out.Types, 200)

	// The producing blueprint record rides along
	require.Contains(t, out.Blueprints, 200)
	assert.Equal(t, 200, out.Blueprints[200].BlueprintTypeID)
}

func TestExportSelectionIncludesShips(t *testing.T) {
	engine := newTestEngine(t)

	out, err := engine.ExportSelection([]int{500}, true)
	require.NoError(t, err)

	// Present in both mappings, exported to both sections
	require.Contains(t, out.Ships, 500)
	assert.Equal(t, "Frigate", out.Ships[500].GroupName)
	assert.Contains(t, out.Types, 500)
}

func TestExportSelectionSkipsUnknownIDs(t *testing.T) {
	engine := newTestEngine(t)

	out, err := engine.ExportSelection([]int{99999}, true)
	require.NoError(t, err)

	assert.Equal(t, 1, out.Meta.SelectedCount)
	assert.Equal(t, 1, out.Meta.TotalWithDependencies)
	assert.Empty(t, out.Types)
	assert.Empty(t, out.Ships)
	assert.Empty(t, out.Blueprints)
}

func TestExportAllBlueprints(t *testing.T) {
	engine := newTestEngine(t)

	out, err := engine.ExportAllBlueprints(true)
	require.NoError(t, err)

	assert.Equal(t, 5, out.Meta.BlueprintCount)
	assert.True(t, out.Meta.IncludeDependencies)
	assert.Len(t, out.Blueprints, 5)

	// Referenced products and materials appear in types
	assert.Contains(t, out.Types, 100)
	assert.Contains(t, out.Types, 10)
	assert.Contains(t, out.Types, 112)

	// Blueprint ids without a type record count in the meta only:
	// 5 blueprints, 5 products, 3 distinct materials, 4 of them
	// blueprint-only ids
	assert.Equal(t, 12, out.Meta.TotalTypes)
	assert.Len(t, out.Types, 8)
	assert.NotContains(t, out.Types, 220)
}

func TestExportCategoryBlueprints(t *testing.T) {
	engine := newTestEngine(t)

	payload, err := engine.ExportCategory(CategoryBlueprints)
	require.NoError(t, err)

	blueprints, ok := payload.(map[int]*dataset.Blueprint)
	require.True(t, ok)
	assert.Len(t, blueprints, 5)
	assert.Equal(t, 200, blueprints[200].BlueprintTypeID)
}

func TestExportCategoryShipsWithFallback(t *testing.T) {
	types := map[int]*dataset.TypeRecord{
		500: {TypeName: "Redshift", GroupID: 25},
		501: {TypeName: "Bare Hull", GroupID: 26},
	}
	ships := map[int]*dataset.ShipRecord{
		500: {TypeName: "Redshift", GroupID: 25, GroupName: "Frigate"},
	}
	engine := NewEngine(&fakeDataset{
		types:      types,
		ships:      ships,
		blueprints: map[int]*dataset.Blueprint{},
		dogma:      map[int]dataset.AttributeBag{},
	})
	require.NoError(t, engine.Rebuild(context.Background()))

	payload, err := engine.ExportCategory(CategoryShips)
	require.NoError(t, err)

	out, ok := payload.(map[int]any)
	require.True(t, ok)
	require.Len(t, out, 2)

	// Enriched ship record preferred, type record as fallback
	_, isShip := out[500].(*dataset.ShipRecord)
	assert.True(t, isShip)
	_, isType := out[501].(*dataset.TypeRecord)
	assert.True(t, isType)
}

func TestExportCategoryMergesDogma(t *testing.T) {
	engine := newTestEngine(t)

	payload, err := engine.ExportCategory(CategoryModules)
	require.NoError(t, err)

	out, ok := payload.(map[int]*dto.TypeExport)
	require.True(t, ok)

	// Plasma Disintegrator carries its dogma bag
	require.Contains(t, out, 303)
	assert.Equal(t, "Plasma Disintegrator", out[303].TypeName)
	require.Contains(t, out[303].DogmaAttributes, "damage")
	assert.Equal(t, float64(42), out[303].DogmaAttributes["damage"].Value)
}

func TestExportCategoryDoesNotMutateLoadedTypes(t *testing.T) {
	ds := fixtureDataset()
	engine := NewEngine(ds)
	require.NoError(t, engine.Rebuild(context.Background()))

	_, err := engine.ExportCategory(CategoryModules)
	require.NoError(t, err)

	// The loaded record is untouched, dogma was merged onto a copy
	rec := ds.types[303]
	assert.Equal(t, "Plasma Disintegrator", rec.TypeName)
}

func TestExportCategoryUnknown(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.ExportCategory(Category("weapons"))
	assert.Error(t, err)
}

func TestListCategorySortedByName(t *testing.T) {
	engine := newTestEngine(t)

	items, err := engine.ListCategory(CategoryComponents)
	require.NoError(t, err)

	// Widget, Assembly, Subpart, Ouroboros Alpha/Beta are craftable
	require.Len(t, items, 5)
	for i := 1; i < len(items); i++ {
		assert.LessOrEqual(t, items[i-1].TypeName, items[i].TypeName)
	}
	assert.Equal(t, "Assembly", items[0].TypeName)
}

func TestListCategoryUsesNamePlaceholders(t *testing.T) {
	engine := newTestEngine(t)

	items, err := engine.ListCategory(CategoryBlueprints)
	require.NoError(t, err)

	// 220 etc. have no type record; their names fall back to Type <id>
	names := map[int]string{}
	for _, item := range items {
		names[item.TypeID] = item.TypeName
	}
	assert.Equal(t, "Widget Blueprint", names[200])
	assert.Equal(t, "Type 220", names[220])
}

func TestListCategoryUnknown(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.ListCategory(Category("nope"))
	assert.Error(t, err)
}

func TestCategoryCountsCoverEveryType(t *testing.T) {
	ds := fixtureDataset()
	engine := NewEngine(ds)
	require.NoError(t, engine.Rebuild(context.Background()))

	counts, err := engine.CategoryCounts()
	require.NoError(t, err)

	// All eight categories are present even when empty
	assert.Len(t, counts, 8)

	total := 0
	for _, n := range counts {
		total += n
	}

	// Every type id plus the blueprint-only ids, each exactly once
	categorized := map[int]struct{}{}
	for id := range ds.types {
		categorized[id] = struct{}{}
	}
	for id := range ds.blueprints {
		categorized[id] = struct{}{}
	}
	for id := range ds.ships {
		categorized[id] = struct{}{}
	}
	assert.Equal(t, len(categorized), total)
}
