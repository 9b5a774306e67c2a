package services

import (
	"context"
	"testing"

	"go-frontier/pkg/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDataset implements dataset.DatasetService over fixed maps
type fakeDataset struct {
	types      map[int]*dataset.TypeRecord
	ships      map[int]*dataset.ShipRecord
	blueprints map[int]*dataset.Blueprint
	dogma      map[int]dataset.AttributeBag
}

func (f *fakeDataset) GetType(id int) (*dataset.TypeRecord, error) {
	if rec, ok := f.types[id]; ok {
		return rec, nil
	}
	return nil, dataset.ErrNotFound
}

func (f *fakeDataset) GetAllTypes() (map[int]*dataset.TypeRecord, error) {
	return f.types, nil
}

func (f *fakeDataset) GetShip(id int) (*dataset.ShipRecord, error) {
	if rec, ok := f.ships[id]; ok {
		return rec, nil
	}
	return nil, dataset.ErrNotFound
}

func (f *fakeDataset) GetAllShips() (map[int]*dataset.ShipRecord, error) {
	return f.ships, nil
}

func (f *fakeDataset) GetBlueprint(id int) (*dataset.Blueprint, error) {
	if bp, ok := f.blueprints[id]; ok {
		return bp, nil
	}
	return nil, dataset.ErrNotFound
}

func (f *fakeDataset) GetAllBlueprints() (map[int]*dataset.Blueprint, error) {
	return f.blueprints, nil
}

func (f *fakeDataset) GetDogma(id int) (dataset.AttributeBag, error) {
	if bag, ok := f.dogma[id]; ok {
		return bag, nil
	}
	return nil, dataset.ErrNotFound
}

func (f *fakeDataset) GetAllDogma() (map[int]dataset.AttributeBag, error) {
	return f.dogma, nil
}

func (f *fakeDataset) SearchableNames() (map[int]string, error) {
	names := make(map[int]string)
	for id, rec := range f.types {
		names[id] = rec.TypeName
	}
	for id, ship := range f.ships {
		names[id] = ship.TypeName
	}
	return names, nil
}

func (f *fakeDataset) IsLoaded() bool { return true }

func (f *fakeDataset) Stats() (dataset.Stats, error) { return dataset.Stats{}, nil }

func (f *fakeDataset) Reload(ctx context.Context) error { return nil }

func (f *fakeDataset) DataDir() string { return "" }

// manufacturing wraps one activity for fixture brevity
func manufacturing(materials []dataset.Material, products []dataset.Product) map[string]dataset.Activity {
	return map[string]dataset.Activity{
		"manufacturing": {Materials: materials, Products: products},
	}
}

// fixtureDataset is the shared test world:
//
//	100 Widget        <- blueprint 200 (materials: 10 Tritanium x5)
//	110 Assembly      <- blueprint 220 (materials: 111 Subpart, 10 Tritanium)
//	111 Subpart       <- blueprint 221 (materials: 112 Base Metal)
//	130 <-> 131       cyclic pair via blueprints 230/231
//	300 Tritanium Ore, 301 Helium Fuel Block, 302 Hybrid Charge,
//	303 Plasma Disintegrator (dogma attached), 304 Charge Blueprint Copy
//	500 Redshift      frigate, in both ships and types
func fixtureDataset() *fakeDataset {
	return &fakeDataset{
		types: map[int]*dataset.TypeRecord{
			10:  {TypeName: "Tritanium", GroupID: 18},
			100: {TypeName: "Widget", GroupID: 334},
			110: {TypeName: "Assembly", GroupID: 334},
			111: {TypeName: "Subpart", GroupID: 334},
			112: {TypeName: "Base Metal", GroupID: 18},
			130: {TypeName: "Ouroboros Alpha", GroupID: 334},
			131: {TypeName: "Ouroboros Beta", GroupID: 334},
			200: {TypeName: "Widget Blueprint", GroupID: 2},
			300: {TypeName: "Tritanium Ore", GroupID: 18},
			301: {TypeName: "Helium Fuel Block", GroupID: 18},
			302: {TypeName: "Hybrid Charge", GroupID: 85},
			303: {TypeName: "Plasma Disintegrator", GroupID: 74},
			304: {TypeName: "Charge Blueprint Copy", GroupID: 2},
			500: {TypeName: "Redshift", GroupID: 25},
		},
		ships: map[int]*dataset.ShipRecord{
			500: {TypeName: "Redshift", GroupID: 25, GroupName: "Frigate"},
		},
		blueprints: map[int]*dataset.Blueprint{
			200: {BlueprintTypeID: 200, Activities: manufacturing(
				[]dataset.Material{{TypeID: 10, Quantity: 5}},
				[]dataset.Product{{TypeID: 100, Quantity: 1}},
			)},
			220: {BlueprintTypeID: 220, Activities: manufacturing(
				[]dataset.Material{{TypeID: 111, Quantity: 2}, {TypeID: 10, Quantity: 3}},
				[]dataset.Product{{TypeID: 110, Quantity: 1}},
			)},
			221: {BlueprintTypeID: 221, Activities: manufacturing(
				[]dataset.Material{{TypeID: 112, Quantity: 4}},
				[]dataset.Product{{TypeID: 111, Quantity: 1}},
			)},
			230: {BlueprintTypeID: 230, Activities: manufacturing(
				[]dataset.Material{{TypeID: 131, Quantity: 1}},
				[]dataset.Product{{TypeID: 130, Quantity: 1}},
			)},
			231: {BlueprintTypeID: 231, Activities: manufacturing(
				[]dataset.Material{{TypeID: 130, Quantity: 1}},
				[]dataset.Product{{TypeID: 131, Quantity: 1}},
			)},
		},
		dogma: map[int]dataset.AttributeBag{
			303: {
				"damage": {AttributeID: 114, Value: 42, DisplayName: "Damage"},
			},
		},
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine := NewEngine(fixtureDataset())
	require.NoError(t, engine.Rebuild(context.Background()))
	return engine
}

func TestEngineRebuildSwapsSnapshot(t *testing.T) {
	ds := fixtureDataset()
	engine := NewEngine(ds)
	require.NoError(t, engine.Rebuild(context.Background()))

	hits, err := engine.Search("Gadget")
	require.NoError(t, err)
	assert.Empty(t, hits)

	ds.types[600] = &dataset.TypeRecord{TypeName: "Gadget", GroupID: 334}
	require.NoError(t, engine.Rebuild(context.Background()))

	hits, err = engine.Search("Gadget")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, 600, hits[0].TypeID)
}

func TestEngineBuildsLazilyOnFirstQuery(t *testing.T) {
	engine := NewEngine(fixtureDataset())

	// No explicit Rebuild: the first query builds the snapshot
	deps, err := engine.DependencySet(100, DefaultMaxDepth)
	require.NoError(t, err)
	assert.Contains(t, deps, 100)
}

func TestEngineGraphStats(t *testing.T) {
	engine := newTestEngine(t)

	stats, err := engine.GraphStats()
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Blueprints)
	assert.Equal(t, 5, stats.Products)
	assert.Equal(t, 0, stats.ProductConflicts)
}

func TestTypeNamePlaceholders(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Dependencies(99999, DefaultMaxDepth)
	require.NoError(t, err)
	assert.Equal(t, "Type 99999", result.TypeName)

	// Ships win over types for display names
	result, err = engine.Dependencies(500, DefaultMaxDepth)
	require.NoError(t, err)
	assert.Equal(t, "Redshift", result.TypeName)
}
