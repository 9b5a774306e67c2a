package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
	require.NoError(t, err)
}

const flatBlueprints = `{
	"200": {
		"blueprintTypeID": 200,
		"activities": {
			"manufacturing": {
				"materials": [{"typeID": 10, "quantity": 5}],
				"products": [{"typeID": 100, "quantity": 1}]
			}
		}
	},
	"meta": {"note": "not a blueprint"}
}`

func TestLoadBlueprintShapes(t *testing.T) {
	wrapped := `{"blueprints": {
		"200": {
			"blueprintTypeID": 200,
			"activities": {
				"manufacturing": {
					"materials": [{"typeID": 10, "quantity": 5}],
					"products": [{"typeID": 100, "quantity": 1}]
				}
			}
		}
	}}`

	cache := `{"cache": [
		{"key": 200, "value": "{\"blueprintTypeID\": 200, \"activities\": {\"manufacturing\": {\"materials\": [{\"typeID\": 10, \"quantity\": 5}], \"products\": [{\"typeID\": 100, \"quantity\": 1}]}}}", "time": 1712000000}
	]}`

	tests := []struct {
		name    string
		content string
		shape   string
	}{
		{"flat mapping", flatBlueprints, "flat"},
		{"exported wrapper", wrapped, "wrapped"},
		{"raw cache dump", cache, "cache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFixture(t, dir, "blueprints.json", tt.content)

			svc := NewService(dir)
			blueprints, err := svc.GetAllBlueprints()
			require.NoError(t, err)

			require.Len(t, blueprints, 1)
			bp := blueprints[200]
			require.NotNil(t, bp)
			assert.Equal(t, 200, bp.BlueprintTypeID)

			manufacturing := bp.Activities["manufacturing"]
			require.Len(t, manufacturing.Materials, 1)
			assert.Equal(t, 10, manufacturing.Materials[0].TypeID)
			assert.Equal(t, 5, manufacturing.Materials[0].Quantity)
			require.Len(t, manufacturing.Products, 1)
			assert.Equal(t, 100, manufacturing.Products[0].TypeID)

			stats, err := svc.Stats()
			require.NoError(t, err)
			assert.Equal(t, tt.shape, stats.BlueprintsShape)
		})
	}
}

func TestLoadTypesPreference(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "types.json", `{"10": {"typeName": "Full Dump Tritanium"}}`)
	writeFixture(t, dir, "types_frontier.json", `{"10": {"typeName": "Tritanium", "groupID": 18}}`)

	svc := NewService(dir)
	record, err := svc.GetType(10)
	require.NoError(t, err)
	assert.Equal(t, "Tritanium", record.TypeName)
	assert.Equal(t, 18, record.GroupID)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, "types_frontier.json", stats.TypesSource)
}

func TestLoadTypesFallback(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "types.json", `{"10": {"typeName": "Tritanium"}}`)

	svc := NewService(dir)
	record, err := svc.GetType(10)
	require.NoError(t, err)
	assert.Equal(t, "Tritanium", record.TypeName)

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, "types.json", stats.TypesSource)
}

func TestLoadShipsWrapperAndPreference(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "ships.json", `{"601": {"typeName": "Bare Executioner"}}`)
	writeFixture(t, dir, "ships_with_deps.json", `{"ships": {
		"601": {"typeName": "Executioner", "groupID": 25, "stats": {"highSlots": 3, "midSlots": 2, "lowSlots": 2}},
		"meta": {"generated": true}
	}}`)

	svc := NewService(dir)
	ship, err := svc.GetShip(601)
	require.NoError(t, err)
	assert.Equal(t, "Executioner", ship.TypeName)
	require.NotNil(t, ship.Stats)
	assert.Equal(t, 3, ship.Stats.HighSlots)

	ships, err := svc.GetAllShips()
	require.NoError(t, err)
	assert.Len(t, ships, 1, "non-numeric keys are skipped")

	stats, err := svc.Stats()
	require.NoError(t, err)
	assert.Equal(t, "ships_with_deps.json", stats.ShipsSource)
}

func TestMissingFilesDegradeToEmpty(t *testing.T) {
	svc := NewService(t.TempDir())

	types, err := svc.GetAllTypes()
	require.NoError(t, err)
	assert.Empty(t, types)

	ships, err := svc.GetAllShips()
	require.NoError(t, err)
	assert.Empty(t, ships)

	blueprints, err := svc.GetAllBlueprints()
	require.NoError(t, err)
	assert.Empty(t, blueprints)

	dogma, err := svc.GetAllDogma()
	require.NoError(t, err)
	assert.Empty(t, dogma)

	assert.True(t, svc.IsLoaded())
}

func TestShipStatsDerivedFromDogma(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "ships.json", `{"601": {"typeName": "Executioner", "groupID": 25}}`)
	writeFixture(t, dir, "all_dogma.json", `{"601": {
		"hiSlots": {"attributeID": 14, "value": 4},
		"medSlots": {"attributeID": 13, "value": 1},
		"lowSlots": {"attributeID": 12, "value": 3},
		"maxVelocity": {"attributeID": 37, "value": 430.0, "displayName": "Maximum Velocity", "unit": "m/s"},
		"shieldCapacity": {"attributeID": 263, "value": 350.5}
	}}`)

	svc := NewService(dir)
	ship, err := svc.GetShip(601)
	require.NoError(t, err)

	require.NotNil(t, ship.Stats)
	assert.Equal(t, 4, ship.Stats.HighSlots)
	assert.Equal(t, 1, ship.Stats.MidSlots)
	assert.Equal(t, 3, ship.Stats.LowSlots)
	assert.Equal(t, 430.0, ship.Stats.MaxVelocity)
	assert.Equal(t, 350.5, ship.Stats.ShieldCapacity)
	assert.Equal(t, 0, ship.Stats.TurretHardpoints, "absent attributes default to zero")

	require.NotNil(t, ship.DogmaAttributes)
	assert.Equal(t, 37, ship.DogmaAttributes["maxVelocity"].AttributeID)
}

func TestGettersReturnCopies(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "types.json", `{"10": {"typeName": "Tritanium"}}`)

	svc := NewService(dir)
	first, err := svc.GetAllTypes()
	require.NoError(t, err)
	delete(first, 10)

	second, err := svc.GetAllTypes()
	require.NoError(t, err)
	assert.Contains(t, second, 10)
}

func TestReload(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "types.json", `{"10": {"typeName": "Tritanium"}}`)

	svc := NewService(dir)
	types, err := svc.GetAllTypes()
	require.NoError(t, err)
	assert.Len(t, types, 1)

	writeFixture(t, dir, "types.json", `{"10": {"typeName": "Tritanium"}, "11": {"typeName": "Pyerite"}}`)
	require.NoError(t, svc.Reload(context.Background()))

	types, err = svc.GetAllTypes()
	require.NoError(t, err)
	assert.Len(t, types, 2)
}

func TestSearchableNamesMergesShipsOverTypes(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "types.json", `{
		"10": {"typeName": "Tritanium"},
		"11": {},
		"601": {"typeName": "Executioner Hull"}
	}`)
	writeFixture(t, dir, "ships.json", `{"601": {"typeName": "Executioner", "groupID": 25}}`)

	svc := NewService(dir)
	names, err := svc.SearchableNames()
	require.NoError(t, err)

	assert.Equal(t, "Tritanium", names[10])
	assert.Equal(t, "Executioner", names[601], "ship name wins over the type name")
	assert.NotContains(t, names, 11, "unnamed records are skipped")
}

func TestUnknownIDsReturnErrors(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "types.json", `{"10": {"typeName": "Tritanium"}}`)

	svc := NewService(dir)

	_, err := svc.GetType(999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetShip(999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetBlueprint(999)
	assert.ErrorIs(t, err, ErrNotFound)
}
