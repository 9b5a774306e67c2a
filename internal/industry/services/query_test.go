package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func depSet(t *testing.T, e *Engine, typeID, maxDepth int) map[int]struct{} {
	t.Helper()
	set, err := e.DependencySet(typeID, maxDepth)
	require.NoError(t, err)
	return set
}

func TestDependencySetBasicClosure(t *testing.T) {
	engine := newTestEngine(t)

	// Widget needs its blueprint and Tritanium
	set := depSet(t, engine, 100, DefaultMaxDepth)
	assert.Equal(t, map[int]struct{}{100: {}, 200: {}, 10: {}}, set)
}

func TestDependencySetContainsSelf(t *testing.T) {
	engine := newTestEngine(t)

	for _, id := range []int{10, 100, 110, 500, 99999} {
		set := depSet(t, engine, id, DefaultMaxDepth)
		assert.Contains(t, set, id, "closure of %d must contain itself", id)
	}
}

func TestDependencySetRawTypeIsSingleton(t *testing.T) {
	engine := newTestEngine(t)

	assert.Equal(t, map[int]struct{}{10: {}}, depSet(t, engine, 10, DefaultMaxDepth))
	assert.Equal(t, map[int]struct{}{99999: {}}, depSet(t, engine, 99999, DefaultMaxDepth))
}

func TestDependencySetMultiLevel(t *testing.T) {
	engine := newTestEngine(t)

	// Assembly -> {Subpart, Tritanium}; Subpart -> {Base Metal}
	set := depSet(t, engine, 110, DefaultMaxDepth)
	assert.Equal(t, map[int]struct{}{
		110: {}, 220: {}, 111: {}, 10: {}, 221: {}, 112: {},
	}, set)
}

func TestDependencySetDepthLimit(t *testing.T) {
	engine := newTestEngine(t)

	// Depth 1 expands only the direct blueprint and materials
	set := depSet(t, engine, 110, 1)
	assert.Equal(t, map[int]struct{}{110: {}, 220: {}, 111: {}, 10: {}}, set)

	// Depth 0 yields nothing at all
	assert.Empty(t, depSet(t, engine, 110, 0))
	assert.Empty(t, depSet(t, engine, 110, -1))
}

func TestDependencySetCycleTerminates(t *testing.T) {
	engine := newTestEngine(t)

	// Alpha and Beta produce each other; the visited set breaks the loop
	set := depSet(t, engine, 130, DefaultMaxDepth)
	assert.Equal(t, map[int]struct{}{130: {}, 230: {}, 131: {}, 231: {}}, set)

	set = depSet(t, engine, 131, DefaultMaxDepth)
	assert.Equal(t, map[int]struct{}{131: {}, 231: {}, 130: {}, 230: {}}, set)
}

func TestDependenciesResolvesNames(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Dependencies(100, DefaultMaxDepth)
	require.NoError(t, err)

	assert.Equal(t, 100, result.TypeID)
	assert.Equal(t, "Widget", result.TypeName)
	assert.Equal(t, 3, result.Count)

	// Sorted by type id, names resolved
	require.Len(t, result.Types, 3)
	assert.Equal(t, 10, result.Types[0].TypeID)
	assert.Equal(t, "Tritanium", result.Types[0].TypeName)
	assert.Equal(t, 100, result.Types[1].TypeID)
	assert.Equal(t, 200, result.Types[2].TypeID)
	assert.Equal(t, "Widget Blueprint", result.Types[2].TypeName)
}

func TestFullChainLevels(t *testing.T) {
	engine := newTestEngine(t)

	chain, err := engine.FullChain(100)
	require.NoError(t, err)

	assert.Equal(t, 100, chain.Target)
	assert.Equal(t, "Widget", chain.TargetName)
	require.Len(t, chain.Levels, 2)

	// Level 0: the target with its direct materials
	require.Len(t, chain.Levels[0], 1)
	target := chain.Levels[0][0]
	assert.Equal(t, 100, target.TypeID)
	assert.True(t, target.Craftable)
	require.Len(t, target.Materials, 1)
	assert.Equal(t, 10, target.Materials[0].TypeID)
	assert.Equal(t, "Tritanium", target.Materials[0].TypeName)
	assert.False(t, target.Materials[0].Craftable)

	// Level 1: Tritanium, raw
	require.Len(t, chain.Levels[1], 1)
	assert.Equal(t, 10, chain.Levels[1][0].TypeID)
	assert.False(t, chain.Levels[1][0].Craftable)
	assert.Empty(t, chain.Levels[1][0].Materials)
}

func TestFullChainMultiLevel(t *testing.T) {
	engine := newTestEngine(t)

	chain, err := engine.FullChain(110)
	require.NoError(t, err)

	require.Len(t, chain.Levels, 3)

	// Level 1 holds both direct materials, ordered by id
	require.Len(t, chain.Levels[1], 2)
	assert.Equal(t, 10, chain.Levels[1][0].TypeID)
	assert.Equal(t, 111, chain.Levels[1][1].TypeID)
	assert.True(t, chain.Levels[1][1].Craftable)

	// Level 2 is Base Metal only
	require.Len(t, chain.Levels[2], 1)
	assert.Equal(t, 112, chain.Levels[2][0].TypeID)
}

func TestFullChainRawTarget(t *testing.T) {
	engine := newTestEngine(t)

	chain, err := engine.FullChain(10)
	require.NoError(t, err)

	require.Len(t, chain.Levels, 1)
	entry := chain.Levels[0][0]
	assert.Equal(t, 10, entry.TypeID)
	assert.False(t, entry.Craftable)
	assert.Empty(t, entry.Materials)
}

func TestFullChainCycleTerminates(t *testing.T) {
	engine := newTestEngine(t)

	chain, err := engine.FullChain(130)
	require.NoError(t, err)

	// Alpha expands to Beta, Beta's material Alpha is already visited
	require.Len(t, chain.Levels, 2)
	assert.Equal(t, 130, chain.Levels[0][0].TypeID)
	assert.Equal(t, 131, chain.Levels[1][0].TypeID)
}

func TestSearchMatchesTypes(t *testing.T) {
	engine := newTestEngine(t)

	hits, err := engine.Search("Widget")
	require.NoError(t, err)

	require.Len(t, hits, 2)
	assert.Equal(t, "Widget", hits[0].TypeName)
	assert.Equal(t, "types", hits[0].Source)
	assert.Equal(t, "Widget Blueprint", hits[1].TypeName)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	engine := newTestEngine(t)

	hits, err := engine.Search("tritanium")
	require.NoError(t, err)

	require.Len(t, hits, 2)
	assert.Equal(t, "Tritanium", hits[0].TypeName)
	assert.Equal(t, "Tritanium Ore", hits[1].TypeName)
}

func TestSearchShipsWinOnDuplicateID(t *testing.T) {
	engine := newTestEngine(t)

	// 500 exists in both mappings; the ship record provides the hit
	hits, err := engine.Search("Redshift")
	require.NoError(t, err)

	require.Len(t, hits, 1)
	assert.Equal(t, 500, hits[0].TypeID)
	assert.Equal(t, "ships", hits[0].Source)
	assert.Equal(t, "Frigate", hits[0].GroupName)
}

func TestSearchSortedByName(t *testing.T) {
	engine := newTestEngine(t)

	hits, err := engine.Search("a")
	require.NoError(t, err)
	require.NotEmpty(t, hits)

	for i := 1; i < len(hits); i++ {
		assert.LessOrEqual(t, hits[i-1].TypeName, hits[i].TypeName)
	}
}

func TestSearchNoMatches(t *testing.T) {
	engine := newTestEngine(t)

	hits, err := engine.Search("zzz-no-such-type")
	require.NoError(t, err)
	assert.Empty(t, hits)
}
