package resfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleIndex = `res:/staticdata/blueprints.static,a1/a1b2c3d4_blueprints.static,a1b2c3d4,0,2048
res:/staticdata/types.fsdbinary,f0/f0e1d2c3_types.fsdbinary,f0e1d2c3,0,8192

res:/ui/texture.png,bb/bbccdd_texture.png,bbccdd
res:/staticdata/starmapcache.json,cc/ccddee_starmapcache.json,ccddee,4096,1024
not-a-real-line
`

func TestParseManifest(t *testing.T) {
	m, err := ParseManifest(strings.NewReader(sampleIndex))
	require.NoError(t, err)

	assert.Equal(t, 3, m.Len(), "short rows and blank lines are skipped")

	entry, ok := m.Lookup("res:/staticdata/blueprints.static")
	require.True(t, ok)
	assert.Equal(t, "a1/a1b2c3d4_blueprints.static", entry.StorePath)
	assert.Equal(t, "a1b2c3d4", entry.FileHash)
	assert.Equal(t, int64(0), entry.Offset)
	assert.Equal(t, int64(2048), entry.Size)
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	m, err := ParseManifest(strings.NewReader(sampleIndex))
	require.NoError(t, err)

	entry, ok := m.Lookup("RES:/StaticData/Blueprints.STATIC")
	require.True(t, ok)
	assert.Equal(t, "res:/staticdata/blueprints.static", entry.LogicalPath)

	_, ok = m.Lookup("res:/staticdata/missing.static")
	assert.False(t, ok)
}

func TestFindAndFilters(t *testing.T) {
	m, err := ParseManifest(strings.NewReader(sampleIndex))
	require.NoError(t, err)

	matches := m.Find("blueprints")
	require.Len(t, matches, 1)
	assert.Equal(t, "res:/staticdata/blueprints.static", matches[0].LogicalPath)

	static := m.FilterPrefix("res:/staticdata/")
	assert.Len(t, static, 3)

	suffixed := m.FilterSuffix(".static")
	require.Len(t, suffixed, 1)
	assert.Equal(t, "res:/staticdata/blueprints.static", suffixed[0].LogicalPath)
}

func TestStoreReadSlice(t *testing.T) {
	root := t.TempDir()
	payload := filepath.Join(root, "aa")
	require.NoError(t, os.MkdirAll(payload, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(payload, "shared.bin"), []byte("xxHELLOyy"), 0644))

	store := NewStore(root)
	entry := &Entry{
		LogicalPath: "res:/data/hello.bin",
		StorePath:   "aa/shared.bin",
		Offset:      2,
		Size:        5,
	}

	data, err := store.Read(entry)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", string(data))
}

func TestStoreReadWholeFileWhenOffsetBeyondSize(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "payload.bin"), []byte("WHOLE"), 0644))

	store := NewStore(root)
	entry := &Entry{
		StorePath: "payload.bin",
		Offset:    9999,
		Size:      5,
	}

	data, err := store.Read(entry)
	require.NoError(t, err)
	assert.Equal(t, "WHOLE", string(data))
}

func TestStoreChecksRootsInOrder(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "payload.bin"), []byte("data"), 0644))

	store := NewStore(missing, root)
	entry := &Entry{StorePath: "payload.bin", Size: 4}

	path, err := store.Locate(entry)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "payload.bin"), path)

	_, err = NewStore(missing).Locate(entry)
	assert.ErrorIs(t, err, ErrPayloadMissing)
}
