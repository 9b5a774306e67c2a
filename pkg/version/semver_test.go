package version

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	sv, err := ParseVersion("1.2.3")
	require.NoError(t, err)
	assert.Equal(t, SemVer{Major: 1, Minor: 2, Patch: 3}, sv)

	sv, err = ParseVersion("v10.0.7")
	require.NoError(t, err)
	assert.Equal(t, SemVer{Major: 10, Minor: 0, Patch: 7}, sv)

	for _, bad := range []string{"", "dev", "1.2", "1.2.3.4", "1.2.x", "-1.2.3"} {
		_, err := ParseVersion(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestIsValidVersion(t *testing.T) {
	assert.True(t, IsValidVersion("0.1.0"))
	assert.True(t, IsValidVersion("v1.2.3"))
	assert.False(t, IsValidVersion("dev"))
	assert.False(t, IsValidVersion("1.2"))
}

func TestCompareVersions(t *testing.T) {
	cases := []struct {
		v1, v2 string
		want   int
	}{
		{"1.0.0", "2.0.0", -1},
		{"2.0.0", "1.9.9", 1},
		{"1.2.3", "1.2.3", 0},
		{"1.2.3", "1.2.4", -1},
		{"1.3.0", "1.2.9", 1},
		{"v1.0.0", "1.0.0", 0},
	}
	for _, tc := range cases {
		got, err := CompareVersions(tc.v1, tc.v2)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s vs %s", tc.v1, tc.v2)
	}

	_, err := CompareVersions("dev", "1.0.0")
	assert.Error(t, err)
}

func TestBumpVersion(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "1.2.3"

	next, err := BumpVersion(Patch)
	require.NoError(t, err)
	assert.Equal(t, "1.2.4", next)

	next, err = BumpVersion(Minor)
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", next)

	next, err = BumpVersion(Major)
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", next)

	Version = "dev"
	_, err = BumpVersion(Patch)
	assert.Error(t, err)
}

func TestChangelogRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG.md")

	content := `# Changelog

## [Unreleased]

### Fixed

- Handle empty resource index rows

## [0.1.0] - 2026-08-25

### Added

- Extraction pipeline
- Dependency graph queries
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	changelog, err := ParseChangelog(path)
	require.NoError(t, err)
	require.Len(t, changelog.Releases, 2)

	assert.True(t, changelog.Releases[0].IsUnreleased)
	assert.True(t, changelog.HasUnreleasedChanges())

	latest := changelog.GetLatestRelease()
	require.NotNil(t, latest)
	assert.Equal(t, "0.1.0", latest.Version)
	assert.Equal(t, "2026-08-25", latest.Date)
	require.Len(t, latest.Changes, 2)
	assert.Equal(t, Added, latest.Changes[0].Type)

	changelog.AddEntry(Changed, "Reorder classifier checks")
	require.NoError(t, changelog.ReleaseVersion("0.2.0"))
	require.NoError(t, changelog.WriteChangelog(path))

	reparsed, err := ParseChangelog(path)
	require.NoError(t, err)

	released := reparsed.GetLatestRelease()
	require.NotNil(t, released)
	assert.Equal(t, "0.2.0", released.Version)
	assert.False(t, reparsed.HasUnreleasedChanges())
	require.Len(t, released.Changes, 2)
}
