package version

import (
	"fmt"
	"strconv"
	"strings"
)

// VersionType identifies which component of a semantic version to bump
type VersionType int

const (
	// Patch bumps the patch component (bug fixes)
	Patch VersionType = iota
	// Minor bumps the minor component (new functionality)
	Minor
	// Major bumps the major component (breaking changes)
	Major
)

// SemVer is a parsed semantic version
type SemVer struct {
	Major int
	Minor int
	Patch int
}

// String formats the version as MAJOR.MINOR.PATCH
func (v SemVer) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseVersion parses a semantic version string, tolerating a leading "v"
func ParseVersion(versionStr string) (SemVer, error) {
	s := strings.TrimPrefix(strings.TrimSpace(versionStr), "v")

	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return SemVer{}, fmt.Errorf("invalid semantic version %q: expected MAJOR.MINOR.PATCH", versionStr)
	}

	numbers := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return SemVer{}, fmt.Errorf("invalid semantic version %q: component %q is not a number", versionStr, part)
		}
		numbers[i] = n
	}

	return SemVer{Major: numbers[0], Minor: numbers[1], Patch: numbers[2]}, nil
}

// IsValidVersion reports whether the string is a valid semantic version
func IsValidVersion(versionStr string) bool {
	_, err := ParseVersion(versionStr)
	return err == nil
}

// CompareVersions compares two version strings, returning -1, 0 or 1
func CompareVersions(v1, v2 string) (int, error) {
	a, err := ParseVersion(v1)
	if err != nil {
		return 0, err
	}
	b, err := ParseVersion(v2)
	if err != nil {
		return 0, err
	}

	pairs := [][2]int{
		{a.Major, b.Major},
		{a.Minor, b.Minor},
		{a.Patch, b.Patch},
	}
	for _, p := range pairs {
		if p[0] < p[1] {
			return -1, nil
		}
		if p[0] > p[1] {
			return 1, nil
		}
	}
	return 0, nil
}

// BumpVersion calculates the next version from the build's current Version
func BumpVersion(versionType VersionType) (string, error) {
	current, err := ParseVersion(Version)
	if err != nil {
		return "", fmt.Errorf("current version %q is not a semantic version: %w", Version, err)
	}

	switch versionType {
	case Major:
		current.Major++
		current.Minor = 0
		current.Patch = 0
	case Minor:
		current.Minor++
		current.Patch = 0
	case Patch:
		current.Patch++
	default:
		return "", fmt.Errorf("unknown version type %d", versionType)
	}

	return current.String(), nil
}
