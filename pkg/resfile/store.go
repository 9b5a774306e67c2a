package resfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrPayloadMissing reports that no candidate root held the payload file
var ErrPayloadMissing = errors.New("payload not found in store")

// Store resolves index entries to payload files under candidate roots
type Store struct {
	roots []string
}

// NewStore creates a store over the given candidate roots, checked in order
func NewStore(roots ...string) *Store {
	return &Store{roots: roots}
}

// DefaultRoots returns the store locations for a game directory. The
// shared ResFiles directory sits beside the game directory; an in-tree
// copy is checked second.
func DefaultRoots(gameDir string) []string {
	return []string{
		filepath.Join(filepath.Dir(gameDir), "ResFiles"),
		filepath.Join(gameDir, "ResFiles"),
	}
}

// Locate returns the first existing payload file for an entry
func (s *Store) Locate(entry *Entry) (string, error) {
	for _, root := range s.roots {
		candidate := filepath.Join(root, filepath.FromSlash(entry.StorePath))
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrPayloadMissing, entry.StorePath)
}

// Read extracts the payload bytes for an entry. When the index offset
// lies inside a larger shared file the slice at [offset, offset+size)
// is returned, otherwise the whole file is read.
func (s *Store) Read(entry *Entry) ([]byte, error) {
	path, err := s.Locate(entry)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat payload: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open payload: %w", err)
	}
	defer f.Close()

	if entry.Offset < info.Size() {
		if _, err := f.Seek(entry.Offset, io.SeekStart); err != nil {
			return nil, fmt.Errorf("failed to seek payload: %w", err)
		}
		data := make([]byte, entry.Size)
		n, err := io.ReadFull(f, data)
		if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("failed to read payload slice: %w", err)
		}
		return data[:n], nil
	}

	// Offset beyond the payload file means the entry addresses the whole file
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}
	return data, nil
}

// ReadLogical resolves a logical path through the manifest and reads it
func (s *Store) ReadLogical(m *Manifest, logicalPath string) ([]byte, error) {
	entry, ok := m.Lookup(logicalPath)
	if !ok {
		return nil, fmt.Errorf("resource %s not in index", logicalPath)
	}
	return s.Read(entry)
}
