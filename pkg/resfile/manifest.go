// Package resfile reads the flat resource index shipped with the game
// client and resolves logical res:/ paths to payload files in the
// content-addressed ResFiles store.
package resfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Entry is one line of resfileindex.txt
type Entry struct {
	LogicalPath string `json:"resource_path"`
	StorePath   string `json:"hash_path"`
	FileHash    string `json:"file_hash"`
	Offset      int64  `json:"offset"`
	Size        int64  `json:"size"`
	Line        int    `json:"line_number"`
}

// Manifest is the parsed resource index with case-insensitive lookup
type Manifest struct {
	entries []*Entry
	byPath  map[string]*Entry
}

// ParseManifest reads index rows from r. Rows are comma-separated:
// logical path, store path, content hash, offset, size. Rows with fewer
// than five fields and blank lines are skipped.
func ParseManifest(r io.Reader) (*Manifest, error) {
	m := &Manifest{
		byPath: make(map[string]*Entry),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 5 {
			continue
		}

		offset, err := strconv.ParseInt(parts[3], 10, 64)
		if err != nil {
			continue
		}
		size, err := strconv.ParseInt(parts[4], 10, 64)
		if err != nil {
			continue
		}

		entry := &Entry{
			LogicalPath: parts[0],
			StorePath:   parts[1],
			FileHash:    parts[2],
			Offset:      offset,
			Size:        size,
			Line:        lineNum,
		}
		m.entries = append(m.entries, entry)
		m.byPath[strings.ToLower(entry.LogicalPath)] = entry
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan index: %w", err)
	}

	return m, nil
}

// LoadManifest parses the index file at path
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index file: %w", err)
	}
	defer f.Close()

	return ParseManifest(f)
}

// Len returns the number of parsed entries
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Entries returns all entries in file order
func (m *Manifest) Entries() []*Entry {
	out := make([]*Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Lookup resolves a logical path, case-insensitively
func (m *Manifest) Lookup(logicalPath string) (*Entry, bool) {
	entry, ok := m.byPath[strings.ToLower(logicalPath)]
	return entry, ok
}

// Find returns every entry whose logical path contains the search term,
// case-insensitively, in file order.
func (m *Manifest) Find(term string) []*Entry {
	term = strings.ToLower(term)
	var matches []*Entry
	for _, entry := range m.entries {
		if strings.Contains(strings.ToLower(entry.LogicalPath), term) {
			matches = append(matches, entry)
		}
	}
	return matches
}

// FilterPrefix returns entries whose logical path starts with prefix
func (m *Manifest) FilterPrefix(prefix string) []*Entry {
	prefix = strings.ToLower(prefix)
	var matches []*Entry
	for _, entry := range m.entries {
		if strings.HasPrefix(strings.ToLower(entry.LogicalPath), prefix) {
			matches = append(matches, entry)
		}
	}
	return matches
}

// FilterSuffix returns entries whose logical path ends with suffix
func (m *Manifest) FilterSuffix(suffix string) []*Entry {
	suffix = strings.ToLower(suffix)
	var matches []*Entry
	for _, entry := range m.entries {
		if strings.HasSuffix(strings.ToLower(entry.LogicalPath), suffix) {
			matches = append(matches, entry)
		}
	}
	return matches
}
