// Package preset persists saved method paths for the call command as a
// flat JSON array of strings. Order is preserved, entries are unique,
// and the last writer wins.
package preset

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/robotops/ro1mon/internal/errors"
)

// Store manages the preset list backed by one JSON file.
type Store struct {
	path  string
	paths []string
}

// NewStore creates a store backed by the given file. The file is not
// touched until Load or Save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the preset list from disk. A missing file is an empty
// list, not an error.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.paths = nil
			return nil
		}
		return errors.WrapWithCode(err, errors.ErrPreset,
			"Cannot read presets file",
			"Check permissions on "+s.path)
	}

	var paths []string
	if err := json.Unmarshal(data, &paths); err != nil {
		return errors.WrapWithCode(err, errors.ErrPreset,
			"Presets file is not a JSON array of strings",
			"Fix or delete "+s.path)
	}

	s.paths = dedupe(paths)
	return nil
}

// Save writes the preset list back to disk, creating parent
// directories as needed.
func (s *Store) Save() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapWithCode(err, errors.ErrPreset,
				"Cannot create presets directory",
				"Check permissions on "+dir)
		}
	}

	data, err := json.MarshalIndent(s.paths, "", "  ")
	if err != nil {
		return errors.Wrap(err, "Cannot encode presets")
	}

	if err := os.WriteFile(s.path, append(data, '\n'), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrPreset,
			"Cannot write presets file",
			"Check permissions on "+s.path)
	}
	return nil
}

// Add appends a path if it isn't already present. Returns true when
// the list changed.
func (s *Store) Add(path string) bool {
	for _, p := range s.paths {
		if p == path {
			return false
		}
	}
	s.paths = append(s.paths, path)
	return true
}

// Remove deletes a path. Returns true when the list changed.
func (s *Store) Remove(path string) bool {
	for i, p := range s.paths {
		if p == path {
			s.paths = append(s.paths[:i], s.paths[i+1:]...)
			return true
		}
	}
	return false
}

// List returns the presets in insertion order. The caller must not
// mutate the returned slice.
func (s *Store) List() []string {
	return s.paths
}

// dedupe drops repeated entries, keeping first occurrences in order.
// Hand-edited files can contain duplicates; the store never writes
// them.
func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := paths[:0]
	for _, p := range paths {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
