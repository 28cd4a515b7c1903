// Package cache implements disk-backed memoization of timing service calls.
// A Store persists one JSON file per session identifier under a configured
// directory; a Loader layers an in-process memo and the Store in front of
// the remote client.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/smileynet/pitwall/internal/f1"
)

// Store persists session data as JSON files under a base directory.
// The directory is an explicit constructor argument so tests can run
// isolated stores side by side.
type Store struct {
	dir string
}

// NewStore creates a Store backed by dir. Call Enable before first use.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the backing directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Enable ensures the backing directory exists and is writable. It is
// idempotent: enabling an already-enabled store succeeds without side
// effects. A failure here is a fatal startup condition for callers.
func (s *Store) Enable() error {
	if s.dir == "" {
		return errors.New("cache: directory path cannot be empty")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("cache: creating directory %s: %w", s.dir, err)
	}

	// MkdirAll succeeds on an existing but read-only directory; probe with
	// a real write so the failure surfaces at startup, not mid-render.
	probe := filepath.Join(s.dir, ".probe")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return fmt.Errorf("cache: directory %s is not writable: %w", s.dir, err)
	}
	if err := os.Remove(probe); err != nil {
		return fmt.Errorf("cache: removing probe file: %w", err)
	}
	return nil
}

// Get reads the cached session data for an identifier.
// Returns (data, true, nil) on a hit, (nil, false, nil) on a miss.
func (s *Store) Get(id f1.SessionID) (*f1.SessionData, bool, error) {
	p, err := s.path(id)
	if err != nil {
		return nil, false, err
	}

	raw, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache: reading %s: %w", p, err)
	}

	var data f1.SessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, false, fmt.Errorf("cache: parsing %s: %w", p, err)
	}
	return &data, true, nil
}

// Put writes session data for an identifier, replacing any existing entry.
func (s *Store) Put(id f1.SessionID, data *f1.SessionData) error {
	p, err := s.path(id)
	if err != nil {
		return err
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("cache: marshaling %s: %w", id, err)
	}

	if err := os.WriteFile(p, raw, 0o644); err != nil {
		return fmt.Errorf("cache: writing %s: %w", p, err)
	}
	return nil
}

// Remove deletes the cache entry for an identifier. Removing a missing
// entry is not an error. Used by fetch --force to drop a stale snapshot.
func (s *Store) Remove(id f1.SessionID) error {
	p, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cache: removing %s: %w", p, err)
	}
	return nil
}

// ErrInvalidKey indicates a session identifier produced an unusable cache key.
var ErrInvalidKey = errors.New("cache: invalid session key")

// path returns the filesystem path for a session's cache file. Keys are
// generated by f1.SessionID.Key, but reject anything that escapes the
// directory anyway.
func (s *Store) path(id f1.SessionID) (string, error) {
	key := id.Key()
	if key == "" || key != filepath.Base(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
