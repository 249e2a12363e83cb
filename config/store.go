package config

import "sync/atomic"

// Store owns the active configuration snapshot. Snapshots are immutable:
// every update builds a fresh *Config and installs it atomically, so
// calculations already holding a snapshot never observe a partial edit.
type Store struct {
	path string
	cur  atomic.Pointer[Config]
}

// NewStore loads (or creates) the document at path and returns a store
// serving it.
func NewStore(path string) *Store {
	s := &Store{path: path}
	s.cur.Store(Load(path))
	return s
}

// Path returns the location of the backing document.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns the current configuration. Callers must treat the result
// as read-only.
func (s *Store) Snapshot() *Config {
	return s.cur.Load()
}

// Update applies fn to a deep copy of the current configuration, persists
// it, and installs the copy as the new snapshot. The previous snapshot is
// left untouched for in-flight calculations.
func (s *Store) Update(fn func(*Config)) error {
	next := s.cur.Load().Clone()
	fn(next)
	if err := Save(next, s.path); err != nil {
		return err
	}
	s.cur.Store(next)
	return nil
}

// Reload re-reads the document from disk and swaps it in.
func (s *Store) Reload() {
	s.cur.Store(Load(s.path))
}
