package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pgarrett-scripps/exclusionms/exclusion"
	"github.com/pgarrett-scripps/exclusionms/exclusion/exerr"
)

const snapshotExt = ".xmsx"

// Store manages named snapshot files for the exclusion index under a
// configured base directory: one file per name, written atomically via
// a temp-file-then-rename, with an in-memory name index guarded by a
// mutex. This is the teacher's file-per-entity layout from
// pkg/persistence/store.go narrowed to a single-writer-at-a-time,
// whole-snapshot model — there is no WAL, no manifest, and no
// checksum-repair loop, because nothing in this domain partially
// writes an index: every Save is one complete snapshot.
type Store struct {
	basePath string
	codec    *Codec

	mu    sync.RWMutex
	names map[string]struct{}
}

// NewStore creates (if needed) basePath and returns a Store backed by
// it. compress controls whether saved snapshots are gzip'd.
func NewStore(basePath string, compress bool) (*Store, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("persistence: create base path: %w", err)
	}

	s := &Store{
		basePath: basePath,
		codec:    NewCodec(compress),
		names:    make(map[string]struct{}),
	}
	if err := s.loadNames(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) loadNames() error {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return fmt.Errorf("persistence: read base path: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), snapshotExt) {
			continue
		}
		s.names[strings.TrimSuffix(e.Name(), snapshotExt)] = struct{}{}
	}
	return nil
}

func (s *Store) filePath(name string) string {
	return filepath.Join(s.basePath, name+snapshotExt)
}

// Save encodes g's current contents and writes them atomically to
// name's file, overwriting any prior snapshot under that name.
func (s *Store) Save(name string, g *exclusion.Guard) error {
	data, err := s.codec.Encode(g.Snapshot())
	if err != nil {
		return fmt.Errorf("persistence: encode: %w", err)
	}

	if err := writeAtomically(s.filePath(name), data); err != nil {
		return fmt.Errorf("persistence: write: %w", err)
	}

	s.mu.Lock()
	s.names[name] = struct{}{}
	s.mu.Unlock()
	return nil
}

// Load reads name's snapshot and returns a freshly restored Guard.
// Returns exerr.ErrUnknownSnapshot if name has never been saved.
func (s *Store) Load(name string) (*exclusion.Guard, error) {
	if !s.Exists(name) {
		return nil, exerr.ErrUnknownSnapshot
	}

	data, err := os.ReadFile(s.filePath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, exerr.ErrUnknownSnapshot
		}
		return nil, fmt.Errorf("persistence: read: %w", err)
	}

	intervals, err := s.codec.Decode(data)
	if err != nil {
		return nil, err
	}

	g := exclusion.NewGuard()
	g.Restore(intervals)
	return g, nil
}

// Exists reports whether name has a saved snapshot.
func (s *Store) Exists(name string) bool {
	s.mu.RLock()
	_, ok := s.names[name]
	s.mu.RUnlock()
	if ok {
		return true
	}
	_, err := os.Stat(s.filePath(name))
	return err == nil
}

// Delete removes name's snapshot file. Returns exerr.ErrUnknownSnapshot
// if name does not exist.
func (s *Store) Delete(name string) error {
	if !s.Exists(name) {
		return exerr.ErrUnknownSnapshot
	}

	s.mu.Lock()
	delete(s.names, name)
	s.mu.Unlock()

	if err := os.Remove(s.filePath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("persistence: delete: %w", err)
	}
	return nil
}

// List returns every saved snapshot name, sorted.
func (s *Store) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.names))
	for n := range s.names {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func writeAtomically(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
