// Package cas implements the run history ledger as a flat JSON file.
package cas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/plotpy/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultMaxRecords is the number of records kept before the oldest are dropped.
const DefaultMaxRecords = 1000

// Store implements ports.HistoryStore using a flat JSON file.
type Store struct {
	path       string
	maxRecords int
	mu         sync.RWMutex
	records    []domain.RunRecord
}

// NewStore creates a HistoryStore backed by the file at the given path.
// A missing file starts an empty history.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:       filepath.Clean(path),
		maxRecords: DefaultMaxRecords,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// WithMaxRecords caps the number of retained records. Values below one keep everything.
func (s *Store) WithMaxRecords(n int) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxRecords = n
	return s
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(fmt.Errorf("%w: %w", domain.ErrStoreReadFailed, err), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return zerr.With(fmt.Errorf("%w: %w", domain.ErrStoreReadFailed, err), "path", s.path)
	}

	return nil
}

// save writes the records to disk. Callers must hold mu for writing.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal run history")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return zerr.With(fmt.Errorf("%w: %w", domain.ErrStoreWriteFailed, err), "path", dir)
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.With(fmt.Errorf("%w: %w", domain.ErrStoreWriteFailed, err), "path", s.path)
	}

	return nil
}

// Append adds record to the history and persists it.
func (s *Store) Append(record domain.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, record)
	if s.maxRecords > 0 && len(s.records) > s.maxRecords {
		s.records = s.records[len(s.records)-s.maxRecords:]
	}

	return s.save()
}

// List returns the records for path, oldest first. An empty path returns every record.
func (s *Store) List(path string) ([]domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var clean string
	if path != "" {
		clean = filepath.Clean(path)
	}

	out := make([]domain.RunRecord, 0, len(s.records))
	for _, r := range s.records {
		if clean == "" || filepath.Clean(r.Path) == clean {
			out = append(out, r)
		}
	}
	return out, nil
}
