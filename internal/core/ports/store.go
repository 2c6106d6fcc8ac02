package ports

import "go.trai.ch/plotpy/internal/core/domain"

// HistoryStore defines the interface for persisting run records.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type HistoryStore interface {
	// Append adds a record to the history.
	Append(record domain.RunRecord) error
	// List returns the records for the given script path, oldest first.
	// An empty path returns every record.
	List(path string) ([]domain.RunRecord, error)
}

// HistoryStoreFactory opens the history ledger kept at path.
type HistoryStoreFactory func(path string) (HistoryStore, error)
