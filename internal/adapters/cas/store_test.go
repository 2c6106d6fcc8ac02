package cas_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"go.trai.ch/plotpy/internal/adapters/cas"
	"go.trai.ch/plotpy/internal/core/domain"
)

func record(id, path string) domain.RunRecord {
	return domain.RunRecord{
		ID:        id,
		Path:      path,
		Digest:    "0123456789abcdef",
		Mode:      domain.RunModeSync,
		Status:    domain.RunStatusCompleted,
		Duration:  150 * time.Millisecond,
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestStore_AppendAndList(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "history.json")

	store, err := cas.NewStore(storePath)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if err := store.Append(record("1", "plots/a.py")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(record("2", "plots/b.py")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := store.Append(record("3", "plots/a.py")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	all, err := store.List("")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}

	onlyA, err := store.List("plots/./a.py")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(onlyA) != 2 || onlyA[0].ID != "1" || onlyA[1].ID != "3" {
		t.Errorf("expected records 1 and 3 in order, got %+v", onlyA)
	}
}

func TestStore_Persistence(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "nested", "history.json")

	store1, err := cas.NewStore(storePath)
	if err != nil {
		t.Fatalf("NewStore 1 failed: %v", err)
	}
	rec := record("persisted", "out.py")
	rec.Mode = domain.RunModeCancellable
	rec.Source = domain.SourceRequested.String()
	if err := store1.Append(rec); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	store2, err := cas.NewStore(storePath)
	if err != nil {
		t.Fatalf("NewStore 2 failed: %v", err)
	}

	got, err := store2.List("out.py")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if got[0] != rec {
		t.Errorf("expected %+v, got %+v", rec, got[0])
	}
}

func TestStore_OmitEmpty(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "history.json")

	store, err := cas.NewStore(storePath)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if err := store.Append(record("plain", "x.py")); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	//nolint:gosec // Test file with controlled path
	content, err := os.ReadFile(storePath)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	jsonStr := string(content)
	if strings.Contains(jsonStr, `"source"`) {
		t.Error("JSON should not contain 'source' for a synchronous run")
	}
	if strings.Contains(jsonStr, `"error"`) {
		t.Error("JSON should not contain 'error' for a successful run")
	}
	if !strings.Contains(jsonStr, `"digest"`) {
		t.Error("JSON should contain 'digest'")
	}
}

func TestStore_MaxRecords(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "history.json"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	store.WithMaxRecords(2)

	for i := range 5 {
		if err := store.Append(record(fmt.Sprint(i), "x.py")); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, _ := store.List("")
	if len(got) != 2 || got[0].ID != "3" || got[1].ID != "4" {
		t.Errorf("expected the two newest records, got %+v", got)
	}
}

func TestStore_CorruptFile(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(storePath, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := cas.NewStore(storePath)
	if !errors.Is(err, domain.ErrStoreReadFailed) {
		t.Fatalf("expected ErrStoreReadFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "failed to read run history") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStore_WriteFailure(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "history")
	store, err := cas.NewStore(filepath.Join(parent, "history.json"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	// The ledger directory becomes a regular file after the store was opened.
	if err := os.WriteFile(parent, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	err = store.Append(record("1", "x.py"))
	if !errors.Is(err, domain.ErrStoreWriteFailed) {
		t.Fatalf("expected ErrStoreWriteFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "failed to write run history") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStore_ConcurrentAppend(t *testing.T) {
	store, err := cas.NewStore(filepath.Join(t.TempDir(), "history.json"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Go(func() {
			if err := store.Append(record(fmt.Sprint(i), "x.py")); err != nil {
				t.Errorf("Append failed: %v", err)
			}
		})
	}
	wg.Wait()

	got, _ := store.List("")
	if len(got) != 20 {
		t.Errorf("expected 20 records, got %d", len(got))
	}
}
