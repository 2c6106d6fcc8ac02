package scheduler

import (
	"context"
	"time"
)

// SetClock replaces the ID generator and clock. Exported for testing only.
func (s *Scheduler) SetClock(newID func() string, now func() time.Time) {
	s.newID = newID
	s.now = now
}

// AcquirePath exposes the per-path lock. Exported for testing only.
func (s *Scheduler) AcquirePath(ctx context.Context, path string) (func(), error) {
	return s.locks.acquire(ctx, path)
}

// LockedPaths reports how many path locks are alive. Exported for testing only.
func (s *Scheduler) LockedPaths() int {
	return s.locks.size()
}
