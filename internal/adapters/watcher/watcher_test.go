package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/plotpy/internal/adapters/watcher"
	"go.trai.ch/plotpy/internal/core/ports"
	"go.trai.ch/plotpy/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newWatcher(t *testing.T) *watcher.Watcher {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	w, err := watcher.NewWatcher(log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

// nextEvent returns the first event for path, skipping others, or fails after a timeout.
func nextEvent(t *testing.T, events <-chan ports.WatchEvent, path string) ports.WatchEvent {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "event stream closed early")
			if ev.Path == path {
				return ev
			}
		case <-deadline:
			t.Fatalf("no event for %s", path)
			return ports.WatchEvent{}
		}
	}
}

func pump(w *watcher.Watcher) <-chan ports.WatchEvent {
	ch := make(chan ports.WatchEvent, 16)
	go func() {
		defer close(ch)
		for ev := range w.Events() {
			ch <- ev
		}
	}()
	return ch
}

func TestWatcher_ReportsWritesToWatchedFile(t *testing.T) {
	dir := t.TempDir()
	body := filepath.Join(dir, "body.py")
	require.NoError(t, os.WriteFile(body, []byte("print(1)\n"), 0o600))

	w := newWatcher(t)
	require.NoError(t, w.Start(context.Background(), body))
	events := pump(w)

	require.NoError(t, os.WriteFile(body, []byte("print(2)\n"), 0o600))

	ev := nextEvent(t, events, body)
	assert.Contains(t, []ports.WatchOp{ports.OpWrite, ports.OpCreate}, ev.Operation)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	body := filepath.Join(dir, "body.py")
	other := filepath.Join(dir, "other.py")
	require.NoError(t, os.WriteFile(body, nil, 0o600))

	w := newWatcher(t)
	require.NoError(t, w.Start(context.Background(), body))
	events := pump(w)

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(body, []byte("y"), 0o600))

	ev := nextEvent(t, events, body)
	assert.Equal(t, body, ev.Path)

	select {
	case ev := <-events:
		assert.NotEqual(t, other, ev.Path)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_RelativePathsAreResolved(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("body.py", nil, 0o600))

	w := newWatcher(t)
	require.NoError(t, w.Start(context.Background(), "body.py"))
	events := pump(w)

	require.NoError(t, os.WriteFile("body.py", []byte("z"), 0o600))

	abs, err := filepath.Abs("body.py")
	require.NoError(t, err)
	nextEvent(t, events, abs)
}

func TestWatcher_StopEndsEvents(t *testing.T) {
	dir := t.TempDir()
	body := filepath.Join(dir, "body.py")
	require.NoError(t, os.WriteFile(body, nil, 0o600))

	w := newWatcher(t)
	require.NoError(t, w.Start(context.Background(), body))
	events := pump(w)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())

	select {
	case _, ok := <-events:
		for ok {
			_, ok = <-events
		}
	case <-time.After(5 * time.Second):
		t.Fatal("event stream did not end after Stop")
	}
}

func TestWatcher_StartFailsForMissingDirectory(t *testing.T) {
	w := newWatcher(t)
	err := w.Start(context.Background(), filepath.Join(t.TempDir(), "missing", "body.py"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to watch directory")
}
