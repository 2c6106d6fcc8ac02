package app_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/plotpy/internal/app"
	"go.trai.ch/plotpy/internal/core/domain"
	"go.trai.ch/plotpy/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

func TestApp_Watch_RerunsOnChange(t *testing.T) {
	a, m := setupAppTest(t, nil)
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	dir := t.TempDir()
	bodyFile := filepath.Join(dir, "body.py")
	out := filepath.Join(dir, "out", "plot.py")
	require.NoError(t, os.WriteFile(bodyFile, []byte("print(1)"), 0o600))

	var mu sync.Mutex
	var bodies []string
	m.loader.EXPECT().Load("").Return(noHistory(), nil)
	m.writer.EXPECT().Materialize(gomock.Any()).DoAndReturn(func(sc domain.Script) (domain.Artifact, error) {
		mu.Lock()
		bodies = append(bodies, sc.Body)
		mu.Unlock()
		return materializeOK(sc)
	}).MinTimes(2)
	m.interpreter.EXPECT().Run(gomock.Any(), out).Return(domain.Output{}, nil).MinTimes(2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runs := make(chan error, 16)
	done := make(chan error, 1)
	go func() {
		done <- a.Watch(ctx, bodyFile, app.WatchOptions{
			Out:    out,
			Window: 20 * time.Millisecond,
			Report: func(_ scheduler.Result, err error) { runs <- err },
		})
	}()

	select {
	case err := <-runs:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("initial run did not happen")
	}

	require.NoError(t, os.WriteFile(bodyFile, []byte("print(2)"), 0o600))

	select {
	case err := <-runs:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("change did not trigger a run")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "print(1)", bodies[0])
	assert.Equal(t, "print(2)", bodies[len(bodies)-1])
}

func TestApp_Watch_WaitsForRunningExecution(t *testing.T) {
	a, m := setupAppTest(t, nil)
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	dir := t.TempDir()
	bodyFile := filepath.Join(dir, "body.py")
	out := filepath.Join(dir, "plot.py")
	require.NoError(t, os.WriteFile(bodyFile, []byte("print(1)"), 0o600))

	inflight := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	m.loader.EXPECT().Load("").Return(noHistory(), nil)
	m.writer.EXPECT().Materialize(gomock.Any()).DoAndReturn(materializeOK).AnyTimes()
	m.interpreter.EXPECT().Run(gomock.Any(), out).DoAndReturn(
		func(context.Context, string) (domain.Output, error) {
			if calls.Add(1) == 2 {
				close(inflight)
				<-release
			}
			return domain.Output{}, nil
		},
	).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- a.Watch(ctx, bodyFile, app.WatchOptions{
			Out:    out,
			Window: 20 * time.Millisecond,
			Report: func(scheduler.Result, error) {
				select {
				case first <- struct{}{}:
				default:
				}
			},
		})
	}()

	select {
	case <-first:
	case <-time.After(5 * time.Second):
		t.Fatal("initial run did not happen")
	}

	require.NoError(t, os.WriteFile(bodyFile, []byte("print(2)"), 0o600))
	select {
	case <-inflight:
	case <-time.After(5 * time.Second):
		t.Fatal("change did not trigger a run")
	}

	cancel()
	select {
	case <-done:
		t.Fatal("watch returned while a run was still executing")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after the run finished")
	}
}

func TestApp_Watch_RejectsBodyAsOutput(t *testing.T) {
	a, m := setupAppTest(t, nil)
	m.loader.EXPECT().Load("").Return(noHistory(), nil)

	err := a.Watch(context.Background(), "body.py", app.WatchOptions{Out: "./body.py"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "must differ")
}
