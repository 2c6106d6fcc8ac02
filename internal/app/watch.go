package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/plotpy/internal/adapters/watcher"
	"go.trai.ch/plotpy/internal/core/domain"
	"go.trai.ch/plotpy/internal/core/ports"
	"go.trai.ch/plotpy/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// WatchOptions configures Watch.
type WatchOptions struct {
	Options
	// Out is the script path.
	Out string
	// Window is the quiet period after a change before the body is re-run.
	Window time.Duration
	// Report receives the outcome of every run.
	Report func(scheduler.Result, error)
}

// Watch runs the body stored in bodyFile, then runs it again every time the file
// changes, until ctx is cancelled.
func (a *App) Watch(ctx context.Context, bodyFile string, opts WatchOptions) error {
	cfg, err := a.loadConfig(opts.Options)
	if err != nil {
		return err
	}
	if opts.Window <= 0 {
		opts.Window = watcher.DefaultWindow
	}
	if opts.Report == nil {
		opts.Report = func(scheduler.Result, error) {}
	}

	sched := a.newScheduler(cfg)
	out := outputPaths(cfg, opts.Out, 1)[0]
	if filepath.Clean(out) == filepath.Clean(bodyFile) {
		return zerr.With(zerr.New("output path must differ from the watched body file"), "path", out)
	}

	runOnce := func() {
		// #nosec G304 -- the body file is chosen by the user
		body, err := os.ReadFile(bodyFile)
		if err != nil {
			opts.Report(scheduler.Result{}, zerr.With(fmt.Errorf("%w: %w", domain.ErrBodyFileRead, err), "path", bodyFile))
			return
		}
		res, err := sched.Execute(ctx, scheduler.Job{Script: domain.Script{Path: out, Body: string(body)}})
		opts.Report(res, err)
	}

	w, err := a.watchers()
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	if err := w.Start(ctx, bodyFile); err != nil {
		return err
	}

	runOnce()

	debouncer := watcher.NewDebouncer(opts.Window, func(paths []string) {
		a.logger.Info(fmt.Sprintf("%s changed, running again", paths[0]))
		runOnce()
	})

	return a.consume(ctx, w, debouncer)
}

func (a *App) consume(ctx context.Context, w ports.Watcher, debouncer *watcher.Debouncer) error {
	stop := context.AfterFunc(ctx, func() { _ = w.Stop() })
	defer stop()

	for event := range w.Events() {
		if event.Operation == ports.OpRemove {
			a.logger.Debug(event.Path + " removed, waiting for it to come back")
			continue
		}
		debouncer.Add(event.Path)
	}
	// Waits for a run already in progress.
	debouncer.Stop()

	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
