package app

import (
	"context"
	"io"

	"go.trai.ch/plotpy/internal/core/domain"
	"go.trai.ch/plotpy/internal/engine/scheduler"
)

// RunOptions configures Run.
type RunOptions struct {
	Options
	// Out is the script path for a single body, or the directory for several.
	Out string
	// Jobs bounds how many interpreters run at once. Zero means one per CPU.
	Jobs int
	// Summary receives one line per execution when several bodies are run.
	Summary io.Writer
}

// Run materializes every body and executes it to completion. Results are returned in
// body order. Every body runs even when another fails.
func (a *App) Run(ctx context.Context, bodies []string, opts RunOptions) ([]scheduler.Result, error) {
	if len(bodies) == 0 {
		return nil, domain.ErrNoScripts
	}

	cfg, err := a.loadConfig(opts.Options)
	if err != nil {
		return nil, err
	}

	paths := outputPaths(cfg, opts.Out, len(bodies))
	jobs := make([]scheduler.Job, len(bodies))
	for i, body := range bodies {
		jobs[i] = scheduler.Job{
			Script: domain.Script{Path: paths[i], Body: body},
			Mode:   domain.RunModeSync,
		}
	}

	sched := a.newScheduler(cfg)
	results, err := sched.RunAll(ctx, jobs, defaultJobs(opts.Jobs))

	if opts.Summary != nil && len(bodies) > 1 {
		if r, ok := a.telemetry.(interface{ Render(io.Writer) error }); ok {
			_ = r.Render(opts.Summary)
		}
	}

	return results, err
}
