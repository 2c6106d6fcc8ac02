// Package scheduler runs materialize-then-execute jobs for generated scripts.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/plotpy/internal/core/domain"
	"go.trai.ch/plotpy/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Job is one script to materialize and run.
type Job struct {
	Script domain.Script
	Mode   domain.RunMode
	// Producer may end a cancellable run early. It is ignored in sync mode.
	Producer domain.SignalProducer
}

// Result describes a finished job.
type Result struct {
	ID       string
	Artifact domain.Artifact
	Output   domain.Output
	Status   domain.RunStatus
}

// Scheduler materializes scripts and hands them to the interpreter. Jobs that target
// the same path never overlap. Jobs on distinct paths run independently.
type Scheduler struct {
	writer      ports.ScriptWriter
	interpreter ports.Interpreter
	tracer      ports.Tracer
	logger      ports.Logger
	store       ports.HistoryStore
	telemetry   ports.Telemetry
	newID       func() string
	now         func() time.Time

	locks *pathLocks

	mu     sync.RWMutex
	status map[string]domain.RunStatus
}

// NewScheduler creates a Scheduler. History and progress recording are off until
// WithHistory and WithTelemetry are used.
func NewScheduler(
	writer ports.ScriptWriter,
	interpreter ports.Interpreter,
	tracer ports.Tracer,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		writer:      writer,
		interpreter: interpreter,
		tracer:      tracer,
		logger:      logger,
		newID:       uuid.NewString,
		now:         time.Now,
		locks:       newPathLocks(),
		status:      make(map[string]domain.RunStatus),
	}
}

// WithHistory records every finished job in store.
func (s *Scheduler) WithHistory(store ports.HistoryStore) *Scheduler {
	s.store = store
	return s
}

// WithTelemetry records every job as a vertex.
func (s *Scheduler) WithTelemetry(t ports.Telemetry) *Scheduler {
	s.telemetry = t
	return s
}

// Status returns the last known status of the job for path.
func (s *Scheduler) Status(path string) domain.RunStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status[filepath.Clean(path)]
}

func (s *Scheduler) updateStatus(path string, status domain.RunStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status[filepath.Clean(path)] = status
}

// Execute materializes job.Script and runs it. Cancellable jobs always get the pause
// directive so the interpreter stays open until a signal arrives.
func (s *Scheduler) Execute(ctx context.Context, job Job) (Result, error) {
	script := job.Script
	if script.Path == "" {
		return Result{}, domain.ErrEmptyPath
	}
	if job.Mode == "" {
		job.Mode = domain.RunModeSync
	}
	script.Pause = job.Mode == domain.RunModeCancellable

	res := Result{ID: s.newID(), Status: domain.RunStatusPending}
	s.updateStatus(script.Path, domain.RunStatusPending)

	release, err := s.locks.acquire(ctx, script.Path)
	if err != nil {
		res.Status = domain.RunStatusCancelled
		s.updateStatus(script.Path, res.Status)
		return res, err
	}
	defer release()

	started := s.now()
	ctx, span := s.tracer.Start(ctx, "run "+script.Path,
		ports.WithAttribute("run.id", res.ID),
		ports.WithAttribute("run.mode", string(job.Mode)),
		ports.WithAttribute("script.path", script.Path),
	)
	defer span.End()

	var vertex ports.Vertex
	if s.telemetry != nil {
		ctx, vertex = s.telemetry.Record(ctx, script.Path)
	}

	res.Artifact, res.Output, err = s.run(ctx, script, job)
	res.Status = statusOf(res.Output, err)
	s.updateStatus(script.Path, res.Status)

	s.report(span, res, err)
	if vertex != nil {
		vertex.Complete(err)
	}
	s.recordHistory(script.Path, res, job.Mode, started, err)

	return res, err
}

func (s *Scheduler) run(ctx context.Context, script domain.Script, job Job) (domain.Artifact, domain.Output, error) {
	artifact, err := s.writer.Materialize(script)
	if err != nil {
		return domain.Artifact{}, domain.Output{}, err
	}
	s.logger.Debug(fmt.Sprintf("wrote %s (%d bytes, digest %s)", artifact.Path, artifact.Size, artifact.Digest))

	s.updateStatus(script.Path, domain.RunStatusRunning)

	var out domain.Output
	if job.Mode == domain.RunModeCancellable {
		out, err = s.interpreter.RunCancellable(ctx, artifact.Path, job.Producer)
	} else {
		out, err = s.interpreter.Run(ctx, artifact.Path)
	}
	return artifact, out, err
}

func statusOf(out domain.Output, err error) domain.RunStatus {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domain.RunStatusCancelled
	case err != nil:
		return domain.RunStatusFailed
	case out.Source == domain.SourceRequested, out.Source == domain.SourceCancelled:
		return domain.RunStatusCancelled
	default:
		return domain.RunStatusCompleted
	}
}

func (s *Scheduler) report(span ports.Span, res Result, err error) {
	span.SetAttribute("run.status", string(res.Status))
	if res.Artifact.Digest != "" {
		span.SetAttribute("script.digest", res.Artifact.Digest)
		span.SetAttribute("script.size", res.Artifact.Size)
	}
	if err != nil {
		span.RecordError(err)
		return
	}
	span.SetAttribute("run.exit_code", res.Output.ExitCode)
	span.SetAttribute("run.duration", res.Output.Duration)
	if res.Output.Source != domain.SourceNone {
		span.SetAttribute("run.source", res.Output.Source.String())
	}
	_, _ = span.Write(res.Output.Stdout)
	_, _ = span.Write(res.Output.Stderr)
}

func (s *Scheduler) recordHistory(path string, res Result, mode domain.RunMode, started time.Time, runErr error) {
	if s.store == nil {
		return
	}

	record := domain.RunRecord{
		ID:        res.ID,
		Path:      filepath.Clean(path),
		Digest:    res.Artifact.Digest,
		Mode:      mode,
		Status:    res.Status,
		ExitCode:  res.Output.ExitCode,
		Duration:  res.Output.Duration,
		Timestamp: started,
	}
	if res.Output.Source != domain.SourceNone {
		record.Source = res.Output.Source.String()
	}
	if runErr != nil {
		record.Error = runErr.Error()
		record.ExitCode = -1
	}
	if err := s.store.Append(record); err != nil {
		s.logger.Warn(fmt.Sprintf("run %s not recorded: %v", res.ID, err))
	}
}

// RunAll executes jobs with at most parallelism running at once. Every job runs even
// when others fail. Results are returned in job order and the errors are joined.
func (s *Scheduler) RunAll(ctx context.Context, jobs []Job, parallelism int) ([]Result, error) {
	if len(jobs) == 0 {
		return nil, domain.ErrNoScripts
	}
	if parallelism <= 0 {
		parallelism = 1
	}

	results := make([]Result, len(jobs))
	errs := make([]error, len(jobs))

	var g errgroup.Group
	g.SetLimit(parallelism)
	for i, job := range jobs {
		g.Go(func() error {
			results[i], errs[i] = s.Execute(ctx, job)
			return nil
		})
	}
	_ = g.Wait()

	return results, errors.Join(errs...)
}
