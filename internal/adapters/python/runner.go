// Package python runs materialized scripts with an external Python interpreter.
package python

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"go.trai.ch/plotpy/internal/core/domain"
	"go.trai.ch/plotpy/internal/core/ports"
	"go.trai.ch/zerr"
)

// Runner implements ports.Interpreter by spawning one interpreter process per script.
type Runner struct {
	python    string
	waitDelay time.Duration
	logger    ports.Logger
}

// NewRunner creates a Runner for cfg. An empty interpreter falls back to python3 and a
// non-positive wait delay falls back to domain.DefaultWaitDelay.
func NewRunner(cfg domain.Config, logger ports.Logger) *Runner {
	python := cfg.Python
	if python == "" {
		python = domain.DefaultPython
	}
	waitDelay := cfg.WaitDelay
	if waitDelay <= 0 {
		waitDelay = domain.DefaultWaitDelay
	}
	return &Runner{
		python:    python,
		waitDelay: waitDelay,
		logger:    logger,
	}
}

// Python returns the interpreter executable the runner spawns.
func (r *Runner) Python() string {
	return r.python
}

// Run executes the script at path and blocks until the interpreter exits.
func (r *Runner) Run(ctx context.Context, path string) (domain.Output, error) {
	//nolint:gosec // The interpreter is chosen by the user through configuration.
	cmd := exec.CommandContext(ctx, r.python, path)
	p := r.newProcess(ctx, cmd)

	start := time.Now()
	if err := p.start(); err != nil {
		return domain.Output{}, r.spawnError(err)
	}
	r.logger.Debug(fmt.Sprintf("started %s %s (pid %d)", r.python, path, p.pid()))

	waitErr := p.wait()
	p.flush()
	if ctx.Err() != nil {
		return domain.Output{}, ctx.Err()
	}
	if err := checkWait(waitErr); err != nil {
		return domain.Output{}, zerr.With(err, "path", path)
	}

	out := p.output(time.Since(start))
	r.logger.Debug(fmt.Sprintf("%s exited with code %d after %s", path, out.ExitCode, out.Duration))
	return out, nil
}

func (r *Runner) spawnError(err error) error {
	return zerr.With(fmt.Errorf("%w: %w", domain.ErrRunPython, err), "python", r.python)
}

// newProcess wires cmd's output into capture buffers, mirroring each stream to the vertex
// carried by ctx and to the debug log.
func (r *Runner) newProcess(ctx context.Context, cmd *exec.Cmd) *process {
	p := &process{cmd: cmd}

	stdout := []io.Writer{&p.stdout}
	stderr := []io.Writer{&p.stderr}
	if v, ok := ports.VertexFromContext(ctx); ok {
		stdout = append(stdout, mirror{v.Stdout()})
		stderr = append(stderr, mirror{v.Stderr()})
	}
	p.logs = []*logWriter{
		{logger: r.logger, stream: "stdout"},
		{logger: r.logger, stream: "stderr"},
	}
	stdout = append(stdout, p.logs[0])
	stderr = append(stderr, p.logs[1])

	cmd.Stdout = io.MultiWriter(stdout...)
	cmd.Stderr = io.MultiWriter(stderr...)
	cmd.WaitDelay = r.waitDelay
	return p
}

// checkWait filters the errors Wait reports that do not make the run a failure.
// A non-zero exit and an output drain cut short by WaitDelay are both expected.
func checkWait(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) || errors.Is(err, exec.ErrWaitDelay) {
		return nil
	}
	return zerr.Wrap(err, "failed to wait for python")
}

// mirror forwards writes to a secondary sink and hides its failures so a broken mirror
// never stops the capture of the primary stream.
type mirror struct {
	w io.Writer
}

func (m mirror) Write(p []byte) (int, error) {
	_, _ = m.w.Write(p)
	return len(p), nil
}

// logWriter emits complete lines of interpreter output at debug level.
type logWriter struct {
	logger ports.Logger
	stream string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

// Close logs any trailing partial line.
func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	w.logger.Debug(w.stream + ": " + strings.TrimSuffix(string(line), "\r"))
}
