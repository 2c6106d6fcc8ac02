package python

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"go.trai.ch/plotpy/internal/core/domain"
	"go.trai.ch/zerr"
)

// RunCancellable executes the script at path without blocking on its exit. The child is
// killed as soon as the first of these happens: it exits on its own, producer calls
// Terminate, or ctx is done. Whatever the child wrote before that is returned along with
// the source of the winning signal.
//
// The child's stdin is a pipe held open for the whole run, so a script that pauses for
// input stays open until it is terminated.
func (r *Runner) RunCancellable(
	ctx context.Context,
	path string,
	producer domain.SignalProducer,
) (domain.Output, error) {
	//nolint:gosec // The interpreter is chosen by the user through configuration.
	cmd := exec.Command(r.python, path)
	p := r.newProcess(ctx, cmd)
	if err := p.holdStdin(); err != nil {
		return domain.Output{}, r.spawnError(err)
	}

	start := time.Now()
	if err := p.start(); err != nil {
		p.releaseStdin()
		return domain.Output{}, r.spawnError(err)
	}
	r.logger.Debug(fmt.Sprintf("started %s %s (pid %d)", r.python, path, p.pid()))

	sig := domain.NewSignal()

	exited := make(chan error, 1)
	go func() {
		err := p.wait()
		exited <- err
		sig.Send(domain.SourceExited)
	}()

	producerCtx, stopProducer := context.WithCancel(ctx)
	defer stopProducer()
	if producer != nil {
		go producer(producerCtx, sig)
	}

	stopCancel := context.AfterFunc(ctx, func() {
		sig.Send(domain.SourceCancelled)
	})
	defer stopCancel()

	source := <-sig.C()
	r.logger.Debug(fmt.Sprintf("%s: signal from %s, killing pid %d", path, source, p.pid()))

	if err := p.kill(); err != nil {
		if !errors.Is(err, os.ErrProcessDone) {
			r.logger.Debug(fmt.Sprintf("%s: kill failed: %v", path, err))
		}
	}
	p.releaseStdin()

	waitErr := <-exited
	p.flush()
	if err := checkWait(waitErr); err != nil {
		return domain.Output{}, zerr.With(err, "path", path)
	}

	out := p.output(time.Since(start))
	out.Source = source
	return out, nil
}
