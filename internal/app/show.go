package app

import (
	"bufio"
	"context"
	"io"
	"time"

	"go.trai.ch/plotpy/internal/core/domain"
	"go.trai.ch/plotpy/internal/engine/scheduler"
)

// ShowOptions configures Show.
type ShowOptions struct {
	Options
	// Out is the script path.
	Out string
	// Timeout closes the window after this long. Zero leaves it open.
	Timeout time.Duration
	// Dismiss, when set, closes the window as soon as a line can be read from it.
	Dismiss io.Reader
}

// Show runs body in cancellable mode. The interpreter stays open until the script ends
// on its own, the timeout passes, a line arrives on Dismiss or ctx is cancelled.
func (a *App) Show(ctx context.Context, body string, opts ShowOptions) (scheduler.Result, error) {
	cfg, err := a.loadConfig(opts.Options)
	if err != nil {
		return scheduler.Result{}, err
	}

	job := scheduler.Job{
		Script:   domain.Script{Path: outputPaths(cfg, opts.Out, 1)[0], Body: body},
		Mode:     domain.RunModeCancellable,
		Producer: Producer(opts.Timeout, opts.Dismiss),
	}
	return a.newScheduler(cfg).Execute(ctx, job)
}

// Producer builds a signal producer that terminates a run after timeout, or when a line
// can be read from dismiss. Either may be disabled with a zero value.
func Producer(timeout time.Duration, dismiss io.Reader) domain.SignalProducer {
	return func(ctx context.Context, sig *domain.Signal) {
		lines := make(chan struct{}, 1)
		if dismiss != nil {
			// The read cannot be interrupted. It is left behind if the run ends first.
			go func() {
				if _, err := bufio.NewReader(dismiss).ReadString('\n'); err == nil {
					lines <- struct{}{}
				}
			}()
		}

		var expired <-chan time.Time
		if timeout > 0 {
			timer := time.NewTimer(timeout)
			defer timer.Stop()
			expired = timer.C
		}

		select {
		case <-expired:
			sig.Terminate()
		case <-lines:
			sig.Terminate()
		case <-ctx.Done():
		}
	}
}
