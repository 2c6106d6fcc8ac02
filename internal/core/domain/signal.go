package domain

import (
	"context"
	"sync/atomic"
)

// SignalSource identifies who asked for a cancellable run to end.
type SignalSource int

const (
	// SourceNone means no signal was consumed.
	SourceNone SignalSource = iota
	// SourceExited is sent by the exit waiter when the child terminates on its own.
	SourceExited
	// SourceRequested is sent by a caller-supplied SignalProducer.
	SourceRequested
	// SourceCancelled is sent when the run's context is done.
	SourceCancelled
)

// String returns a lowercase name for the source.
func (s SignalSource) String() string {
	switch s {
	case SourceExited:
		return "exited"
	case SourceRequested:
		return "requested"
	case SourceCancelled:
		return "cancelled"
	default:
		return "none"
	}
}

// Signal is a single-shot termination notice shared by several senders and read by one receiver.
// Only the first Send is delivered. Later sends are dropped and never block or panic.
type Signal struct {
	fired atomic.Bool
	ch    chan SignalSource
}

// NewSignal returns a Signal ready for use.
func NewSignal() *Signal {
	return &Signal{ch: make(chan SignalSource, 1)}
}

// Send delivers src if no other signal has been sent yet and reports whether it won.
func (s *Signal) Send(src SignalSource) bool {
	if !s.fired.CompareAndSwap(false, true) {
		return false
	}
	s.ch <- src
	return true
}

// Terminate is the producer-side shorthand for Send(SourceRequested).
func (s *Signal) Terminate() bool {
	return s.Send(SourceRequested)
}

// Fired reports whether a signal has been sent.
func (s *Signal) Fired() bool {
	return s.fired.Load()
}

// C returns the channel the winning signal is delivered on.
func (s *Signal) C() <-chan SignalSource {
	return s.ch
}

// SignalProducer is caller-supplied work that may request termination of a cancellable run
// by calling sig.Terminate. ctx is cancelled once the run is over, and producers should
// return when it is.
type SignalProducer func(ctx context.Context, sig *Signal)
