package ports

import (
	"context"

	"go.trai.ch/plotpy/internal/core/domain"
)

// Interpreter executes materialized scripts with an external Python process.
//
//go:generate mockgen -source=interpreter.go -destination=mocks/mock_interpreter.go -package=mocks
type Interpreter interface {
	// Run blocks until the interpreter exits on its own and returns everything it wrote.
	// A non-zero exit status is not an error.
	Run(ctx context.Context, path string) (domain.Output, error)

	// RunCancellable starts the interpreter and returns once either the process exits or
	// producer requests termination, whichever happens first. The process is then killed
	// and whatever it wrote is returned.
	RunCancellable(ctx context.Context, path string, producer domain.SignalProducer) (domain.Output, error)
}

// InterpreterFactory builds an Interpreter for the resolved configuration.
type InterpreterFactory func(cfg domain.Config) Interpreter
