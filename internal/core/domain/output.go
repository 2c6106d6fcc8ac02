package domain

import (
	"fmt"
	"time"
	"unicode/utf8"

	"go.trai.ch/zerr"
)

// Output holds the raw streams captured from an interpreter run.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
	// ExitCode is the child's exit status, or -1 when it was killed or never reported one.
	ExitCode int
	// Source tells which signal ended a cancellable run. It is SourceNone for synchronous runs.
	Source SignalSource
}

// Text returns stdout followed by stderr as a single string.
// Output that is not valid UTF-8 is reported as ErrDecodeOutput instead of being replaced.
func (o Output) Text() (string, error) {
	if !utf8.Valid(o.Stdout) {
		return "", zerr.With(fmt.Errorf("%w", ErrDecodeOutput), "stream", "stdout")
	}
	if !utf8.Valid(o.Stderr) {
		return "", zerr.With(fmt.Errorf("%w", ErrDecodeOutput), "stream", "stderr")
	}
	return string(o.Stdout) + string(o.Stderr), nil
}
