package domain

import "time"

// RunMode tells whether a script ran to completion or in cancellable mode.
type RunMode string

const (
	// RunModeSync blocks until the interpreter exits on its own.
	RunModeSync RunMode = "sync"
	// RunModeCancellable keeps the interpreter alive until the first termination signal.
	RunModeCancellable RunMode = "cancellable"
)

// RunRecord is one entry of the run history.
type RunRecord struct {
	ID        string        `json:"id"`
	Path      string        `json:"path"`
	Digest    string        `json:"digest"`
	Mode      RunMode       `json:"mode"`
	Status    RunStatus     `json:"status"`
	Source    string        `json:"source,omitempty"`
	ExitCode  int           `json:"exit_code"`
	Duration  time.Duration `json:"duration"`
	Timestamp time.Time     `json:"timestamp"`
	Error     string        `json:"error,omitempty"`
}

// ScriptState compares a recorded run with the script currently on disk.
type ScriptState string

const (
	// ScriptUnchanged means the file still has the digest it had when it ran.
	ScriptUnchanged ScriptState = "unchanged"
	// ScriptChanged means the file was rewritten since the run.
	ScriptChanged ScriptState = "changed"
	// ScriptMissing means the file was removed.
	ScriptMissing ScriptState = "missing"
	// ScriptUnknown means the run recorded no digest or the file could not be read.
	ScriptUnknown ScriptState = "unknown"
)

// HistoryEntry is a run record together with the current state of its script.
type HistoryEntry struct {
	RunRecord
	Script ScriptState `json:"script"`
}
