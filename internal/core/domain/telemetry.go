package domain

// RunStatus represents the lifecycle state of a script execution.
type RunStatus string

const (
	// RunStatusPending indicates the script is waiting for its path lock or a free worker.
	RunStatusPending RunStatus = "pending"
	// RunStatusRunning indicates the interpreter is executing the script.
	RunStatusRunning RunStatus = "running"
	// RunStatusCompleted indicates the interpreter exited on its own.
	RunStatusCompleted RunStatus = "completed"
	// RunStatusCancelled indicates the interpreter was killed after a termination request.
	RunStatusCancelled RunStatus = "cancelled"
	// RunStatusFailed indicates materialization or spawning failed.
	RunStatusFailed RunStatus = "failed"
)

// IsTerminal checks if a status is a terminal state.
func (s RunStatus) IsTerminal() bool {
	switch s {
	case RunStatusCompleted, RunStatusCancelled, RunStatusFailed:
		return true
	default:
		return false
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
