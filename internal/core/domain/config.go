package domain

import "time"

const (
	// DefaultPython is the interpreter used when nothing overrides it.
	DefaultPython = "python3"
	// PythonEnvVar names the environment variable that overrides the interpreter.
	PythonEnvVar = "PLOTPY_PYTHON"
	// DefaultWaitDelay bounds how long output pipes are drained after the child exits.
	DefaultWaitDelay = 2 * time.Second
	// DefaultHistoryPath is where run records are kept, relative to the working directory.
	DefaultHistoryPath = ".plotpy/history.json"
)

// Config holds the resolved runtime settings.
type Config struct {
	// Python is the interpreter executable, either a name looked up in PATH or a path.
	Python string
	// WaitDelay bounds the output drain after the interpreter exits or is killed.
	WaitDelay time.Duration
	// OutputDir is where scripts are written when no explicit output path is given.
	OutputDir string
	// HistoryPath is the JSON file holding run records. Empty disables history.
	HistoryPath string
}

// DefaultConfig returns the settings used when no configuration file is present.
func DefaultConfig() Config {
	return Config{
		Python:      DefaultPython,
		WaitDelay:   DefaultWaitDelay,
		OutputDir:   ".",
		HistoryPath: DefaultHistoryPath,
	}
}

// ConfigFileName is the configuration file looked up from the working directory upwards.
const ConfigFileName = "plotpy.yaml"
