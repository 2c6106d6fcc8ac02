package domain

import "go.trai.ch/zerr"

var (
	// ErrCreateDirectory is returned when the parent directory of a script cannot be created.
	ErrCreateDirectory = zerr.New("cannot create directory")

	// ErrCreateFile is returned when the script file cannot be created or truncated.
	ErrCreateFile = zerr.New("cannot create file")

	// ErrWriteFile is returned when the script content cannot be written.
	ErrWriteFile = zerr.New("cannot write file")

	// ErrSyncFile is returned when the script cannot be flushed to stable storage.
	ErrSyncFile = zerr.New("cannot sync file")

	// ErrRunPython is returned when the interpreter process cannot be spawned.
	ErrRunPython = zerr.New("cannot run python3")

	// ErrDecodeOutput is returned when the interpreter wrote bytes that are not valid UTF-8.
	ErrDecodeOutput = zerr.New("cannot decode output")

	// ErrEmptyPath is returned when a script has no destination path.
	ErrEmptyPath = zerr.New("script path is empty")

	// ErrNoScripts is returned when a batch run is requested without any scripts.
	ErrNoScripts = zerr.New("no scripts specified")

	// ErrLoadConfig is returned when the configuration file exists but cannot be read or parsed.
	ErrLoadConfig = zerr.New("failed to load configuration")

	// ErrStoreReadFailed is returned when the run history cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read run history")

	// ErrStoreWriteFailed is returned when the run history cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write run history")

	// ErrInvalidConfig is returned when a configuration value cannot be interpreted.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrScriptMissing is returned when a previously written script no longer exists.
	ErrScriptMissing = zerr.New("script no longer exists")

	// ErrBodyFileRead is returned when a script body cannot be read from a file.
	ErrBodyFileRead = zerr.New("cannot read body file")
)
