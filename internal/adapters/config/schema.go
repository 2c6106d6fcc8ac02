package config

// File represents the structure of the plotpy.yaml configuration file.
type File struct {
	// Python is the interpreter executable.
	Python string `yaml:"python"`
	// WaitDelay is a Go duration string such as "2s" or "500ms".
	WaitDelay string `yaml:"wait_delay"`
	// OutputDir is resolved relative to the directory holding the file.
	OutputDir string `yaml:"output_dir"`
	// History is resolved relative to the directory holding the file.
	// An explicit empty string disables the history ledger.
	History *string `yaml:"history"`
}
