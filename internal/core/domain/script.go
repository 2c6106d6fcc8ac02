package domain

import "strings"

// Script is a generated Python program: the fixed header followed by caller-supplied commands.
type Script struct {
	// Path is where the script is written. Missing parent directories are created.
	Path string
	// Body holds the caller's Python commands. It is written after PythonHeader without a separator.
	Body string
	// Pause appends PauseDirective so an interactive window stays open until the process is killed.
	Pause bool
}

// Content returns the exact bytes written to disk for the script.
func (s Script) Content() string {
	var b strings.Builder
	b.Grow(len(PythonHeader) + len(s.Body) + len(PauseDirective))
	b.WriteString(PythonHeader)
	b.WriteString(s.Body)
	if s.Pause {
		b.WriteString(PauseDirective)
	}
	return b.String()
}

// Artifact describes a script that has been durably written to disk.
type Artifact struct {
	Path string
	Size int64
	// Digest is the hex-encoded XXH64 of the file content.
	Digest string
}
