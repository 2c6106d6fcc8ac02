// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/plotpy/internal/core/domain"

// ScriptWriter materializes generated scripts on disk.
//
//go:generate mockgen -source=script_writer.go -destination=mocks/mock_script_writer.go -package=mocks
type ScriptWriter interface {
	// Materialize writes the header and body of script to script.Path, creating missing
	// parent directories and overwriting any existing file. The file is synced before
	// Materialize returns, so it is safe to execute immediately.
	Materialize(script domain.Script) (domain.Artifact, error)
	// Digest returns the digest of the file at path in the format of Artifact.Digest.
	Digest(path string) (string, error)
}
