// Package fs provides the file system adapter that materializes generated scripts.
package fs

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/plotpy/internal/core/domain"
	"go.trai.ch/plotpy/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ScriptWriter = (*Materializer)(nil)

const (
	dirPerm  = 0o750
	filePerm = 0o644
)

// Materializer writes scripts to disk and flushes them before they are executed.
type Materializer struct{}

// NewMaterializer creates a new Materializer.
func NewMaterializer() *Materializer {
	return &Materializer{}
}

// Materialize writes the header, the body and the optional pause directive to script.Path.
//
// Parent directories are created if missing. An existing file is truncated. The file is
// synced before returning so the interpreter never observes a partial write.
func (m *Materializer) Materialize(script domain.Script) (domain.Artifact, error) {
	if script.Path == "" {
		return domain.Artifact{}, domain.ErrEmptyPath
	}
	path := filepath.Clean(script.Path)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return domain.Artifact{}, zerr.With(fmt.Errorf("%w: %w", domain.ErrCreateDirectory, err), "path", dir)
		}
	}

	//nolint:gosec // Path is provided by the caller on purpose
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm)
	if err != nil {
		return domain.Artifact{}, zerr.With(fmt.Errorf("%w: %w", domain.ErrCreateFile, err), "path", path)
	}
	defer f.Close() //nolint:errcheck // Sync already reported durability errors

	hasher := xxhash.New()
	n, err := io.WriteString(io.MultiWriter(f, hasher), script.Content())
	if err != nil {
		return domain.Artifact{}, zerr.With(fmt.Errorf("%w: %w", domain.ErrWriteFile, err), "path", path)
	}

	if err := f.Sync(); err != nil {
		return domain.Artifact{}, zerr.With(fmt.Errorf("%w: %w", domain.ErrSyncFile, err), "path", path)
	}

	return domain.Artifact{
		Path:   path,
		Size:   int64(n),
		Digest: formatDigest(hasher.Sum64()),
	}, nil
}

// Digest implements ports.ScriptWriter.
func (m *Materializer) Digest(path string) (string, error) {
	return FileDigest(path)
}

// FileDigest computes the XXH64 digest of a file in the same format as Artifact.Digest.
func FileDigest(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if errors.Is(err, iofs.ErrNotExist) {
		return "", domain.ErrScriptMissing
	}
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return formatDigest(hasher.Sum64()), nil
}

func formatDigest(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}
