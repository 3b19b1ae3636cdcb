// Package storage exposes the remote box as three typed operations.
//
// The box has no filesystem API; every operation is a shell command issued
// through a runner.CommandRunner. Callers only ever see Storage, so the
// policies and managers can be exercised against Memory in tests.
package storage

import (
	"context"
	"path"
)

// Outcome is the structured result of a mutating remote call.
type Outcome struct {
	OK     bool
	Output string // captured stdout/stderr, kept for diagnostics
	Err    error  // *errs.RemoteOperationError when !OK
}

// Storage is the remote command protocol consumed by the loader and managers.
type Storage interface {
	// List returns the entry names of dir, one level deep, without empty entries.
	List(ctx context.Context, dir string) ([]string, error)
	// Remove deletes one file.
	Remove(ctx context.Context, filePath string) Outcome
	// Copy copies one file into dstDir, keeping its name.
	Copy(ctx context.Context, srcPath, dstDir string) Outcome
}

// Join builds a remote path. Remote paths are POSIX regardless of the local OS.
func Join(dir, name string) string {
	return path.Join(dir, name)
}
