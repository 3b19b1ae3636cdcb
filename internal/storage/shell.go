package storage

import (
	"context"
	"strings"
	"time"

	"github.com/MrSnakeDoc/boxkeep/internal/errs"
	"github.com/MrSnakeDoc/boxkeep/internal/logger"
	"github.com/MrSnakeDoc/boxkeep/internal/runner"
)

// DefaultTimeout bounds a single remote command.
const DefaultTimeout = 2 * time.Minute

// Shell implements Storage with ls, rm and cp.
type Shell struct {
	Runner  runner.CommandRunner
	Timeout time.Duration
}

// NewShell returns a Shell issuing commands through r. A non-positive
// timeout falls back to DefaultTimeout.
func NewShell(r runner.CommandRunner, timeout time.Duration) *Shell {
	if r == nil {
		r = &runner.ExecRunner{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Shell{Runner: r, Timeout: timeout}
}

// List runs `ls -1 -- dir` and returns one entry per non-empty line.
func (s *Shell) List(ctx context.Context, dir string) ([]string, error) {
	logger.Debug("ls %s", dir)
	out, err := s.Runner.Run(ctx, s.Timeout, "ls", "-1", "--", dir)
	if err != nil {
		return nil, &errs.RemoteOperationError{Op: errs.OpList, Path: dir, Output: string(out), Err: err}
	}
	return splitLines(string(out)), nil
}

// Remove runs `rm -- filePath`.
func (s *Shell) Remove(ctx context.Context, filePath string) Outcome {
	logger.Debug("rm %s", filePath)
	out, err := s.Runner.Run(ctx, s.Timeout, "rm", "--", filePath)
	return outcome(errs.OpRemove, filePath, out, err)
}

// Copy runs `cp -- srcPath dstDir`, keeping the filename.
func (s *Shell) Copy(ctx context.Context, srcPath, dstDir string) Outcome {
	logger.Debug("cp %s %s", srcPath, dstDir)
	out, err := s.Runner.Run(ctx, s.Timeout, "cp", "--", srcPath, dstDir)
	return outcome(errs.OpCopy, srcPath, out, err)
}

func outcome(op errs.Op, p string, out []byte, err error) Outcome {
	text := strings.TrimSpace(string(out))
	if err != nil {
		return Outcome{
			Output: text,
			Err:    &errs.RemoteOperationError{Op: op, Path: p, Output: text, Err: err},
		}
	}
	return Outcome{OK: true, Output: text}
}

func splitLines(s string) []string {
	var names []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	return names
}
