package runner

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

// CommandRunner executes one command and returns its combined stdout/stderr.
// A non-nil error means the command could not run or exited non-zero; the
// output is still returned for diagnostics.
type CommandRunner interface {
	Run(ctx context.Context, timeout time.Duration, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands on the local machine. It serves local mirrors of
// the storage tiers with the same ls/rm/cp protocol as the remote box.
type ExecRunner struct{}

func (ExecRunner) Run(
	parent context.Context,
	timeout time.Duration,
	name string,
	args ...string,
) ([]byte, error) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// ShellJoin renders name and args as a single POSIX shell command line.
func ShellJoin(name string, args ...string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, Quote(name))
	for _, a := range args {
		parts = append(parts, Quote(a))
	}
	return strings.Join(parts, " ")
}

// Quote single-quotes s unless it only holds characters the shell leaves alone.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, unsafeRune) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func unsafeRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return !strings.ContainsRune("-_./=:,+@%", r)
}
