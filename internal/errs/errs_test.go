package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupError_MatchesNotFound(t *testing.T) {
	err := fmt.Errorf("latest: %w", &LookupError{Name: "db"})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, `latest: backup name "db": not found`)
}

func TestParseError(t *testing.T) {
	noMatch := &ParseError{Kind: NoMatch, Filename: "notes.txt", Pattern: `(?P<name>.+)\.tar\.gz`}
	assert.Contains(t, noMatch.Error(), `"notes.txt"`)

	cause := errors.New("month 13 out of range")
	bad := &ParseError{Kind: InvalidDate, Filename: "db-2024-13-01.tar.gz", Err: cause}
	assert.ErrorIs(t, bad, cause)
	assert.Equal(t, "invalid date", bad.Kind.String())
}

func TestRemoteOperationError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := &RemoteOperationError{Op: OpRemove, Path: "/home/daily/db-2024-01-01.tar.gz", Output: "rm: Permission denied\n", Err: cause}

	assert.EqualError(t, err, "remove /home/daily/db-2024-01-01.tar.gz failed: exit status 1 (rm: Permission denied)")
	assert.ErrorIs(t, err, cause)

	var target *RemoteOperationError
	assert.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &target))
	assert.Equal(t, OpRemove, target.Op)
}

func TestMsg(t *testing.T) {
	assert.Contains(t, Msg(NoOperation, "run"), "boxkeep run --list")
	assert.Contains(t, Msg(ForceRequiredInit, "/tmp/config.yml"), "/tmp/config.yml")
	assert.Equal(t, "UNKNOWN", Msg(Code("UNKNOWN")))
}
