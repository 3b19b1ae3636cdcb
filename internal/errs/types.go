package errs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is matched by every LookupError.
var ErrNotFound = errors.New("not found")

type ParseKind int

const (
	NoMatch ParseKind = iota
	InvalidDate
)

func (k ParseKind) String() string {
	switch k {
	case NoMatch:
		return "no match"
	case InvalidDate:
		return "invalid date"
	default:
		return "unknown"
	}
}

// ParseError reports a listed filename that could not be turned into a backup record.
type ParseError struct {
	Kind     ParseKind
	Filename string
	Pattern  string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Kind == NoMatch {
		return fmt.Sprintf("cannot parse filename %q against pattern %q", e.Filename, e.Pattern)
	}
	if e.Err != nil {
		return fmt.Sprintf("filename %q encodes an invalid date: %v", e.Filename, e.Err)
	}
	return fmt.Sprintf("filename %q encodes an invalid date", e.Filename)
}

func (e *ParseError) Unwrap() error { return e.Err }

// LookupError reports a logical name that is absent from an inventory.
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("backup name %q: %v", e.Name, ErrNotFound)
}

func (e *LookupError) Is(target error) bool { return target == ErrNotFound }

type Op string

const (
	OpList   Op = "list"
	OpRemove Op = "remove"
	OpCopy   Op = "copy"
)

// RemoteOperationError carries enough context for an operator to act on a failed remote call.
type RemoteOperationError struct {
	Op     Op
	Path   string
	Output string
	Err    error
}

func (e *RemoteOperationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s failed", e.Op, e.Path)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		fmt.Fprintf(&b, " (%s)", out)
	}
	return b.String()
}

func (e *RemoteOperationError) Unwrap() error { return e.Err }

// ConfigurationError is raised before any remote call is attempted.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}
