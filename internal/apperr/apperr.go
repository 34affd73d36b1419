// Package apperr defines the closed error taxonomy used across wt.
// Every error that reaches the CLI boundary carries one of the kinds
// below, which map to stable exit codes.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies the category of an application error.
type Kind int

const (
	// KindUnknown is the zero value; treated as a git failure at the boundary.
	KindUnknown Kind = iota
	// KindUsage - the caller supplied an unsatisfiable request.
	KindUsage
	// KindGit - the underlying git command failed for an unclassified reason.
	KindGit
	// KindNotARepo - the starting path is not inside a git repository.
	KindNotARepo
	// KindInvariant - the operation would violate a hard safety rule.
	KindInvariant
	// KindConflict - repository state prevents the operation.
	KindConflict
)

// ExitCode returns the stable exit code for the kind.
func (k Kind) ExitCode() int {
	switch k {
	case KindUsage:
		return 1
	case KindNotARepo:
		return 3
	case KindInvariant:
		return 4
	case KindConflict:
		return 5
	default:
		return 2
	}
}

// String returns the machine-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindGit:
		return "git"
	case KindNotARepo:
		return "not_a_repo"
	case KindInvariant:
		return "invariant"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is an application error with a stable kind.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Usage creates a usage error.
func Usage(format string, args ...any) *Error {
	return &Error{Kind: KindUsage, Message: fmt.Sprintf(format, args...)}
}

// Git creates an unclassified git failure error.
func Git(format string, args ...any) *Error {
	return &Error{Kind: KindGit, Message: fmt.Sprintf(format, args...)}
}

// NotARepo creates a repository-resolution error.
func NotARepo(format string, args ...any) *Error {
	return &Error{Kind: KindNotARepo, Message: fmt.Sprintf(format, args...)}
}

// Invariant creates a safety-rule violation error.
func Invariant(format string, args ...any) *Error {
	return &Error{Kind: KindInvariant, Message: fmt.Sprintf(format, args...)}
}

// Conflict creates a state-conflict error.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind from an error chain.
// Errors that are not *Error report KindUnknown.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// ExitCode returns the exit code for an error chain.
func ExitCode(err error) int {
	return KindOf(err).ExitCode()
}
