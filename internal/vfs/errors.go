package vfs

import (
	"errors"
	"fmt"
)

// Sentinel errors for structural conflicts. Absence is not an error:
// Get reports it through its boolean result.
var (
	// ErrInvalidRoot indicates an attempt to replace the root with a file.
	ErrInvalidRoot = errors.New("root must be a folder")

	// ErrTypeConflict indicates the final path segment already holds a
	// node of a different kind than the value being set.
	ErrTypeConflict = errors.New("node kind conflict")

	// ErrPathConflict indicates an intermediate path segment is a file,
	// which blocks further descent.
	ErrPathConflict = errors.New("intermediate path segment is a file")
)

// Error wraps a structural conflict with the operation and the path it
// was addressed to.
type Error struct {
	Op   string // "set" or "unset"
	Path string // path as given by the caller
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap supports errors.Is/As against the sentinel errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// Operation names used in errors.
const (
	OpSet   = "set"
	OpUnset = "unset"
)

func newError(op, path string, err error) *Error {
	return &Error{Op: op, Path: path, Err: err}
}
