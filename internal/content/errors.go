package content

import (
	"errors"
	"fmt"
)

// ValidationError reports caller input the engine refuses to act on.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a missing draft, post, folder or site root.
type NotFoundError struct {
	Kind string
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Path)
}

// IOError wraps an underlying file-system failure.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func errValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func errNotFound(kind, path string) error {
	return &NotFoundError{Kind: kind, Path: path}
}

func errIO(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
