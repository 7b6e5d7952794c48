package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound matches errors for resources that do not exist.
var ErrNotFound = errors.New("resource not found")

// Reader reads named resources.
type Reader interface {
	// Read returns the full contents of the named resource.
	// Returns an error matching ErrNotFound if it does not exist.
	Read(ctx context.Context, name string) ([]byte, error)
}

// Writer writes named resources.
type Writer interface {
	// Write replaces the named resource with data. On error the previous
	// contents, if any, are left untouched.
	Write(ctx context.Context, name string, data []byte) error
}

// Store reads and writes named resources.
type Store interface {
	Reader
	Writer
}

// NotFoundError reports a missing resource.
type NotFoundError struct {
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource %q not found", e.Name)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// WriteError reports a failed write.
type WriteError struct {
	Name  string
	Cause error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("write %q: %v", e.Name, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *WriteError) Unwrap() error {
	return e.Cause
}
