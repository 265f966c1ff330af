package core

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrStoreClosed is returned when trying to use a closed store
	ErrStoreClosed = errors.New("store is closed")

	// ErrNotFound is returned when a queried collection does not exist
	ErrNotFound = errors.New("collection not found")

	// ErrEmptyCollection is returned when a collection name is empty
	ErrEmptyCollection = errors.New("collection name cannot be empty")

	// ErrEmptyText is returned when document or query text is empty
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrInvalidMetadata is returned when metadata cannot be serialized
	ErrInvalidMetadata = errors.New("metadata is not serializable")

	// ErrDimensionMismatch is returned when a vector's length does not match
	// the dimension pinned on the collection
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbedding is returned when the embedding provider fails
	ErrEmbedding = errors.New("embedding provider failure")
)

// StoreError wraps errors with operation context
type StoreError struct {
	Op  string // Operation name
	Err error  // Underlying error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("vecdb: %v", e.Err)
	}
	return fmt.Sprintf("vecdb: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target
func (e *StoreError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// wrapError wraps an error with operation context
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
