package linalg

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrInvalidShape      = errors.New("invalid shape")
)

// DimensionError describes an operation whose operands have incompatible lengths.
//
// It unwraps to ErrDimensionMismatch, so callers match it with errors.Is.
type DimensionError struct {
	Op   string // Operation that failed (e.g., "dot", "matvec")
	Want int    // Length required by the operation
	Got  int    // Length actually supplied
}

// Error implements the error interface.
func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: %v: want %d, got %d", e.Op, ErrDimensionMismatch, e.Want, e.Got)
}

// Unwrap returns ErrDimensionMismatch.
func (e *DimensionError) Unwrap() error {
	return ErrDimensionMismatch
}

func mismatch(op string, want, got int) error {
	return &DimensionError{Op: op, Want: want, Got: got}
}

func outOfRange(op string, index, length int) error {
	return fmt.Errorf("%s: %w: index %d, length %d", op, ErrIndexOutOfRange, index, length)
}
