// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package linalg provides the dense vectors and matrices networks consume
// and produce.
package linalg

import "github.com/born-ml/feedforward/internal/linalg"

// Vector is a fixed-length sequence of float64 values.
type Vector = linalg.Vector

// Matrix is a dense matrix of equal-length row vectors.
type Matrix = linalg.Matrix

// DimensionError describes operands with incompatible lengths.
type DimensionError = linalg.DimensionError

// Errors.
var (
	ErrDimensionMismatch = linalg.ErrDimensionMismatch
	ErrIndexOutOfRange   = linalg.ErrIndexOutOfRange
	ErrInvalidShape      = linalg.ErrInvalidShape
)

// NewVector creates a zero-filled vector of length n.
func NewVector(n int) Vector {
	return linalg.NewVector(n)
}

// VectorOf creates a vector holding a copy of values.
func VectorOf(values ...float64) Vector {
	return linalg.VectorOf(values...)
}

// NewMatrix creates a zero-filled rows×cols matrix.
func NewMatrix(rows, cols int) (*Matrix, error) {
	return linalg.NewMatrix(rows, cols)
}

// FromRows builds a matrix from row slices.
func FromRows(rows ...[]float64) (*Matrix, error) {
	return linalg.FromRows(rows...)
}
