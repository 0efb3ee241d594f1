// Package linalg implements the dense vector and matrix arithmetic used by
// the feed-forward network and its trainer.
//
// All binary operations require operands of equal length and report a
// *DimensionError otherwise; nothing is truncated, padded or broadcast.
package linalg

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Vector is a fixed-length sequence of float64 values.
//
// Vector has value semantics for its header but shares its backing storage:
// copies of a Vector observe writes made through Set, Fill and SubAssign.
// Use Clone for an independent copy.
type Vector struct {
	data []float64
}

// NewVector creates a zero-filled vector of length n.
func NewVector(n int) Vector {
	if n < 0 {
		n = 0
	}
	return Vector{data: make([]float64, n)}
}

// VectorOf creates a vector holding a copy of values.
//
// Example:
//
//	v := linalg.VectorOf(0, 1)
func VectorOf(values ...float64) Vector {
	data := make([]float64, len(values))
	copy(data, values)
	return Vector{data: data}
}

// Len returns the number of elements.
func (v Vector) Len() int {
	return len(v.data)
}

// At returns the element at index i.
func (v Vector) At(i int) (float64, error) {
	if i < 0 || i >= len(v.data) {
		return 0, outOfRange("vector at", i, len(v.data))
	}
	return v.data[i], nil
}

// Set writes x at index i.
func (v Vector) Set(i int, x float64) error {
	if i < 0 || i >= len(v.data) {
		return outOfRange("vector set", i, len(v.data))
	}
	v.data[i] = x
	return nil
}

// Fill sets every element to x.
func (v Vector) Fill(x float64) {
	for i := range v.data {
		v.data[i] = x
	}
}

// Raw returns the backing slice. Writes to it are visible through v.
func (v Vector) Raw() []float64 {
	return v.data
}

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	return VectorOf(v.data...)
}

// Dot returns the dot product of v and w.
func (v Vector) Dot(w Vector) (float64, error) {
	if len(v.data) != len(w.data) {
		return 0, mismatch("dot", len(v.data), len(w.data))
	}
	return floats.Dot(v.data, w.data), nil
}

// Mul returns the elementwise (Hadamard) product of v and w.
func (v Vector) Mul(w Vector) (Vector, error) {
	out := NewVector(len(v.data))
	if err := MulTo(out, v, w); err != nil {
		return Vector{}, err
	}
	return out, nil
}

// Scale returns c·v. Scalar multiplication commutes, so this covers both
// operand orders.
func (v Vector) Scale(c float64) Vector {
	out := NewVector(len(v.data))
	floats.ScaleTo(out.data, c, v.data)
	return out
}

// Add returns v + w.
func (v Vector) Add(w Vector) (Vector, error) {
	if len(v.data) != len(w.data) {
		return Vector{}, mismatch("add", len(v.data), len(w.data))
	}
	out := NewVector(len(v.data))
	floats.AddTo(out.data, v.data, w.data)
	return out, nil
}

// Sub returns v - w.
func (v Vector) Sub(w Vector) (Vector, error) {
	out := NewVector(len(v.data))
	if err := SubTo(out, v, w); err != nil {
		return Vector{}, err
	}
	return out, nil
}

// SubAssign subtracts w from v in place.
func (v Vector) SubAssign(w Vector) error {
	if len(v.data) != len(w.data) {
		return mismatch("sub assign", len(v.data), len(w.data))
	}
	floats.Sub(v.data, w.data)
	return nil
}

// Map returns a new vector with fn applied to every element.
func (v Vector) Map(fn func(float64) float64) Vector {
	out := NewVector(len(v.data))
	for i, x := range v.data {
		out.data[i] = fn(x)
	}
	return out
}

// Equal reports whether v and w have the same length and identical elements.
func (v Vector) Equal(w Vector) bool {
	return floats.Equal(v.data, w.data)
}

// String formats the vector as [a b c].
func (v Vector) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, x := range v.data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%g", x)
	}
	sb.WriteByte(']')
	return sb.String()
}

// In-place kernels. They write into a caller-owned dst so that hot loops can
// reuse buffers instead of allocating per call.

// MulTo stores the elementwise product a ⊙ b in dst.
func MulTo(dst, a, b Vector) error {
	if err := sameLen("mul", dst, a, b); err != nil {
		return err
	}
	floats.MulTo(dst.data, a.data, b.data)
	return nil
}

// SubTo stores a - b in dst.
func SubTo(dst, a, b Vector) error {
	if err := sameLen("sub", dst, a, b); err != nil {
		return err
	}
	floats.SubTo(dst.data, a.data, b.data)
	return nil
}

// ScaleTo stores c·a in dst.
func ScaleTo(dst Vector, c float64, a Vector) error {
	if len(dst.data) != len(a.data) {
		return mismatch("scale", len(dst.data), len(a.data))
	}
	floats.ScaleTo(dst.data, c, a.data)
	return nil
}

// MapTo stores fn(a[i]) in dst[i].
func MapTo(dst, a Vector, fn func(float64) float64) error {
	if len(dst.data) != len(a.data) {
		return mismatch("map", len(dst.data), len(a.data))
	}
	for i, x := range a.data {
		dst.data[i] = fn(x)
	}
	return nil
}

func sameLen(op string, dst, a, b Vector) error {
	if len(a.data) != len(b.data) {
		return mismatch(op, len(a.data), len(b.data))
	}
	if len(dst.data) != len(a.data) {
		return mismatch(op, len(a.data), len(dst.data))
	}
	return nil
}
