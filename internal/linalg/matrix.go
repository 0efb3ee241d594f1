package linalg

import (
	"fmt"
	"strings"
)

// Matrix is a dense matrix stored as a slice of equal-length row vectors.
//
// The row and column counts are fixed at construction.
type Matrix struct {
	rows []Vector
	cols int
}

// NewMatrix creates a zero-filled rows×cols matrix.
//
// Both dimensions must be positive.
func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d (dimensions must be > 0)", ErrInvalidShape, rows, cols)
	}
	data := make([]float64, rows*cols)
	m := &Matrix{rows: make([]Vector, rows), cols: cols}
	for i := range m.rows {
		m.rows[i] = Vector{data: data[i*cols : (i+1)*cols : (i+1)*cols]}
	}
	return m, nil
}

// FromRows builds a matrix from row slices, copying their contents.
//
// Every row must have the same non-zero length.
func FromRows(rows ...[]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidShape)
	}
	m, err := NewMatrix(len(rows), len(rows[0]))
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		if len(r) != m.cols {
			return nil, fmt.Errorf("row %d: %w", i, mismatch("from rows", m.cols, len(r)))
		}
		copy(m.rows[i].data, r)
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	return len(m.rows)
}

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	return m.cols
}

// Row returns row i. The returned vector shares storage with m, so in-place
// vector operations on it modify the matrix.
func (m *Matrix) Row(i int) (Vector, error) {
	if i < 0 || i >= len(m.rows) {
		return Vector{}, outOfRange("matrix row", i, len(m.rows))
	}
	return m.rows[i], nil
}

// SetRow copies v into row i.
func (m *Matrix) SetRow(i int, v Vector) error {
	if i < 0 || i >= len(m.rows) {
		return outOfRange("matrix set row", i, len(m.rows))
	}
	if v.Len() != m.cols {
		return mismatch("matrix set row", m.cols, v.Len())
	}
	copy(m.rows[i].data, v.data)
	return nil
}

// At returns the entry at (row, col).
func (m *Matrix) At(row, col int) (float64, error) {
	r, err := m.Row(row)
	if err != nil {
		return 0, err
	}
	return r.At(col)
}

// Set writes x at (row, col).
func (m *Matrix) Set(row, col int, x float64) error {
	r, err := m.Row(row)
	if err != nil {
		return err
	}
	return r.Set(col, x)
}

// MulVec returns m × v: element i is the dot product of row i with v.
//
// Requires m.Cols() == v.Len(); the result has length m.Rows().
func (m *Matrix) MulVec(v Vector) (Vector, error) {
	out := NewVector(len(m.rows))
	if err := m.MulVecTo(out, v); err != nil {
		return Vector{}, err
	}
	return out, nil
}

// MulVecTo stores m × v in dst, which must have length m.Rows().
func (m *Matrix) MulVecTo(dst, v Vector) error {
	if v.Len() != m.cols {
		return mismatch("matvec", m.cols, v.Len())
	}
	if dst.Len() != len(m.rows) {
		return mismatch("matvec", len(m.rows), dst.Len())
	}
	for i, row := range m.rows {
		dst.data[i], _ = row.Dot(v)
	}
	return nil
}

// SubVec returns a new matrix whose row i is row i of m minus v[i] in every
// column.
//
// Requires m.Rows() == v.Len().
func (m *Matrix) SubVec(v Vector) (*Matrix, error) {
	if v.Len() != len(m.rows) {
		return nil, mismatch("row sub", len(m.rows), v.Len())
	}
	out, _ := NewMatrix(len(m.rows), m.cols)
	for i, row := range m.rows {
		for j, x := range row.data {
			out.rows[i].data[j] = x - v.data[i]
		}
	}
	return out, nil
}

// Transpose returns a new matrix with entry (c, r) equal to m's (r, c).
func (m *Matrix) Transpose() *Matrix {
	out, _ := NewMatrix(m.cols, len(m.rows))
	_ = m.TransposeTo(out)
	return out
}

// TransposeTo writes the transpose of m into dst, which must be
// m.Cols()×m.Rows().
func (m *Matrix) TransposeTo(dst *Matrix) error {
	if dst.Rows() != m.cols {
		return mismatch("transpose rows", m.cols, dst.Rows())
	}
	if dst.cols != len(m.rows) {
		return mismatch("transpose cols", len(m.rows), dst.cols)
	}
	for r, row := range m.rows {
		for c, x := range row.data {
			dst.rows[c].data[r] = x
		}
	}
	return nil
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	out, _ := NewMatrix(len(m.rows), m.cols)
	for i, row := range m.rows {
		copy(out.rows[i].data, row.data)
	}
	return out
}

// Equal reports whether m and other have the same shape and identical entries.
func (m *Matrix) Equal(other *Matrix) bool {
	if other == nil || len(m.rows) != len(other.rows) || m.cols != other.cols {
		return false
	}
	for i, row := range m.rows {
		if !row.Equal(other.rows[i]) {
			return false
		}
	}
	return true
}

// String formats the matrix one row per line.
func (m *Matrix) String() string {
	var sb strings.Builder
	for i, row := range m.rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(row.String())
	}
	return sb.String()
}
