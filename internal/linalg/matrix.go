package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Matrix is a dense row-major matrix with fixed dimensions.
// Element (r, c) lives at data[r*cols+c], the same contiguous layout the
// layer math indexes. Binary operations require identical shapes and fail
// with ErrShapeMismatch otherwise.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix creates a rows x cols matrix filled with 0.
func NewMatrix(rows, cols int) Matrix {
	return Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

// NewMatrixFrom creates a rows x cols matrix holding a copy of the row-major
// data slice.
func NewMatrixFrom(rows, cols int, data []float64) (Matrix, error) {
	if len(data) != rows*cols {
		return Matrix{}, fmt.Errorf("%w: matrix %dx%d needs %d elements, got %d",
			ErrShapeMismatch, rows, cols, rows*cols, len(data))
	}
	cp := make([]float64, len(data))
	copy(cp, data)
	return Matrix{rows: rows, cols: cols, data: cp}, nil
}

// Rows returns the fixed row count.
func (m Matrix) Rows() int {
	return m.rows
}

// Cols returns the fixed column count.
func (m Matrix) Cols() int {
	return m.cols
}

// At returns the element at (r, c).
func (m Matrix) At(r, c int) (float64, error) {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		return 0, fmt.Errorf("%w: matrix index (%d,%d), shape %dx%d", ErrIndexOutOfRange, r, c, m.rows, m.cols)
	}
	return m.data[r*m.cols+c], nil
}

// Set stores x at (r, c). This is the only mutation a Matrix supports.
func (m Matrix) Set(r, c int, x float64) error {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		return fmt.Errorf("%w: matrix index (%d,%d), shape %dx%d", ErrIndexOutOfRange, r, c, m.rows, m.cols)
	}
	m.data[r*m.cols+c] = x
	return nil
}

// Add returns m + n elementwise.
func (m Matrix) Add(n Matrix) (Matrix, error) {
	if m.rows != n.rows || m.cols != n.cols {
		return Matrix{}, fmt.Errorf("%w: matrix add %dx%d vs %dx%d",
			ErrShapeMismatch, m.rows, m.cols, n.rows, n.cols)
	}
	out := make([]float64, len(m.data))
	floats.AddTo(out, m.data, n.data)
	return Matrix{rows: m.rows, cols: m.cols, data: out}, nil
}

// Scale returns k * m. Shape-preserving, never fails.
func (m Matrix) Scale(k float64) Matrix {
	out := make([]float64, len(m.data))
	floats.ScaleTo(out, k, m.data)
	return Matrix{rows: m.rows, cols: m.cols, data: out}
}

// MulVec returns the product m · v. Requires v.Len() == Cols; the result has
// length Rows.
func (m Matrix) MulVec(v Vector) (Vector, error) {
	if v.Len() != m.cols {
		return Vector{}, fmt.Errorf("%w: %dx%d matrix times vector of length %d",
			ErrShapeMismatch, m.rows, m.cols, v.Len())
	}
	out := make([]float64, m.rows)
	for r := 0; r < m.rows; r++ {
		out[r] = floats.Dot(m.data[r*m.cols:(r+1)*m.cols], v.data)
	}
	return Vector{data: out}, nil
}

// TransMulVec returns the product mᵗ · v. Requires v.Len() == Rows; the
// result has length Cols. This is the delta back-propagation step.
func (m Matrix) TransMulVec(v Vector) (Vector, error) {
	if v.Len() != m.rows {
		return Vector{}, fmt.Errorf("%w: %dx%d matrix transposed times vector of length %d",
			ErrShapeMismatch, m.rows, m.cols, v.Len())
	}
	out := make([]float64, m.cols)
	for r := 0; r < m.rows; r++ {
		floats.AddScaled(out, v.data[r], m.data[r*m.cols:(r+1)*m.cols])
	}
	return Vector{data: out}, nil
}

// Outer returns the outer product a ⊗ b: a matrix with len(a) rows and
// len(b) columns whose (r, c) element is a[r]*b[c]. This is the shape of a
// layer's weight gradient (delta ⊗ input).
func Outer(a, b Vector) Matrix {
	m := NewMatrix(a.Len(), b.Len())
	for r := 0; r < m.rows; r++ {
		floats.ScaleTo(m.data[r*m.cols:(r+1)*m.cols], a.data[r], b.data)
	}
	return m
}

// Clone returns a deep copy of m.
func (m Matrix) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)
	return Matrix{rows: m.rows, cols: m.cols, data: cp}
}

// RawData returns the backing row-major slice without copying. Mutations
// through the slice are visible to every copy of the Matrix; the training
// update step relies on this.
func (m Matrix) RawData() []float64 {
	return m.data
}
