// Package linalg provides the dense numeric containers the network is built
// on: fixed-length vectors and row-major matrices of float64 values.
// Elementwise arithmetic is delegated to gonum's floats package.
package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Vector is a fixed-length dense vector.
// The length is set at construction and never changes. Binary operations
// require equal lengths and fail with ErrShapeMismatch otherwise. All
// operations return new vectors; Set is the only mutating method.
type Vector struct {
	data []float64
}

// NewVector creates a vector holding a copy of elems.
func NewVector(elems []float64) Vector {
	data := make([]float64, len(elems))
	copy(data, elems)
	return Vector{data: data}
}

// Zeros creates a vector of length n filled with 0.
func Zeros(n int) Vector {
	return Vector{data: make([]float64, n)}
}

// Ones creates a vector of length n filled with 1.
func Ones(n int) Vector {
	v := Vector{data: make([]float64, n)}
	for i := range v.data {
		v.data[i] = 1
	}
	return v
}

// Len returns the fixed length of the vector.
func (v Vector) Len() int {
	return len(v.data)
}

// At returns the i-th element.
func (v Vector) At(i int) (float64, error) {
	if i < 0 || i >= len(v.data) {
		return 0, fmt.Errorf("%w: vector index %d, length %d", ErrIndexOutOfRange, i, len(v.data))
	}
	return v.data[i], nil
}

// Set stores x at index i. This is the only mutation a Vector supports.
func (v Vector) Set(i int, x float64) error {
	if i < 0 || i >= len(v.data) {
		return fmt.Errorf("%w: vector index %d, length %d", ErrIndexOutOfRange, i, len(v.data))
	}
	v.data[i] = x
	return nil
}

// Add returns v + w elementwise.
func (v Vector) Add(w Vector) (Vector, error) {
	if v.Len() != w.Len() {
		return Vector{}, fmt.Errorf("%w: vector add %d vs %d", ErrShapeMismatch, v.Len(), w.Len())
	}
	out := make([]float64, v.Len())
	floats.AddTo(out, v.data, w.data)
	return Vector{data: out}, nil
}

// Sub returns v - w elementwise.
func (v Vector) Sub(w Vector) (Vector, error) {
	if v.Len() != w.Len() {
		return Vector{}, fmt.Errorf("%w: vector sub %d vs %d", ErrShapeMismatch, v.Len(), w.Len())
	}
	out := make([]float64, v.Len())
	floats.SubTo(out, v.data, w.data)
	return Vector{data: out}, nil
}

// MulElem returns the elementwise product v ⊙ w.
func (v Vector) MulElem(w Vector) (Vector, error) {
	if v.Len() != w.Len() {
		return Vector{}, fmt.Errorf("%w: vector mulelem %d vs %d", ErrShapeMismatch, v.Len(), w.Len())
	}
	out := make([]float64, v.Len())
	floats.MulTo(out, v.data, w.data)
	return Vector{data: out}, nil
}

// Scale returns k * v. Shape-preserving, never fails.
func (v Vector) Scale(k float64) Vector {
	out := make([]float64, v.Len())
	floats.ScaleTo(out, k, v.data)
	return Vector{data: out}
}

// Magnitude returns the Euclidean norm sqrt(sum(v_i^2)).
// This is the norm the network's loss is defined in terms of.
func (v Vector) Magnitude() float64 {
	return floats.Norm(v.data, 2)
}

// Clone returns a deep copy of v.
func (v Vector) Clone() Vector {
	return NewVector(v.data)
}

// RawData returns the backing slice without copying. Mutations through the
// slice are visible to every copy of the Vector; the training update step
// relies on this.
func (v Vector) RawData() []float64 {
	return v.data
}
