package linalg

import "errors"

// Sentinel errors for the container contracts. Callers branch with errors.Is;
// call sites attach context with %w wrapping.
var (
	// ErrShapeMismatch indicates that operand dimensions disagree in a
	// binary operation (vector lengths, matrix shapes, or a matrix-vector
	// product whose inner dimensions do not line up).
	ErrShapeMismatch = errors.New("linalg: shape mismatch")

	// ErrIndexOutOfRange indicates an out-of-bounds element access.
	ErrIndexOutOfRange = errors.New("linalg: index out of range")
)
