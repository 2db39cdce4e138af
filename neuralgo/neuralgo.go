// Package neuralgo re-exports the engine's types and constructors so callers
// never import internal packages directly.
package neuralgo

import (
	"github.com/AndresCdo/neuralgo/internal/activations"
	"github.com/AndresCdo/neuralgo/internal/layer"
	"github.com/AndresCdo/neuralgo/internal/linalg"
	"github.com/AndresCdo/neuralgo/internal/net"
	"github.com/AndresCdo/neuralgo/internal/opt"
)

// Re-export common types for easier access.
type (
	Vector     = linalg.Vector
	Matrix     = linalg.Matrix
	Layer      = layer.Dense
	Gradients  = layer.Gradients
	Network    = net.Network
	Activation = activations.Activation
	Optimizer  = opt.Optimizer
	Callback   = net.Callback
	StopReason = net.StopReason
)

// Sentinel errors.
var (
	ErrShapeMismatch   = linalg.ErrShapeMismatch
	ErrIndexOutOfRange = linalg.ErrIndexOutOfRange
	ErrBadFormat       = net.ErrBadFormat
)

// Stop reasons.
const (
	MaxEpochsReached = net.MaxEpochsReached
	Converged        = net.Converged
	EarlyStopped     = net.EarlyStopped
)

// Activations.
var (
	Sigmoid = activations.Sigmoid{}
	Tanh    = activations.Tanh{}
	ReLU    = activations.ReLU{}
	Linear  = activations.Linear{}
)

// NewVector creates a vector holding a copy of elems.
func NewVector(elems []float64) Vector { return linalg.NewVector(elems) }

// Zeros creates a vector of length n filled with 0.
func Zeros(n int) Vector { return linalg.Zeros(n) }

// Ones creates a vector of length n filled with 1.
func Ones(n int) Vector { return linalg.Ones(n) }

// Dense creates a fully connected layer.
func Dense(in, out int, act Activation) *Layer {
	return layer.NewDense(in, out, act)
}

// New creates a network from an ordered layer list, validating that
// adjacent layer widths chain.
func New(layers ...*Layer) (*Network, error) {
	return net.New(layers...)
}

// Load reads a network from its textual file form.
func Load(path string) (*Network, error) {
	return net.Load(path)
}

// SGD returns the plain gradient-descent optimizer.
func SGD(learningRate float64) Optimizer {
	return opt.SGD{LearningRate: learningRate}
}

// Logger returns a callback printing progress every interval epochs.
func Logger(interval int) Callback {
	return net.Logger{Interval: interval}
}
