// Package activations provides the activation functions used by dense layers.
package activations

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownActivation indicates a name with no registered activation.
var ErrUnknownActivation = errors.New("activations: unknown activation")

// Activation is an activation function whose derivative is evaluated from
// the activation output y = f(x) rather than from the pre-activation input.
// Backpropagation only ever sees layer outputs, so every implementation must
// be expressible this way.
type Activation interface {
	// Activate computes f(x).
	Activate(x float64) float64

	// DerivativeFromOutput computes f'(x) given y = f(x).
	DerivativeFromOutput(y float64) float64

	// Name identifies the activation in the persistence format.
	Name() string
}

// Sigmoid is the logistic activation, the network default.
type Sigmoid struct{}

// Activate computes 1 / (1 + exp(-x)).
func (Sigmoid) Activate(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// DerivativeFromOutput computes y * (1 - y).
func (Sigmoid) DerivativeFromOutput(y float64) float64 {
	return y * (1 - y)
}

func (Sigmoid) Name() string { return "sigmoid" }

// Tanh activation.
type Tanh struct{}

// Activate computes tanh(x).
func (Tanh) Activate(x float64) float64 {
	return math.Tanh(x)
}

// DerivativeFromOutput computes 1 - y^2.
func (Tanh) DerivativeFromOutput(y float64) float64 {
	return 1 - y*y
}

func (Tanh) Name() string { return "tanh" }

// ReLU activation. The output determines the derivative here too: y > 0
// exactly when x > 0.
type ReLU struct{}

// Activate computes max(0, x).
func (ReLU) Activate(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

// DerivativeFromOutput returns 1 if y > 0, else 0.
func (ReLU) DerivativeFromOutput(y float64) float64 {
	if y > 0 {
		return 1
	}
	return 0
}

func (ReLU) Name() string { return "relu" }

// Linear is the identity activation.
type Linear struct{}

// Activate returns x unchanged.
func (Linear) Activate(x float64) float64 {
	return x
}

// DerivativeFromOutput returns 1.
func (Linear) DerivativeFromOutput(y float64) float64 {
	return 1
}

func (Linear) Name() string { return "linear" }

// ByName returns the activation registered under name. Used when parsing the
// persistence format.
func ByName(name string) (Activation, error) {
	switch name {
	case "sigmoid":
		return Sigmoid{}, nil
	case "tanh":
		return Tanh{}, nil
	case "relu":
		return ReLU{}, nil
	case "linear":
		return Linear{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownActivation, name)
}
