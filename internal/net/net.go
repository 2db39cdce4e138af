// Package net provides the network: an ordered stack of dense layers with
// forward inference, backpropagation, gradient-descent updates, training
// loops, and textual persistence.
package net

import (
	"fmt"

	"github.com/AndresCdo/neuralgo/internal/layer"
	"github.com/AndresCdo/neuralgo/internal/linalg"
)

// accuracyThreshold is the componentwise absolute-error bound under which an
// output component counts as correct. This is not classification accuracy.
const accuracyThreshold = 0.5

// Network is an ordered stack of dense layers. It exclusively owns its
// layers; they are mutated only by the network's own update and training
// calls. A Network is not safe for concurrent use.
type Network struct {
	layers []*layer.Dense
}

// New creates a network from an ordered layer list. Adjacent layers must
// chain: the output width of layer i has to equal the input width of layer
// i+1. Mismatches are rejected here rather than surfacing later as a runtime
// forward failure.
func New(layers ...*layer.Dense) (*Network, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("%w: network needs at least one layer", linalg.ErrShapeMismatch)
	}
	for i := 0; i < len(layers)-1; i++ {
		if layers[i].OutSize() != layers[i+1].InSize() {
			return nil, fmt.Errorf("%w: layer %d yields %d outputs, layer %d takes %d inputs",
				linalg.ErrShapeMismatch, i, layers[i].OutSize(), i+1, layers[i+1].InSize())
		}
	}
	return &Network{layers: layers}, nil
}

// Layers returns the network's layer slice.
func (n *Network) Layers() []*layer.Dense {
	return n.layers
}

// InSize returns the input width of the first layer.
func (n *Network) InSize() int {
	return n.layers[0].InSize()
}

// OutSize returns the output width of the last layer.
func (n *Network) OutSize() int {
	return n.layers[len(n.layers)-1].OutSize()
}

// Forward applies every layer in order and returns the final output.
func (n *Network) Forward(input linalg.Vector) (linalg.Vector, error) {
	out := input
	for i, l := range n.layers {
		var err error
		out, err = l.Forward(out)
		if err != nil {
			return linalg.Vector{}, fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return out, nil
}

// Predict is the read-only inference entry point, an alias for Forward.
func (n *Network) Predict(input linalg.Vector) (linalg.Vector, error) {
	return n.Forward(input)
}

// Backward runs one full backpropagation pass and returns every layer's
// gradients, ordered like the layers.
//
// A forward pass first caches each layer's output, with the original input
// standing in as the output of "layer 0". The output error is
// prediction - target, and the error signal then walks the stack in reverse:
// each layer turns it into its local delta, stores its weight and bias
// gradients, and hands back the signal for the layer above.
func (n *Network) Backward(input, target linalg.Vector) ([]layer.Gradients, error) {
	outputs := make([]linalg.Vector, 0, len(n.layers)+1)
	outputs = append(outputs, input)
	for i, l := range n.layers {
		out, err := l.Forward(outputs[i])
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		outputs = append(outputs, out)
	}

	prediction := outputs[len(outputs)-1]
	errSignal, err := prediction.Sub(target)
	if err != nil {
		return nil, fmt.Errorf("target: %w", err)
	}

	grads := make([]layer.Gradients, len(n.layers))
	for i := len(n.layers) - 1; i >= 0; i-- {
		errSignal, err = n.layers[i].Backward(outputs[i], outputs[i+1], errSignal)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		grads[i] = n.layers[i].Gradients()
	}
	return grads, nil
}

// Update applies each layer its own gradient pair, moving parameters against
// the gradient by learningRate. The gradient slice must come from Backward
// on this network.
func (n *Network) Update(grads []layer.Gradients, learningRate float64) error {
	if len(grads) != len(n.layers) {
		return fmt.Errorf("%w: %d gradient pairs for %d layers",
			linalg.ErrShapeMismatch, len(grads), len(n.layers))
	}
	for i, l := range n.layers {
		if err := l.ApplyGradients(grads[i], learningRate); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}
	return nil
}

// UpdateWeights applies every layer's stored weight gradient in place.
func (n *Network) UpdateWeights(learningRate float64) {
	for _, l := range n.layers {
		l.UpdateWeights(learningRate)
	}
}

// UpdateBiases applies every layer's stored bias gradient in place.
func (n *Network) UpdateBiases(learningRate float64) {
	for _, l := range n.layers {
		l.UpdateBiases(learningRate)
	}
}

// Weights returns a copy of every layer's weight matrix.
func (n *Network) Weights() []linalg.Matrix {
	ws := make([]linalg.Matrix, len(n.layers))
	for i, l := range n.layers {
		ws[i] = l.Weights()
	}
	return ws
}

// Biases returns a copy of every layer's bias vector.
func (n *Network) Biases() []linalg.Vector {
	bs := make([]linalg.Vector, len(n.layers))
	for i, l := range n.layers {
		bs[i] = l.Biases()
	}
	return bs
}

// Loss returns the magnitude (Euclidean norm) of the prediction error for
// one example.
func (n *Network) Loss(input, target linalg.Vector) (float64, error) {
	out, err := n.Forward(input)
	if err != nil {
		return 0, err
	}
	diff, err := out.Sub(target)
	if err != nil {
		return 0, fmt.Errorf("target: %w", err)
	}
	return diff.Magnitude(), nil
}

// Accuracy returns the fraction of output components whose absolute error is
// below 0.5. A coarse componentwise measure, not classification accuracy.
func (n *Network) Accuracy(input, target linalg.Vector) (float64, error) {
	out, err := n.Forward(input)
	if err != nil {
		return 0, err
	}
	diff, err := out.Sub(target)
	if err != nil {
		return 0, fmt.Errorf("target: %w", err)
	}
	correct := 0
	for _, e := range diff.RawData() {
		if e < accuracyThreshold && e > -accuracyThreshold {
			correct++
		}
	}
	return float64(correct) / float64(target.Len()), nil
}

// Evaluate returns the mean loss and mean accuracy over a dataset.
func (n *Network) Evaluate(inputs, targets []linalg.Vector) (float64, float64, error) {
	if len(inputs) != len(targets) {
		return 0, 0, fmt.Errorf("%w: %d inputs vs %d targets",
			linalg.ErrShapeMismatch, len(inputs), len(targets))
	}
	var totalLoss, totalAcc float64
	for i := range inputs {
		l, err := n.Loss(inputs[i], targets[i])
		if err != nil {
			return 0, 0, fmt.Errorf("example %d: %w", i, err)
		}
		a, err := n.Accuracy(inputs[i], targets[i])
		if err != nil {
			return 0, 0, fmt.Errorf("example %d: %w", i, err)
		}
		totalLoss += l
		totalAcc += a
	}
	count := float64(len(inputs))
	return totalLoss / count, totalAcc / count, nil
}

// PredictBatch runs inference on every input.
func (n *Network) PredictBatch(inputs []linalg.Vector) ([]linalg.Vector, error) {
	outs := make([]linalg.Vector, len(inputs))
	for i, in := range inputs {
		out, err := n.Predict(in)
		if err != nil {
			return nil, fmt.Errorf("example %d: %w", i, err)
		}
		outs[i] = out
	}
	return outs, nil
}

// LossBatch returns the mean loss over a dataset.
func (n *Network) LossBatch(inputs, targets []linalg.Vector) (float64, error) {
	loss, _, err := n.Evaluate(inputs, targets)
	return loss, err
}

// AccuracyBatch returns the mean accuracy over a dataset.
func (n *Network) AccuracyBatch(inputs, targets []linalg.Vector) (float64, error) {
	_, acc, err := n.Evaluate(inputs, targets)
	return acc, err
}

// EvaluateBatch returns the mean loss and mean accuracy over a dataset.
func (n *Network) EvaluateBatch(inputs, targets []linalg.Vector) (float64, float64, error) {
	return n.Evaluate(inputs, targets)
}
