// Package layer provides the dense layer: one affine transform followed by
// an activation, plus the local gradient computation backpropagation needs.
package layer

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/AndresCdo/neuralgo/internal/activations"
	"github.com/AndresCdo/neuralgo/internal/linalg"
	"github.com/AndresCdo/neuralgo/internal/opt"
)

// Gradients holds one layer's parameter gradients as produced by Backward.
type Gradients struct {
	Weights linalg.Matrix // shape: out x in, same as the weight matrix
	Biases  linalg.Vector // length: out
}

// Dense is a fully connected layer computing activation(W·x + b).
// The weight matrix has one row per output and one column per input; the
// bias length equals the output width. Backward stores the most recent
// gradients on the layer; UpdateWeights/UpdateBiases consume them.
type Dense struct {
	weights linalg.Matrix
	biases  linalg.Vector
	act     activations.Activation

	gradW linalg.Matrix
	gradB linalg.Vector
}

// NewDense creates a dense layer with Xavier-initialized weights and small
// random biases.
func NewDense(in, out int, act activations.Activation) *Dense {
	w := linalg.NewMatrix(out, in)
	scale := math.Sqrt(2.0 / (float64(in) + float64(out)))
	raw := w.RawData()
	for i := range raw {
		raw[i] = rand.Float64()*2*scale - scale
	}
	b := linalg.Zeros(out)
	braw := b.RawData()
	for i := range braw {
		braw[i] = rand.Float64()*0.2 - 0.1
	}
	return &Dense{
		weights: w,
		biases:  b,
		act:     act,
		gradW:   linalg.NewMatrix(out, in),
		gradB:   linalg.Zeros(out),
	}
}

// NewDenseFrom creates a dense layer from existing parameters. Used when
// reconstructing a network from its persisted form.
func NewDenseFrom(weights linalg.Matrix, biases linalg.Vector, act activations.Activation) (*Dense, error) {
	if weights.Rows() != biases.Len() {
		return nil, fmt.Errorf("%w: %d weight rows vs %d biases",
			linalg.ErrShapeMismatch, weights.Rows(), biases.Len())
	}
	return &Dense{
		weights: weights.Clone(),
		biases:  biases.Clone(),
		act:     act,
		gradW:   linalg.NewMatrix(weights.Rows(), weights.Cols()),
		gradB:   linalg.Zeros(biases.Len()),
	}, nil
}

// InSize returns the input width the layer accepts.
func (d *Dense) InSize() int {
	return d.weights.Cols()
}

// OutSize returns the output width the layer produces.
func (d *Dense) OutSize() int {
	return d.weights.Rows()
}

// Activation returns the layer's activation function.
func (d *Dense) Activation() activations.Activation {
	return d.act
}

// Weights returns a copy of the weight matrix.
func (d *Dense) Weights() linalg.Matrix {
	return d.weights.Clone()
}

// Biases returns a copy of the bias vector.
func (d *Dense) Biases() linalg.Vector {
	return d.biases.Clone()
}

// SetWeight sets the weight connecting input col to output row.
func (d *Dense) SetWeight(row, col int, val float64) error {
	return d.weights.Set(row, col, val)
}

// SetBias sets the bias of output idx.
func (d *Dense) SetBias(idx int, val float64) error {
	return d.biases.Set(idx, val)
}

// Forward computes activation(W·x + b).
func (d *Dense) Forward(x linalg.Vector) (linalg.Vector, error) {
	if x.Len() != d.InSize() {
		return linalg.Vector{}, fmt.Errorf("%w: layer expects input of length %d, got %d",
			linalg.ErrShapeMismatch, d.InSize(), x.Len())
	}
	z, err := d.weights.MulVec(x)
	if err != nil {
		return linalg.Vector{}, err
	}
	z, err = z.Add(d.biases)
	if err != nil {
		return linalg.Vector{}, err
	}
	out := z.RawData()
	for i, v := range out {
		out[i] = d.act.Activate(v)
	}
	return z, nil
}

// Backward runs one backpropagation step through the layer.
//
// input and output are the vectors seen by the matching Forward call;
// errSignal is dL/dy arriving from downstream (for the output layer, the
// prediction error itself). The local delta is errSignal ⊙ f'(output), the
// weight gradient is delta ⊗ input, and the bias gradient is the delta. The
// returned vector is Wᵗ·delta, the error signal for the upstream layer.
// Gradients are stored on the layer until the next update or Backward call.
func (d *Dense) Backward(input, output, errSignal linalg.Vector) (linalg.Vector, error) {
	if input.Len() != d.InSize() {
		return linalg.Vector{}, fmt.Errorf("%w: backward input length %d, layer takes %d",
			linalg.ErrShapeMismatch, input.Len(), d.InSize())
	}
	if output.Len() != d.OutSize() || errSignal.Len() != d.OutSize() {
		return linalg.Vector{}, fmt.Errorf("%w: backward output/error length %d/%d, layer yields %d",
			linalg.ErrShapeMismatch, output.Len(), errSignal.Len(), d.OutSize())
	}

	deriv := output.Clone()
	draw := deriv.RawData()
	for i, y := range output.RawData() {
		draw[i] = d.act.DerivativeFromOutput(y)
	}
	delta, err := errSignal.MulElem(deriv)
	if err != nil {
		return linalg.Vector{}, err
	}

	d.gradW = linalg.Outer(delta, input)
	d.gradB = delta.Clone()

	return d.weights.TransMulVec(delta)
}

// Gradients returns a copy of the gradients stored by the last Backward.
func (d *Dense) Gradients() Gradients {
	return Gradients{Weights: d.gradW.Clone(), Biases: d.gradB.Clone()}
}

// ApplyGradients performs one descent step with the given gradients. The
// in-place parameter mutation is the method's sole side effect.
func (d *Dense) ApplyGradients(g Gradients, learningRate float64) error {
	if g.Weights.Rows() != d.OutSize() || g.Weights.Cols() != d.InSize() {
		return fmt.Errorf("%w: gradient shape %dx%d, weights %dx%d", linalg.ErrShapeMismatch,
			g.Weights.Rows(), g.Weights.Cols(), d.OutSize(), d.InSize())
	}
	if g.Biases.Len() != d.OutSize() {
		return fmt.Errorf("%w: bias gradient length %d, biases %d",
			linalg.ErrShapeMismatch, g.Biases.Len(), d.OutSize())
	}
	sgd := opt.SGD{LearningRate: learningRate}
	sgd.StepInPlace(d.weights.RawData(), g.Weights.RawData())
	sgd.StepInPlace(d.biases.RawData(), g.Biases.RawData())
	return nil
}

// UpdateWeights applies the stored weight gradient in place.
func (d *Dense) UpdateWeights(learningRate float64) {
	opt.SGD{LearningRate: learningRate}.StepInPlace(d.weights.RawData(), d.gradW.RawData())
}

// UpdateBiases applies the stored bias gradient in place.
func (d *Dense) UpdateBiases(learningRate float64) {
	opt.SGD{LearningRate: learningRate}.StepInPlace(d.biases.RawData(), d.gradB.RawData())
}
