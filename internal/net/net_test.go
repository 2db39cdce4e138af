package net

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/AndresCdo/neuralgo/internal/activations"
	"github.com/AndresCdo/neuralgo/internal/layer"
	"github.com/AndresCdo/neuralgo/internal/linalg"
)

func TestNewValidatesLayerChain(t *testing.T) {
	_, err := New()
	assert.ErrorIs(t, err, linalg.ErrShapeMismatch)

	// 2->3 followed by 4->1 cannot chain.
	_, err = New(
		layer.NewDense(2, 3, activations.Sigmoid{}),
		layer.NewDense(4, 1, activations.Sigmoid{}),
	)
	assert.ErrorIs(t, err, linalg.ErrShapeMismatch)

	n, err := New(
		layer.NewDense(2, 3, activations.Sigmoid{}),
		layer.NewDense(3, 1, activations.Sigmoid{}),
	)
	require.NoError(t, err)
	assert.Equal(t, 2, n.InSize())
	assert.Equal(t, 1, n.OutSize())
	assert.Len(t, n.Layers(), 2)
}

func TestForwardChainsLayers(t *testing.T) {
	// Two linear identity layers pass the input through unchanged.
	w, err := linalg.NewMatrixFrom(2, 2, []float64{1, 0, 0, 1})
	require.NoError(t, err)
	l1, err := layer.NewDenseFrom(w, linalg.Zeros(2), activations.Linear{})
	require.NoError(t, err)
	l2, err := layer.NewDenseFrom(w.Clone(), linalg.Zeros(2), activations.Linear{})
	require.NoError(t, err)
	n, err := New(l1, l2)
	require.NoError(t, err)

	out, err := n.Forward(linalg.NewVector([]float64{3, -4}))
	require.NoError(t, err)
	assert.Equal(t, []float64{3, -4}, out.RawData())

	pred, err := n.Predict(linalg.NewVector([]float64{3, -4}))
	require.NoError(t, err)
	assert.Equal(t, out.RawData(), pred.RawData())

	_, err = n.Forward(linalg.Zeros(5))
	assert.ErrorIs(t, err, linalg.ErrShapeMismatch)
}

func TestLossIsErrorMagnitude(t *testing.T) {
	n := identityNetwork(t, 2)

	// Prediction equals the input, so loss = ‖input - target‖₂.
	loss, err := n.Loss(linalg.NewVector([]float64{3, 4}), linalg.Zeros(2))
	require.NoError(t, err)
	assert.InDelta(t, 5.0, loss, 1e-12)

	loss, err = n.Loss(linalg.NewVector([]float64{1, 1}), linalg.NewVector([]float64{1, 1}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, loss)
}

func TestAccuracyThreshold(t *testing.T) {
	n := identityNetwork(t, 3)

	// Componentwise errors 0, 0.4, 0.6: two of three under the 0.5 bound.
	acc, err := n.Accuracy(
		linalg.NewVector([]float64{1, 1, 1}),
		linalg.NewVector([]float64{1, 1.4, 1.6}),
	)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, acc, 1e-12)
}

func TestEvaluateBatchOfIdenticalPairs(t *testing.T) {
	n := identityNetwork(t, 2)

	// Error (3, 4): loss 5 and accuracy 0 accumulate exactly in floating
	// point, so the batch mean must equal the single-example values.
	input := linalg.NewVector([]float64{3, 4})
	target := linalg.NewVector([]float64{0, 0})
	wantLoss, err := n.Loss(input, target)
	require.NoError(t, err)
	wantAcc, err := n.Accuracy(input, target)
	require.NoError(t, err)

	for _, k := range []int{1, 2, 4, 8} {
		inputs := make([]linalg.Vector, k)
		targets := make([]linalg.Vector, k)
		for i := range inputs {
			inputs[i] = input
			targets[i] = target
		}
		loss, acc, err := n.EvaluateBatch(inputs, targets)
		require.NoError(t, err)
		assert.Equal(t, wantLoss, loss, "k=%d", k)
		assert.Equal(t, wantAcc, acc, "k=%d", k)
	}
}

func TestBatchHelpers(t *testing.T) {
	n := identityNetwork(t, 1)
	inputs := []linalg.Vector{
		linalg.NewVector([]float64{1}),
		linalg.NewVector([]float64{2}),
	}
	targets := []linalg.Vector{
		linalg.NewVector([]float64{1}),
		linalg.NewVector([]float64{3}),
	}

	preds, err := n.PredictBatch(inputs)
	require.NoError(t, err)
	require.Len(t, preds, 2)
	assert.Equal(t, []float64{2}, preds[1].RawData())

	loss, err := n.LossBatch(inputs, targets)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, loss, 1e-12)

	acc, err := n.AccuracyBatch(inputs, targets)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, acc, 1e-12)

	_, _, err = n.Evaluate(inputs, targets[:1])
	assert.ErrorIs(t, err, linalg.ErrShapeMismatch)
}

func TestBackwardReturnsPerLayerGradients(t *testing.T) {
	n, err := New(
		layer.NewDense(2, 3, activations.Sigmoid{}),
		layer.NewDense(3, 1, activations.Sigmoid{}),
	)
	require.NoError(t, err)

	grads, err := n.Backward(
		linalg.NewVector([]float64{0.5, -0.5}),
		linalg.NewVector([]float64{1}),
	)
	require.NoError(t, err)
	require.Len(t, grads, 2)
	assert.Equal(t, 3, grads[0].Weights.Rows())
	assert.Equal(t, 2, grads[0].Weights.Cols())
	assert.Equal(t, 3, grads[0].Biases.Len())
	assert.Equal(t, 1, grads[1].Weights.Rows())
	assert.Equal(t, 3, grads[1].Weights.Cols())
	assert.Equal(t, 1, grads[1].Biases.Len())
}

// TestBackwardMatchesNumericalGradient checks the analytic weight gradient
// of a single-layer scalar-output network against a central finite
// difference of the squared-error objective 0.5·loss², whose derivative is
// exactly the prediction-error signal Backward starts from.
func TestBackwardMatchesNumericalGradient(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 3; trial++ {
		d := layer.NewDense(3, 1, activations.Sigmoid{})
		n, err := New(d)
		require.NoError(t, err)

		input := linalg.NewVector([]float64{
			rng.Float64()*2 - 1, rng.Float64()*2 - 1, rng.Float64()*2 - 1,
		})
		target := linalg.NewVector([]float64{rng.Float64()})

		grads, err := n.Backward(input, target)
		require.NoError(t, err)

		w0 := d.Weights().RawData()
		objective := func(ws []float64) float64 {
			for c, w := range ws {
				require.NoError(t, d.SetWeight(0, c, w))
			}
			loss, err := n.Loss(input, target)
			require.NoError(t, err)
			return 0.5 * loss * loss
		}
		numeric := fd.Gradient(nil, objective, w0, &fd.Settings{Formula: fd.Central})
		objective(w0) // restore the original weights

		analytic := grads[0].Weights.RawData()
		for i := range numeric {
			assert.InDelta(t, numeric[i], analytic[i], 1e-3,
				"trial %d weight %d", trial, i)
		}
	}
}

// identityNetwork builds a single linear layer with identity weights and
// zero biases, so prediction == input.
func identityNetwork(t *testing.T, size int) *Network {
	t.Helper()
	data := make([]float64, size*size)
	for i := 0; i < size; i++ {
		data[i*size+i] = 1
	}
	w, err := linalg.NewMatrixFrom(size, size, data)
	require.NoError(t, err)
	l, err := layer.NewDenseFrom(w, linalg.Zeros(size), activations.Linear{})
	require.NoError(t, err)
	n, err := New(l)
	require.NoError(t, err)
	return n
}
