package activations

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigmoid(t *testing.T) {
	s := Sigmoid{}
	assert.Equal(t, 0.5, s.Activate(0))
	assert.InDelta(t, 1.0, s.Activate(20), 1e-6)
	assert.InDelta(t, 0.0, s.Activate(-20), 1e-6)

	// f'(0) = 0.25 via the output 0.5.
	assert.InDelta(t, 0.25, s.DerivativeFromOutput(s.Activate(0)), 1e-12)
}

func TestSigmoidDerivativeMatchesFiniteDifference(t *testing.T) {
	s := Sigmoid{}
	const h = 1e-6
	for _, x := range []float64{-2, -0.5, 0, 0.3, 1.7} {
		numeric := (s.Activate(x+h) - s.Activate(x-h)) / (2 * h)
		analytic := s.DerivativeFromOutput(s.Activate(x))
		assert.InDelta(t, numeric, analytic, 1e-6, "x=%v", x)
	}
}

func TestTanh(t *testing.T) {
	a := Tanh{}
	assert.Equal(t, 0.0, a.Activate(0))
	assert.InDelta(t, math.Tanh(1), a.Activate(1), 1e-12)

	y := a.Activate(0.8)
	assert.InDelta(t, 1-y*y, a.DerivativeFromOutput(y), 1e-12)
}

func TestReLU(t *testing.T) {
	r := ReLU{}
	assert.Equal(t, 0.0, r.Activate(-3))
	assert.Equal(t, 0.0, r.Activate(0))
	assert.Equal(t, 2.5, r.Activate(2.5))
	assert.Equal(t, 0.0, r.DerivativeFromOutput(0))
	assert.Equal(t, 1.0, r.DerivativeFromOutput(2.5))
}

func TestLinear(t *testing.T) {
	l := Linear{}
	assert.Equal(t, -1.5, l.Activate(-1.5))
	assert.Equal(t, 1.0, l.DerivativeFromOutput(42))
}

func TestByName(t *testing.T) {
	for _, a := range []Activation{Sigmoid{}, Tanh{}, ReLU{}, Linear{}} {
		got, err := ByName(a.Name())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	_, err := ByName("softplus")
	assert.ErrorIs(t, err, ErrUnknownActivation)
}
