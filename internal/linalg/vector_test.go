package linalg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorFactories(t *testing.T) {
	z := Zeros(4)
	require.Equal(t, 4, z.Len())
	for i := 0; i < z.Len(); i++ {
		v, err := z.At(i)
		require.NoError(t, err)
		assert.Equal(t, 0.0, v)
	}

	o := Ones(3)
	require.Equal(t, 3, o.Len())
	for i := 0; i < o.Len(); i++ {
		v, err := o.At(i)
		require.NoError(t, err)
		assert.Equal(t, 1.0, v)
	}
}

func TestVectorAddSubInverse(t *testing.T) {
	a := NewVector([]float64{1.5, -2.25, 0.75, 100})
	b := NewVector([]float64{0.5, 3.5, -1.25, 0.001})

	sum, err := a.Add(b)
	require.NoError(t, err)
	back, err := sum.Sub(b)
	require.NoError(t, err)

	for i := 0; i < a.Len(); i++ {
		want, _ := a.At(i)
		got, _ := back.At(i)
		assert.InDelta(t, want, got, 1e-12)
	}
}

func TestVectorShapeMismatch(t *testing.T) {
	a := Zeros(3)
	b := Zeros(4)

	_, err := a.Add(b)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = a.Sub(b)
	assert.ErrorIs(t, err, ErrShapeMismatch)
	_, err = a.MulElem(b)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestVectorMulElem(t *testing.T) {
	a := NewVector([]float64{1, 2, 3})
	b := NewVector([]float64{4, 5, 6})

	prod, err := a.MulElem(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 10, 18}, prod.RawData())
}

func TestVectorScale(t *testing.T) {
	a := NewVector([]float64{1, -2, 3})
	scaled := a.Scale(2.5)
	assert.Equal(t, []float64{2.5, -5, 7.5}, scaled.RawData())
	// Receiver untouched.
	assert.Equal(t, []float64{1, -2, 3}, a.RawData())
}

func TestVectorMagnitude(t *testing.T) {
	assert.Equal(t, 0.0, Zeros(5).Magnitude())
	v := NewVector([]float64{3, 4})
	assert.InDelta(t, 5.0, v.Magnitude(), 1e-12)
	assert.InDelta(t, math.Sqrt(3), Ones(3).Magnitude(), 1e-12)
}

func TestVectorIndexOutOfRange(t *testing.T) {
	v := Zeros(2)

	_, err := v.At(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = v.At(2)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.ErrorIs(t, v.Set(5, 1), ErrIndexOutOfRange)

	require.NoError(t, v.Set(1, 7))
	got, err := v.At(1)
	require.NoError(t, err)
	assert.Equal(t, 7.0, got)
}

func TestNewVectorCopies(t *testing.T) {
	src := []float64{1, 2}
	v := NewVector(src)
	src[0] = 99
	got, _ := v.At(0)
	assert.Equal(t, 1.0, got)
}
