package dense_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/tapegrad/tensor"
	"github.com/itohio/tapegrad/tensor/dense"
)

func TestFromSliceAndAt(t *testing.T) {
	v := dense.FromSlice(tensor.NewShape(2, 2), []float32{1, 2, 3, 4})
	assert.Equal(t, float32(1), v.At(0, 0))
	assert.Equal(t, float32(4), v.At(1, 1))
	assert.Equal(t, 4, v.Size())
	assert.Equal(t, 2, v.Rank())
}

func TestAddSubMul(t *testing.T) {
	a := dense.FromSlice(tensor.NewShape(3), []float32{1, 2, 3})
	b := dense.FromSlice(tensor.NewShape(3), []float32{10, 20, 30})

	sum := a.Clone().(*dense.Value).Add(b)
	assert.Equal(t, float32(11), sum.At(0))
	assert.Equal(t, float32(33), sum.At(2))

	diff := a.Clone().(*dense.Value).Sub(b)
	assert.Equal(t, float32(-9), diff.At(0))

	prod := a.Clone().(*dense.Value).Mul(b)
	assert.Equal(t, float32(10), prod.At(0))
	assert.Equal(t, float32(90), prod.At(2))
}

func TestShapeMismatchPanics(t *testing.T) {
	a := dense.New(tensor.NewShape(2))
	b := dense.New(tensor.NewShape(3))
	assert.Panics(t, func() { a.Add(b) })
}

func TestReshape(t *testing.T) {
	v := dense.FromSlice(tensor.NewShape(4), []float32{1, 2, 3, 4})
	v.Reshape(tensor.NewShape(2, 2))
	assert.Equal(t, float32(3), v.At(1, 0))
}

func TestReshapeBadSizePanics(t *testing.T) {
	v := dense.New(tensor.NewShape(4))
	assert.Panics(t, func() { v.Reshape(tensor.NewShape(3)) })
}

func TestTranspose(t *testing.T) {
	v := dense.FromSlice(tensor.NewShape(2, 3), []float32{1, 2, 3, 4, 5, 6})
	v.Transpose()
	require.Equal(t, tensor.NewShape(3, 2), v.Shape())
	assert.Equal(t, float32(1), v.At(0, 0))
	assert.Equal(t, float32(4), v.At(0, 1))
	assert.Equal(t, float32(2), v.At(1, 0))
	assert.Equal(t, float32(6), v.At(2, 1))
}

func TestMatMul2D(t *testing.T) {
	a := dense.FromSlice(tensor.NewShape(2, 2), []float32{1, 2, 3, 4})
	b := dense.FromSlice(tensor.NewShape(2, 2), []float32{5, 6, 7, 8})
	c := a.MatMul2D(b)
	assert.Equal(t, float32(19), c.At(0, 0))
	assert.Equal(t, float32(22), c.At(0, 1))
	assert.Equal(t, float32(43), c.At(1, 0))
	assert.Equal(t, float32(50), c.At(1, 1))
}

func TestMatMul2DInnerDimMismatchPanics(t *testing.T) {
	a := dense.New(tensor.NewShape(2, 3))
	b := dense.New(tensor.NewShape(2, 2))
	assert.Panics(t, func() { a.MatMul2D(b) })
}

func TestEmptyIsSentinel(t *testing.T) {
	e := dense.Empty()
	assert.True(t, e.IsEmpty())
	assert.True(t, dense.IsNil(e))
	assert.False(t, dense.IsNil(dense.New(tensor.NewShape(1))))
}

func TestXavierUniformBounded(t *testing.T) {
	rng := tensor.NewRand(rand.New(rand.NewSource(1)))
	v := dense.XavierUniform(tensor.NewShape(4, 4), 4, 4, rng)
	limit := float32(0.8660254) // sqrt(6/8)
	for coords := range v.Shape().Iterator() {
		val := v.At(coords...)
		assert.True(t, val >= -limit-1e-3 && val <= limit+1e-3)
	}
}

func TestSum(t *testing.T) {
	v := dense.FromSlice(tensor.NewShape(4), []float32{1, 2, 3, 4})
	assert.Equal(t, float32(10), v.Sum())
}
