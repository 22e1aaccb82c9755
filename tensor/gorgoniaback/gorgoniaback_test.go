package gorgoniaback_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/tapegrad/ops"
	"github.com/itohio/tapegrad/tape"
	"github.com/itohio/tapegrad/tensor"
	"github.com/itohio/tapegrad/tensor/gorgoniaback"
)

func TestValueArithmetic(t *testing.T) {
	a := gorgoniaback.FromSlice(tensor.NewShape(3), []float32{1, 2, 3})
	b := gorgoniaback.FromSlice(tensor.NewShape(3), []float32{4, 5, 6})

	sum := a.Clone().Add(b)
	assert.Equal(t, float32(5), sum.At(0))
	assert.Equal(t, float32(7), sum.At(1))
	assert.Equal(t, float32(9), sum.At(2))

	prod := a.Clone().Mul(b)
	assert.Equal(t, float32(4), prod.At(0))
	assert.Equal(t, float32(18), prod.At(2))

	require.Equal(t, float32(6), a.Sum())
}

func TestMatMul2D(t *testing.T) {
	a := gorgoniaback.FromSlice(tensor.NewShape(2, 2), []float32{1, 2, 3, 4})
	ident := gorgoniaback.FromSlice(tensor.NewShape(2, 2), []float32{1, 0, 0, 1})
	out := a.MatMul2D(ident)
	assert.Equal(t, float32(1), out.At(0, 0))
	assert.Equal(t, float32(4), out.At(1, 1))
}

func TestOpsOverGorgoniaBackend(t *testing.T) {
	tp := tape.New()
	x := tp.HandleFromValue(gorgoniaback.FromSlice(tensor.NewShape(2), []float32{3, 4}))
	y := tp.HandleFromValue(gorgoniaback.FromSlice(tensor.NewShape(2), []float32{5, 6}))

	sum := ops.Sum(ops.Mul(x, y))
	assert.Equal(t, float32(3*5+4*6), sum.Value().At(0))

	gq := tape.Grad(sum)
	gx := gq.Wrt(x)
	assert.Equal(t, float32(5), gx.At(0))
	assert.Equal(t, float32(6), gx.At(1))
}
