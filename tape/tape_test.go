package tape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/tapegrad/tensor"
	"github.com/itohio/tapegrad/tensor/dense"
	"github.com/itohio/tapegrad/tape"
)

func TestLeafHandlesGetMonotonicSlots(t *testing.T) {
	tp := tape.New()
	a := tp.HandleFromSlice(tensor.NewShape(1), []float32{1})
	b := tp.HandleFromSlice(tensor.NewShape(1), []float32{2})
	assert.Equal(t, 0, a.Slot())
	assert.Equal(t, 1, b.Slot())
	assert.Equal(t, 2, tp.Len())
}

func TestPushAppendsOperandRecord(t *testing.T) {
	tp := tape.New()
	a := tp.HandleFromSlice(tensor.NewShape(1), []float32{3})

	touched := false
	out := tp.Push("double", []tape.Blueprint{
		{OperandSlot: a.Slot(), GradShape: a.Shape(), GradFn: func(incoming, acc tensor.Value) {
			touched = true
			acc.Add(incoming)
		}},
	}, dense.FromSlice(tensor.NewShape(1), []float32{6}))

	require.Equal(t, 1, out.Slot())
	gq := tape.Grad(out)
	assert.True(t, touched)
	assert.Equal(t, float32(1), gq.Wrt(a).At(0))
}

func TestRequireSameTapePanicsOnMismatch(t *testing.T) {
	t1 := tape.New()
	t2 := tape.New()
	a := t1.HandleFromSlice(tensor.NewShape(1), []float32{1})
	b := t2.HandleFromSlice(tensor.NewShape(1), []float32{1})
	assert.Panics(t, func() { tape.RequireSameTape("test", a, b) })
}

func TestGradNonScalarRequiresSeed(t *testing.T) {
	tp := tape.New()
	a := tp.HandleFromSlice(tensor.NewShape(2), []float32{1, 2})
	assert.Panics(t, func() { tape.Grad(a) })
}

func TestNotInGraph(t *testing.T) {
	tp := tape.New()
	x := tp.HandleFromSlice(tensor.NewShape(1), []float32{1})
	y := tp.Push("leaf2", nil, dense.FromSlice(tensor.NewShape(1), []float32{2}))
	gq := tape.Grad(y)
	assert.Panics(t, func() { gq.Wrt(x) })
}

func TestDeterminism(t *testing.T) {
	build := func() (tape.GradQuery, tape.Handle) {
		tp := tape.New()
		x := tp.HandleFromSlice(tensor.NewShape(2), []float32{3, 4})
		y := tp.Push("sumsq", []tape.Blueprint{
			{OperandSlot: x.Slot(), GradShape: x.Shape(), GradFn: func(incoming, acc tensor.Value) {
				contrib := x.Value().Clone().MulScalar(2).Mul(broadcastScalar(incoming, x.Shape()))
				acc.Add(contrib)
			}},
		}, dense.FromSlice(tensor.NewShape(1), []float32{25}))
		return tape.Grad(y), x
	}

	gq1, x1 := build()
	gq2, x2 := build()
	g1 := gq1.Wrt(x1)
	g2 := gq2.Wrt(x2)
	for coords := range x1.Shape().Iterator() {
		assert.Equal(t, g1.At(coords...), g2.At(coords...))
	}
}

func broadcastScalar(seed tensor.Value, shape tensor.Shape) tensor.Value {
	out := dense.New(shape)
	s := seed.At(0)
	return out.FillWith(s)
}
