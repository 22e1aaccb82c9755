package ops

import (
	"github.com/itohio/tapegrad/tape"
	"github.com/itohio/tapegrad/tensor"
	"github.com/itohio/tapegrad/tensor/dense"
)

// Sum reduces a to a rank-1, size-1 scalar holding the sum of every
// element.
//
// d(sum(x))/dx is 1 at every coordinate, so the backward rule
// broadcasts the incoming scalar gradient back across x's full shape.
func Sum(a tape.Handle) tape.Handle {
	total := a.Value().Sum()
	out := dense.FromSlice(tensor.NewShape(1), []float32{total})

	aShape := a.Shape()
	return a.Tape().Push("sum", []tape.Blueprint{
		{OperandSlot: a.Slot(), GradShape: aShape, GradFn: func(incoming, acc tensor.Value) {
			acc.Add(dense.New(aShape).FillWith(incoming.At(0)))
		}},
	}, out)
}
