package ops

import (
	"github.com/pkg/errors"

	"github.com/itohio/tapegrad/tape"
	"github.com/itohio/tapegrad/tensor"
)

// MatMul returns a@b, the standard rank-2 matrix product. a and b
// must be rank 2 and share a tape; a.Shape()[1] must equal
// b.Shape()[0].
//
// dL/dA = g @ Bᵀ, dL/dB = Aᵀ @ g, where g is the incoming gradient on
// the product.
func MatMul(a, b tape.Handle) tape.Handle {
	tape.RequireSameTape("ops.MatMul", a, b)
	if a.Value().Rank() != 2 {
		panic(errors.Wrap(&tensor.RankError{Op: "ops.MatMul", Want: "2", GotRank: a.Value().Rank()}, "left operand"))
	}
	if b.Value().Rank() != 2 {
		panic(errors.Wrap(&tensor.RankError{Op: "ops.MatMul", Want: "2", GotRank: b.Value().Rank()}, "right operand"))
	}
	if a.Shape()[1] != b.Shape()[0] {
		panic(errors.Wrap(&tensor.ShapeMismatchError{Op: "ops.MatMul", Want: a.Shape(), Got: b.Shape()},
			"inner dimensions must agree"))
	}

	aVal := a.Value().Clone()
	bVal := b.Value().Clone()
	out := aVal.Clone().MatMul2D(bVal)

	return a.Tape().Push("matmul", []tape.Blueprint{
		{OperandSlot: a.Slot(), GradShape: a.Shape(), GradFn: func(incoming, acc tensor.Value) {
			bT := bVal.Clone().Transpose()
			acc.Add(incoming.Clone().MatMul2D(bT))
		}},
		{OperandSlot: b.Slot(), GradShape: b.Shape(), GradFn: func(incoming, acc tensor.Value) {
			aT := aVal.Clone().Transpose()
			acc.Add(aT.MatMul2D(incoming))
		}},
	}, out)
}
