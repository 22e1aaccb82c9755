package ops

import (
	"github.com/itohio/tapegrad/tape"
	"github.com/itohio/tapegrad/tensor"
)

// Mul returns a*b elementwise. a and b must share a shape and a tape.
//
// d(a*b)/da = b, d(a*b)/db = a: each operand's contribution is the
// incoming gradient scaled by the *other* operand's forward value, so
// the backward closures capture a clone of each operand made at
// record time.
func Mul(a, b tape.Handle) tape.Handle {
	tape.RequireSameTape("ops.Mul", a, b)
	requireSameShape("ops.Mul", a, b)

	aVal := a.Value().Clone()
	bVal := b.Value().Clone()
	out := aVal.Clone().Mul(bVal)

	return a.Tape().Push("mul", []tape.Blueprint{
		{OperandSlot: a.Slot(), GradShape: a.Shape(), GradFn: func(incoming, acc tensor.Value) {
			acc.Add(incoming.Clone().Mul(bVal))
		}},
		{OperandSlot: b.Slot(), GradShape: b.Shape(), GradFn: func(incoming, acc tensor.Value) {
			acc.Add(incoming.Clone().Mul(aVal))
		}},
	}, out)
}
