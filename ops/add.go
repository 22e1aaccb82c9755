// Package ops is tapegrad's primitive operation library. Every
// function here reads one or more tracked handles, computes a forward
// value through the tensor.Value backend, and pushes an operation
// record carrying the local backward rule for each operand.
package ops

import (
	"github.com/itohio/tapegrad/tape"
	"github.com/itohio/tapegrad/tensor"
)

// Add returns a+b elementwise. a and b must share a shape and a tape.
//
// d(a+b)/da = 1, d(a+b)/db = 1: both operands simply receive the
// incoming gradient unchanged.
func Add(a, b tape.Handle) tape.Handle {
	tape.RequireSameTape("ops.Add", a, b)
	requireSameShape("ops.Add", a, b)

	out := a.Value().Clone().Add(b.Value())

	pass := func(incoming, acc tensor.Value) { acc.Add(incoming) }
	return a.Tape().Push("add", []tape.Blueprint{
		{OperandSlot: a.Slot(), GradShape: a.Shape(), GradFn: pass},
		{OperandSlot: b.Slot(), GradShape: b.Shape(), GradFn: pass},
	}, out)
}
