package ops

import (
	"github.com/itohio/tapegrad/tape"
	"github.com/itohio/tapegrad/tensor"
)

// LeakyReLUSlope is the gradient ReLU passes through for non-positive
// input, matching the leaky variant rather than a hard zero.
const LeakyReLUSlope = 0.1

// ReLU applies the leaky rectifier elementwise: x for x > 0,
// LeakyReLUSlope*x otherwise. The boundary x == 0 takes the
// non-positive branch, so forward and backward agree at that point.
func ReLU(a tape.Handle) tape.Handle {
	input := a.Value().Clone()
	out := a.Value().Clone().MapInPlace(func(x float32) float32 {
		if x > 0 {
			return x
		}
		return LeakyReLUSlope * x
	})

	aShape := a.Shape()
	return a.Tape().Push("relu", []tape.Blueprint{
		{OperandSlot: a.Slot(), GradShape: aShape, GradFn: func(incoming, acc tensor.Value) {
			mask := input.Clone().MapInPlace(func(x float32) float32 {
				if x > 0 {
					return 1
				}
				return LeakyReLUSlope
			})
			acc.Add(incoming.Clone().Mul(mask))
		}},
	}, out)
}
