package ops

import (
	"github.com/chewxy/math32"

	"github.com/itohio/tapegrad/tape"
	"github.com/itohio/tapegrad/tensor"
)

// LogSoftmax applies log-softmax over all of a's elements (a must be
// rank 1). It uses the standard max-subtraction form for numerical
// stability: y = (x - m) - log(sum(exp(x - m))), m = max(x).
//
// The backward rule exploits exp(y) == softmax(x): dL/dx = g -
// exp(y)*sum(g), where g is the incoming gradient and y the (already
// computed) forward output.
func LogSoftmax(a tape.Handle) tape.Handle {
	x := a.Value()
	n := x.Size()

	maxVal := x.At(0)
	for i := 1; i < n; i++ {
		if v := x.At(i); v > maxVal {
			maxVal = v
		}
	}

	shifted := x.Clone().AddScalar(-maxVal)
	var sumExp float32
	for i := 0; i < n; i++ {
		sumExp += math32.Exp(shifted.At(i))
	}
	logSum := math32.Log(sumExp)

	out := shifted.Clone().AddScalar(-logSum)
	output := out.Clone()

	aShape := a.Shape()
	return a.Tape().Push("logsoftmax", []tape.Blueprint{
		{OperandSlot: a.Slot(), GradShape: aShape, GradFn: func(incoming, acc tensor.Value) {
			sumG := incoming.Sum()
			softmax := output.Clone().MapInPlace(math32.Exp)
			contrib := incoming.Clone().Sub(softmax.MulScalar(sumG))
			acc.Add(contrib)
		}},
	}, out)
}
