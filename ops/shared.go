package ops

import (
	"github.com/pkg/errors"

	"github.com/itohio/tapegrad/tape"
	"github.com/itohio/tapegrad/tensor"
)

// requireSameShape panics with a ShapeMismatchError naming op unless a
// and b have identical shapes.
func requireSameShape(op string, a, b tape.Handle) {
	if !a.Shape().Equal(b.Shape()) {
		panic(errors.Wrap(&tensor.ShapeMismatchError{Op: op, Want: a.Shape(), Got: b.Shape()}, "operand shapes must match"))
	}
}
