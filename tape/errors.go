package tape

import (
	"fmt"

	"github.com/itohio/tapegrad/tensor"
)

// TapeMismatchError reports that two handles passed to the same
// primitive reference different tapes.
type TapeMismatchError struct {
	Op string
}

func (e *TapeMismatchError) Error() string {
	return fmt.Sprintf("tape: %s: operand handles reference different tapes", e.Op)
}

// NotInGraphError reports that GradQuery.Wrt was asked for a handle
// that never contributed to the backward pass's seeded output.
type NotInGraphError struct {
	Slot int
}

func (e *NotInGraphError) Error() string {
	return fmt.Sprintf("tape: slot %d did not participate in the computation of the queried output", e.Slot)
}

// SeedRequiredError reports that Grad was called on a non-scalar
// handle without an explicit seed.
type SeedRequiredError struct {
	Shape tensor.Shape
}

func (e *SeedRequiredError) Error() string {
	return fmt.Sprintf("tape: Grad: output shape %v is not scalar; call GradWithSeed", e.Shape)
}
