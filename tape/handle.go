package tape

import (
	"github.com/pkg/errors"

	"github.com/itohio/tapegrad/tensor"
)

// Handle is the user-facing tracked value: a non-owning reference to
// the tape it was recorded on, the slot identifying it there, and the
// forward value it owns. A Handle must not outlive its Tape; nothing
// in this package enforces that at compile time (Go has no borrow
// checker), so primitives instead check tape identity at every
// operation and panic on mismatch.
type Handle struct {
	tape  *Tape
	slot  int
	value tensor.Value
}

// Tape returns the handle's owning tape.
func (h Handle) Tape() *Tape { return h.tape }

// Slot returns the handle's tape slot index.
func (h Handle) Slot() int { return h.slot }

// Value returns the handle's forward value.
func (h Handle) Value() tensor.Value { return h.value }

// Shape returns the forward value's shape.
func (h Handle) Shape() tensor.Shape { return h.value.Shape() }

// RequireSameTape panics with a TapeMismatchError, naming op, unless
// every handle references the same tape as the first. Every
// two-operand primitive in package ops (Add, Mul, MatMul) calls this
// before touching its operands.
func RequireSameTape(op string, handles ...Handle) {
	if len(handles) == 0 {
		return
	}
	want := handles[0].tape
	for _, h := range handles[1:] {
		if h.tape != want {
			panic(errors.Wrap(&TapeMismatchError{Op: op}, "handles must share a tape"))
		}
	}
}
