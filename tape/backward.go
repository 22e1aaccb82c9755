package tape

import (
	"time"

	"github.com/pkg/errors"

	"github.com/itohio/tapegrad/internal/tlog"
	"github.com/itohio/tapegrad/tensor"
	"github.com/itohio/tapegrad/tensor/dense"
)

// GradQuery holds the per-slot gradient map built by one backward
// pass. It is immutable once returned.
type GradQuery struct {
	tape  *Tape
	grads []tensor.Value
}

// Wrt returns the accumulated gradient for h, cloned. Panics with
// NotInGraphError if h's slot received no gradient - i.e. h did not
// contribute to the output the query was built from.
func (gq GradQuery) Wrt(h Handle) tensor.Value {
	RequireSameTape("GradQuery.Wrt", Handle{tape: gq.tape}, h)
	g := gq.grads[h.slot]
	if dense.IsNil(g) {
		panic(errors.Wrap(&NotInGraphError{Slot: h.slot}, "GradQuery.Wrt"))
	}
	return g.Clone()
}

// Grad runs the backward pass from h, seeding its gradient with ones
// of h's shape. h's value must be a scalar (size 1); for any other
// shape, call GradWithSeed explicitly and supply the seed yourself.
func Grad(h Handle) GradQuery {
	if h.value.Size() != 1 {
		panic(errors.Wrap(&SeedRequiredError{Shape: h.Shape()}, "Grad"))
	}
	seed := dense.New(h.Shape()).FillWith(1)
	return GradWithSeed(h, seed)
}

// GradWithSeed runs the backward pass from h, seeding its gradient
// with the caller-supplied seed. seed's shape must equal h's shape.
//
// The gradient map has one entry per tape slot, every entry starting
// at the empty sentinel; the handle's own slot is seeded, then slots
// are walked in strictly decreasing index order, invoking every
// blueprint of each non-empty slot exactly once. Every operand's slot
// index is strictly less than its record's own slot index by
// construction (an operand must already exist before an op can
// reference it), so this single decreasing pass visits every
// contributing edge exactly once - no slot needs a second visit.
func GradWithSeed(h Handle, seed tensor.Value) GradQuery {
	if !seed.Shape().Equal(h.Shape()) {
		panic(errors.Wrap(&tensor.ShapeMismatchError{Op: "GradWithSeed", Want: h.Shape(), Got: seed.Shape()}, "seed shape"))
	}

	start := time.Now()
	t := h.tape
	n := t.Len()
	grads := make([]tensor.Value, n)
	for i := range grads {
		grads[i] = dense.Empty()
	}
	grads[h.slot] = seed

	for i := h.slot; i >= 0; i-- {
		incoming := grads[i]
		if dense.IsNil(incoming) {
			continue
		}
		rec := t.recordAt(i)
		for _, bp := range rec.blueprints {
			if dense.IsNil(grads[bp.OperandSlot]) {
				grads[bp.OperandSlot] = dense.New(bp.GradShape)
			}
			bp.GradFn(incoming, grads[bp.OperandSlot])
		}
	}

	tlog.Log.Debug().Int("slots", n).Dur("elapsed", time.Since(start)).Msg("tape: backward pass complete")

	return GradQuery{tape: t, grads: grads}
}
