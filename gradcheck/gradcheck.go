// Package gradcheck implements a finite-difference gradient test
// harness: the correctness contract every primitive in package ops
// must satisfy.
package gradcheck

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/itohio/tapegrad/tape"
	"github.com/itohio/tapegrad/tensor"
)

// Delta is the perturbation size the harness uses.
const Delta = 0.01

// Tolerance is the maximum allowed deviation between the analytic and
// finite-difference estimate.
const Tolerance = 1e-3

// Check verifies that build's analytic gradient (via tape.Grad) agrees
// with a finite-difference estimate at every coordinate of shape.
// Check wraps a copy of data as a leaf handle on a fresh tape and
// passes the tape and that handle to build, which must run the handle
// through a computation with a scalar output and return that output
// handle. build is called once more per coordinate, on a new tape.
//
// Check calls t.Errorf (not Fatalf) on a mismatched coordinate so a
// single bad entry does not hide failures at other coordinates.
func Check(t *testing.T, shape tensor.Shape, data []float32, build func(tp *tape.Tape, x tape.Handle) tape.Handle) {
	t.Helper()

	tp := tape.New()
	x := tp.HandleFromSlice(shape, append([]float32(nil), data...))
	y := build(tp, x)
	if y.Value().Size() != 1 {
		t.Fatalf("gradcheck: build must produce a scalar output, got shape %v", y.Shape())
	}

	analytic := tape.Grad(y).Wrt(x)
	base := y.Value().At(0)
	strides := shape.Strides()

	for coords := range shape.Iterator() {
		idx := 0
		for i, c := range coords {
			idx += c * strides[i]
		}

		bumped := append([]float32(nil), data...)
		bumped[idx] += Delta

		tp2 := tape.New()
		x2 := tp2.HandleFromSlice(shape, bumped)
		y2 := build(tp2, x2)
		bumpedVal := y2.Value().At(0)

		expected := base + Delta*analytic.At(coords...)
		if diff := math32.Abs(bumpedVal - expected); diff >= Tolerance {
			t.Errorf("gradcheck: coord %v: f(x+d)=%v, want ~%v (analytic grad %v), diff %v",
				coords, bumpedVal, expected, analytic.At(coords...), diff)
		}
	}
}
