// Package tape implements the recording structure, handle, and
// backward engine of tapegrad's reverse-mode autodiff core. It is
// generic over any tensor.Value backend.
package tape

import (
	"sync"

	"github.com/itohio/tapegrad/internal/tlog"
	"github.com/itohio/tapegrad/tensor"
	"github.com/itohio/tapegrad/tensor/dense"
)

// logGrowthThreshold is the tape length past which Push starts
// emitting a debug log on every power-of-two crossing - a cheap
// signal that a computation graph is growing unboundedly inside a
// loop that forgot to start a fresh tape each iteration.
const logGrowthThreshold = 1024

// Tape is a process-local, single-owner, append-only recording of
// operation records. Slot indices are monotonically increasing, never
// reused, and serve as identity keys for handles.
//
// Interior mutability (the mutex) lets many handles hold a
// non-owning reference to the same Tape while primitives append new
// records during forward execution. Concurrent use from multiple
// goroutines is not a supported pattern, but the mutex turns such
// misuse into a safe, serialized operation rather than a data race.
type Tape struct {
	mu      sync.Mutex
	records []record
}

// New returns an empty tape.
func New() *Tape {
	return &Tape{}
}

// Len returns the number of records on the tape.
func (t *Tape) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.records)
}

// push appends a record and returns its slot index. Amortised O(1).
func (t *Tape) push(name string, blueprints []Blueprint) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	slot := len(t.records)
	t.records = append(t.records, record{name: name, blueprints: blueprints})
	if n := len(t.records); n >= logGrowthThreshold && n&(n-1) == 0 {
		tlog.Log.Debug().Int("slots", n).Msg("tape: record count crossed a power-of-two threshold")
	}
	return slot
}

// recordAt returns the record at slot i. For use by the backward
// engine only.
func (t *Tape) recordAt(i int) record {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.records[i]
}

// Push appends an operation record with the given operand blueprints
// and returns a Handle wrapping value at the new slot. ops
// implementations call this once per primitive; user code normally
// reaches it only indirectly through HandleFromSlice/HandleFromValue.
func (t *Tape) Push(name string, blueprints []Blueprint, value tensor.Value) Handle {
	slot := t.push(name, blueprints)
	return Handle{tape: t, slot: slot, value: value}
}

// HandleFromSlice wraps data (used directly, not copied) as a leaf
// handle - a tracked value with no operand blueprints.
func (t *Tape) HandleFromSlice(shape tensor.Shape, data []float32) Handle {
	return t.Push("leaf", nil, dense.FromSlice(shape, data))
}

// HandleFromValue wraps an existing backend value as a leaf handle.
func (t *Tape) HandleFromValue(v tensor.Value) Handle {
	return t.Push("leaf", nil, v)
}
