// Package tensor defines the backend contract autodiff primitives are
// written against (see tape, ops). The default pure-Go implementation
// of it lives in tensor/dense. Any type satisfying Value is an
// acceptable backend; tensor/gorgoniaback provides a second one.
package tensor


// DataElementType constrains the element types a backend is allowed
// to store. tapegrad only ever asks for float32 through the Value
// contract, but backends are free to keep a wider internal
// representation. Both backends in this module (tensor/dense and
// tensor/gorgoniaback) store float32.
type DataElementType interface {
	~float32 | ~float64
}

// Value is the minimal numeric array contract the autodiff core
// requires from a backend. Implementations are value-semantic at the
// API boundary: Clone is a deep copy, and every binary/unary operation
// either mutates the receiver in place (when documented as such) or
// allocates and returns a new Value - it never aliases an operand it
// did not receive as a destination.
//
// Precondition violations (shape mismatch, wrong rank, out-of-bounds
// index) are fatal: implementations panic rather than returning an
// error. tensor/dense panics with a typed error from this package;
// tensor/gorgoniaback panics with the wrapped error that
// gorgonia.org/tensor reports.
type Value interface {
	// Shape returns a copy of the value's shape.
	Shape() Shape
	// Rank returns len(Shape()).
	Rank() int
	// Size returns the total element count.
	Size() int
	// IsEmpty reports whether this is the sentinel empty value (used
	// only to mark an uninitialized gradient accumulator slot).
	IsEmpty() bool
	// Sum returns the sum of every element.
	Sum() float32

	// At returns the element at the given multi-dimensional
	// coordinate. len(coords) must equal Rank().
	At(coords ...int) float32
	// SetAt sets the element at the given coordinate.
	SetAt(v float32, coords ...int)

	// Clone returns a deep copy.
	Clone() Value

	// Reshape changes the shape in place; the product of dimensions
	// must be unchanged. Returns the receiver.
	Reshape(shape Shape) Value
	// Transpose swaps axes 0 and 1 in place. Requires Rank() >= 2.
	// Returns the receiver.
	Transpose() Value

	// Add, Sub, Mul are equal-shape elementwise binary operations.
	// They mutate the receiver in place and return it.
	Add(other Value) Value
	Sub(other Value) Value
	Mul(other Value) Value

	// AddScalar, SubScalar, MulScalar broadcast a scalar over every
	// element, in place, returning the receiver.
	AddScalar(c float32) Value
	SubScalar(c float32) Value
	MulScalar(c float32) Value

	// FillWith sets every element to c in place, returning the receiver.
	FillWith(c float32) Value
	// MapInPlace applies f to every element in place, returning the
	// receiver.
	MapInPlace(f func(float32) float32) Value

	// MatMul2D multiplies two rank-2 values: lhs.Shape()[1] must equal
	// rhs.Shape()[0]. Returns a new Value of shape
	// [lhs.Shape()[0], rhs.Shape()[1]].
	MatMul2D(rhs Value) Value
}

// RNG is the source of randomness the Xavier initializers and
// Uniform construction need. No seeding policy is prescribed here;
// callers supply an already-seeded source.
type RNG interface {
	Float32() float32
	NormFloat64() float64
}

// randSource is the subset of *rand.Rand (or *rand.Rand-compatible
// test doubles) NewRand requires.
type randSource interface {
	Float64() float64
	NormFloat64() float64
}

// stdRNG adapts a randSource to RNG.
type stdRNG struct {
	src randSource
}

// NewRand adapts a *rand.Rand (or anything exposing the same two
// methods) to the RNG interface the Xavier initializers expect. No
// seeding policy is prescribed here; callers supply an
// already-seeded source.
func NewRand(src randSource) RNG {
	return stdRNG{src: src}
}

func (r stdRNG) Float32() float32 {
	return float32(r.src.Float64())
}

func (r stdRNG) NormFloat64() float64 {
	return r.src.NormFloat64()
}
