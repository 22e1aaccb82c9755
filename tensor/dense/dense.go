// Package dense is the default tensor.Value backend: a pure-Go,
// row-major, single-precision array, stripped of the multi-dtype and
// strided-view machinery tapegrad has no use for - every Value here
// is contiguous float32 storage.
package dense

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/itohio/tapegrad/tensor"
)

// Value is a contiguous, row-major float32 array.
type Value struct {
	shape tensor.Shape
	data  []float32
}

var _ tensor.Value = (*Value)(nil)

// New allocates a zero-filled Value of the given shape.
func New(shape tensor.Shape) *Value {
	return &Value{shape: shape.Clone(), data: make([]float32, shape.Size())}
}

// NewAs allocates a zero-filled Value with the same shape as v.
func NewAs(v tensor.Value) *Value {
	return New(v.Shape())
}

// Empty returns the sentinel empty Value: rank 0, no data. It is
// never returned by a primitive op; it exists only to seed an
// uninitialized gradient accumulator slot.
func Empty() *Value {
	return &Value{}
}

// ZerosLike returns a new zero-filled Value with v's shape.
func ZerosLike(v tensor.Value) *Value {
	return New(v.Shape())
}

// OnesLike returns a new Value of v's shape filled with 1.
func OnesLike(v tensor.Value) *Value {
	return New(v.Shape()).FillWith(1)
}

// FromSlice wraps data (used directly, not copied) as a Value of the
// given shape. Panics if data is shorter than the shape requires.
func FromSlice(shape tensor.Shape, data []float32) *Value {
	size := shape.Size()
	if len(data) < size {
		panic(errors.Wrap(&tensor.ShapeMismatchError{Op: "dense.FromSlice", Want: shape, Got: nil},
			fmt.Sprintf("data length %d < shape size %d", len(data), size)))
	}
	return &Value{shape: shape.Clone(), data: data[:size]}
}

// Uniform returns a new Value of the given shape with every element
// drawn uniformly from [0, 10).
func Uniform(shape tensor.Shape, rng tensor.RNG) *Value {
	v := New(shape)
	for i := range v.data {
		v.data[i] = rng.Float32() * 10
	}
	return v
}

// XavierUniform initializes a new Value of the given shape with
// Xavier/Glorot uniform initialization: limit = sqrt(6/(fanIn+fanOut)).
func XavierUniform(shape tensor.Shape, fanIn, fanOut int, rng tensor.RNG) *Value {
	v := New(shape)
	limit := math32.Sqrt(6.0 / float32(fanIn+fanOut))
	for i := range v.data {
		v.data[i] = (rng.Float32()*2 - 1) * limit
	}
	return v
}

// XavierNormal initializes a new Value of the given shape with
// Xavier/Glorot normal initialization: stddev = sqrt(2/(fanIn+fanOut)).
func XavierNormal(shape tensor.Shape, fanIn, fanOut int, rng tensor.RNG) *Value {
	v := New(shape)
	stddev := math32.Sqrt(2.0 / float32(fanIn+fanOut))
	for i := range v.data {
		v.data[i] = float32(rng.NormFloat64()) * stddev
	}
	return v
}

func (v *Value) Shape() tensor.Shape {
	if v.shape == nil {
		return nil
	}
	return v.shape.Clone()
}

func (v *Value) Rank() int { return v.shape.Rank() }

func (v *Value) Size() int {
	if v.shape == nil {
		return len(v.data)
	}
	return v.shape.Size()
}

func (v *Value) IsEmpty() bool {
	return v.shape == nil && v.data == nil
}

func (v *Value) Sum() float32 {
	var s float32
	for _, x := range v.data {
		s += x
	}
	return s
}

func (v *Value) linearIndex(op string, coords []int) int {
	if len(coords) != len(v.shape) {
		panic(errors.Wrap(&tensor.OutOfBoundsError{Op: op, Coords: coords, Shape: v.shape},
			fmt.Sprintf("expected %d coordinates, got %d", len(v.shape), len(coords))))
	}
	idx := 0
	stride := 1
	for i := len(v.shape) - 1; i >= 0; i-- {
		c := coords[i]
		if c < 0 || c >= v.shape[i] {
			panic(errors.Wrap(&tensor.OutOfBoundsError{Op: op, Coords: coords, Shape: v.shape}, "coordinate out of range"))
		}
		idx += c * stride
		stride *= v.shape[i]
	}
	return idx
}

func (v *Value) At(coords ...int) float32 {
	return v.data[v.linearIndex("dense.At", coords)]
}

func (v *Value) SetAt(val float32, coords ...int) {
	v.data[v.linearIndex("dense.SetAt", coords)] = val
}

func (v *Value) Clone() tensor.Value {
	if v.IsEmpty() {
		return Empty()
	}
	data := make([]float32, len(v.data))
	copy(data, v.data)
	return &Value{shape: v.shape.Clone(), data: data}
}

func (v *Value) Reshape(shape tensor.Shape) tensor.Value {
	if shape.Size() != v.Size() {
		panic(errors.Wrap(&tensor.ShapeMismatchError{Op: "dense.Reshape", Want: shape, Got: v.shape},
			"reshape must preserve element count"))
	}
	v.shape = shape.Clone()
	return v
}

// Transpose swaps axes 0 and 1 in place. Requires rank >= 2; for rank
// > 2 only the first two axes move (the only rank this engine's
// primitives ever transpose).
func (v *Value) Transpose() tensor.Value {
	if v.Rank() < 2 {
		panic(errors.Wrap(&tensor.RankError{Op: "dense.Transpose", Want: "rank>=2", GotRank: v.Rank()}, "cannot transpose"))
	}
	rows, cols := v.shape[0], v.shape[1]
	rest := 1
	for _, d := range v.shape[2:] {
		rest *= d
	}
	out := make([]float32, len(v.data))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			srcBase := (r*cols + c) * rest
			dstBase := (c*rows + r) * rest
			copy(out[dstBase:dstBase+rest], v.data[srcBase:srcBase+rest])
		}
	}
	newShape := v.shape.Clone()
	newShape[0], newShape[1] = cols, rows
	v.shape = newShape
	v.data = out
	return v
}

func (v *Value) requireSameShape(op string, other tensor.Value) {
	if !v.Shape().Equal(other.Shape()) {
		panic(errors.Wrap(&tensor.ShapeMismatchError{Op: op, Want: v.Shape(), Got: other.Shape()}, "operands must share a shape"))
	}
}

func (v *Value) Add(other tensor.Value) tensor.Value {
	v.requireSameShape("dense.Add", other)
	if o, ok := other.(*Value); ok {
		for i := range v.data {
			v.data[i] += o.data[i]
		}
		return v
	}
	for coords := range v.shape.Iterator() {
		v.SetAt(v.At(coords...)+other.At(coords...), coords...)
	}
	return v
}

func (v *Value) Sub(other tensor.Value) tensor.Value {
	v.requireSameShape("dense.Sub", other)
	if o, ok := other.(*Value); ok {
		for i := range v.data {
			v.data[i] -= o.data[i]
		}
		return v
	}
	for coords := range v.shape.Iterator() {
		v.SetAt(v.At(coords...)-other.At(coords...), coords...)
	}
	return v
}

func (v *Value) Mul(other tensor.Value) tensor.Value {
	v.requireSameShape("dense.Mul", other)
	if o, ok := other.(*Value); ok {
		for i := range v.data {
			v.data[i] *= o.data[i]
		}
		return v
	}
	for coords := range v.shape.Iterator() {
		v.SetAt(v.At(coords...)*other.At(coords...), coords...)
	}
	return v
}

func (v *Value) AddScalar(c float32) tensor.Value {
	for i := range v.data {
		v.data[i] += c
	}
	return v
}

func (v *Value) SubScalar(c float32) tensor.Value {
	for i := range v.data {
		v.data[i] -= c
	}
	return v
}

func (v *Value) MulScalar(c float32) tensor.Value {
	for i := range v.data {
		v.data[i] *= c
	}
	return v
}

func (v *Value) FillWith(c float32) tensor.Value {
	for i := range v.data {
		v.data[i] = c
	}
	return v
}

func (v *Value) MapInPlace(f func(float32) float32) tensor.Value {
	for i := range v.data {
		v.data[i] = f(v.data[i])
	}
	return v
}

// MatMul2D multiplies two rank-2 Values. Requires
// lhs.Shape()[1] == rhs.Shape()[0]; result shape is
// [lhs.Shape()[0], rhs.Shape()[1]].
func (v *Value) MatMul2D(rhs tensor.Value) tensor.Value {
	if v.Rank() != 2 {
		panic(errors.Wrap(&tensor.RankError{Op: "dense.MatMul2D", Want: "rank 2", GotRank: v.Rank()}, "lhs"))
	}
	if rhs.Rank() != 2 {
		panic(errors.Wrap(&tensor.RankError{Op: "dense.MatMul2D", Want: "rank 2", GotRank: rhs.Rank()}, "rhs"))
	}
	m, k := v.shape[0], v.shape[1]
	k2, n := rhs.Shape()[0], rhs.Shape()[1]
	if k != k2 {
		panic(errors.Wrap(&tensor.ShapeMismatchError{Op: "dense.MatMul2D", Want: tensor.NewShape(k, n), Got: rhs.Shape()},
			"inner dimensions must agree"))
	}

	out := New(tensor.NewShape(m, n))
	for i := 0; i < m; i++ {
		for p := 0; p < k; p++ {
			lv := v.data[i*k+p]
			if lv == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				out.data[i*n+j] += lv * rhs.At(p, j)
			}
		}
	}
	return out
}

// IsNil reports whether v is nil or the empty sentinel.
func IsNil(v tensor.Value) bool {
	if v == nil {
		return true
	}
	return v.IsEmpty()
}
