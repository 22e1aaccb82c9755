// Package gorgoniaback is a second tensor.Value backend, built on
// gorgonia.org/tensor's Dense array instead of a hand-rolled slice.
// It lets the primitives in package ops run against an
// independently-implemented numeric library, not just the default
// dense backend; its tests run Mul and Sum through the tape on it.
package gorgoniaback

import (
	"github.com/pkg/errors"
	gt "gorgonia.org/tensor"

	"github.com/itohio/tapegrad/tensor"
)

// Value wraps a *gorgonia.org/tensor.Dense as a tensor.Value.
type Value struct {
	dense *gt.Dense
}

var _ tensor.Value = (*Value)(nil)

// New allocates a zero-filled Value of the given shape.
func New(shape tensor.Shape) *Value {
	return &Value{dense: gt.New(gt.WithShape(shape...), gt.Of(gt.Float32))}
}

// FromSlice wraps data (used directly, not copied) as a Value of the
// given shape.
func FromSlice(shape tensor.Shape, data []float32) *Value {
	return &Value{dense: gt.New(gt.WithShape(shape...), gt.Of(gt.Float32), gt.WithBacking(data))}
}

// asGorgonia adapts any tensor.Value to *Value, copying elementwise
// through At when the concrete type isn't already ours.
func asGorgonia(v tensor.Value) *Value {
	if gv, ok := v.(*Value); ok {
		return gv
	}
	out := New(v.Shape())
	for coords := range v.Shape().Iterator() {
		out.SetAt(v.At(coords...), coords...)
	}
	return out
}

func (v *Value) Shape() tensor.Shape {
	return tensor.Shape(append([]int(nil), v.dense.Shape()...))
}

func (v *Value) Rank() int { return v.dense.Dims() }

func (v *Value) Size() int { return v.dense.Size() }

func (v *Value) IsEmpty() bool { return v.dense == nil || v.dense.Size() == 0 }

func (v *Value) Sum() float32 {
	result, err := gt.Sum(v.dense)
	if err != nil {
		panic(errors.Wrap(err, "gorgoniaback: sum"))
	}
	scalar, err := result.(*gt.Dense).At()
	if err != nil {
		panic(errors.Wrap(err, "gorgoniaback: sum scalar"))
	}
	return scalar.(float32)
}

func (v *Value) At(coords ...int) float32 {
	val, err := v.dense.At(coords...)
	if err != nil {
		panic(errors.Wrap(err, "gorgoniaback: at"))
	}
	return val.(float32)
}

func (v *Value) SetAt(x float32, coords ...int) {
	if err := v.dense.SetAt(x, coords...); err != nil {
		panic(errors.Wrap(err, "gorgoniaback: setat"))
	}
}

func (v *Value) Clone() tensor.Value {
	return &Value{dense: v.dense.Clone().(*gt.Dense)}
}

func (v *Value) Reshape(shape tensor.Shape) tensor.Value {
	if err := v.dense.Reshape(shape...); err != nil {
		panic(errors.Wrap(err, "gorgoniaback: reshape"))
	}
	return v
}

// Transpose swaps axes 0 and 1 in place, as T does for gorgonia's own
// Dense - called "in-place" deliberately by that package's own docs.
func (v *Value) Transpose() tensor.Value {
	if err := v.dense.T(); err != nil {
		panic(errors.Wrap(err, "gorgoniaback: transpose"))
	}
	return v
}

func (v *Value) Add(other tensor.Value) tensor.Value {
	result, err := gt.Add(v.dense, asGorgonia(other).dense)
	if err != nil {
		panic(errors.Wrap(err, "gorgoniaback: add"))
	}
	v.dense = result.(*gt.Dense)
	return v
}

func (v *Value) Sub(other tensor.Value) tensor.Value {
	result, err := gt.Sub(v.dense, asGorgonia(other).dense)
	if err != nil {
		panic(errors.Wrap(err, "gorgoniaback: sub"))
	}
	v.dense = result.(*gt.Dense)
	return v
}

func (v *Value) Mul(other tensor.Value) tensor.Value {
	result, err := gt.Mul(v.dense, asGorgonia(other).dense)
	if err != nil {
		panic(errors.Wrap(err, "gorgoniaback: mul"))
	}
	v.dense = result.(*gt.Dense)
	return v
}

func (v *Value) AddScalar(c float32) tensor.Value {
	data := v.dense.Data().([]float32)
	for i := range data {
		data[i] += c
	}
	return v
}

func (v *Value) SubScalar(c float32) tensor.Value {
	data := v.dense.Data().([]float32)
	for i := range data {
		data[i] -= c
	}
	return v
}

func (v *Value) MulScalar(c float32) tensor.Value {
	data := v.dense.Data().([]float32)
	for i := range data {
		data[i] *= c
	}
	return v
}

func (v *Value) FillWith(c float32) tensor.Value {
	data := v.dense.Data().([]float32)
	for i := range data {
		data[i] = c
	}
	return v
}

func (v *Value) MapInPlace(f func(float32) float32) tensor.Value {
	data := v.dense.Data().([]float32)
	for i := range data {
		data[i] = f(data[i])
	}
	return v
}

func (v *Value) MatMul2D(rhs tensor.Value) tensor.Value {
	result, err := gt.MatMul(v.dense, asGorgonia(rhs).dense)
	if err != nil {
		panic(errors.Wrap(err, "gorgoniaback: matmul2d"))
	}
	return &Value{dense: result.(*gt.Dense)}
}
