package nn

import (
	"github.com/pkg/errors"

	"github.com/itohio/tapegrad/ops"
	"github.com/itohio/tapegrad/tape"
	"github.com/itohio/tapegrad/tensor"
	"github.com/itohio/tapegrad/tensor/dense"
)

// Option configures a LinearLayer at construction time.
type Option func(*LinearLayer)

// WithBias enables an additive bias term; off by default.
func WithBias(enabled bool) Option {
	return func(l *LinearLayer) { l.bias = enabled }
}

// LinearLayer is a single affine transform, y = x @ W (+ b), over a
// single-example input of shape [1, inF]. Its weight (and bias, if
// enabled) are created lazily in a shared Store the first time
// Forward runs and reused by id on every later call, including calls
// against a different Tape.
type LinearLayer struct {
	id        string
	inF, outF int
	bias      bool
	store     *Store
	rng       tensor.RNG

	w, b        tape.Handle
	initialized bool
}

// NewLinearLayer returns a layer identified by id, mapping inF
// features to outF features. id namespaces this layer's parameters
// within store so multiple layers can share one Store without
// colliding.
func NewLinearLayer(id string, inF, outF int, store *Store, rng tensor.RNG, opts ...Option) *LinearLayer {
	l := &LinearLayer{id: id, inF: inF, outF: outF, store: store, rng: rng}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Forward runs the affine transform on input, shape [1, inF].
func (l *LinearLayer) Forward(tp *tape.Tape, input tape.Handle) tape.Handle {
	if input.Shape().Rank() != 2 || input.Shape()[0] != 1 || input.Shape()[1] != l.inF {
		panic(errors.Errorf("nn: LinearLayer %q expects input shape [1 %d], got %v", l.id, l.inF, input.Shape()))
	}

	wVal := l.store.GetOrInit(l.id+".weight", func() tensor.Value {
		return dense.XavierUniform(tensor.NewShape(l.inF, l.outF), l.inF, l.outF, l.rng)
	})
	l.w = tp.HandleFromValue(wVal)
	out := ops.MatMul(input, l.w)

	if l.bias {
		bVal := l.store.GetOrInit(l.id+".bias", func() tensor.Value {
			return dense.New(tensor.NewShape(1, l.outF))
		})
		l.b = tp.HandleFromValue(bVal)
		out = ops.Add(out, l.b)
	}

	l.initialized = true
	return out
}

// UninitializedParameterError reports an Optimize call before Forward
// has ever run on the layer.
type UninitializedParameterError struct {
	ID string
}

func (e *UninitializedParameterError) Error() string {
	return "nn: layer " + e.ID + " has no gradient to apply - call Forward first"
}

// Optimize applies one plain SGD step to this layer's parameters,
// reading gradients from gq and writing the updated values back into
// the Store.
func (l *LinearLayer) Optimize(gq tape.GradQuery, lr float32) {
	if !l.initialized {
		panic(&UninitializedParameterError{ID: l.id})
	}

	wGrad := gq.Wrt(l.w)
	newW := l.w.Value().Clone().Sub(wGrad.MulScalar(lr))
	l.store.Insert(l.id+".weight", newW)

	if l.bias {
		bGrad := gq.Wrt(l.b)
		newB := l.b.Value().Clone().Sub(bGrad.MulScalar(lr))
		l.store.Insert(l.id+".bias", newB)
	}
}
