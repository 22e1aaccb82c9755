// Package nn provides a small example collaborator for tapegrad: a
// named parameter table and a single affine layer built on it, to
// show the tape and ops packages composed into something trainable.
package nn

import (
	"sync"

	"github.com/itohio/tapegrad/tensor"
)

// Store is a concurrency-safe table of named parameter tensors,
// created lazily the first time a layer asks for one.
type Store struct {
	mu     sync.Mutex
	params map[string]tensor.Value
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{params: make(map[string]tensor.Value)}
}

// Get returns the named parameter and whether it exists.
func (s *Store) Get(name string) (tensor.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.params[name]
	return v, ok
}

// Insert stores v under name, replacing whatever was there - the
// operation an optimizer step uses to write back an updated
// parameter.
func (s *Store) Insert(name string, v tensor.Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params[name] = v
}

// GetOrInit returns the named parameter if present, otherwise builds
// one with init, stores it, and returns it. init runs only when name
// is absent; a value later written with Insert replaces the stored
// one.
func (s *Store) GetOrInit(name string, init func() tensor.Value) tensor.Value {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.params[name]; ok {
		return v
	}
	v := init()
	s.params[name] = v
	return v
}
