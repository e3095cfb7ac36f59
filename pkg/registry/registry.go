// Package registry holds the operation table: descriptors paired with
// bodies, keyed by operation name. The table is populated once during
// setup and frozen before evaluation starts.
package registry

import (
	"sort"
	"sync"

	"github.com/atomgraph/webalgebra/pkg/algebra"
)

// Operation pairs a descriptor with its body.
type Operation struct {
	Descriptor algebra.Descriptor
	Func       algebra.OperationFunc
}

// Registry maps operation names to operations. Registration is write-once:
// a second registration under the same name is a hard error, and Freeze
// rejects any registration afterwards.
type Registry struct {
	mu     sync.RWMutex
	ops    map[string]Operation
	frozen bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{ops: make(map[string]Operation)}
}

// Register adds an operation under its descriptor name.
func (r *Registry) Register(desc algebra.Descriptor, fn algebra.OperationFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return &algebra.DuplicateOperationError{Name: desc.Name}
	}
	if _, exists := r.ops[desc.Name]; exists {
		return &algebra.DuplicateOperationError{Name: desc.Name}
	}
	r.ops[desc.Name] = Operation{Descriptor: desc, Func: fn}
	return nil
}

// MustRegister is Register for setup code where a collision is a
// programming error.
func (r *Registry) MustRegister(desc algebra.Descriptor, fn algebra.OperationFunc) {
	if err := r.Register(desc, fn); err != nil {
		panic(err)
	}
}

// Freeze closes the registry to further registrations.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Lookup resolves an operation by name.
func (r *Registry) Lookup(name string) (Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.ops[name]
	if !ok {
		return Operation{}, &algebra.UnknownOperationError{Name: name}
	}
	return op, nil
}

// List returns the registered descriptors sorted by name.
func (r *Registry) List() []algebra.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]algebra.Descriptor, 0, len(r.ops))
	for _, op := range r.ops {
		out = append(out, op.Descriptor)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of registered operations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ops)
}
