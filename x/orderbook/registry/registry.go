// Package registry implements the thread-safe keyed store that owns every
// authoritative record the order book references by id: orders, accounts,
// and anything else callers choose to track the same way.
package registry

import (
	"fmt"
	"sync"

	"github.com/openalpha/lob-core/pkg/id"
	"github.com/openalpha/lob-core/x/orderbook/types"
)

// Registry is a generic keyed store mapping Id to T, with monotonic id
// generation starting at 1 (0 is reserved as the invalid sentinel). All
// operations are serialized under a single mutex; get/remove/replace are
// each atomic, and compound higher-level operations (see OrderRegistry)
// hold the same lock across their whole read-modify-write sequence so that
// the id handed to a constructor always matches the id under which the
// value is ultimately stored.
type Registry[T any] struct {
	mu     sync.Mutex
	nextID id.Id
	items  map[id.Id]T
}

// New constructs an empty Registry with next() starting at 1.
func New[T any]() *Registry[T] {
	return &Registry[T]{
		nextID: 1,
		items:  make(map[id.Id]T),
	}
}

// Next returns the id the next Create will assign, without consuming it.
func (r *Registry[T]) Next() id.Id {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextID
}

// Create assigns the next id, builds the item via factory (which receives
// the assigned id so it can be baked into the stored value), stores it, and
// returns both. The whole sequence runs under one lock acquisition.
func (r *Registry[T]) Create(factory func(id.Id) T) (id.Id, T) {
	r.mu.Lock()
	defer r.mu.Unlock()

	assigned := r.nextID
	item := factory(assigned)
	r.items[assigned] = item
	r.nextID++
	return assigned, item
}

// Get returns the stored value for id, or ErrNotFound if absent.
func (r *Registry[T]) Get(target id.Id) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.items[target]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: id %s", types.ErrNotFound, target)
	}
	return v, nil
}

// Remove detaches and returns the value stored under id.
func (r *Registry[T]) Remove(target id.Id) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.items[target]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: id %s", types.ErrNotFound, target)
	}
	delete(r.items, target)
	return v, nil
}

// Replace upserts item under id.
func (r *Registry[T]) Replace(target id.Id, item T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[target] = item
}

// Mutate reads the current value, applies fn, and stores the result, all
// under one lock acquisition. Used by compound operations (e.g. SetFilled)
// that must not interleave with a concurrent Replace.
func (r *Registry[T]) Mutate(target id.Id, fn func(T) (T, error)) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.items[target]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: id %s", types.ErrNotFound, target)
	}
	next, err := fn(v)
	if err != nil {
		var zero T
		return zero, err
	}
	r.items[target] = next
	return next, nil
}
