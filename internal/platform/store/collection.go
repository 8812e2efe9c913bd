// Package store holds the in-memory record collections backing the
// workflow services.
package store

import (
	"errors"
	"slices"
	"sync"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Clone copies a record so callers never alias collection memory.
type Clone[T any] func(T) T

// Collection is an id-keyed record set that keeps insertion order.
type Collection[T any] struct {
	mu    sync.RWMutex
	order []string
	items map[string]T
	clone Clone[T]
}

func NewCollection[T any](clone Clone[T]) *Collection[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}
	return &Collection[T]{items: map[string]T{}, clone: clone}
}

func (c *Collection[T]) Get(id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return c.clone(item), nil
}

// Filter returns matching records in insertion order. A nil predicate matches all.
func (c *Collection[T]) Filter(match func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		item := c.items[id]
		if match == nil || match(item) {
			out = append(out, c.clone(item))
		}
	}
	return out
}

func (c *Collection[T]) Count(match func(T) bool) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, id := range c.order {
		if match == nil || match(c.items[id]) {
			n++
		}
	}
	return n
}

func (c *Collection[T]) Insert(id string, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; ok {
		return ErrDuplicate
	}
	c.items[id] = c.clone(item)
	c.order = append(c.order, id)
	return nil
}

// Update applies mutate to a copy of the record under the write lock and
// stores the result only when mutate returns nil. The precondition check and
// the write therefore happen atomically.
func (c *Collection[T]) Update(id string, mutate func(*T) error) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	item, ok := c.items[id]
	if !ok {
		return zero, ErrNotFound
	}
	working := c.clone(item)
	if err := mutate(&working); err != nil {
		return zero, err
	}
	c.items[id] = c.clone(working)
	return c.clone(working), nil
}

// UpdateUnless is Update with a uniqueness check. conflict is evaluated
// against every other record under the same write lock as the mutation.
func (c *Collection[T]) UpdateUnless(id string, mutate func(*T) error, conflict func(T) bool) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	item, ok := c.items[id]
	if !ok {
		return zero, ErrNotFound
	}
	for otherID, existing := range c.items {
		if otherID != id && conflict != nil && conflict(existing) {
			return zero, ErrDuplicate
		}
	}
	working := c.clone(item)
	if err := mutate(&working); err != nil {
		return zero, err
	}
	c.items[id] = c.clone(working)
	return c.clone(working), nil
}

// InsertUnless inserts item unless conflict matches an existing record.
func (c *Collection[T]) InsertUnless(id string, item T, conflict func(T) bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; ok {
		return ErrDuplicate
	}
	for _, existing := range c.items {
		if conflict != nil && conflict(existing) {
			return ErrDuplicate
		}
	}
	c.items[id] = c.clone(item)
	c.order = append(c.order, id)
	return nil
}

// Delete removes a record. Deleting a missing id is a no-op.
func (c *Collection[T]) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return
	}
	delete(c.items, id)
	c.order = slices.DeleteFunc(c.order, func(v string) bool { return v == id })
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}
