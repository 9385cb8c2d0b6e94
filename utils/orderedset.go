package utils

import (
	"cmp"
	"iter"
	"slices"
	"sync"
)

// OrderedSet is a thread-safe set that keeps its elements unique and iterates them in the order
// defined by its comparison function, independent of insertion order.
// Elements are held in a sorted slice, lookups are binary searches.
type OrderedSet[T any] struct {
	items []T
	cmp   func(a, b T) int
	lock  sync.RWMutex
}

// NewOrderedSet returns a set ordered by cmp.Compare, populated with items.
func NewOrderedSet[T cmp.Ordered](items ...T) *OrderedSet[T] {
	return NewOrderedSetFunc(cmp.Compare[T], items...)
}

// NewOrderedSetFunc returns a set ordered by compare, populated with items.
func NewOrderedSetFunc[T any](compare func(a, b T) int, items ...T) *OrderedSet[T] {
	o := &OrderedSet[T]{
		items: make([]T, 0, len(items)),
		cmp:   compare,
	}
	for _, item := range items {
		o.Insert(item)
	}
	return o
}

// Insert adds v unless an equal element is already present. It reports whether v was added.
func (o *OrderedSet[T]) Insert(v T) bool {
	o.lock.Lock()
	defer o.lock.Unlock()

	pos, found := slices.BinarySearchFunc(o.items, v, o.cmp)
	if found {
		return false
	}
	o.items = slices.Insert(o.items, pos, v)
	return true
}

func (o *OrderedSet[T]) Contains(v T) bool {
	o.lock.RLock()
	defer o.lock.RUnlock()

	_, found := slices.BinarySearchFunc(o.items, v, o.cmp)
	return found
}

// Remove deletes v and reports whether it was present.
func (o *OrderedSet[T]) Remove(v T) bool {
	o.lock.Lock()
	defer o.lock.Unlock()

	pos, found := slices.BinarySearchFunc(o.items, v, o.cmp)
	if !found {
		return false
	}
	o.items = slices.Delete(o.items, pos, pos+1)
	return true
}

// Size returns the number of items, 0 for a nil set.
func (o *OrderedSet[T]) Size() int {
	if o == nil {
		return 0
	}
	o.lock.RLock()
	defer o.lock.RUnlock()

	return len(o.items)
}

// List returns a shallow copy of the elements in sort order.
func (o *OrderedSet[T]) List() []T {
	o.lock.RLock()
	defer o.lock.RUnlock()

	return slices.Clone(o.items)
}

// All iterates over a snapshot of the elements in sort order.
func (o *OrderedSet[T]) All() iter.Seq[T] {
	return slices.Values(o.List())
}

// Equal reports whether both sets hold the same elements.
func (o *OrderedSet[T]) Equal(other *OrderedSet[T]) bool {
	a, b := o.List(), other.List()
	return slices.EqualFunc(a, b, func(x, y T) bool { return o.cmp(x, y) == 0 })
}

func (o *OrderedSet[T]) Clear() {
	o.lock.Lock()
	defer o.lock.Unlock()

	o.items = nil
}
