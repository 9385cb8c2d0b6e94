package utils

import (
	"cmp"
	"iter"
	"slices"
	"sync"
)

func OrderMap[K cmp.Ordered, T any](m map[K]T) iter.Seq2[K, T] {
	// 1. collect keys
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	// 2. sort them
	slices.Sort(keys)
	return func(yield func(K, T) bool) {
		// 3. because keys are sorted now, we can iterate over them in order
		for _, k := range keys {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}

// OrderedMap is a thread-safe map with unique keys that iterates its entries in key order.
// Keys and values live in two parallel slices kept sorted by key.
type OrderedMap[K, V any] struct {
	keys   []K
	values []V
	cmp    func(a, b K) int
	lock   sync.RWMutex
}

func NewOrderedMap[K cmp.Ordered, V any]() *OrderedMap[K, V] {
	return NewOrderedMapFunc[K, V](cmp.Compare[K])
}

func NewOrderedMapFunc[K, V any](compare func(a, b K) int) *OrderedMap[K, V] {
	return &OrderedMap[K, V]{cmp: compare}
}

// Put associates value with key, replacing the value of an existing equal key.
// It reports whether the key was already present.
func (m *OrderedMap[K, V]) Put(key K, value V) bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	pos, found := slices.BinarySearchFunc(m.keys, key, m.cmp)
	if found {
		m.values[pos] = value
		return true
	}
	m.keys = slices.Insert(m.keys, pos, key)
	m.values = slices.Insert(m.values, pos, value)
	return false
}

func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	if pos, found := slices.BinarySearchFunc(m.keys, key, m.cmp); found {
		return m.values[pos], true
	}
	var zero V
	return zero, false
}

func (m *OrderedMap[K, V]) Delete(key K) bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	pos, found := slices.BinarySearchFunc(m.keys, key, m.cmp)
	if !found {
		return false
	}
	m.keys = slices.Delete(m.keys, pos, pos+1)
	m.values = slices.Delete(m.values, pos, pos+1)
	return true
}

// Size returns the number of entries, 0 for a nil map.
func (m *OrderedMap[K, V]) Size() int {
	if m == nil {
		return 0
	}
	m.lock.RLock()
	defer m.lock.RUnlock()

	return len(m.keys)
}

// Keys returns a copy of the keys in sort order.
func (m *OrderedMap[K, V]) Keys() []K {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return slices.Clone(m.keys)
}

// Values returns a copy of the values in key order.
func (m *OrderedMap[K, V]) Values() []V {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return slices.Clone(m.values)
}

// All iterates over a snapshot of the entries in key order.
func (m *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	m.lock.RLock()
	keys, values := slices.Clone(m.keys), slices.Clone(m.values)
	m.lock.RUnlock()

	return func(yield func(K, V) bool) {
		for i, k := range keys {
			if !yield(k, values[i]) {
				return
			}
		}
	}
}
