// Package ordered provides a capacity-bounded map that remembers insertion
// order and evicts the oldest entry first.
package ordered

import (
	"container/list"
	"iter"
)

type entry[V any] struct {
	key   string
	value V
}

// Map is an insertion-ordered map holding at most Cap entries.
// Not safe for concurrent use; callers serialize access.
type Map[V any] struct {
	capacity int
	items    map[string]*list.Element
	order    *list.List // Front = oldest
}

// New returns an empty Map. capacity must be positive; values below 1 are
// treated as 1.
func New[V any](capacity int) *Map[V] {
	if capacity < 1 {
		capacity = 1
	}
	return &Map[V]{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

func (m *Map[V]) Cap() int { return m.capacity }
func (m *Map[V]) Len() int { return len(m.items) }

func (m *Map[V]) Has(key string) bool {
	_, ok := m.items[key]
	return ok
}

func (m *Map[V]) Get(key string) (V, bool) {
	if el, ok := m.items[key]; ok {
		return el.Value.(*entry[V]).value, true
	}
	var zero V
	return zero, false
}

// Set stores value under key. When the map is full the oldest entry is
// removed first, even if key is already present; an overwrite below capacity
// keeps the key's position. evicted reports the removed key, if any.
func (m *Map[V]) Set(key string, value V) (evicted string, ok bool) {
	if len(m.items) >= m.capacity {
		if front := m.order.Front(); front != nil {
			evicted = front.Value.(*entry[V]).key
			m.order.Remove(front)
			delete(m.items, evicted)
			ok = true
		}
	}
	if el, found := m.items[key]; found {
		el.Value.(*entry[V]).value = value
		return evicted, ok
	}
	m.items[key] = m.order.PushBack(&entry[V]{key: key, value: value})
	return evicted, ok
}

// Delete removes key. It reports whether key was present.
func (m *Map[V]) Delete(key string) bool {
	el, ok := m.items[key]
	if !ok {
		return false
	}
	m.order.Remove(el)
	delete(m.items, key)
	return true
}

func (m *Map[V]) Clear() {
	m.items = make(map[string]*list.Element)
	m.order.Init()
}

// All yields entries oldest first. The sequence may be ranged over again.
func (m *Map[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for el := m.order.Front(); el != nil; el = el.Next() {
			e := el.Value.(*entry[V])
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// Keys returns the keys oldest first.
func (m *Map[V]) Keys() []string {
	out := make([]string, 0, len(m.items))
	for k := range m.All() {
		out = append(out, k)
	}
	return out
}
