package candidate

import "iter"

// OrderedMap is a map that remembers insertion order.
// It is not safe for concurrent use.
type OrderedMap[K comparable, V any] struct {
	keys []K
	vals map[K]V
}

// NewOrderedMap creates an empty OrderedMap. The zero value is also ready to use.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{vals: make(map[K]V)}
}

// InsertIfAbsent stores v under k unless k is already present.
// It reports whether v was stored; an existing entry is never replaced.
func (m *OrderedMap[K, V]) InsertIfAbsent(k K, v V) bool {
	if _, ok := m.vals[k]; ok {
		return false
	}
	if m.vals == nil {
		m.vals = make(map[K]V)
	}
	m.keys = append(m.keys, k)
	m.vals[k] = v
	return true
}

// Get returns the value stored under k.
func (m *OrderedMap[K, V]) Get(k K) (V, bool) {
	v, ok := m.vals[k]
	return v, ok
}

// Len returns the number of entries.
func (m *OrderedMap[K, V]) Len() int { return len(m.keys) }

// All yields entries in insertion order.
func (m *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.vals[k]) {
				return
			}
		}
	}
}

// Values returns the values in insertion order.
func (m *OrderedMap[K, V]) Values() []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.vals[k])
	}
	return out
}

// OrderedSet is a set of strings that keeps first-insertion order.
// The zero value is an empty set ready to use.
type OrderedSet struct {
	m OrderedMap[string, struct{}]
}

// NewOrderedSet builds a set from items, dropping later duplicates.
func NewOrderedSet(items ...string) *OrderedSet {
	s := &OrderedSet{}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Add inserts item and reports whether it was new.
func (s *OrderedSet) Add(item string) bool { return s.m.InsertIfAbsent(item, struct{}{}) }

// Contains reports whether item is in the set.
func (s *OrderedSet) Contains(item string) bool {
	_, ok := s.m.Get(item)
	return ok
}

// Len returns the number of items.
func (s *OrderedSet) Len() int { return s.m.Len() }

// Items returns the items in insertion order.
func (s *OrderedSet) Items() []string { return append([]string(nil), s.m.keys...) }

// Intersect returns the items of s that are also in other, in the order of s.
func (s *OrderedSet) Intersect(other *OrderedSet) []string {
	out := []string{}
	for _, k := range s.m.keys {
		if other.Contains(k) {
			out = append(out, k)
		}
	}
	return out
}
