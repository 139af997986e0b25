// SPDX-License-Identifier: MIT

package generator

import "slices"

// orderedMap maintains insertion order for deterministic output.
type orderedMap[K comparable, V any] struct {
	m     map[K]V
	order []K
}

func newOrderedMap[K comparable, V any]() *orderedMap[K, V] {
	return &orderedMap[K, V]{
		m: make(map[K]V),
	}
}

func (m *orderedMap[K, V]) set(key K, value V) {
	if _, exists := m.m[key]; !exists {
		m.order = append(m.order, key)
	}
	m.m[key] = value
}

func (m *orderedMap[K, V]) get(key K) (V, bool) {
	v, ok := m.m[key]
	return v, ok
}

// values returns the values in first-insertion order.
func (m *orderedMap[K, V]) values() []V {
	out := make([]V, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.m[k])
	}
	return out
}

// keys returns the keys in first-insertion order.
func (m *orderedMap[K, V]) keys() []K {
	return slices.Clone(m.order)
}
