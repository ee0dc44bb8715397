package status

import (
	"slices"
	"sync"
)

// MetricMap is a keyed set of metric cells of type T
// Only registration and iteration lock; cells are atomics written through cached pointers
type MetricMap[T any] struct {
	mu    sync.Mutex
	cells map[string]*T
}

func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{cells: make(map[string]*T)}
}

// Get returns the cell for key, creating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.Lock()
	defer m.mu.Unlock()
	cell, ok := m.cells[key]
	if !ok {
		cell = new(T)
		m.cells[key] = cell
	}
	return cell
}

// Range visits cells in key order
func (m *MetricMap[T]) Range(fn func(key string, cell *T)) {
	m.mu.Lock()
	keys := make([]string, 0, len(m.cells))
	for k := range m.cells {
		keys = append(keys, k)
	}
	cells := make([]*T, len(keys))
	slices.Sort(keys)
	for i, k := range keys {
		cells[i] = m.cells[k]
	}
	m.mu.Unlock()

	for i, k := range keys {
		fn(k, cells[i])
	}
}

func (m *MetricMap[T]) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cells)
}
