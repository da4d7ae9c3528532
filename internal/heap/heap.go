// Package heap is a fixed-capacity binary heap whose items track their own slot,
// which gives O(1) Contains and O(log n) re-sorting after a priority change.
package heap

import (
	"errors"
	"fmt"
)

// ErrCapacityExceeded is returned by Add when the heap already holds MaxSize items.
var ErrCapacityExceeded = errors.New("heap capacity exceeded")

// Heap orders items with compare: compare(a, b) > 0 means a has higher priority and
// sits closer to the root. The ordering policy lives entirely in compare.
//
// slot returns the address where an item's heap index is stored. The heap keeps it
// equal to the item's position in the backing array while the item is inside.
type Heap[T comparable] struct {
	items   []T
	count   int
	compare func(a, b T) int
	slot    func(T) *int
}

// New returns an empty heap holding at most maxSize items.
func New[T comparable](maxSize int, compare func(a, b T) int, slot func(T) *int) *Heap[T] {
	if maxSize < 0 {
		maxSize = 0
	}
	return &Heap[T]{
		items:   make([]T, maxSize),
		compare: compare,
		slot:    slot,
	}
}

// Count is the number of items currently in the heap.
func (h *Heap[T]) Count() int { return h.count }

// MaxSize is the fixed capacity.
func (h *Heap[T]) MaxSize() int { return len(h.items) }

// Add appends item and sorts it up. It fails once the heap is full; there is no growth.
func (h *Heap[T]) Add(item T) error {
	if h.count == len(h.items) {
		return fmt.Errorf("add to heap of %d: %w", len(h.items), ErrCapacityExceeded)
	}
	*h.slot(item) = h.count
	h.items[h.count] = item
	h.count++
	h.sortUp(item)
	return nil
}

// RemoveFirst pops the highest-priority item. ok is false when the heap is empty.
func (h *Heap[T]) RemoveFirst() (item T, ok bool) {
	if h.count == 0 {
		return item, false
	}
	first := h.items[0]
	h.count--
	last := h.items[h.count]
	var zero T
	h.items[h.count] = zero
	*h.slot(first) = -1
	if h.count > 0 {
		h.items[0] = last
		*h.slot(last) = 0
		h.sortDown(last)
	}
	return first, true
}

// UpdateItem restores order after item's priority increased (decrease-key).
func (h *Heap[T]) UpdateItem(item T) {
	if !h.Contains(item) {
		return
	}
	h.sortUp(item)
}

// Contains reports whether item is in the heap, using its stored slot.
func (h *Heap[T]) Contains(item T) bool {
	i := *h.slot(item)
	return i >= 0 && i < h.count && h.items[i] == item
}

// Clear empties the heap and marks every held item as outside it.
func (h *Heap[T]) Clear() {
	var zero T
	for i := 0; i < h.count; i++ {
		*h.slot(h.items[i]) = -1
		h.items[i] = zero
	}
	h.count = 0
}

func (h *Heap[T]) sortUp(item T) {
	for {
		i := *h.slot(item)
		if i == 0 {
			return
		}
		parent := h.items[(i-1)/2]
		if h.compare(item, parent) <= 0 {
			return
		}
		h.swap(item, parent)
	}
}

func (h *Heap[T]) sortDown(item T) {
	for {
		i := *h.slot(item)
		left, right := 2*i+1, 2*i+2
		if left >= h.count {
			return
		}
		child := left
		if right < h.count && h.compare(h.items[right], h.items[left]) > 0 {
			child = right
		}
		if h.compare(h.items[child], item) <= 0 {
			return
		}
		h.swap(item, h.items[child])
	}
}

func (h *Heap[T]) swap(a, b T) {
	ia, ib := h.slot(a), h.slot(b)
	h.items[*ia], h.items[*ib] = b, a
	*ia, *ib = *ib, *ia
}
