// Package heap provides a generic binary heap over a slice.
//
// The heap is a complete binary tree stored implicitly: for index i the
// parent sits at (i-1)/2 and the children at 2i+1 and 2i+2. Min and max
// heaps share one implementation and differ only in the ordering function
// that decides which of two elements must sit closer to the root.
//
// A Heap is not safe for concurrent use.
package heap

import (
	"cmp"
	"errors"
)

var (
	// ErrEmpty is returned when reading from or removing out of an empty heap.
	ErrEmpty = errors.New("heap: empty heap")

	// ErrInvalidDirection is returned for a direction other than "min" or "max".
	ErrInvalidDirection = errors.New("heap: invalid heap direction")
)

// Heap is a binary heap ordered by a "before" function: before(a, b)
// reports whether a must sit above b in the tree.
type Heap[T any] struct {
	values []T
	before func(a, b T) bool
}

// New creates an empty heap of ordered values in the given direction.
func New[T cmp.Ordered](dir Direction) (*Heap[T], error) {
	before, err := orderFor[T](dir)
	if err != nil {
		return nil, err
	}

	return &Heap[T]{before: before}, nil
}

// NewMin creates an empty min-heap.
func NewMin[T cmp.Ordered]() *Heap[T] {
	return &Heap[T]{before: cmp.Less[T]}
}

// NewMax creates an empty max-heap.
func NewMax[T cmp.Ordered]() *Heap[T] {
	return &Heap[T]{before: greater[T]}
}

// NewFunc creates an empty heap using an explicit ordering.
func NewFunc[T any](before func(a, b T) bool) *Heap[T] {
	return &Heap[T]{before: before}
}

// Build adopts values as the heap's backing storage and heapifies it in
// place. The caller must not use values afterwards. On an invalid
// direction values is left untouched.
func Build[T cmp.Ordered](values []T, dir Direction) (*Heap[T], error) {
	before, err := orderFor[T](dir)
	if err != nil {
		return nil, err
	}

	return BuildFunc(values, before), nil
}

// BuildFunc is Build with an explicit ordering.
func BuildFunc[T any](values []T, before func(a, b T) bool) *Heap[T] {
	h := &Heap[T]{values: values, before: before}

	// Subtrees below i must already be heaps, so walk parents bottom-up.
	for i := len(values)/2 - 1; i >= 0; i-- {
		h.down(i)
	}

	return h
}

// Len returns the number of elements in the heap.
func (h *Heap[T]) Len() int {
	return len(h.values)
}

// Peek returns the root element without removing it.
func (h *Heap[T]) Peek() (T, error) {
	if len(h.values) == 0 {
		var zero T

		return zero, ErrEmpty
	}

	return h.values[0], nil
}

// Pop removes and returns the root element.
func (h *Heap[T]) Pop() (T, error) {
	n := len(h.values)
	if n == 0 {
		var zero T

		return zero, ErrEmpty
	}

	root := h.values[0]
	last := n - 1

	h.values[0] = h.values[last]

	var zero T

	h.values[last] = zero
	h.values = h.values[:last]

	h.down(0)

	return root, nil
}

// Delete removes the root element, discarding it.
func (h *Heap[T]) Delete() error {
	_, err := h.Pop()

	return err
}

// Insert adds v to the heap.
func (h *Heap[T]) Insert(v T) {
	h.values = append(h.values, v)
	h.up(len(h.values) - 1)
}

// Values returns a copy of the backing slice in level order.
func (h *Heap[T]) Values() []T {
	out := make([]T, len(h.values))
	copy(out, h.values)

	return out
}

// Valid reports whether every parent/child pair satisfies the heap ordering.
func (h *Heap[T]) Valid() bool {
	for child := 1; child < len(h.values); child++ {
		if h.before(h.values[child], h.values[parent(child)]) {
			return false
		}
	}

	return true
}

func parent(i int) int { return (i - 1) / 2 }
func left(i int) int   { return 2*i + 1 }
func right(i int) int  { return 2*i + 2 }

func (h *Heap[T]) swap(i, j int) {
	h.values[i], h.values[j] = h.values[j], h.values[i]
}

func (h *Heap[T]) up(i int) {
	for i > 0 {
		p := parent(i)
		if !h.before(h.values[i], h.values[p]) {
			return
		}

		h.swap(i, p)
		i = p
	}
}

func (h *Heap[T]) down(i int) {
	n := len(h.values)

	for {
		best := i

		// Children replace best only when strictly more extreme; ties stay put.
		if l := left(i); l < n && h.before(h.values[l], h.values[best]) {
			best = l
		}

		if r := right(i); r < n && h.before(h.values[r], h.values[best]) {
			best = r
		}

		if best == i {
			return
		}

		h.swap(i, best)
		i = best
	}
}

func greater[T cmp.Ordered](a, b T) bool {
	return cmp.Less(b, a)
}
