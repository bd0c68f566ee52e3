// Package median tracks the running median of a numeric stream.
//
// The tracker keeps the lower half of all values in a max-heap and the upper
// half in a min-heap, rebalancing after each insertion so the two sizes never
// differ by more than one. Adds are O(log n); reading the median is O(1).
package median

import (
	"errors"

	"github.com/Sumatoshi-tech/heapkit/pkg/alg/heap"
)

// ErrEmpty is returned when the median is requested before any value was added.
var ErrEmpty = errors.New("median: no values added")

// Number is the set of numeric types a Tracker accepts.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Tracker maintains the median of all values added so far.
// It is not safe for concurrent use.
type Tracker[T Number] struct {
	lower *heap.Heap[T] // max-heap, smaller half
	upper *heap.Heap[T] // min-heap, larger half
}

// New creates a Tracker and adds values in order.
func New[T Number](values ...T) *Tracker[T] {
	t := &Tracker[T]{
		lower: heap.NewMax[T](),
		upper: heap.NewMin[T](),
	}

	for _, v := range values {
		t.Add(v)
	}

	return t
}

// Add feeds a new value into the tracker.
func (t *Tracker[T]) Add(x T) {
	if top, err := t.lower.Peek(); err != nil || x <= top {
		t.lower.Insert(x)
	} else {
		t.upper.Insert(x)
	}

	switch {
	case t.upper.Len()-t.lower.Len() > 1:
		move(t.upper, t.lower)
	case t.lower.Len()-t.upper.Len() > 1:
		move(t.lower, t.upper)
	}
}

// Median returns the median of all values added so far. With an even count
// it is the mean of the two middle values.
func (t *Tracker[T]) Median() (float64, error) {
	lowerLen, upperLen := t.Sizes()

	switch {
	case lowerLen == 0 && upperLen == 0:
		return 0, ErrEmpty
	case lowerLen > upperLen:
		return root(t.lower), nil
	case upperLen > lowerLen:
		return root(t.upper), nil
	default:
		return (root(t.lower) + root(t.upper)) / 2, nil
	}
}

// Len returns the number of values added.
func (t *Tracker[T]) Len() int {
	return t.lower.Len() + t.upper.Len()
}

// Sizes returns the element counts of the lower and upper halves.
func (t *Tracker[T]) Sizes() (lower, upper int) {
	return t.lower.Len(), t.upper.Len()
}

// move pops the root of src and inserts it into dst. src is never empty here.
func move[T Number](src, dst *heap.Heap[T]) {
	v, err := src.Pop()
	if err != nil {
		return
	}

	dst.Insert(v)
}

func root[T Number](h *heap.Heap[T]) float64 {
	v, _ := h.Peek()

	return float64(v)
}
