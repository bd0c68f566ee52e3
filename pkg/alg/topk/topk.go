// Package topk selects the k smallest or largest elements of a slice.
//
// Both selections heapify a copy of the input in O(n) and pop k times, so
// results come back in pop order: Smallest ascending, Largest descending.
package topk

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/Sumatoshi-tech/heapkit/pkg/alg/heap"
)

// ErrInvalidK is returned when k is negative or exceeds the input length.
var ErrInvalidK = errors.New("topk: k out of range")

// Smallest returns the k smallest elements of nums in ascending order.
func Smallest[T cmp.Ordered](nums []T, k int) ([]T, error) {
	return selectK(nums, k, heap.Min)
}

// Largest returns the k largest elements of nums in descending order.
func Largest[T cmp.Ordered](nums []T, k int) ([]T, error) {
	return selectK(nums, k, heap.Max)
}

func selectK[T cmp.Ordered](nums []T, k int, dir heap.Direction) ([]T, error) {
	if k < 0 || k > len(nums) {
		return nil, fmt.Errorf("%w: k=%d, len=%d", ErrInvalidK, k, len(nums))
	}

	h, err := heap.Build(slices.Clone(nums), dir)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, k)

	for range k {
		v, popErr := h.Pop()
		if popErr != nil {
			return nil, popErr
		}

		out = append(out, v)
	}

	return out, nil
}
