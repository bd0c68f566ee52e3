// Package heapsort provides an in-place heap sort over slices.
//
// The sort builds a max-heap directly inside the slice and then repeatedly
// moves the root to the end of a shrinking window. It allocates nothing.
package heapsort

import "cmp"

// Sort sorts s in ascending order in place and returns it.
func Sort[S ~[]E, E cmp.Ordered](s S) S {
	return SortFunc(s, cmp.Compare[E])
}

// SortFunc sorts s in ascending order as determined by the three-way
// comparator and returns it.
func SortFunc[S ~[]E, E any](s S, compare func(a, b E) int) S {
	n := len(s)
	if n < 2 {
		return s
	}

	for i := n/2 - 1; i >= 0; i-- {
		siftDown(s, i, n, compare)
	}

	for size := n; size > 1; {
		s[0], s[size-1] = s[size-1], s[0]
		size--
		siftDown(s, 0, size, compare)
	}

	return s
}

// siftDown restores the max-heap property for the subtree rooted at i,
// considering only s[:size].
func siftDown[E any](s []E, i, size int, compare func(a, b E) int) {
	for {
		largest := i

		l := 2*i + 1
		if l >= size || l < 0 { // l < 0 after int overflow
			return
		}

		if compare(s[l], s[largest]) > 0 {
			largest = l
		}

		if r := l + 1; r < size && compare(s[r], s[largest]) > 0 {
			largest = r
		}

		if largest == i {
			return
		}

		s[i], s[largest] = s[largest], s[i]
		i = largest
	}
}
