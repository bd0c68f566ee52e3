package topk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/heapkit/pkg/alg/topk"
)

func TestSmallest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []int
		k     int
		want  []int
	}{
		{name: "basic", input: []int{5, 1, 3, 6, 4, 2}, k: 3, want: []int{1, 2, 3}},
		{name: "all_elements", input: []int{5, 1, 3}, k: 3, want: []int{1, 3, 5}},
		{name: "empty_input", input: []int{}, k: 0, want: []int{}},
		{name: "k_zero", input: []int{5, 1, 3}, k: 0, want: []int{}},
		{name: "duplicates", input: []int{4, 2, 4, 1, 3, 2}, k: 4, want: []int{1, 2, 2, 3}},
		{name: "negatives", input: []int{-5, -1, -3, 0, 2}, k: 3, want: []int{-5, -3, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := topk.Smallest(tt.input, tt.k)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLargest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []int
		k     int
		want  []int
	}{
		{name: "basic", input: []int{5, 1, 3, 6, 4, 2}, k: 3, want: []int{6, 5, 4}},
		{name: "all_elements", input: []int{5, 1, 3}, k: 3, want: []int{5, 3, 1}},
		{name: "empty_input", input: nil, k: 0, want: []int{}},
		{name: "k_zero", input: []int{5, 1, 3}, k: 0, want: []int{}},
		{name: "duplicates", input: []int{4, 2, 4, 1, 3, 2}, k: 3, want: []int{4, 4, 3}},
		{name: "negatives", input: []int{-5, -1, -3, 0, 2}, k: 2, want: []int{2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := topk.Largest(tt.input, tt.k)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvalidK(t *testing.T) {
	t.Parallel()

	input := []int{1, 2, 3}

	_, err := topk.Smallest(input, 4)
	require.ErrorIs(t, err, topk.ErrInvalidK)

	_, err = topk.Largest(input, 4)
	require.ErrorIs(t, err, topk.ErrInvalidK)

	_, err = topk.Smallest([]int{}, 1)
	require.ErrorIs(t, err, topk.ErrInvalidK)

	_, err = topk.Largest(input, -1)
	require.ErrorIs(t, err, topk.ErrInvalidK)
}

func TestInputNotMutated(t *testing.T) {
	t.Parallel()

	input := []float64{3.5, 1.5, 2.5, 0.5}

	got, err := topk.Largest(input, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{3.5, 2.5}, got)
	assert.Equal(t, []float64{3.5, 1.5, 2.5, 0.5}, input)
}
