package heap_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/heapkit/pkg/alg/heap"
)

const (
	randomN    = 2_000
	randomSeed = 42
)

func randomInts(n int) []int {
	rng := rand.New(rand.NewPCG(randomSeed, randomSeed))

	out := make([]int, n)
	for i := range out {
		out[i] = rng.IntN(n) - n/2
	}

	return out
}

func drain[T any](t *testing.T, h *heap.Heap[T]) []T {
	t.Helper()

	out := make([]T, 0, h.Len())

	for h.Len() > 0 {
		v, err := h.Pop()
		require.NoError(t, err)
		require.True(t, h.Valid())

		out = append(out, v)
	}

	return out
}

func TestNew_EmptyLen(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, heap.NewMin[int]().Len())
	assert.Equal(t, 0, heap.NewMax[int]().Len())

	h, err := heap.New[int](heap.Max)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Len())
}

func TestNew_InvalidDirection(t *testing.T) {
	t.Parallel()

	h, err := heap.New[int]("middle")
	require.ErrorIs(t, err, heap.ErrInvalidDirection)
	assert.Nil(t, h)
}

func TestEmpty_Errors(t *testing.T) {
	t.Parallel()

	h := heap.NewMin[int]()

	_, err := h.Peek()
	require.ErrorIs(t, err, heap.ErrEmpty)

	_, err = h.Pop()
	require.ErrorIs(t, err, heap.ErrEmpty)

	require.ErrorIs(t, h.Delete(), heap.ErrEmpty)
}

func TestPeek_SingleElement(t *testing.T) {
	t.Parallel()

	minH := heap.NewMin[int]()
	minH.Insert(10)

	got, err := minH.Peek()
	require.NoError(t, err)
	assert.Equal(t, 10, got)

	maxH := heap.NewMax[int]()
	maxH.Insert(20)

	got, err = maxH.Peek()
	require.NoError(t, err)
	assert.Equal(t, 20, got)
}

func TestPeek_Idempotent(t *testing.T) {
	t.Parallel()

	h := heap.NewMax[int]()
	for _, v := range []int{5, 3, 8, 1, 6} {
		h.Insert(v)
	}

	first, err := h.Peek()
	require.NoError(t, err)

	second, err := h.Peek()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 5, h.Len())
}

func TestInsert_RootAndContents(t *testing.T) {
	t.Parallel()

	values := []int{5, 3, 8, 1, 6}

	tests := []struct {
		name     string
		heap     *heap.Heap[int]
		wantRoot int
	}{
		{name: "min", heap: heap.NewMin[int](), wantRoot: 1},
		{name: "max", heap: heap.NewMax[int](), wantRoot: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for i, v := range values {
				tt.heap.Insert(v)
				assert.Equal(t, i+1, tt.heap.Len())
				assert.True(t, tt.heap.Valid())
			}

			root, err := tt.heap.Peek()
			require.NoError(t, err)
			assert.Equal(t, tt.wantRoot, root)
			assert.ElementsMatch(t, values, tt.heap.Values())
		})
	}
}

func TestPop_Order(t *testing.T) {
	t.Parallel()

	values := []int{9, 4, 7, 1, 3}

	minH := heap.NewMin[int]()
	maxH := heap.NewMax[int]()

	for _, v := range values {
		minH.Insert(v)
		maxH.Insert(v)
	}

	assert.Equal(t, []int{1, 3, 4, 7, 9}, drain(t, minH))
	assert.Equal(t, []int{9, 7, 4, 3, 1}, drain(t, maxH))
}

func TestPop_DecrementsLen(t *testing.T) {
	t.Parallel()

	h := heap.NewMin[int]()
	for _, v := range []int{5, 3, 8, 1, 6} {
		h.Insert(v)
	}

	popped, err := h.Pop()
	require.NoError(t, err)
	assert.Equal(t, 1, popped)
	assert.Equal(t, 4, h.Len())

	require.NoError(t, h.Delete())
	assert.Equal(t, 3, h.Len())

	root, err := h.Peek()
	require.NoError(t, err)
	assert.Equal(t, 5, root)
}

func TestBuild_Scenario(t *testing.T) {
	t.Parallel()

	h, err := heap.Build([]int{5, 3, 8, 1, 4}, heap.Min)
	require.NoError(t, err)

	got := make([]int, 0, 3)

	for range 3 {
		v, popErr := h.Pop()
		require.NoError(t, popErr)

		got = append(got, v)
	}

	assert.Equal(t, []int{1, 3, 4}, got)
}

func TestBuild_Invariant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []int
	}{
		{name: "empty", input: []int{}},
		{name: "nil", input: nil},
		{name: "single", input: []int{7}},
		{name: "duplicates", input: []int{4, 4, 4, 4, 4, 4}},
		{name: "sorted", input: []int{1, 2, 3, 4, 5, 6, 7, 8}},
		{name: "reversed", input: []int{8, 7, 6, 5, 4, 3, 2, 1}},
		{name: "random", input: randomInts(randomN)},
	}

	for _, tt := range tests {
		for _, dir := range []heap.Direction{heap.Min, heap.Max} {
			t.Run(tt.name+"_"+dir.String(), func(t *testing.T) {
				t.Parallel()

				input := slices.Clone(tt.input)

				h, err := heap.Build(input, dir)
				require.NoError(t, err)
				assert.Equal(t, len(tt.input), h.Len())
				assert.True(t, h.Valid())

				want := slices.Clone(tt.input)
				slices.Sort(want)

				if dir == heap.Max {
					slices.Reverse(want)
				}

				got := drain(t, h)
				if len(want) == 0 {
					assert.Empty(t, got)
				} else {
					assert.Equal(t, want, got)
				}
			})
		}
	}
}

func TestBuild_InvalidDirectionLeavesInput(t *testing.T) {
	t.Parallel()

	input := []int{3, 1, 2}

	h, err := heap.Build(input, "sideways")
	require.ErrorIs(t, err, heap.ErrInvalidDirection)
	assert.Nil(t, h)
	assert.Equal(t, []int{3, 1, 2}, input)
}

func TestInsertPop_RandomInvariant(t *testing.T) {
	t.Parallel()

	values := randomInts(randomN)
	h := heap.NewMax[int]()

	for i, v := range values {
		h.Insert(v)

		// Interleave pops to exercise sift-down on partially built trees.
		if i%3 == 2 {
			require.NoError(t, h.Delete())
		}

		require.True(t, h.Valid())
	}

	got := drain(t, h)
	assert.True(t, slices.IsSortedFunc(got, func(a, b int) int { return b - a }))
}

type task struct {
	name     string
	priority int
}

func TestNewFunc_CustomOrdering(t *testing.T) {
	t.Parallel()

	h := heap.NewFunc(func(a, b task) bool { return a.priority > b.priority })
	h.Insert(task{name: "low", priority: 1})
	h.Insert(task{name: "high", priority: 9})
	h.Insert(task{name: "mid", priority: 5})

	got := drain(t, h)
	require.Len(t, got, 3)
	assert.Equal(t, "high", got[0].name)
	assert.Equal(t, "mid", got[1].name)
	assert.Equal(t, "low", got[2].name)
}

func TestBuildFunc_Strings(t *testing.T) {
	t.Parallel()

	h := heap.BuildFunc([]string{"pear", "apple", "fig"}, func(a, b string) bool { return len(a) < len(b) })

	root, err := h.Peek()
	require.NoError(t, err)
	assert.Equal(t, "fig", root)
}

func TestValues_IsCopy(t *testing.T) {
	t.Parallel()

	h := heap.NewMin[int]()
	h.Insert(2)
	h.Insert(1)

	snapshot := h.Values()
	snapshot[0] = 100

	root, err := h.Peek()
	require.NoError(t, err)
	assert.Equal(t, 1, root)
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    heap.Direction
		wantErr bool
	}{
		{name: "min", input: "min", want: heap.Min},
		{name: "max", input: "max", want: heap.Max},
		{name: "padded", input: "  max\n", want: heap.Max},
		{name: "upper_case", input: "MIN", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "other", input: "median", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := heap.ParseDirection(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, heap.ErrInvalidDirection)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
