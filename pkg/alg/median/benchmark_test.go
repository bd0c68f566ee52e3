package median_test

import (
	"testing"

	"github.com/Sumatoshi-tech/heapkit/pkg/alg/median"
)

// BenchmarkAdd measures insertion plus rebalancing on a growing tracker.
func BenchmarkAdd(b *testing.B) {
	tr := median.New[int]()

	b.ResetTimer()

	for i := range b.N {
		// Alternate around the midpoint so both halves see traffic.
		if i%2 == 0 {
			tr.Add(i)
		} else {
			tr.Add(-i)
		}
	}
}

// BenchmarkMedian measures reading the median from a populated tracker.
func BenchmarkMedian(b *testing.B) {
	tr := median.New[int]()
	for i := range 10_000 {
		tr.Add(i)
	}

	b.ResetTimer()

	for range b.N {
		if _, err := tr.Median(); err != nil {
			b.Fatal(err)
		}
	}
}
