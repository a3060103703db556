package wave

import (
	"sync/atomic"
	"testing"
)

func TestParallelForCoversRange(t *testing.T) {
	tests := []struct {
		n, minChunk int
	}{
		{0, 4},
		{1, 4},
		{10, 4},
		{1000, 7},
		{4097, 1024},
	}

	for _, tt := range tests {
		hits := make([]int32, tt.n)
		var calls int32
		ParallelFor(tt.n, tt.minChunk, func(start, end int) {
			atomic.AddInt32(&calls, 1)
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			if h != 1 {
				t.Errorf("n=%d: index %d visited %d times", tt.n, i, h)
			}
		}
		if calls == 0 {
			t.Errorf("n=%d: fn never called", tt.n)
		}
	}
}
