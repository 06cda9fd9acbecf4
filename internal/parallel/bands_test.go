package parallel

import (
	"sync"
	"testing"
)

func TestSplitRows(t *testing.T) {
	tests := []struct {
		height, parts int
		want          []Band
	}{
		{10, 3, []Band{{0, 4}, {4, 7}, {7, 10}}},
		{9, 3, []Band{{0, 3}, {3, 6}, {6, 9}}},
		{2, 5, []Band{{0, 1}, {1, 2}}},
		{5, 0, []Band{{0, 5}}},
		{1, 1, []Band{{0, 1}}},
		{0, 4, nil},
		{-2, 4, nil},
	}
	for _, tt := range tests {
		got := SplitRows(tt.height, tt.parts)
		if len(got) != len(tt.want) {
			t.Errorf("SplitRows(%d, %d) = %v, want %v", tt.height, tt.parts, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("SplitRows(%d, %d) = %v, want %v", tt.height, tt.parts, got, tt.want)
				break
			}
		}
	}
}

func TestSplitRowsCoversEveryRow(t *testing.T) {
	for height := 1; height < 60; height++ {
		for parts := 1; parts < 20; parts++ {
			bands := SplitRows(height, parts)
			next := 0
			for _, b := range bands {
				if b.Y0 != next || b.Rows() <= 0 {
					t.Fatalf("SplitRows(%d, %d): band %v not contiguous after row %d", height, parts, b, next)
				}
				next = b.Y1
			}
			if next != height {
				t.Fatalf("SplitRows(%d, %d) ends at %d", height, parts, next)
			}
			if first, last := bands[0].Rows(), bands[len(bands)-1].Rows(); first-last > 1 {
				t.Fatalf("SplitRows(%d, %d) uneven: first %d rows, last %d", height, parts, first, last)
			}
		}
	}
}

func TestForEachBand(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	const height = 101
	var mu sync.Mutex
	seen := make([]int, height)

	pool.ForEachBand(height, 4, func(b Band) {
		mu.Lock()
		defer mu.Unlock()
		for y := b.Y0; y < b.Y1; y++ {
			seen[y]++
		}
	})

	for y, n := range seen {
		if n != 1 {
			t.Errorf("row %d visited %d times, want 1", y, n)
		}
	}
}

func TestForEachBandEmpty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	called := false
	pool.ForEachBand(0, 4, func(Band) { called = true })
	if called {
		t.Error("fn called for zero rows")
	}
}
