package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("pool should be running after creation")
	}
}

func TestWorkerPool_DefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -3} {
		pool := NewWorkerPool(n)
		if got, want := pool.Workers(), runtime.GOMAXPROCS(0); got != want {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d (GOMAXPROCS)", n, got, want)
		}
		pool.Close()
	}
}

// =============================================================================
// ExecuteAll Tests
// =============================================================================

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 257)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}
	pool.ExecuteAll(work)

	if got := counter.Load(); got != int64(len(work)) {
		t.Errorf("counter = %d, want %d", got, len(work))
	}
}

func TestWorkerPool_ExecuteAllEachOnce(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	hits := make([]atomic.Int32, 100)
	work := make([]func(), len(hits))
	for i := range work {
		work[i] = func() { hits[i].Add(1) }
	}
	pool.ExecuteAll(work)

	for i := range hits {
		if n := hits[i].Load(); n != 1 {
			t.Errorf("task %d ran %d times, want 1", i, n)
		}
	}
}

func TestWorkerPool_ExecuteAllEmptyAndNil(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})

	var ran atomic.Bool
	pool.ExecuteAll([]func(){nil, func() { ran.Store(true) }, nil})
	if !ran.Load() {
		t.Error("non-nil work was not executed")
	}
}

// =============================================================================
// Close Tests
// =============================================================================

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("pool should not be running after Close")
	}
}

func TestWorkerPool_ExecuteAllAfterClose(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()

	var counter atomic.Int64
	work := make([]func(), 10)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}
	pool.ExecuteAll(work)

	if got := counter.Load(); got != 10 {
		t.Errorf("counter = %d after Close, want 10 (inline execution)", got)
	}
}

func TestWorkerPool_CloseDuringExecuteAll(t *testing.T) {
	pool := NewWorkerPool(2)

	started := make(chan struct{})
	release := make(chan struct{})
	var counter atomic.Int64

	work := make([]func(), 20)
	work[0] = func() {
		close(started)
		<-release
		counter.Add(1)
	}
	for i := 1; i < len(work); i++ {
		work[i] = func() { counter.Add(1) }
	}

	done := make(chan struct{})
	go func() {
		pool.ExecuteAll(work)
		close(done)
	}()

	<-started
	closed := make(chan struct{})
	go func() {
		pool.Close()
		close(closed)
	}()
	close(release)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("ExecuteAll stranded by concurrent Close")
	}
	<-closed

	if got := counter.Load(); got != int64(len(work)) {
		t.Errorf("counter = %d, want %d", got, len(work))
	}
}

// =============================================================================
// Concurrency Tests
// =============================================================================

func TestWorkerPool_Concurrent(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	const callers, perCaller = 10, 50
	var counter atomic.Int64
	var wg sync.WaitGroup
	wg.Add(callers)
	for range callers {
		go func() {
			defer wg.Done()
			work := make([]func(), perCaller)
			for i := range work {
				work[i] = func() { counter.Add(1) }
			}
			pool.ExecuteAll(work)
		}()
	}
	wg.Wait()

	if got := counter.Load(); got != callers*perCaller {
		t.Errorf("counter = %d, want %d", got, callers*perCaller)
	}
}

func TestWorkerPool_WorkStealing(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// All slow tasks land on worker 0's queue; idle workers must steal them.
	var slow atomic.Int64
	work := make([]func(), 40)
	for i := range work {
		if i%4 == 0 {
			work[i] = func() {
				time.Sleep(5 * time.Millisecond)
				slow.Add(1)
			}
		} else {
			work[i] = func() {}
		}
	}

	start := time.Now()
	pool.ExecuteAll(work)
	elapsed := time.Since(start)

	if slow.Load() != 10 {
		t.Errorf("slow tasks = %d, want 10", slow.Load())
	}
	t.Logf("elapsed %v (sequential minimum 50ms)", elapsed)
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	for range 5 {
		pool := NewWorkerPool(4)
		work := make([]func(), 100)
		for j := range work {
			work[j] = func() {}
		}
		pool.ExecuteAll(work)
		pool.Close()
	}

	runtime.GC()
	time.Sleep(100 * time.Millisecond)

	// Allow for some variance (test framework goroutines, etc.)
	if final := runtime.NumGoroutine(); final > baseline+2 {
		t.Errorf("goroutine count: baseline=%d, final=%d (leak detected)", baseline, final)
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkWorkerPool_ExecuteAll(b *testing.B) {
	pool := NewWorkerPool(runtime.GOMAXPROCS(0))
	defer pool.Close()

	work := make([]func(), 64)
	for i := range work {
		work[i] = func() {}
	}

	b.ResetTimer()
	for b.Loop() {
		pool.ExecuteAll(work)
	}
}

func BenchmarkWorkerPool_vs_Goroutines(b *testing.B) {
	const tasks = 64

	b.Run("pool", func(b *testing.B) {
		pool := NewWorkerPool(runtime.GOMAXPROCS(0))
		defer pool.Close()
		work := make([]func(), tasks)
		for i := range work {
			work[i] = func() {}
		}
		for b.Loop() {
			pool.ExecuteAll(work)
		}
	})

	b.Run("goroutines", func(b *testing.B) {
		for b.Loop() {
			var wg sync.WaitGroup
			wg.Add(tasks)
			for range tasks {
				go wg.Done()
			}
			wg.Wait()
		}
	})
}
