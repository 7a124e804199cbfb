package frame

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ForEach runs fn(i) for i in [0, n) on at most workers goroutines and
// returns once all calls finish. fn must only write to slot i of its output,
// which keeps results in sequence order regardless of scheduling.
func ForEach(workers, n int, fn func(i int)) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers == 1 || n <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait()
}
