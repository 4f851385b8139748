package jobs

import (
	"context"
	"sync"
)

// Pool runs batches of independent tasks with a fixed number of workers,
// bounding concurrent pressure on downstream services.
type Pool struct {
	workers int
}

// NewPool creates a Pool with the given worker count. Counts below one are
// clamped to one.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Workers returns the configured worker count.
func (p *Pool) Workers() int {
	return p.workers
}

// Run invokes fn for every index in [0, n), at most workers at a time, and
// waits for all invocations to finish. When ctx is cancelled, queued indexes
// are not started; in-flight invocations observe cancellation through ctx.
func (p *Pool) Run(ctx context.Context, n int, fn func(ctx context.Context, i int)) {
	if n <= 0 {
		return
	}

	indexes := make(chan int)
	var wg sync.WaitGroup

	workers := p.workers
	if workers > n {
		workers = n
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				fn(ctx, i)
			}
		}()
	}

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			close(indexes)
			wg.Wait()
			return
		case indexes <- i:
		}
	}

	close(indexes)
	wg.Wait()
}
