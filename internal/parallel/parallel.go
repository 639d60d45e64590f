/*
Package parallel runs a function over every element of a slice using a small
pipeline of worker goroutines.
*/
package parallel

import (
	"context"
	"runtime"
	"sync"
)

func generate(ctx context.Context, n int) (<-chan int, <-chan error) {
	out := make(chan int)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for i := 0; i < n; i++ {
			select {
			case out <- i:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc
}

func worker(ctx context.Context, in <-chan int, fn func(int) error) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for i := range in {
			if ctx.Err() != nil {
				return
			}
			if err := fn(i); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc
}

// waitForPipeline drains every stage and returns the first error seen.
func waitForPipeline(errs ...<-chan error) (first error) {
	for err := range mergeErrors(errs...) {
		if first == nil {
			first = err
		}
	}
	return
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Map calls fn for every element of in and returns the results in the same
// order. At most workers calls run at once; if workers is less than one
// GOMAXPROCS is used. The first error returned by fn cancels the pipeline so
// no further calls are started, though calls already running finish. That
// error is returned once every worker has stopped.
func Map[T, R any](ctx context.Context, in []T, workers int, fn func(T) (R, error)) ([]R, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var (
		once     sync.Once
		firstErr error
	)

	out := make([]R, len(in))

	indices, errc := generate(ctx, len(in))
	errcList := []<-chan error{errc}

	for i := 0; i < workers; i++ {
		errcList = append(errcList, worker(ctx, indices, func(i int) error {
			r, err := fn(in[i])
			if err != nil {
				once.Do(func() {
					firstErr = err
					cancelFunc()
				})
				return err
			}
			out[i] = r
			return nil
		}))
	}

	// Every goroutine has exited once the pipeline drains so firstErr is
	// safe to read.
	err := waitForPipeline(errcList...)
	if firstErr != nil {
		return nil, firstErr
	}
	if err != nil {
		return nil, err
	}

	return out, nil
}
