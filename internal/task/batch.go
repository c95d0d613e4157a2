package task

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Result holds the outcome of one batch item.
type Result[R any] struct {
	Value R
	Err   error
}

// RunBatch processes items with up to maxParallel concurrent workers and
// blocks until every item has been processed. The returned slice preserves
// input order: index i holds the outcome for items[i] regardless of
// completion order. A failing or panicking processor records an error at
// its own index and never aborts sibling items.
//
// The bounded group is scoped to this call and torn down when it returns;
// it is independent of any shared Executor. Items not yet started when ctx
// is done are recorded with ctx's error instead of being processed.
func RunBatch[T, R any](ctx context.Context, items []T, processor func(T) (R, error), maxParallel int) []Result[R] {
	if maxParallel <= 0 {
		maxParallel = DefaultWorkers
	}
	results := make([]Result[R], len(items))

	g := new(errgroup.Group)
	g.SetLimit(maxParallel)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result[R]{Err: err}
				return nil
			}
			results[i] = runItem(item, processor)
			return nil
		})
	}
	g.Wait()
	return results
}

func runItem[T, R any](item T, processor func(T) (R, error)) (res Result[R]) {
	defer func() {
		if r := recover(); r != nil {
			res = Result[R]{Err: fmt.Errorf("processor panic: %v", r)}
		}
	}()
	value, err := processor(item)
	return Result[R]{Value: value, Err: err}
}
