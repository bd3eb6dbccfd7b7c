// Package algorithm is a demonstration client of the futures core, showing
// the shape of parallel algorithms (for_each, reduce, find, ...) built on
// top of it rather than inside it. It depends only on the public futures
// API.
package algorithm

import "github.com/sauravbiswasiupr/futures-core/futures"

// Reduce launches one async task per item via futures.Async, then folds the
// results left-to-right with combine, starting from seed. If ex is nil the
// process-wide default executor is used.
func Reduce[T, R any](items []T, seed R, mapFn func(T) (R, error), combine func(R, R) R, ex futures.Executor) (R, error) {
	tasks := make([]*futures.Future[R], len(items))
	for i, item := range items {
		item := item
		var opts []futures.AsyncOption
		if ex != nil {
			opts = append(opts, futures.WithAsyncExecutor(ex))
		}
		tasks[i] = futures.Async(func() (R, error) { return mapFn(item) }, opts...)
	}

	agg := futures.WhenAllSlice(tasks...)
	folded := futures.ThenAllSliceValues(agg, func(values []R) (R, error) {
		acc := seed
		for _, v := range values {
			acc = combine(acc, v)
		}
		return acc, nil
	})
	return folded.Get()
}
