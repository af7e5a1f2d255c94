package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// BatchItem is the outcome for one record file of a batch.
type BatchItem struct {
	Path   string
	Result *Result
	Err    error
}

// ExecuteBatch runs ExecuteFile for every path with at most concurrency
// generations in flight. Each generation is independent; one failing record
// does not cancel the others. Items are returned in input order.
func (r *Runner) ExecuteBatch(ctx context.Context, paths []string, opts Options, concurrency int) []BatchItem {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	items := make([]BatchItem, len(paths))
	var done atomic.Int32

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, path := range paths {
		items[i].Path = path
		g.Go(func() error {
			res, err := r.ExecuteFile(ctx, path, opts)
			items[i].Result, items[i].Err = res, err
			if r.Progress != nil {
				r.Progress(int(done.Add(1)), len(paths))
			}
			return nil
		})
	}
	_ = g.Wait()
	return items
}

// BatchErr joins the failures of a batch, or returns nil.
func BatchErr(items []BatchItem) error {
	var failed int
	var first error
	for _, it := range items {
		if it.Err != nil {
			failed++
			if first == nil {
				first = fmt.Errorf("%s: %w", it.Path, it.Err)
			}
		}
	}
	if failed == 0 {
		return nil
	}
	if failed == 1 {
		return first
	}
	return fmt.Errorf("%d of %d reports failed; first: %w", failed, len(items), first)
}
