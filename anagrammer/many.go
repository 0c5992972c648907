package anagrammer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SolveMany runs independent queries against the same word list, at most
// threads at a time (threads <= 0 uses GOMAXPROCS). Results are in query
// order. The word list is shared read-only between the workers.
func SolveMany(ctx context.Context, words []string, queries []Query, threads int) ([]*Result, error) {
	if len(words) == 0 {
		return nil, ErrNoDictionary
	}
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}
	results := make([]*Result, len(queries))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i, q := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := SolveQuery(words, q)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
