package bincheck

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// CheckAll checks the binaries with up to jobs checks running in
// parallel (no limit if jobs is 0), each with its own resolution state.
// The results are returned in the order of the binaries. The first
// error aborts the remaining checks.
func (c *Checker) CheckAll(ctx context.Context, binaries []string, preload []string, jobs int) ([]*Result, error) {
	results := make([]*Result, len(binaries))

	routines, routinesCtx := errgroup.WithContext(ctx)
	if jobs > 0 {
		routines.SetLimit(jobs)
	}
	for i, binary := range binaries {
		i, binary := i, binary
		routines.Go(func() error {
			res, err := c.Check(routinesCtx, binary, preload)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	err := routines.Wait()
	if err != nil {
		return nil, err
	}
	return results, nil
}
