package quadtree

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FindInCircles runs FindInCircle for each circle, using up to workers goroutines
// (no limit if workers <= 0). Results are returned in the order of circles.
//
// q must not be inserted into while FindInCircles runs.
// If ctx is done before all circles are searched, the context's error is returned.
func (q *Quadtree[T]) FindInCircles(ctx context.Context, circles []Circle, workers int) ([][]T, error) {
	results := make([][]T, len(circles))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, c := range circles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = q.FindInCircle(c.Center.X, c.Center.Y, c.Radius)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
