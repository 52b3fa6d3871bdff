package analysis

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/growthlab/internal/growth"
)

// Ensemble simulates one path per initial capital level concurrently over a
// single shared model. paths[i] starts at k0s[i]. The first failure cancels
// the runs not yet started.
func Ensemble(ctx context.Context, m *growth.Model, k0s []float64, steps int) ([]growth.Path, error) {
	if len(k0s) == 0 {
		return nil, fmt.Errorf("ensemble: no initial capital levels")
	}

	paths := make([]growth.Path, len(k0s))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, k0 := range k0s {
		i, k0 := i, k0
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path, err := m.Simulate(k0, steps)
			if err != nil {
				return fmt.Errorf("ensemble k0=%g: %w", k0, err)
			}
			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
