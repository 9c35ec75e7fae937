package engine

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"auh/internal/build"
	"auh/internal/pkgname"
)

// CountAURPackages queries the catalog for each explicitly installed package
// and counts those the catalog knows about. found, when non-nil, is called
// for every match. Queries run concurrently, at most limit at a time.
//
// Per-package query errors and invalid names are skipped rather than failing
// the whole census; the count is a lower bound when the catalog is flaky.
func CountAURPackages(ctx context.Context, names []string, catalog build.Catalog, limit int, found func(name string)) (int, error) {
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	var mu sync.Mutex
	count := 0

	for _, name := range names {
		if !pkgname.Valid(name) {
			continue
		}
		g.Go(func() error {
			exists, err := catalog.Exists(gctx, name)
			if err != nil || !exists {
				return nil
			}
			mu.Lock()
			count++
			if found != nil {
				found(name)
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return count, err
	}
	return count, ctx.Err()
}
