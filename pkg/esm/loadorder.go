package esm

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// LoadOrderOptions configures DecodeLoadOrder.
type LoadOrderOptions struct {
	Options

	// Workers caps how many files are decoded at once. Zero selects
	// GOMAXPROCS.
	Workers int
}

// DecodeLoadOrder reads every file in paths concurrently, one Reader per
// file, resolving record ids through table. The table is shared read-only
// by all readers. Results are returned in the order of paths. The first
// fatal error cancels the remaining files.
func DecodeLoadOrder(ctx context.Context, paths []string, table RemapTable, opts LoadOrderOptions) ([]*File, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	fileOpts := opts.Options
	fileOpts.Remap = table

	files := make([]*File, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := ReadFile(ctx, path, fileOpts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return files, err
	}
	return files, nil
}
