package filesystem

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	internal "github.com/ZanzyTHEbar/jute-commons/jute"
	"github.com/ZanzyTHEbar/jute-commons/jute/filesystem/options"
	"github.com/ZanzyTHEbar/jute-commons/jute/filesystem/paths"

	"github.com/sourcegraph/conc/pool"
)

// EnumerateRoots walks several roots at once, at most opts.MaxConcurrentRoots
// at a time. Each walk is the same single-threaded Enumerate, so the roots
// should be disjoint. Results are keyed by the cleaned root. The first failure
// cancels the remaining walks and is returned alone.
func (w *Walker) EnumerateRoots(ctx context.Context, roots []string, opts options.TraversalOptions) (map[string]*paths.PathSet, error) {
	workers := opts.MaxConcurrentRoots
	if workers < 1 {
		workers = internal.DefaultMaxConcurrentRoots
	}

	unique := make([]string, 0, len(roots))
	seen := make(map[string]struct{}, len(roots))
	for _, root := range roots {
		if root != "" {
			root = filepath.Clean(root)
		}
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		unique = append(unique, root)
	}

	var mu sync.Mutex
	results := make(map[string]*paths.PathSet, len(unique))

	p := pool.New().
		WithMaxGoroutines(workers).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	for _, root := range unique {
		root := root // per-iteration copy; go directive is < 1.22
		p.Go(func(ctx context.Context) error {
			set, err := w.Enumerate(ctx, root, opts)
			if err != nil {
				return fmt.Errorf("enumerate %s: %w", root, err)
			}

			mu.Lock()
			results[root] = set
			mu.Unlock()
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	w.logger.Debug().
		Int("roots", len(unique)).
		Int("workers", workers).
		Msg("multi-root enumeration completed")

	return results, nil
}
