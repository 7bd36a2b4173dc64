package filesystem

import (
	"context"

	"github.com/ZanzyTHEbar/jute-commons/jute/filesystem/options"
	"github.com/ZanzyTHEbar/jute-commons/jute/filesystem/paths"
)

var defaultWalker = NewWalker()

// GetDirectoryTree returns every regular file under root.
func GetDirectoryTree(root string, recursive bool) (*paths.PathSet, error) {
	return defaultWalker.Enumerate(context.Background(), root, options.TraversalOptions{
		Recursive: recursive,
	})
}

// GetDirectoryTreeExcluding is GetDirectoryTree without the files whose name
// equals one of excludeFilenames, wherever they live in the tree.
func GetDirectoryTreeExcluding(root string, recursive bool, excludeFilenames ...string) (*paths.PathSet, error) {
	return defaultWalker.Enumerate(context.Background(), root, options.TraversalOptions{
		Recursive:        recursive,
		ExcludeFilenames: excludeFilenames,
	})
}

// GetDirectoryTreeExcludingPaths is GetDirectoryTree without the files whose
// path contains one of the fragments as an in-order segment subsequence.
func GetDirectoryTreeExcludingPaths(root string, recursive bool, fragments ...string) (*paths.PathSet, error) {
	return defaultWalker.Enumerate(context.Background(), root, options.TraversalOptions{
		Recursive:        recursive,
		ExcludeFragments: fragments,
	})
}
