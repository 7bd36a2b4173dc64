// Package filesystem enumerates the regular files below a root directory and
// filters them through caller supplied exclusion rules.
package filesystem

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/ZanzyTHEbar/jute-commons/jute/common"
	"github.com/ZanzyTHEbar/jute-commons/jute/filesystem/filters"
	"github.com/ZanzyTHEbar/jute-commons/jute/filesystem/options"
	"github.com/ZanzyTHEbar/jute-commons/jute/filesystem/paths"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Walker enumerates directory trees. A Walker holds no per-walk state, so one
// instance may serve concurrent walks on disjoint roots.
type Walker struct {
	reader       DirReader
	logger       zerolog.Logger
	excludedHook func(paths.Path)
	validation   *common.ValidationUtils
}

// WalkerOption allows for customization of Walker
type WalkerOption func(*Walker)

// WithLogger sets a custom logger
func WithLogger(logger zerolog.Logger) WalkerOption {
	return func(w *Walker) {
		w.logger = logger
	}
}

// WithReader replaces the host filesystem
func WithReader(reader DirReader) WalkerOption {
	return func(w *Walker) {
		if reader != nil {
			w.reader = reader
		}
	}
}

// WithExcludedHook registers fn to be called with every excluded file.
// fn may be called from several goroutines during EnumerateRoots.
func WithExcludedHook(fn func(paths.Path)) WalkerOption {
	return func(w *Walker) {
		w.excludedHook = fn
	}
}

func NewWalker(opts ...WalkerOption) *Walker {
	w := &Walker{
		reader:     OSReader{},
		logger:     zerolog.Nop(),
		validation: common.NewValidationUtils(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// walkStats is logged once a walk finishes
type walkStats struct {
	dirsVisited int
	filesKept   int
	excluded    int
}

// pendingDir is one entry of the depth-first worklist
type pendingDir struct {
	osPath string
	path   paths.Path
}

// Enumerate returns every regular file under root that no exclusion in opts
// matches. With opts.Recursive unset only the direct children of root are
// considered. Directories are never part of the result.
//
// Symbolic links to regular files are reported; links to directories are not
// followed. A missing root, or a root that is not a directory, fails with
// common.ErrNotFound. Any I/O error during the walk aborts it with
// common.ErrIOFailure and no partial result.
func (w *Walker) Enumerate(ctx context.Context, root string, opts options.TraversalOptions) (*paths.PathSet, error) {
	if err := w.validation.ValidatePathCharacters(root); err != nil {
		return nil, err
	}
	if err := w.validation.ValidateDirectoryExists(w.reader.Stat, root); err != nil {
		return nil, err
	}

	root = filepath.Clean(root)
	rootPath := paths.Parse(root)

	predicate, err := buildPredicate(root, rootPath, opts)
	if err != nil {
		return nil, err
	}

	logger := w.logger.With().
		Str("walk_id", uuid.NewString()).
		Str("root", root).
		Bool("recursive", opts.Recursive).
		Logger()

	start := time.Now()
	logger.Debug().Msg("starting directory walk")

	result := paths.NewPathSet()
	stats := walkStats{}
	stack := []pendingDir{{osPath: root, path: rootPath}}

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stats.dirsVisited++

		entries, err := w.reader.ReadDir(dir.osPath)
		if err != nil {
			return nil, common.WrapIOError(err, "read dir", dir.osPath)
		}

		// pushed in reverse so subdirectories pop in name order
		var subdirs []pendingDir
		for _, entry := range entries {
			osPath := filepath.Join(dir.osPath, entry.Name())
			entryPath := dir.path.Child(entry.Name())

			regular, isDir, err := w.classify(entry, osPath)
			if err != nil {
				return nil, err
			}

			if isDir {
				if opts.Recursive {
					subdirs = append(subdirs, pendingDir{osPath: osPath, path: entryPath})
				}
				continue
			}
			if !regular {
				continue
			}

			if predicate.Excluded(entryPath) {
				stats.excluded++
				logger.Trace().Str("path", osPath).Msg("excluded")
				if w.excludedHook != nil {
					w.excludedHook(entryPath)
				}
				continue
			}

			result.Add(entryPath)
			stats.filesKept++
		}

		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	logger.Debug().
		Int("dirs_visited", stats.dirsVisited).
		Int("files_kept", stats.filesKept).
		Int("files_excluded", stats.excluded).
		Dur("duration", time.Since(start)).
		Msg("directory walk completed")

	return result, nil
}

// classify reports whether entry is a regular file or a directory to descend
// into. Symlinks are resolved only to decide whether they point at a regular
// file; dangling links are neither.
func (w *Walker) classify(entry fs.DirEntry, osPath string) (regular, isDir bool, err error) {
	typ := entry.Type()
	switch {
	case typ.IsDir():
		return false, true, nil
	case typ.IsRegular():
		return true, false, nil
	case typ&fs.ModeSymlink == 0:
		return false, false, nil
	}

	info, err := w.reader.Stat(osPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, false, nil
		}
		return false, false, common.WrapIOError(err, "stat", osPath)
	}
	return info.Mode().IsRegular(), false, nil
}

// buildPredicate combines every exclusion source in opts.
func buildPredicate(root string, rootPath paths.Path, opts options.TraversalOptions) (filters.Predicate, error) {
	globs, err := filters.NewGlobFilter(rootPath, opts.ExcludeGlobs...)
	if err != nil {
		return nil, err
	}

	var patterns filters.Predicate
	if len(opts.IgnorePatterns) > 0 {
		patterns = filters.NewIgnoreFilter(rootPath, opts.IgnorePatterns...)
	}

	var ignoreFile filters.Predicate
	if opts.IgnoreFile != "" {
		f, err := filters.LoadIgnoreFile(rootPath, filepath.Join(root, opts.IgnoreFile))
		if err != nil {
			return nil, err
		}
		if f != nil {
			ignoreFile = f
		}
	}

	return filters.Any(
		filters.NewFragmentFilter(opts.ExcludeFragments...),
		filters.NewFilenameFilter(opts.ExcludeFilenames...),
		globs,
		patterns,
		ignoreFile,
	), nil
}
