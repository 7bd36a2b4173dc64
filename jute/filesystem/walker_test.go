package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/jute-commons/jute/common"
	"github.com/ZanzyTHEbar/jute-commons/jute/filesystem/options"
	"github.com/ZanzyTHEbar/jute-commons/jute/filesystem/paths"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTree describes a fixture built by constructDirTree
type testTree struct {
	root      string
	created   int            // regular files created below root
	atRoot    int            // regular files created directly in root
	basenames map[string]int // basename -> occurrences
}

// constructDirTree creates a chain of 1..5 nested directories ("0/1/2...")
// under root, each holding 1..10 empty files named "N.txt", plus a couple of
// files directly in root.
func constructDirTree(t *testing.T, rng *rand.Rand) testTree {
	t.Helper()

	tree := testTree{root: t.TempDir(), basenames: make(map[string]int)}
	create := func(path string) {
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		tree.created++
		tree.basenames[filepath.Base(path)]++
	}

	for i := 0; i < 2; i++ {
		create(filepath.Join(tree.root, fmt.Sprintf("root%d.txt", i)))
		tree.atRoot++
	}

	dir := tree.root
	levels := rng.Intn(5) + 1
	for level := 0; level < levels; level++ {
		dir = filepath.Join(dir, fmt.Sprintf("%d", level))
		require.NoError(t, os.Mkdir(dir, 0o755))

		for n := rng.Intn(10) + 1; n > 0; n-- {
			create(filepath.Join(dir, fmt.Sprintf("%d.txt", n)))
		}
	}

	return tree
}

func TestGetDirectoryTree_Recursive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 5; i++ {
		t.Run(fmt.Sprintf("tree%d", i), func(t *testing.T) {
			tree := constructDirTree(t, rng)

			result, err := GetDirectoryTree(tree.root, true)
			require.NoError(t, err)
			assert.Equal(t, tree.created, result.Len())

			result.Walk(func(p paths.Path) bool {
				info, err := os.Stat(p.String())
				require.NoError(t, err)
				assert.True(t, info.Mode().IsRegular(), "%s must be a regular file", p)
				return false
			})
		})
	}
}

func TestGetDirectoryTree_NonRecursive(t *testing.T) {
	tree := constructDirTree(t, rand.New(rand.NewSource(2)))

	result, err := GetDirectoryTree(tree.root, false)
	require.NoError(t, err)
	assert.Equal(t, tree.atRoot, result.Len())

	rootPath := paths.Parse(tree.root)
	for _, p := range result.Paths() {
		assert.True(t, p.Parent().Equal(rootPath), "%s is not a direct child of the root", p)
	}
}

func TestGetDirectoryTreeExcluding(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 5; i++ {
		t.Run(fmt.Sprintf("tree%d", i), func(t *testing.T) {
			tree := constructDirTree(t, rng)

			excluded := make([]string, rng.Intn(3)+1)
			expectedDrop := 0
			for n := range excluded {
				excluded[n] = fmt.Sprintf("%d.txt", n)
				expectedDrop += tree.basenames[excluded[n]]
			}

			all, err := GetDirectoryTree(tree.root, true)
			require.NoError(t, err)
			filtered, err := GetDirectoryTreeExcluding(tree.root, true, excluded...)
			require.NoError(t, err)

			assert.Equal(t, all.Len()-expectedDrop, filtered.Len())
			for _, p := range filtered.Paths() {
				assert.NotContains(t, excluded, p.Base())
			}
			for _, p := range all.Difference(filtered).Paths() {
				assert.Contains(t, excluded, p.Base())
			}
		})
	}
}

func TestGetDirectoryTreeExcludingPaths(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{
		"src/main.go",
		"src/vendor/lib/lib.go",
		"vendor/other.go",
		"docs/src/readme.md",
		"build/out/src/gen.go",
	} {
		full := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, nil, 0o644))
	}

	result, err := GetDirectoryTreeExcludingPaths(root, true, "vendor")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Len())

	// "build/gen.go" skips "out" and "src" but still appears in order
	result, err = GetDirectoryTreeExcludingPaths(root, true, "build/gen.go", "docs/readme.md")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Len())
	assert.False(t, result.Has(paths.Parse(filepath.Join(root, "build/out/src/gen.go"))))
	assert.False(t, result.Has(paths.Parse(filepath.Join(root, "docs/src/readme.md"))))

	// order matters: no file has "src" before "docs"
	result, err = GetDirectoryTreeExcludingPaths(root, true, "src/docs")
	require.NoError(t, err)
	assert.Equal(t, 5, result.Len())
}

func TestEnumerate_Errors(t *testing.T) {
	root := t.TempDir()

	t.Run("missing root", func(t *testing.T) {
		result, err := GetDirectoryTree(filepath.Join(root, "missing"), true)
		assert.ErrorIs(t, err, common.ErrNotFound)
		assert.Nil(t, result, "a missing root is an error, not an empty set")
	})

	t.Run("root is a file", func(t *testing.T) {
		file := filepath.Join(root, "file.txt")
		require.NoError(t, os.WriteFile(file, nil, 0o644))

		_, err := GetDirectoryTree(file, true)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("empty root", func(t *testing.T) {
		_, err := GetDirectoryTree("", true)
		assert.ErrorIs(t, err, common.ErrInvalidArgument)
	})

	t.Run("invalid glob", func(t *testing.T) {
		_, err := NewWalker().Enumerate(context.Background(), root, options.TraversalOptions{
			ExcludeGlobs: []string{"[unterminated"},
		})
		assert.ErrorIs(t, err, common.ErrInvalidArgument)
	})
}

// failingReader fails ReadDir for one directory
type failingReader struct {
	OSReader
	failDir string
}

func (r failingReader) ReadDir(name string) ([]fs.DirEntry, error) {
	if name == r.failDir {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return r.OSReader.ReadDir(name)
}

func TestEnumerate_IOFailureAbortsWalk(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "locked")
	require.NoError(t, os.Mkdir(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), nil, 0o644))

	w := NewWalker(WithReader(failingReader{failDir: sub}))

	result, err := w.Enumerate(context.Background(), root, options.TraversalOptions{Recursive: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrIOFailure)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Nil(t, result, "no partial result on failure")

	// without descending the failing directory is never read
	result, err = w.Enumerate(context.Background(), root, options.TraversalOptions{Recursive: false})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Len())
}

func TestEnumerate_Symlinks(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()

	target := filepath.Join(outside, "target.txt")
	require.NoError(t, os.WriteFile(target, nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(outside, "hidden.txt"), nil, 0o644))

	if err := os.Symlink(target, filepath.Join(root, "file-link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "dir-link")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "gone"), filepath.Join(root, "dangling")))
	require.NoError(t, os.WriteFile(filepath.Join(root, "plain.txt"), nil, 0o644))

	result, err := GetDirectoryTree(root, true)
	require.NoError(t, err)

	rootPath := paths.Parse(root)
	assert.Equal(t, 2, result.Len())
	assert.True(t, result.Has(rootPath.Child("file-link")))
	assert.True(t, result.Has(rootPath.Child("plain.txt")))
}

func TestEnumerate_DirectoriesNeverReported(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b", "c"), 0o755))

	result, err := GetDirectoryTree(root, true)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Len())
}

func TestEnumerate_IgnoreSources(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"keep.go", "a.tmp", "sub/b.tmp", "debug.log", "sub/trace.log", "cache/x.bin"} {
		full := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, nil, 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, ".juteignore"), []byte("cache/\n"), 0o644))

	opts := options.DefaultTraversalOptions()
	opts.ExcludeGlobs = []string{"**.tmp"}
	opts.IgnorePatterns = []string{"*.log"}

	result, err := NewWalker().Enumerate(context.Background(), root, opts)
	require.NoError(t, err)

	rootPath := paths.Parse(root)
	assert.ElementsMatch(t,
		[]string{rootPath.Child("keep.go").Key(), rootPath.Child(".juteignore").Key()},
		keys(result))

	opts.IgnoreFile = ""
	result, err = NewWalker().Enumerate(context.Background(), root, opts)
	require.NoError(t, err)
	assert.True(t, result.Has(rootPath.Join("cache", "x.bin")), "ignore file disabled")
}

func TestEnumerate_ExcludedHookAndLogging(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "0.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "1.txt"), nil, 0o644))

	var buf bytes.Buffer
	var excluded []string
	w := NewWalker(
		WithLogger(zerolog.New(&buf).Level(zerolog.TraceLevel)),
		WithExcludedHook(func(p paths.Path) { excluded = append(excluded, p.Base()) }),
	)

	result, err := w.Enumerate(context.Background(), root, options.TraversalOptions{
		ExcludeFilenames: []string{"0.txt"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Len())
	assert.Equal(t, []string{"0.txt"}, excluded)

	logs := buf.String()
	assert.Contains(t, logs, `"walk_id"`)
	assert.Contains(t, logs, "directory walk completed")
	assert.Contains(t, logs, `"files_excluded":1`)
}

func TestEnumerate_ContextCancelled(t *testing.T) {
	root := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewWalker().Enumerate(ctx, root, options.TraversalOptions{Recursive: true})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
}

func TestEnumerate_RelativeRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "rel", "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "rel", "sub", "f.txt"), nil, 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	result, err := GetDirectoryTree("./rel/", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"rel/sub/f.txt"}, keys(result))
}

func keys(s *paths.PathSet) []string {
	out := make([]string, 0, s.Len())
	for _, p := range s.Paths() {
		out = append(out, p.Key())
	}
	return out
}

func TestEnumerate_ResultsAreIndependent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), nil, 0o644))

	first, err := GetDirectoryTree(root, true)
	require.NoError(t, err)
	first.Add(paths.Parse("/injected"))

	second, err := GetDirectoryTree(root, true)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Len())
	assert.False(t, strings.Contains(strings.Join(keys(second), ","), "injected"))
}
