// Package filters builds the exclusion predicates consulted by the directory walker.
package filters

import (
	"fmt"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/jute-commons/jute/common"
	"github.com/ZanzyTHEbar/jute-commons/jute/filesystem/paths"

	"github.com/gobwas/glob"
	ignore "github.com/sabhiram/go-gitignore"
)

// Predicate decides whether a discovered file is dropped from a walk result.
type Predicate interface {
	Excluded(p paths.Path) bool
}

// PredicateFunc adapts a plain function to Predicate.
type PredicateFunc func(p paths.Path) bool

func (f PredicateFunc) Excluded(p paths.Path) bool { return f(p) }

// None excludes nothing.
var None Predicate = PredicateFunc(func(paths.Path) bool { return false })

// FragmentFilter excludes a path when any fragment is a subsequence of its segments.
type FragmentFilter struct {
	fragments []paths.Path
}

// NewFragmentFilter parses raw fragments such as "foo/bar" or "test".
func NewFragmentFilter(raw ...string) *FragmentFilter {
	return &FragmentFilter{fragments: paths.ParseAll(raw)}
}

// NewFragmentFilterFromPaths uses already parsed fragments.
func NewFragmentFilterFromPaths(fragments []paths.Path) *FragmentFilter {
	kept := make([]paths.Path, 0, len(fragments))
	for _, f := range fragments {
		if f.Len() > 0 {
			kept = append(kept, f)
		}
	}
	return &FragmentFilter{fragments: kept}
}

func (f *FragmentFilter) Excluded(p paths.Path) bool {
	return paths.DoesPathMatch(p, f.fragments)
}

// Len is the number of usable fragments.
func (f *FragmentFilter) Len() int { return len(f.fragments) }

// FilenameFilter excludes a path whose final segment equals one of the names.
type FilenameFilter struct {
	names map[string]struct{}
}

func NewFilenameFilter(names ...string) *FilenameFilter {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return &FilenameFilter{names: set}
}

func (f *FilenameFilter) Excluded(p paths.Path) bool {
	_, ok := f.names[p.Base()]
	return ok
}

func (f *FilenameFilter) Len() int { return len(f.names) }

// GlobFilter matches '/'-separated globs against the path relative to root.
// Paths outside root are matched on their full key.
type GlobFilter struct {
	root  paths.Path
	globs []glob.Glob
}

func NewGlobFilter(root paths.Path, patterns ...string) (*GlobFilter, error) {
	f := &GlobFilter{root: root}
	for _, pat := range patterns {
		pat = strings.TrimSpace(pat)
		if pat == "" {
			continue
		}
		g, err := glob.Compile(pat, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: glob %q: %v", common.ErrInvalidArgument, pat, err)
		}
		f.globs = append(f.globs, g)
	}
	return f, nil
}

func (f *GlobFilter) Excluded(p paths.Path) bool {
	rel := relativeKey(f.root, p)
	for _, g := range f.globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

func (f *GlobFilter) Len() int { return len(f.globs) }

// IgnoreFilter applies gitignore rules to the path relative to root.
type IgnoreFilter struct {
	root    paths.Path
	matcher *ignore.GitIgnore
}

// NewIgnoreFilter compiles gitignore style lines.
func NewIgnoreFilter(root paths.Path, lines ...string) *IgnoreFilter {
	return &IgnoreFilter{root: root, matcher: ignore.CompileIgnoreLines(lines...)}
}

// LoadIgnoreFile compiles the ignore file at path. A missing file yields (nil, nil).
func LoadIgnoreFile(root paths.Path, path string) (*IgnoreFilter, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, common.WrapIOError(err, "stat ignore file", path)
	}

	matcher, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, common.WrapIOError(err, "read ignore file", path)
	}
	return &IgnoreFilter{root: root, matcher: matcher}, nil
}

func (f *IgnoreFilter) Excluded(p paths.Path) bool {
	return f.matcher.MatchesPath(relativeKey(f.root, p))
}

// Any excludes a path when at least one of the predicates does. Nil
// predicates are skipped; with nothing left Any returns None.
func Any(predicates ...Predicate) Predicate {
	kept := make(anyOf, 0, len(predicates))
	for _, p := range predicates {
		if p == nil || isEmpty(p) {
			continue
		}
		kept = append(kept, p)
	}

	switch len(kept) {
	case 0:
		return None
	case 1:
		return kept[0]
	}
	return kept
}

type anyOf []Predicate

func (a anyOf) Excluded(p paths.Path) bool {
	for _, pred := range a {
		if pred.Excluded(p) {
			return true
		}
	}
	return false
}

type sized interface{ Len() int }

// isEmpty also catches typed nil pointers wrapped in the interface.
func isEmpty(p Predicate) bool {
	switch v := p.(type) {
	case *FragmentFilter:
		return v == nil || v.Len() == 0
	case *FilenameFilter:
		return v == nil || v.Len() == 0
	case *GlobFilter:
		return v == nil || v.Len() == 0
	case *IgnoreFilter:
		return v == nil
	case sized:
		return v.Len() == 0
	}
	return false
}

func relativeKey(root, p paths.Path) string {
	if rel, ok := p.Rel(root); ok {
		return rel.Key()
	}
	return p.Key()
}
