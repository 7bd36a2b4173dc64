package paths

import (
	"strings"

	"github.com/armon/go-radix"
)

// PathSet is an unordered-by-contract set of paths. It is backed by a patricia
// tree keyed on Path.Key, which gives deterministic iteration order and cheap
// prefix queries. A PathSet is not safe for concurrent mutation.
type PathSet struct {
	tree *radix.Tree
}

// NewPathSet creates a set holding the given paths.
func NewPathSet(initial ...Path) *PathSet {
	s := &PathSet{tree: radix.New()}
	for _, p := range initial {
		s.Add(p)
	}
	return s
}

// Add inserts p and reports whether it was not already present.
func (s *PathSet) Add(p Path) bool {
	_, updated := s.tree.Insert(p.Key(), p)
	return !updated
}

// Has reports whether p is a member.
func (s *PathSet) Has(p Path) bool {
	_, ok := s.tree.Get(p.Key())
	return ok
}

// Remove deletes p and reports whether it was present.
func (s *PathSet) Remove(p Path) bool {
	_, ok := s.tree.Delete(p.Key())
	return ok
}

// Len is the number of members.
func (s *PathSet) Len() int {
	if s == nil || s.tree == nil {
		return 0
	}
	return s.tree.Len()
}

// Paths returns every member ordered by key.
func (s *PathSet) Paths() []Path {
	out := make([]Path, 0, s.Len())
	s.Walk(func(p Path) bool {
		out = append(out, p)
		return false
	})
	return out
}

// Strings returns the OS form of every member ordered by key.
func (s *PathSet) Strings() []string {
	out := make([]string, 0, s.Len())
	s.Walk(func(p Path) bool {
		out = append(out, p.String())
		return false
	})
	return out
}

// Walk calls fn for every member in key order until fn returns true.
func (s *PathSet) Walk(fn func(Path) bool) {
	if s.Len() == 0 {
		return
	}
	s.tree.Walk(func(_ string, v interface{}) bool {
		return fn(v.(Path))
	})
}

// WithPrefix returns the members located at or below dir.
func (s *PathSet) WithPrefix(dir Path) []Path {
	var out []Path
	if s.Len() == 0 {
		return out
	}

	key := dir.Key()
	prefix := key
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	if v, ok := s.tree.Get(key); ok {
		out = append(out, v.(Path))
	}
	s.tree.WalkPrefix(prefix, func(k string, v interface{}) bool {
		if k != key {
			out = append(out, v.(Path))
		}
		return false
	})
	return out
}

// Difference returns the members of s that are not in other.
func (s *PathSet) Difference(other *PathSet) *PathSet {
	out := NewPathSet()
	s.Walk(func(p Path) bool {
		if other == nil || !other.Has(p) {
			out.Add(p)
		}
		return false
	})
	return out
}
