// Package paths models filesystem locations as ordered segment sequences and
// implements the fragment-subsequence matching used for path exclusion.
package paths

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Path is an immutable, ordered sequence of path segments. Two paths are
// equal when they are both rooted (or both relative) and hold the same segments.
type Path struct {
	segments []string
	rooted   bool
}

// Parse splits raw on both '/' and the OS separator. Empty and "." segments
// are dropped, ".." is kept verbatim.
func Parse(raw string) Path {
	raw = strings.TrimSpace(raw)
	rooted := filepath.IsAbs(raw) || strings.HasPrefix(raw, "/")

	var volume string
	if v := filepath.VolumeName(raw); v != "" {
		volume = v
		raw = raw[len(v):]
	}

	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '/' || r == os.PathSeparator
	})

	segments := make([]string, 0, len(fields)+1)
	if volume != "" {
		segments = append(segments, volume)
	}
	for _, f := range fields {
		if f == "." {
			continue
		}
		segments = append(segments, f)
	}

	return Path{segments: segments, rooted: rooted}
}

// New builds a relative path from already split segments. Empty segments are skipped.
func New(segments ...string) Path {
	p := Path{segments: make([]string, 0, len(segments))}
	for _, s := range segments {
		if s != "" {
			p.segments = append(p.segments, s)
		}
	}
	return p
}

// Segments returns a copy of the path segments.
func (p Path) Segments() []string {
	return slices.Clone(p.segments)
}

// Len is the number of segments.
func (p Path) Len() int { return len(p.segments) }

// IsZero reports whether p has no segments and is not rooted.
func (p Path) IsZero() bool { return len(p.segments) == 0 && !p.rooted }

// IsRooted reports whether p was parsed from an absolute path.
func (p Path) IsRooted() bool { return p.rooted }

// Base returns the final segment, or "" for an empty path.
func (p Path) Base() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[len(p.segments)-1]
}

// Parent returns p without its final segment.
func (p Path) Parent() Path {
	if len(p.segments) == 0 {
		return p
	}
	return Path{segments: slices.Clone(p.segments[:len(p.segments)-1]), rooted: p.rooted}
}

// Join appends segments to p. Each argument is parsed, so "a/b" adds two segments.
func (p Path) Join(elems ...string) Path {
	out := Path{segments: slices.Clone(p.segments), rooted: p.rooted}
	for _, e := range elems {
		out.segments = append(out.segments, Parse(e).segments...)
	}
	return out
}

// Child appends a single directory entry name verbatim, without parsing it.
func (p Path) Child(name string) Path {
	segments := make([]string, len(p.segments), len(p.segments)+1)
	copy(segments, p.segments)
	return Path{segments: append(segments, name), rooted: p.rooted}
}

// Rel returns the segments of p below base, and false when base is not a prefix of p.
func (p Path) Rel(base Path) (Path, bool) {
	if base.rooted != p.rooted || len(base.segments) > len(p.segments) {
		return Path{}, false
	}
	if !slices.Equal(base.segments, p.segments[:len(base.segments)]) {
		return Path{}, false
	}
	return Path{segments: slices.Clone(p.segments[len(base.segments):])}, true
}

// Equal reports segment-sequence equality.
func (p Path) Equal(other Path) bool {
	return p.rooted == other.rooted && slices.Equal(p.segments, other.segments)
}

// Key is the slash separated form used for set membership and ordering.
func (p Path) Key() string {
	key := strings.Join(p.segments, "/")
	if p.rooted && filepath.VolumeName(p.first()) == "" {
		return "/" + key
	}
	return key
}

// String renders p with the OS separator.
func (p Path) String() string {
	if len(p.segments) == 0 {
		if p.rooted {
			return string(os.PathSeparator)
		}
		return "."
	}

	s := strings.Join(p.segments, string(os.PathSeparator))
	if filepath.VolumeName(p.first()) != "" {
		// volume names already carry the root ("C:" + "\")
		return p.first() + string(os.PathSeparator) + strings.Join(p.segments[1:], string(os.PathSeparator))
	}
	if p.rooted {
		return string(os.PathSeparator) + s
	}
	return s
}

func (p Path) first() string {
	if len(p.segments) == 0 {
		return ""
	}
	return p.segments[0]
}
