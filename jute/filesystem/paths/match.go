package paths

// Contains reports whether the segments of fragment occur in p in the same
// relative order, not necessarily next to each other. "foo/bar" and
// "foo/x/bar" both contain "foo/bar"; "bar/foo" does not. An empty fragment
// contains nothing, so it never causes an exclusion.
func (p Path) Contains(fragment Path) bool {
	if len(fragment.segments) == 0 || len(fragment.segments) > len(p.segments) {
		return false
	}

	j := 0
	for _, seg := range p.segments {
		if seg == fragment.segments[j] {
			j++
			if j == len(fragment.segments) {
				return true
			}
		}
	}
	return false
}

// DoesPathMatch reports whether any exclusion fragment is a subsequence of p.
func DoesPathMatch(p Path, exclude []Path) bool {
	for _, e := range exclude {
		if p.Contains(e) {
			return true
		}
	}
	return false
}

// ParseAll parses every raw fragment, dropping the ones with no segments.
func ParseAll(raw []string) []Path {
	out := make([]Path, 0, len(raw))
	for _, r := range raw {
		if p := Parse(r); p.Len() > 0 {
			out = append(out, p)
		}
	}
	return out
}
