package value

import "strconv"

// PathSegment is one step of a KeyPath: either a map key or an array
// index, mirroring spec.md's "string | non-negative integer" union as a
// tagged struct so hooks never type-switch on a dynamic path element.
type PathSegment struct {
	key      string
	index    int
	isString bool
}

// StringSegment constructs a map-key path segment.
func StringSegment(key string) PathSegment { return PathSegment{key: key, isString: true} }

// IndexSegment constructs an array-index path segment.
func IndexSegment(index int) PathSegment { return PathSegment{index: index} }

// String returns the key and true if this segment is a map key.
func (s PathSegment) String() (string, bool) { return s.key, s.isString }

// Index returns the index and true if this segment is an array index.
func (s PathSegment) Index() (int, bool) { return s.index, !s.isString }

func (s PathSegment) render() string {
	if s.isString {
		return s.key
	}
	return "[" + strconv.Itoa(s.index) + "]"
}

// KeyPath is the ordered traversal path from the root value to the
// current point, passed to transform hooks and never persisted beyond
// the hook call that received it (spec.md §3).
type KeyPath []PathSegment

// WithKey returns a new KeyPath with a string segment appended. The
// receiver's backing array is never mutated.
func (p KeyPath) WithKey(key string) KeyPath {
	return append(append(KeyPath{}, p...), StringSegment(key))
}

// WithIndex returns a new KeyPath with an index segment appended.
func (p KeyPath) WithIndex(i int) KeyPath {
	return append(append(KeyPath{}, p...), IndexSegment(i))
}

// String renders the path for diagnostics, e.g. "a.b[2].c".
func (p KeyPath) String() string {
	if len(p) == 0 {
		return "$"
	}
	out := ""
	for i, seg := range p {
		if _, ok := seg.String(); ok && i > 0 {
			out += "."
		}
		out += seg.render()
	}
	return out
}
