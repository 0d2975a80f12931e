// path.go - Segment and Path: an address within a parsed document.
//
// Grounded in the source project's path.rs Segment/Path pair. A Path is an
// immutable, ordered sequence of Segments rooted at the document; Push
// returns a new Path rather than mutating the receiver.
package diffyml

import (
	"fmt"
	"strconv"
	"strings"
)

// SegmentKind distinguishes the two Segment variants.
type SegmentKind int

const (
	// SegmentField addresses a mapping entry by its key value.
	SegmentField SegmentKind = iota
	// SegmentIndex addresses a sequence element by position.
	SegmentIndex
)

// Segment is either Field(value) for a mapping key or Index(n) for a
// non-negative sequence position. FieldValue holds the raw key value
// (almost always a string, per the Value model's mapping-key convention).
type Segment struct {
	Kind       SegmentKind
	FieldValue interface{}
	Index      int
}

// Field constructs a Field segment.
func Field(name interface{}) Segment {
	return Segment{Kind: SegmentField, FieldValue: name}
}

// Index constructs an Index segment.
func IndexSegment(n int) Segment {
	return Segment{Kind: SegmentIndex, Index: n}
}

// IsField reports whether the segment addresses a mapping key.
func (s Segment) IsField() bool { return s.Kind == SegmentField }

// IsIndex reports whether the segment addresses a sequence position.
func (s Segment) IsIndex() bool { return s.Kind == SegmentIndex }

// Equal reports structural equality between two segments.
func (s Segment) Equal(o Segment) bool {
	if s.Kind != o.Kind {
		return false
	}
	if s.Kind == SegmentIndex {
		return s.Index == o.Index
	}
	return s.FieldValue == o.FieldValue
}

// Path is an immutable ordered sequence of Segments rooted at the document.
// The empty Path denotes the document root.
type Path struct {
	segments []Segment
}

// RootPath returns the empty path (the document root).
func RootPath() Path {
	return Path{}
}

// NewPath builds a Path from an explicit segment list.
func NewPath(segs ...Segment) Path {
	cp := make([]Segment, len(segs))
	copy(cp, segs)
	return Path{segments: cp}
}

// Push returns a new Path with seg appended; the receiver is unchanged.
func (p Path) Push(seg Segment) Path {
	next := make([]Segment, len(p.segments)+1)
	copy(next, p.segments)
	next[len(p.segments)] = seg
	return Path{segments: next}
}

// PushField is a convenience wrapper around Push(Field(name)).
func (p Path) PushField(name interface{}) Path {
	return p.Push(Field(name))
}

// PushIndex is a convenience wrapper around Push(Index(n)).
func (p Path) PushIndex(n int) Path {
	return p.Push(IndexSegment(n))
}

// Segments returns the path's segments. The returned slice must not be
// mutated by callers.
func (p Path) Segments() []Segment {
	return p.segments
}

// Len returns the number of segments.
func (p Path) Len() int {
	return len(p.segments)
}

// Equal reports whether two paths address the same location.
func (p Path) Equal(o Path) bool {
	if len(p.segments) != len(o.segments) {
		return false
	}
	for i, s := range p.segments {
		if !s.Equal(o.segments[i]) {
			return false
		}
	}
	return true
}

// JQLike renders the path in jq-style notation: ".field" for string field
// segments and "[n]" for index segments. A non-string field key triggers a
// programmer error, per §4.2 ("must trigger a programmer error").
func (p Path) JQLike() string {
	var sb strings.Builder
	for _, seg := range p.segments {
		switch seg.Kind {
		case SegmentField:
			name, ok := seg.FieldValue.(string)
			if !ok {
				panic(fmt.Sprintf("diffyml: path.JQLike: non-string field key %#v cannot be rendered", seg.FieldValue))
			}
			sb.WriteByte('.')
			sb.WriteString(name)
		case SegmentIndex:
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(seg.Index))
			sb.WriteByte(']')
		}
	}
	return sb.String()
}

// String implements fmt.Stringer via JQLike, falling back to a safe
// representation for non-string keys instead of panicking (useful for
// %v debug output where a panic would be unwelcome).
func (p Path) String() string {
	var sb strings.Builder
	for _, seg := range p.segments {
		switch seg.Kind {
		case SegmentField:
			sb.WriteByte('.')
			sb.WriteString(fmt.Sprintf("%v", seg.FieldValue))
		case SegmentIndex:
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(seg.Index))
			sb.WriteByte(']')
		}
	}
	return sb.String()
}
