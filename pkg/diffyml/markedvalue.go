// markedvalue.go - MarkedValue: a Value annotated with its source span.
//
// Grounded in the source project's node.rs MarkedYamlOwned wrapper. Built
// as a second walk over the same yaml.Node tree nodeToInterface already
// walks (ordered_map.go), so the diff engine keeps working on plain
// interface{} values while the Renderer can locate any Path's span inside
// a document by walking this parallel tree.
package diffyml

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Span is the half-open source range covering a node. Lines and columns
// are 0-based, as produced directly by the parser (§3).
type Span struct {
	StartLine, StartCol int
	EndLine, EndCol      int
}

// markedKind distinguishes the MarkedValue shapes.
type markedKind int

const (
	markedScalar markedKind = iota
	markedSeq
	markedMap
	markedTagged
)

// MarkedEntry is one key/value pair of a mapping-shaped MarkedValue. Keys
// are kept as plain strings (mirroring OrderedMap) since document mapping
// keys are strings in every example this tool targets.
type MarkedEntry struct {
	Key     string
	KeySpan Span
	Value   MarkedValue
}

// MarkedValue is a Value plus its span, with every sub-node carrying its
// own span in turn.
type MarkedValue struct {
	Span   Span
	kind   markedKind
	Scalar interface{}
	Seq    []MarkedValue
	Map    []MarkedEntry
	Tag    string
	Inner  *MarkedValue
}

// buildMarkedValue walks a yaml.Node tree into a MarkedValue tree,
// resolving aliases to their referent (flattened, per §4.3) and guarding
// against alias cycles the same way nodeToInterfaceWithCycleDetection does.
func buildMarkedValue(node *yaml.Node, seen map[*yaml.Node]bool) MarkedValue {
	if node == nil {
		return MarkedValue{kind: markedScalar, Scalar: nil}
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return MarkedValue{kind: markedScalar, Scalar: nil}
		}
		return buildMarkedValue(node.Content[0], seen)
	}

	span := nodeSpan(node)

	switch node.Kind {
	case yaml.MappingNode:
		var entries []MarkedEntry
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Value == "<<" {
				merged := buildMarkedValue(node.Content[i+1], seen)
				if merged.kind == markedMap {
					entries = append(entries, merged.Map...)
				}
				continue
			}
			entries = append(entries, MarkedEntry{
				Key:     keyNode.Value,
				KeySpan: nodeSpan(keyNode),
				Value:   buildMarkedValue(node.Content[i+1], seen),
			})
		}
		mv := MarkedValue{Span: span, kind: markedMap, Map: entries}
		return wrapMarkedTag(node, mv)

	case yaml.SequenceNode:
		elems := make([]MarkedValue, 0, len(node.Content))
		for _, child := range node.Content {
			elems = append(elems, buildMarkedValue(child, seen))
		}
		mv := MarkedValue{Span: span, kind: markedSeq, Seq: elems}
		return wrapMarkedTag(node, mv)

	case yaml.ScalarNode:
		mv := MarkedValue{Span: span, kind: markedScalar, Scalar: resolveScalar(node)}
		return wrapMarkedTag(node, mv)

	case yaml.AliasNode:
		if seen[node.Alias] {
			return MarkedValue{Span: span, kind: markedScalar, Scalar: nil}
		}
		seen[node.Alias] = true
		result := buildMarkedValue(node.Alias, seen)
		delete(seen, node.Alias)
		result.Span = span // the alias use-site's own position
		return result

	default:
		return MarkedValue{Span: span, kind: markedScalar, Scalar: nil}
	}
}

func wrapMarkedTag(node *yaml.Node, mv MarkedValue) MarkedValue {
	if !isCustomTag(node.Tag) {
		return mv
	}
	inner := mv
	return MarkedValue{Span: mv.Span, kind: markedTagged, Tag: node.Tag, Inner: &inner}
}

// nodeSpan converts a yaml.Node's 1-based Line/Column into a 0-based Span.
// yaml.v3 only records a start position per node; the end position is
// approximated from the scalar's own text length, or (for collections)
// from the last child's end — sufficient for locating the line a
// Difference's path resolves to, which is all the Renderer needs (§4.6).
func nodeSpan(node *yaml.Node) Span {
	startLine := max0(node.Line - 1)
	startCol := max0(node.Column - 1)

	switch node.Kind {
	case yaml.ScalarNode:
		lines := strings.Split(node.Value, "\n")
		if len(lines) == 1 {
			return Span{startLine, startCol, startLine, startCol + len(node.Value)}
		}
		return Span{startLine, startCol, startLine + len(lines) - 1, len(lines[len(lines)-1])}
	case yaml.MappingNode, yaml.SequenceNode:
		if len(node.Content) == 0 {
			return Span{startLine, startCol, startLine, startCol}
		}
		last := nodeSpan(node.Content[len(node.Content)-1])
		return Span{startLine, startCol, last.EndLine, last.EndCol}
	default:
		return Span{startLine, startCol, startLine, startCol}
	}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// At walks path from mv's root, returning the MarkedValue located there
// and true, or the zero value and false if the path does not resolve
// (e.g. it was added/removed on the other side).
func (mv MarkedValue) At(path Path) (MarkedValue, bool) {
	cur := mv
	for _, seg := range path.Segments() {
		switch {
		case seg.IsField() && cur.kind == markedTagged:
			cur = *cur.Inner
			// re-test the same segment against the unwrapped value
			found := false
			for _, e := range cur.Map {
				if e.Key == seg.FieldValue {
					cur = e.Value
					found = true
					break
				}
			}
			if !found {
				return MarkedValue{}, false
			}
		case seg.IsField() && cur.kind == markedMap:
			name, _ := seg.FieldValue.(string)
			found := false
			for _, e := range cur.Map {
				if e.Key == name {
					cur = e.Value
					found = true
					break
				}
			}
			if !found {
				return MarkedValue{}, false
			}
		case seg.IsIndex() && cur.kind == markedTagged:
			cur = *cur.Inner
			if seg.Index < 0 || seg.Index >= len(cur.Seq) {
				return MarkedValue{}, false
			}
			cur = cur.Seq[seg.Index]
		case seg.IsIndex() && cur.kind == markedSeq:
			if seg.Index < 0 || seg.Index >= len(cur.Seq) {
				return MarkedValue{}, false
			}
			cur = cur.Seq[seg.Index]
		default:
			return MarkedValue{}, false
		}
	}
	return cur, true
}
