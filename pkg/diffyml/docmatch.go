// docmatch.go - Multi-document matching via pluggable DocKey identifiers.
//
// Grounded in this package's previous compareListsByIdentifier/
// matchK8sDocuments index-by-identifier approach, generalized per §4.4:
// a DocKey is a total-ordered identity (not just a single string), the
// identifier strategy is pluggable (identifier.go), and matching is a
// two-cursor merge over both sides sorted by key, preserving each side's
// relative document order for equal-identity ties.
package diffyml

import (
	"fmt"
	"sort"
)

// DocKeyField is one named component of a DocKey.
type DocKeyField struct {
	Name  string
	Value interface{}
}

// DocKey is an ordered field→value identity extracted from a document,
// comparable via a lexicographic total order over its fields (§4.4).
type DocKey struct {
	Fields []DocKeyField
}

// NewDocKey builds a DocKey from its fields, in comparison order.
func NewDocKey(fields ...DocKeyField) DocKey {
	return DocKey{Fields: fields}
}

// String renders the key as "name=value, ..." for diagnostics.
func (k DocKey) String() string {
	s := ""
	for i, f := range k.Fields {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s=%v", f.Name, f.Value)
	}
	return s
}

// Less reports whether k sorts before o under the field-by-field
// lexicographic order.
func (k DocKey) Less(o DocKey) bool {
	n := len(k.Fields)
	if len(o.Fields) < n {
		n = len(o.Fields)
	}
	for i := 0; i < n; i++ {
		c := compareScalar(k.Fields[i].Value, o.Fields[i].Value)
		if c != 0 {
			return c < 0
		}
	}
	return len(k.Fields) < len(o.Fields)
}

// Equal reports whether k and o identify the same document.
func (k DocKey) Equal(o DocKey) bool {
	if len(k.Fields) != len(o.Fields) {
		return false
	}
	for i := range k.Fields {
		if compareScalar(k.Fields[i].Value, o.Fields[i].Value) != 0 {
			return false
		}
	}
	return true
}

// compareScalar orders two identifier component values: numerically if
// both are numbers, lexically if both are strings, otherwise by their
// formatted text (a stable fallback for mixed/incomparable types).
func compareScalar(a, b interface{}) int {
	if ai, aok := asInt64(a); aok {
		if bi, bok := asInt64(b); bok {
			switch {
			case ai < bi:
				return -1
			case ai > bi:
				return 1
			default:
				return 0
			}
		}
	}
	if af, aok := asFloat64(a); aok {
		if bf, bok := asFloat64(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	as, bs := fmt.Sprintf("%v", a), fmt.Sprintf("%v", b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

// MatchedPair is one document present (under the same DocKey) on both
// sides of a comparison.
type MatchedPair struct {
	Key              DocKey
	Left, Right      interface{}
	LeftIdx, RightIdx int
}

// MissingDoc is a document present only on the left side.
type MissingDoc struct {
	Key   DocKey
	Value interface{}
	Index int
}

// AddedDoc is a document present only on the right side.
type AddedDoc struct {
	Key   DocKey
	Value interface{}
	Index int
}

// MatchResult is the outcome of matching two documents slices (§4.4).
type MatchResult struct {
	Matched []MatchedPair
	Missing []MissingDoc
	Added   []AddedDoc
	// Skipped counts documents on either side for which keyFn reported no
	// usable identity. They are neither matched nor reported missing or
	// added (§4.4, §9): a document an identifier can't recognize carries
	// no basis for pairing it with anything on the other side.
	Skipped int
}

type keyedDoc struct {
	key   DocKey
	value interface{}
	index int
}

// MatchDocuments pairs up left and right document slices using keyFn,
// via a two-cursor merge over both sides sorted by DocKey (§4.4): this
// preserves each side's original order among documents of equal key,
// matches equal keys, and advances past whichever side's current key
// sorts first. Documents without a usable key are skipped entirely:
// neither matched, nor reported missing, nor reported added (§4.4, §9).
func MatchDocuments(left, right []interface{}, keyFn DocKeyFunc) MatchResult {
	var leftKeyed, rightKeyed []keyedDoc
	skipped := 0

	for i, doc := range left {
		if key, ok := keyFn(doc, i); ok {
			leftKeyed = append(leftKeyed, keyedDoc{key, doc, i})
		} else {
			skipped++
		}
	}
	for i, doc := range right {
		if key, ok := keyFn(doc, i); ok {
			rightKeyed = append(rightKeyed, keyedDoc{key, doc, i})
		} else {
			skipped++
		}
	}

	sort.SliceStable(leftKeyed, func(a, b int) bool { return leftKeyed[a].key.Less(leftKeyed[b].key) })
	sort.SliceStable(rightKeyed, func(a, b int) bool { return rightKeyed[a].key.Less(rightKeyed[b].key) })

	var result MatchResult
	result.Skipped = skipped

	i, j := 0, 0
	for i < len(leftKeyed) && j < len(rightKeyed) {
		l, r := leftKeyed[i], rightKeyed[j]
		switch {
		case l.key.Equal(r.key):
			result.Matched = append(result.Matched, MatchedPair{Key: l.key, Left: l.value, Right: r.value, LeftIdx: l.index, RightIdx: r.index})
			i++
			j++
		case l.key.Less(r.key):
			result.Missing = append(result.Missing, MissingDoc{Key: l.key, Value: l.value, Index: l.index})
			i++
		default:
			result.Added = append(result.Added, AddedDoc{Key: r.key, Value: r.value, Index: r.index})
			j++
		}
	}
	for ; i < len(leftKeyed); i++ {
		result.Missing = append(result.Missing, MissingDoc{Key: leftKeyed[i].key, Value: leftKeyed[i].value, Index: leftKeyed[i].index})
	}
	for ; j < len(rightKeyed); j++ {
		result.Added = append(result.Added, AddedDoc{Key: rightKeyed[j].key, Value: rightKeyed[j].value, Index: rightKeyed[j].index})
	}

	return result
}
