// comparator.go - The structural diff engine (§4.3).
//
// Diff(ctx, left, right) recurses over the Value model (OrderedMap-backed
// mappings, []interface{} sequences, plain scalars, TaggedValue wrappers)
// and returns the Differences between two values under a Context carrying
// the array-ordering mode and the current path prefix. The recursion
// shape (try equality, then mapping, then sequence, then fall back to a
// scalar-level change) follows this file's previous compareNodes/
// compareLists dispatch; the array-ordering split and the Moved-producing
// greedy matcher are new, grounded in original_source/src/diff.rs.
package diffyml

import "sort"

// ArrayOrdering selects how sequences are compared (§3, §4.3).
type ArrayOrdering int

const (
	// Fixed compares sequence elements positionally.
	Fixed ArrayOrdering = iota
	// Dynamic matches sequence elements by minimal-edit similarity,
	// producing Moved differences for repositioned-but-equal elements.
	Dynamic
)

// Context carries the array-ordering mode and current path prefix while
// recursing (§3).
type Context struct {
	ArrayOrdering ArrayOrdering
	path          Path
}

// NewContext starts a Context at the document root with the given
// array-ordering mode.
func NewContext(ordering ArrayOrdering) Context {
	return Context{ArrayOrdering: ordering}
}

// Push returns a Context with seg appended to the path prefix.
func (c Context) Push(seg Segment) Context {
	return Context{ArrayOrdering: c.ArrayOrdering, path: c.path.Push(seg)}
}

// Path returns the context's current path prefix.
func (c Context) Path() Path {
	return c.path
}

// Diff computes the Differences between left and right under ctx,
// following the trial order of §4.3:
//  1. structural equality → no differences,
//  2. both mappings → key-union recursion,
//  3. both sequences → Fixed or Dynamic comparison,
//  4. otherwise → a single Changed.
func Diff(ctx Context, left, right interface{}) []Difference {
	if valuesEqual(left, right) {
		return nil
	}

	if lm, lok := left.(*OrderedMap); lok {
		if rm, rok := right.(*OrderedMap); rok {
			return diffMappings(ctx, lm, rm)
		}
	}

	if ls, lok := left.([]interface{}); lok {
		if rs, rok := right.([]interface{}); rok {
			if ctx.ArrayOrdering == Dynamic {
				return diffSequencesDynamic(ctx, ls, rs)
			}
			return diffSequencesFixed(ctx, ls, rs)
		}
	}

	return []Difference{{Kind: DiffChanged, Path: ctx.path, Left: left, Right: right}}
}

// diffMappings implements §4.3 rule 2: traverse left's keys in their
// original order, then right-only keys in their original order.
func diffMappings(ctx Context, left, right *OrderedMap) []Difference {
	var diffs []Difference

	order := make([]string, 0, len(left.Keys)+len(right.Keys))
	order = append(order, left.Keys...)
	for _, k := range right.Keys {
		if _, inLeft := left.Values[k]; !inLeft {
			order = append(order, k)
		}
	}

	for _, k := range order {
		lv, lok := left.Values[k]
		rv, rok := right.Values[k]
		childPath := ctx.Push(Field(k)).path

		switch {
		case lok && !rok:
			diffs = append(diffs, Difference{Kind: DiffRemoved, Path: childPath, Value: lv})
		case !lok && rok:
			diffs = append(diffs, Difference{Kind: DiffAdded, Path: childPath, Value: rv})
		default:
			diffs = append(diffs, Diff(ctx.Push(Field(k)), lv, rv)...)
		}
	}

	return diffs
}

// diffSequencesFixed implements §4.3 rule 3's Fixed mode: positional
// comparison across [0, max(len_l, len_r)).
func diffSequencesFixed(ctx Context, left, right []interface{}) []Difference {
	var diffs []Difference
	n := len(left)
	if len(right) > n {
		n = len(right)
	}

	for i := 0; i < n; i++ {
		childCtx := ctx.Push(IndexSegment(i))
		switch {
		case i >= len(right):
			diffs = append(diffs, Difference{Kind: DiffRemoved, Path: childCtx.path, Value: left[i]})
		case i >= len(left):
			diffs = append(diffs, Difference{Kind: DiffAdded, Path: childCtx.path, Value: right[i]})
		default:
			diffs = append(diffs, Diff(childCtx, left[i], right[i])...)
		}
	}

	return diffs
}

// diffSequencesDynamic implements §4.3 rule 3's Dynamic mode: a greedy
// minimal-cost matching over the full L×R diff matrix, in ascending left
// index order, each step choosing the lowest-cost still-unmatched right
// candidate (ties broken by ascending right index). A matched pair with
// zero differences is either silent (same index) or reported as Moved
// (different index); a matched pair with differences reports those
// differences as-is, addressed at the left element's index.
func diffSequencesDynamic(ctx Context, left, right []interface{}) []Difference {
	n, m := len(left), len(right)

	matrix := make([][][]Difference, n)
	for i := 0; i < n; i++ {
		matrix[i] = make([][]Difference, m)
		for j := 0; j < m; j++ {
			matrix[i][j] = Diff(ctx.Push(IndexSegment(i)), left[i], right[j])
		}
	}

	matchedRight := make([]bool, m)
	leftMatch := make([]int, n)
	for i := range leftMatch {
		leftMatch[i] = -1
	}

	type candidate struct {
		j, cost int
	}

	for i := 0; i < n; i++ {
		var cands []candidate
		for j := 0; j < m; j++ {
			if !matchedRight[j] {
				cands = append(cands, candidate{j: j, cost: len(matrix[i][j])})
			}
		}
		if len(cands) == 0 {
			continue
		}
		sort.Slice(cands, func(a, b int) bool {
			if cands[a].cost != cands[b].cost {
				return cands[a].cost < cands[b].cost
			}
			return cands[a].j < cands[b].j
		})
		best := cands[0]
		leftMatch[i] = best.j
		matchedRight[best.j] = true
	}

	var diffs []Difference

	for i := 0; i < n; i++ {
		j := leftMatch[i]
		if j == -1 {
			diffs = append(diffs, Difference{Kind: DiffRemoved, Path: ctx.Push(IndexSegment(i)).path, Value: left[i]})
			continue
		}
		d := matrix[i][j]
		if len(d) == 0 {
			if i != j {
				diffs = append(diffs, Difference{
					Kind:         DiffMoved,
					OriginalPath: ctx.Push(IndexSegment(i)).path,
					NewPath:      ctx.Push(IndexSegment(j)).path,
				})
			}
			continue
		}
		diffs = append(diffs, d...)
	}

	for j := 0; j < m; j++ {
		if !matchedRight[j] {
			diffs = append(diffs, Difference{Kind: DiffAdded, Path: ctx.Push(IndexSegment(j)).path, Value: right[j]})
		}
	}

	return diffs
}

// valuesEqual implements the Value model's structural equality (§3):
// mapping equality is order-independent; numeric equality respects
// YAML's own type distinction (integer 1 ≠ float 1.0, per §4.3's edge
// cases); tagged values compare tag and inner value jointly.
func valuesEqual(a, b interface{}) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int, int64, uint64:
		ai, aok := asInt64(a)
		bi, bok := asInt64(b)
		return aok && bok && ai == bi
	case float64, float32:
		af, aok := asFloat64(a)
		bf, bok := asFloat64(b)
		return aok && bok && af == bf
	case *OrderedMap:
		bv, ok := b.(*OrderedMap)
		return ok && orderedMapsEqual(av, bv)
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case TaggedValue:
		bv, ok := b.(TaggedValue)
		return ok && av.Tag == bv.Tag && valuesEqual(av.Inner, bv.Inner)
	default:
		return a == b
	}
}

func orderedMapsEqual(a, b *OrderedMap) bool {
	if len(a.Keys) != len(b.Keys) {
		return false
	}
	for _, k := range a.Keys {
		bv, ok := b.Values[k]
		if !ok || !valuesEqual(a.Values[k], bv) {
			return false
		}
	}
	return true
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}

func asFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		return 0, false
	}
}
