// pipeline.go - ties prepatching, chrooting, multi-document matching, and
// the diff engine into the single top-level comparison operation the
// ambient CLI drives (§6, §9).
package diffyml

import "fmt"

// DocDiffKind distinguishes the three document-level outcomes of
// matching two document slices (§4.4).
type DocDiffKind int

const (
	// DocChanged means the pair matched and Diffs holds its differences
	// (possibly empty, when the matched documents are identical).
	DocChanged DocDiffKind = iota
	// DocMissing means a left-side document had no right-side match.
	DocMissing
	// DocAdded means a right-side document had no left-side match.
	DocAdded
)

// DocDifference is one document-level comparison outcome.
type DocDifference struct {
	Kind       DocDiffKind
	Key        DocKey
	LeftIndex  int
	RightIndex int
	Diffs      []Difference
	Value      interface{} // set for DocMissing/DocAdded
}

// PipelineOptions configures a full left-vs-right comparison over
// possibly-multi-document inputs.
type PipelineOptions struct {
	ArrayOrdering ArrayOrdering
	Swap          bool
	Chroot        string
	ChrootFrom    string
	ChrootTo      string
	// ChrootExplodeLists, when set, turns a chroot path that resolves to a
	// list into one document per list item instead of one document holding
	// the whole list (§10.3: a convenience for matching "the Nth list item"
	// as an independent document rather than diffing the list structurally).
	ChrootExplodeLists bool
	// Identifier selects how documents are matched across the two sides.
	// Defaults to ByIndex when nil.
	Identifier DocKeyFunc
	// Prepatches are applied to every document on both sides before
	// matching and diffing.
	Prepatches []PrePatch
	Ignore     IgnoreConfig
}

// ComparePipeline runs prepatching, chrooting, multi-document matching,
// and the diff engine over leftDocs/rightDocs, returning one DocDifference
// per matched/missing/added document and any non-fatal errors encountered
// along the way: patch and chroot failures, and a warning when documents
// were skipped for lacking a usable identity (§7: none of these abort the
// comparison).
func ComparePipeline(leftDocs, rightDocs []interface{}, opts PipelineOptions) ([]DocDifference, []error) {
	if opts.Swap {
		leftDocs, rightDocs = rightDocs, leftDocs
	}

	var errs []error
	leftDocs = applyPrepatchesAll(leftDocs, opts.Prepatches, &errs)
	rightDocs = applyPrepatchesAll(rightDocs, opts.Prepatches, &errs)

	var chrootErr error
	leftDocs, chrootErr = chrootAll(leftDocs, opts.Chroot, opts.ChrootFrom, opts.ChrootExplodeLists)
	if chrootErr != nil {
		errs = append(errs, chrootErr)
	}
	rightDocs, chrootErr = chrootAll(rightDocs, opts.Chroot, opts.ChrootTo, opts.ChrootExplodeLists)
	if chrootErr != nil {
		errs = append(errs, chrootErr)
	}

	keyFn := opts.Identifier
	if keyFn == nil {
		keyFn = ByIndex
	}
	match := MatchDocuments(leftDocs, rightDocs, keyFn)
	if match.Skipped > 0 {
		errs = append(errs, fmt.Errorf("%d document(s) have no usable identity under the selected identifier and were skipped", match.Skipped))
	}

	ctx := NewContext(opts.ArrayOrdering)
	results := make([]DocDifference, 0, len(match.Matched)+len(match.Missing)+len(match.Added))

	for _, pair := range match.Matched {
		diffs := Diff(ctx, pair.Left, pair.Right)
		diffs = FilterDifferences(diffs, opts.Ignore)
		results = append(results, DocDifference{
			Kind: DocChanged, Key: pair.Key,
			LeftIndex: pair.LeftIdx, RightIndex: pair.RightIdx,
			Diffs: diffs,
		})
	}
	for _, m := range match.Missing {
		results = append(results, DocDifference{Kind: DocMissing, Key: m.Key, LeftIndex: m.Index, Value: m.Value})
	}
	for _, a := range match.Added {
		results = append(results, DocDifference{Kind: DocAdded, Key: a.Key, RightIndex: a.Index, Value: a.Value})
	}

	return results, errs
}

func applyPrepatchesAll(docs []interface{}, patches []PrePatch, errs *[]error) []interface{} {
	if len(patches) == 0 {
		return docs
	}
	out := make([]interface{}, len(docs))
	for i, d := range docs {
		patched, errsForDoc := ApplyPrePatches(d, patches)
		out[i] = patched
		*errs = append(*errs, errsForDoc...)
	}
	return out
}

func chrootAll(docs []interface{}, shared, specific string, explodeLists bool) ([]interface{}, error) {
	path := shared
	if path == "" {
		path = specific
	}
	if path == "" {
		return docs, nil
	}
	return applyChrootToDocs(docs, path, explodeLists)
}
