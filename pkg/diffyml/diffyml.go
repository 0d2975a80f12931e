// Package diffyml implements structural YAML diffing: parsing into a
// span-annotated Value tree, comparing two trees into a list of typed
// Differences, matching documents across multi-document files, patching
// documents before comparison, and rendering the result back against the
// original source text.
package diffyml

// DiffKind distinguishes the four Difference variants (§3).
type DiffKind int

const (
	// DiffAdded means Path exists in the right value but not the left.
	DiffAdded DiffKind = iota
	// DiffRemoved means Path exists in the left value but not the right.
	DiffRemoved
	// DiffChanged means Path exists on both sides with different values.
	DiffChanged
	// DiffMoved means an array element with no internal differences
	// moved from OriginalPath to NewPath under Dynamic array ordering.
	DiffMoved
)

// Difference is a single structural change between two Values (§3). Which
// fields are meaningful depends on Kind:
//
//	DiffAdded/DiffRemoved: Path, Value
//	DiffChanged:           Path, Left, Right  (Left != Right, always)
//	DiffMoved:             OriginalPath, NewPath
type Difference struct {
	Kind  DiffKind
	Path  Path
	Value interface{}

	Left  interface{}
	Right interface{}

	OriginalPath Path
	NewPath      Path
}

// Options configures a single document-pair comparison (§3, §6).
type Options struct {
	// ArrayOrdering selects Fixed (positional) or Dynamic (similarity
	// matched) sequence comparison.
	ArrayOrdering ArrayOrdering
	// Swap reverses the left/right operands before comparing.
	Swap bool
	// Chroot, if non-empty, is a dotted path navigating both documents to
	// a subtree before comparison (e.g. "spec.template").
	Chroot string
	// ChrootFrom/ChrootTo chroot only one side; ignored when Chroot is set.
	ChrootFrom string
	ChrootTo   string
}

// CompareValues runs the diff engine over a single already-matched
// document pair, applying Swap and chroot per opts.
func CompareValues(left, right interface{}, opts Options) ([]Difference, error) {
	if opts.Swap {
		left, right = right, left
	}

	var err error
	switch {
	case opts.Chroot != "":
		left, right, err = chrootPair(left, right, opts.Chroot)
	default:
		if opts.ChrootFrom != "" {
			left, err = navigateToPath(left, opts.ChrootFrom)
		}
		if err == nil && opts.ChrootTo != "" {
			right, err = navigateToPath(right, opts.ChrootTo)
		}
	}
	if err != nil {
		return nil, err
	}

	ctx := NewContext(opts.ArrayOrdering)
	return Diff(ctx, left, right), nil
}

func chrootPair(left, right interface{}, path string) (interface{}, interface{}, error) {
	nl, err := navigateToPath(left, path)
	if err != nil {
		return nil, nil, err
	}
	nr, err := navigateToPath(right, path)
	if err != nil {
		return nil, nil, err
	}
	return nl, nr, nil
}
