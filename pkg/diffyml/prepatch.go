// prepatch.go - PrePatch: apply JSON-Patch-style add/replace operations
// to documents matching a structural template, before comparison (§4.5).
//
// Grounded in original_source/src/prepatch.rs: a PrePatch selects
// documents by structural containment against a template value (a
// document "matches" when every field the template names is present with
// an equal-or-contained value), then applies its ops via JSON Pointer
// (jsonpointer.go) against the matched document.
package diffyml

// PatchOp is one JSON-Patch-subset operation: "add" creates or overwrites
// the value at Path (appending when Path ends in "/-" on a sequence, or
// inserting at Path's index); "replace" requires Path to already resolve.
type PatchOp struct {
	Op    string // "add" or "replace"
	Path  string // RFC 6901 JSON pointer
	Value interface{}
}

// PrePatch is a template-matched set of patch operations: a document
// "matches" when it structurally contains Match (§4.5), and Ops are then
// applied to it in order.
type PrePatch struct {
	Match interface{}
	Ops   []PatchOp
}

// MatchesTemplate reports whether doc structurally contains template:
// every mapping key template names must be present in doc with a
// containing value; every sequence element in template must have a
// containing counterpart at the same index in doc; scalars must be
// equal. A nil template matches everything; an empty mapping template
// matches every mapping document.
func MatchesTemplate(doc, template interface{}) bool {
	if template == nil {
		return true
	}

	switch t := template.(type) {
	case *OrderedMap:
		dm, ok := doc.(*OrderedMap)
		if !ok {
			return false
		}
		for _, k := range t.Keys {
			dv, ok := dm.Values[k]
			if !ok || !MatchesTemplate(dv, t.Values[k]) {
				return false
			}
		}
		return true

	case []interface{}:
		ds, ok := doc.([]interface{})
		if !ok || len(ds) < len(t) {
			return false
		}
		for i, elem := range t {
			if !MatchesTemplate(ds[i], elem) {
				return false
			}
		}
		return true

	default:
		return valuesEqual(doc, template)
	}
}

// ApplyPrePatches applies every PrePatch whose Match template matches doc
// to doc in turn, returning the (possibly replaced) document and any
// per-operation errors encountered. A failing operation is recorded and
// skipped; subsequent operations and patches still run (§7: patch errors
// are non-fatal, reported per document).
func ApplyPrePatches(doc interface{}, patches []PrePatch) (interface{}, []error) {
	var errs []error

	for _, p := range patches {
		if !MatchesTemplate(doc, p.Match) {
			continue
		}
		for _, op := range p.Ops {
			switch op.Op {
			case "add", "replace":
				next, err := ApplyPointerOp(doc, op.Path, op.Value, op.Op == "add")
				if err != nil {
					errs = append(errs, err)
					continue
				}
				doc = next
			default:
				errs = append(errs, &PatchError{Kind: PatchUnsupported, Pointer: op.Path, Message: "unsupported op " + op.Op})
			}
		}
	}

	return doc, errs
}
