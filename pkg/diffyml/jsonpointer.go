// jsonpointer.go - RFC 6901 JSON Pointer resolution and mutation over the
// Value model, used by the prepatch engine (§4.5).
//
// No example repo in the retrieval pack carries a JSON-pointer library;
// the closest pack signal is ecosystem-only (other_examples manifests
// referencing encoding/json-adjacent tooling, never a complete repo). This
// is small enough, and specific enough to the *OrderedMap/[]interface{}
// Value model rather than encoding/json's map[string]interface{}, that
// reimplementing it directly against that model is the pragmatic choice;
// recorded in DESIGN.md as a justified standard-library exception.
package diffyml

import "strings"

// ParsePointer splits a JSON Pointer (e.g. "/spec/replicas", "/items/-")
// into its unescaped reference tokens. The empty string denotes the
// document root and yields no tokens.
func ParsePointer(pointer string) ([]string, error) {
	if pointer == "" {
		return nil, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, &PatchError{Kind: PatchUnsupported, Pointer: pointer, Message: "pointer must start with '/'"}
	}
	parts := strings.Split(pointer[1:], "/")
	for i, p := range parts {
		parts[i] = unescapeToken(p)
	}
	return parts, nil
}

func unescapeToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~1", "/")
	tok = strings.ReplaceAll(tok, "~0", "~")
	return tok
}

// ResolvePointer navigates doc per the parsed pointer tokens, returning
// the value found there.
func ResolvePointer(doc interface{}, pointer string) (interface{}, error) {
	tokens, err := ParsePointer(pointer)
	if err != nil {
		return nil, err
	}
	cur := doc
	for _, tok := range tokens {
		next, ok := step(cur, tok)
		if !ok {
			return nil, &PatchError{Kind: PatchValueNotFoundAtPath, Pointer: pointer, Message: "no such element"}
		}
		cur = next
	}
	return cur, nil
}

func step(cur interface{}, tok string) (interface{}, bool) {
	switch v := cur.(type) {
	case *OrderedMap:
		val, ok := v.Values[tok]
		return val, ok
	case []interface{}:
		if tok == "-" {
			return nil, false
		}
		idx, err := parseArrayIndex(tok, len(v))
		if err != nil {
			return nil, false
		}
		return v[idx], true
	default:
		return nil, false
	}
}

func parseArrayIndex(tok string, length int) (int, error) {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, &PatchError{Kind: PatchUnsupported, Pointer: tok, Message: "invalid array index"}
	}
	n := 0
	for _, c := range tok {
		if c < '0' || c > '9' {
			return 0, &PatchError{Kind: PatchUnsupported, Pointer: tok, Message: "invalid array index"}
		}
		n = n*10 + int(c-'0')
	}
	if n < 0 || n >= length {
		return 0, &PatchError{Kind: PatchValueNotFoundAtPath, Pointer: tok, Message: "array index out of bounds"}
	}
	return n, nil
}

// ApplyPointerOp mutates doc in place (returning the possibly-replaced
// root, since replacing the root itself cannot mutate in place) to add or
// replace the value at pointer. "add" on a mapping creates or overwrites
// the key; "add" on a sequence with the special "-" token appends;
// otherwise "add" inserts before the given index. "replace" requires the
// pointer to already resolve.
func ApplyPointerOp(doc interface{}, pointer string, value interface{}, isAdd bool) (interface{}, error) {
	tokens, err := ParsePointer(pointer)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return value, nil
	}

	parentTokens, last := tokens[:len(tokens)-1], tokens[len(tokens)-1]
	parentPointer := "/" + strings.Join(escapeTokens(parentTokens), "/")
	if len(parentTokens) == 0 {
		parentPointer = ""
	}
	parent, err := ResolvePointer(doc, parentPointer)
	if err != nil {
		return nil, err
	}

	switch p := parent.(type) {
	case *OrderedMap:
		if !isAdd {
			if _, ok := p.Values[last]; !ok {
				return nil, &PatchError{Kind: PatchValueNotFoundAtPath, Pointer: pointer, Message: "key not found for replace"}
			}
		}
		if _, exists := p.Values[last]; !exists {
			p.Keys = append(p.Keys, last)
		}
		p.Values[last] = value
		return doc, nil

	case []interface{}:
		return doc, mutateSequence(doc, pointer, parentTokens, p, last, value, isAdd)

	default:
		return nil, &PatchError{Kind: PatchUnsupported, Pointer: pointer, Message: "parent is neither a mapping nor a sequence"}
	}
}

// mutateSequence handles the array case of ApplyPointerOp. Because Go
// slices cannot grow in place, the mutated slice is written back into its
// own parent via a second pointer resolution.
func mutateSequence(doc interface{}, pointer string, parentTokens []string, seq []interface{}, last string, value interface{}, isAdd bool) error {
	var newSeq []interface{}
	switch {
	case isAdd && last == "-":
		newSeq = append(append([]interface{}{}, seq...), value)
	case isAdd:
		idx, err := parseArrayIndex(last, len(seq)+1)
		if err != nil {
			return err
		}
		newSeq = make([]interface{}, 0, len(seq)+1)
		newSeq = append(newSeq, seq[:idx]...)
		newSeq = append(newSeq, value)
		newSeq = append(newSeq, seq[idx:]...)
	default:
		idx, err := parseArrayIndex(last, len(seq))
		if err != nil {
			return err
		}
		newSeq = append([]interface{}{}, seq...)
		newSeq[idx] = value
	}

	return writeBack(doc, parentTokens, newSeq)
}

// writeBack replaces the value addressed by parentTokens (the sequence's
// own location) with newSeq, since a new slice header can't be installed
// through the old one's identity.
func writeBack(doc interface{}, parentTokens []string, newSeq []interface{}) error {
	if len(parentTokens) == 0 {
		return &PatchError{Kind: PatchUnsupported, Pointer: "", Message: "cannot replace document root sequence in place"}
	}
	grandparentTokens, last := parentTokens[:len(parentTokens)-1], parentTokens[len(parentTokens)-1]
	grandparentPointer := "/" + strings.Join(escapeTokens(grandparentTokens), "/")
	if len(grandparentTokens) == 0 {
		grandparentPointer = ""
	}
	grandparent, err := ResolvePointer(doc, grandparentPointer)
	if err != nil {
		return err
	}
	switch g := grandparent.(type) {
	case *OrderedMap:
		g.Values[last] = newSeq
		return nil
	case []interface{}:
		idx, err := parseArrayIndex(last, len(g))
		if err != nil {
			return err
		}
		g[idx] = newSeq
		return nil
	default:
		return &PatchError{Kind: PatchUnsupported, Pointer: grandparentPointer, Message: "cannot write back sequence"}
	}
}

func escapeTokens(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		t = strings.ReplaceAll(t, "~", "~0")
		t = strings.ReplaceAll(t, "/", "~1")
		out[i] = t
	}
	return out
}
