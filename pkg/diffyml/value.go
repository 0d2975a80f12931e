// value.go - TaggedValue: the Value model's tagged(tag, Value) variant.
//
// Every other Value variant (null/bool/int/float/string/sequence/mapping)
// already has a direct Go representation via nodeToInterface's existing
// nil/bool/int/float64/string/[]interface{}/*OrderedMap outputs.
// TaggedValue is the one variant the teacher's parser never needed: a
// custom (non-core) YAML tag such as "!Ref" or "!!mytype" attached to an
// otherwise-ordinary node. Aliases are not a separate runtime variant here
// because the loader resolves them to their referent while building the
// value tree, per §4.3's "aliases resolve to their referent for equality".
package diffyml

import "fmt"

// TaggedValue wraps an inner Value with the custom YAML tag attached to it.
type TaggedValue struct {
	Tag   string
	Inner interface{}
}

// String implements fmt.Stringer for readable %v output.
func (t TaggedValue) String() string {
	return fmt.Sprintf("%s %v", t.Tag, t.Inner)
}

// coreTags are the standard YAML 1.1/1.2 resolution tags that every scalar
// or collection node carries even with no explicit tag in the source text.
// Anything outside this set is a custom application tag per §4.3's
// "Tagged values compare by tag and inner value jointly".
var coreTags = map[string]bool{
	"!!str": true, "!!int": true, "!!float": true, "!!bool": true,
	"!!null": true, "!!seq": true, "!!map": true, "!!merge": true,
	"!!binary": true, "!!timestamp": true, "": true,
}

// isCustomTag reports whether tag names an application-specific YAML tag
// rather than one of the standard core-schema resolution tags.
func isCustomTag(tag string) bool {
	return !coreTags[tag]
}
