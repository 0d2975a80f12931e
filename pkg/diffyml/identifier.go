// identifier.go - DocKey extractor functions for multi-document matching.
//
// Generalizes this package's Kubernetes-resource identifier logic
// (apiVersion+kind+namespace+name) into the by_index/gvk/names family of
// DocKey extractors the multi-document matcher (docmatch.go) selects
// between (§4.4).
package diffyml

import "fmt"

// DocKeyFunc extracts an identity from a document at the given index
// within its file. false means the document has no usable identity under
// this strategy and should be treated as unmatched (§4.4).
type DocKeyFunc func(doc interface{}, index int) (DocKey, bool)

// ByIndex identifies documents by their position within the file. Every
// document matches; this is the default identifier when no better
// strategy applies.
func ByIndex(doc interface{}, index int) (DocKey, bool) {
	return NewDocKey(DocKeyField{Name: "index", Value: index}), true
}

// GVK identifies Kubernetes-shaped documents by apiVersion, kind,
// namespace, and name (or generateName). Non-Kubernetes-shaped documents
// report no usable identity.
func GVK(doc interface{}, index int) (DocKey, bool) {
	if !IsKubernetesResource(doc) {
		return DocKey{}, false
	}

	apiVersion, _ := mappingField(doc, "apiVersion")
	kind, _ := mappingField(doc, "kind")
	metadata, _ := mappingField(doc, "metadata")
	name, hasName := mappingField(metadata, "name")
	if !hasName || name == nil {
		name, _ = mappingField(metadata, "generateName")
	}
	namespace, _ := mappingField(metadata, "namespace")
	if namespace == nil {
		namespace = ""
	}

	return NewDocKey(
		DocKeyField{Name: "apiVersion", Value: apiVersion},
		DocKeyField{Name: "kind", Value: kind},
		DocKeyField{Name: "namespace", Value: namespace},
		DocKeyField{Name: "name", Value: fmt.Sprintf("%v", name)},
	), true
}

// Names identifies documents by a top-level "name" or "id" field,
// falling back to no usable identity when neither is present.
func Names(doc interface{}, index int) (DocKey, bool) {
	if name, ok := mappingField(doc, "name"); ok && name != nil {
		return NewDocKey(DocKeyField{Name: "name", Value: name}), true
	}
	if id, ok := mappingField(doc, "id"); ok && id != nil {
		return NewDocKey(DocKeyField{Name: "id", Value: id}), true
	}
	return DocKey{}, false
}

// mappingField reads a field from either an *OrderedMap or a plain
// map[string]interface{}, the two mapping representations the Value model
// produces.
func mappingField(v interface{}, key string) (interface{}, bool) {
	switch m := v.(type) {
	case *OrderedMap:
		val, ok := m.Values[key]
		return val, ok
	case map[string]interface{}:
		val, ok := m[key]
		return val, ok
	default:
		return nil, false
	}
}

// IsKubernetesResource reports whether doc has the shape of a Kubernetes
// resource: string apiVersion and kind fields, plus a metadata mapping
// with a name or generateName field.
func IsKubernetesResource(doc interface{}) bool {
	apiVersion, ok := mappingField(doc, "apiVersion")
	if !ok {
		return false
	}
	if _, isStr := apiVersion.(string); !isStr {
		return false
	}

	kind, ok := mappingField(doc, "kind")
	if !ok {
		return false
	}
	if _, isStr := kind.(string); !isStr {
		return false
	}

	metadata, ok := mappingField(doc, "metadata")
	if !ok {
		return false
	}

	name, hasName := mappingField(metadata, "name")
	genName, hasGenName := mappingField(metadata, "generateName")
	if (!hasName || name == nil) && (!hasGenName || genName == nil) {
		return false
	}

	return true
}
