package diffyml_test

import (
	"testing"

	"github.com/everdiff/everdiff/pkg/diffyml"
)

func TestMatchDocuments_ByIndex_PositionalPairing(t *testing.T) {
	left := []interface{}{
		mustParseOne(t, "name: a\n"),
		mustParseOne(t, "name: b\n"),
	}
	right := []interface{}{
		mustParseOne(t, "name: a\n"),
		mustParseOne(t, "name: b\n"),
		mustParseOne(t, "name: c\n"),
	}

	result := diffyml.MatchDocuments(left, right, diffyml.ByIndex)
	if len(result.Matched) != 2 {
		t.Fatalf("expected 2 matched pairs, got %d", len(result.Matched))
	}
	if len(result.Added) != 1 {
		t.Fatalf("expected 1 added document, got %d", len(result.Added))
	}
	if len(result.Missing) != 0 {
		t.Fatalf("expected 0 missing documents, got %d", len(result.Missing))
	}
}

func TestMatchDocuments_Names_MatchesByIdentityNotPosition(t *testing.T) {
	left := []interface{}{
		mustParseOne(t, "name: alpha\nvalue: 1\n"),
		mustParseOne(t, "name: bravo\nvalue: 2\n"),
	}
	right := []interface{}{
		mustParseOne(t, "name: bravo\nvalue: 20\n"),
		mustParseOne(t, "name: alpha\nvalue: 10\n"),
	}

	result := diffyml.MatchDocuments(left, right, diffyml.Names)
	if len(result.Matched) != 2 {
		t.Fatalf("expected 2 matched pairs, got %d: %+v", len(result.Matched), result.Matched)
	}
	for _, m := range result.Matched {
		leftOM := m.Left.(*diffyml.OrderedMap)
		rightOM := m.Right.(*diffyml.OrderedMap)
		if leftOM.Values["name"] != rightOM.Values["name"] {
			t.Errorf("expected matched pair to share a name, got left=%v right=%v", leftOM.Values["name"], rightOM.Values["name"])
		}
	}
}

func TestMatchDocuments_MissingAndAdded(t *testing.T) {
	left := []interface{}{
		mustParseOne(t, "name: alpha\n"),
		mustParseOne(t, "name: bravo\n"),
	}
	right := []interface{}{
		mustParseOne(t, "name: alpha\n"),
		mustParseOne(t, "name: charlie\n"),
	}

	result := diffyml.MatchDocuments(left, right, diffyml.Names)
	if len(result.Matched) != 1 {
		t.Fatalf("expected 1 matched pair, got %d", len(result.Matched))
	}
	if len(result.Missing) != 1 {
		t.Fatalf("expected 1 missing document (bravo), got %d", len(result.Missing))
	}
	if result.Missing[0].Key.String() != "name=bravo" {
		t.Errorf("expected bravo missing, got %s", result.Missing[0].Key.String())
	}
	if len(result.Added) != 1 {
		t.Fatalf("expected 1 added document (charlie), got %d", len(result.Added))
	}
	if result.Added[0].Key.String() != "name=charlie" {
		t.Errorf("expected charlie added, got %s", result.Added[0].Key.String())
	}
}

func TestMatchDocuments_UnkeyedDocumentsAreSilentlySkipped(t *testing.T) {
	left := []interface{}{
		mustParseOne(t, "kind: Other\nvalue: 1\n"),
		mustParseOne(t, "kind: Other\nvalue: 2\n"),
	}
	right := []interface{}{
		mustParseOne(t, "kind: Other\nvalue: 10\n"),
	}

	result := diffyml.MatchDocuments(left, right, diffyml.Names)
	if result.Skipped != 3 {
		t.Fatalf("expected 3 skipped (unkeyed) documents, got %d", result.Skipped)
	}
	if len(result.Matched) != 0 {
		t.Errorf("expected unkeyed documents to never be matched, got %d", len(result.Matched))
	}
	if len(result.Missing) != 0 {
		t.Errorf("expected unkeyed documents to never be reported missing, got %d", len(result.Missing))
	}
	if len(result.Added) != 0 {
		t.Errorf("expected unkeyed documents to never be reported added, got %d", len(result.Added))
	}
}

func TestDocKey_LessAndEqual(t *testing.T) {
	a := diffyml.NewDocKey(diffyml.DocKeyField{Name: "name", Value: "alpha"})
	b := diffyml.NewDocKey(diffyml.DocKeyField{Name: "name", Value: "bravo"})
	aAgain := diffyml.NewDocKey(diffyml.DocKeyField{Name: "name", Value: "alpha"})

	if !a.Less(b) {
		t.Errorf("expected alpha to sort before bravo")
	}
	if b.Less(a) {
		t.Errorf("did not expect bravo to sort before alpha")
	}
	if !a.Equal(aAgain) {
		t.Errorf("expected equal field values to compare equal")
	}
	if a.Equal(b) {
		t.Errorf("did not expect differing field values to compare equal")
	}
}

func TestDocKey_NumericComparisonIsNumericNotLexical(t *testing.T) {
	nine := diffyml.NewDocKey(diffyml.DocKeyField{Name: "id", Value: 9})
	ten := diffyml.NewDocKey(diffyml.DocKeyField{Name: "id", Value: 10})

	if !nine.Less(ten) {
		t.Errorf("expected numeric comparison: 9 < 10 (a lexical comparison would put \"10\" before \"9\")")
	}
}
