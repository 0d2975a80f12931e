package diffyml_test

import (
	"testing"

	"github.com/everdiff/everdiff/pkg/diffyml"
)

func TestPath_RootPathIsEmpty(t *testing.T) {
	root := diffyml.RootPath()
	if root.Len() != 0 {
		t.Errorf("expected the root path to have length 0, got %d", root.Len())
	}
	if root.JQLike() != "" {
		t.Errorf("expected the root path's JQLike to be empty, got %q", root.JQLike())
	}
}

func TestPath_PushFieldAndPushIndex(t *testing.T) {
	p := diffyml.RootPath().PushField("spec").PushField("containers").PushIndex(0).PushField("image")
	if p.Len() != 4 {
		t.Fatalf("expected 4 segments, got %d", p.Len())
	}
	if got := p.JQLike(); got != ".spec.containers[0].image" {
		t.Errorf("unexpected JQLike rendering: %q", got)
	}
}

func TestPath_PushDoesNotMutateReceiver(t *testing.T) {
	base := diffyml.RootPath().PushField("a")
	extended := base.PushField("b")
	if base.Len() != 1 {
		t.Errorf("expected the original path to remain length 1, got %d", base.Len())
	}
	if extended.Len() != 2 {
		t.Errorf("expected the extended path to have length 2, got %d", extended.Len())
	}
}

func TestPath_Equal(t *testing.T) {
	a := diffyml.RootPath().PushField("a").PushIndex(1)
	b := diffyml.RootPath().PushField("a").PushIndex(1)
	c := diffyml.RootPath().PushField("a").PushIndex(2)

	if !a.Equal(b) {
		t.Errorf("expected equal paths to compare equal")
	}
	if a.Equal(c) {
		t.Errorf("expected paths differing by index to compare unequal")
	}
}

func TestPath_EqualDiffersByLength(t *testing.T) {
	short := diffyml.RootPath().PushField("a")
	long := diffyml.RootPath().PushField("a").PushField("b")
	if short.Equal(long) {
		t.Errorf("expected paths of different lengths to compare unequal")
	}
}

func TestPath_JQLike_PanicsOnNonStringFieldKey(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected JQLike to panic on a non-string field key")
		}
	}()
	p := diffyml.NewPath(diffyml.Field(42))
	p.JQLike()
}

func TestPath_String_DoesNotPanicOnNonStringFieldKey(t *testing.T) {
	p := diffyml.NewPath(diffyml.Field(42))
	got := p.String()
	if got != ".42" {
		t.Errorf("expected String to fall back to a safe representation, got %q", got)
	}
}

func TestPath_String_MatchesJQLikeForStringKeys(t *testing.T) {
	p := diffyml.RootPath().PushField("metadata").PushField("name")
	if p.String() != p.JQLike() {
		t.Errorf("expected String and JQLike to agree for string-keyed paths: %q vs %q", p.String(), p.JQLike())
	}
}

func TestSegment_EqualComparesKindAndValue(t *testing.T) {
	f1 := diffyml.Field("name")
	f2 := diffyml.Field("name")
	f3 := diffyml.Field("other")
	idx := diffyml.IndexSegment(0)

	if !f1.Equal(f2) {
		t.Errorf("expected equal field segments to compare equal")
	}
	if f1.Equal(f3) {
		t.Errorf("expected differently named field segments to compare unequal")
	}
	if f1.Equal(idx) {
		t.Errorf("expected a field segment and an index segment to never be equal")
	}
}

func TestSegment_IsFieldAndIsIndex(t *testing.T) {
	f := diffyml.Field("a")
	idx := diffyml.IndexSegment(3)

	if !f.IsField() || f.IsIndex() {
		t.Errorf("expected Field() to report IsField true, IsIndex false")
	}
	if !idx.IsIndex() || idx.IsField() {
		t.Errorf("expected IndexSegment() to report IsIndex true, IsField false")
	}
}

func TestNewPath_CopiesInputSlice(t *testing.T) {
	segs := []diffyml.Segment{diffyml.Field("a"), diffyml.IndexSegment(1)}
	p := diffyml.NewPath(segs...)
	segs[0] = diffyml.Field("mutated")

	if p.Segments()[0].FieldValue != "a" {
		t.Errorf("expected NewPath to copy its input, but mutation leaked through")
	}
}
