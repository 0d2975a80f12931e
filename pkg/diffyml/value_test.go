package diffyml

import "testing"

func TestTaggedValue_String(t *testing.T) {
	tv := TaggedValue{Tag: "!Ref", Inner: "bucket-name"}
	if got := tv.String(); got != "!Ref bucket-name" {
		t.Errorf("unexpected String(): %q", got)
	}
}

func TestIsCustomTag_CoreTagsAreNotCustom(t *testing.T) {
	for _, tag := range []string{"!!str", "!!int", "!!float", "!!bool", "!!null", "!!seq", "!!map", ""} {
		if isCustomTag(tag) {
			t.Errorf("expected %q to be a core tag, not custom", tag)
		}
	}
}

func TestIsCustomTag_ApplicationTagsAreCustom(t *testing.T) {
	for _, tag := range []string{"!Ref", "!!mytype", "!GetAtt"} {
		if !isCustomTag(tag) {
			t.Errorf("expected %q to be treated as a custom tag", tag)
		}
	}
}
