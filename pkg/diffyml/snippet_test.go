package diffyml_test

import (
	"strings"
	"testing"

	"github.com/everdiff/everdiff/pkg/diffyml"
)

func mustSource(t *testing.T, content, file string) *diffyml.Source {
	t.Helper()
	sources, err := diffyml.LoadSources(content, file)
	if err != nil {
		t.Fatalf("LoadSources: %v", err)
	}
	if len(sources) == 0 {
		t.Fatalf("expected at least one source")
	}
	return sources[0]
}

func plainOpts() diffyml.RenderOptions {
	return diffyml.RenderOptions{Color: diffyml.NewColorConfig(diffyml.ColorModeNever, 0)}
}

func TestRenderDifference_Added(t *testing.T) {
	right := mustSource(t, "kind: Deployment\nspec:\n  replicas: 2\n", "b.yaml")
	d := diffyml.Difference{Kind: diffyml.DiffAdded, Path: diffyml.RootPath().PushField("spec").PushField("replicas"), Value: 2}

	out := diffyml.RenderDifference(d, nil, right, plainOpts())
	if !strings.Contains(out, "Added: .spec.replicas:") {
		t.Errorf("expected an Added header, got %q", out)
	}
	if !strings.Contains(out, "replicas: 2") {
		t.Errorf("expected the added line's source text in the snippet, got %q", out)
	}
}

func TestRenderDifference_Removed(t *testing.T) {
	left := mustSource(t, "kind: Deployment\nspec:\n  replicas: 1\n", "a.yaml")
	d := diffyml.Difference{Kind: diffyml.DiffRemoved, Path: diffyml.RootPath().PushField("spec").PushField("replicas"), Value: 1}

	out := diffyml.RenderDifference(d, left, nil, plainOpts())
	if !strings.Contains(out, "Removed: .spec.replicas:") {
		t.Errorf("expected a Removed header, got %q", out)
	}
	if !strings.Contains(out, "replicas: 1") {
		t.Errorf("expected the removed line's source text in the snippet, got %q", out)
	}
}

func TestRenderDifference_ChangedScalarsKeepGutterAndContext(t *testing.T) {
	left := mustSource(t, "a: 1\nimage: app:v1\nb: 2\n", "a.yaml")
	right := mustSource(t, "a: 1\nimage: app:v2\nb: 2\n", "b.yaml")
	d := diffyml.Difference{Kind: diffyml.DiffChanged, Path: diffyml.RootPath().PushField("image"), Left: "app:v1", Right: "app:v2"}

	out := diffyml.RenderDifference(d, left, right, plainOpts())
	if !strings.Contains(out, "Changed: .image:") {
		t.Errorf("expected a Changed header, got %q", out)
	}
	if !strings.Contains(out, "image: app:v1") || !strings.Contains(out, "image: app:v2") {
		t.Errorf("expected both sides' full target line text to survive inline-diff emphasis, got %q", out)
	}
	// The surrounding context lines (a: 1 / b: 2, shared by both sides)
	// must still appear with their own gutter numbers, proving the inline
	// diff only replaces the target line rather than the whole snippet.
	if strings.Count(out, "a: 1") != 2 || strings.Count(out, "b: 2") != 2 {
		t.Errorf("expected context lines around the change on both sides, got %q", out)
	}
	if !strings.Contains(out, "1 | ") {
		t.Errorf("expected a gutter line-number widget to survive inline-diff rendering, got %q", out)
	}
}

func TestRenderDifference_ChangedScalarsEmphasizeOnlyChangedCharsWhenColored(t *testing.T) {
	left := mustSource(t, "image: app:v1\n", "a.yaml")
	right := mustSource(t, "image: app:v2\n", "b.yaml")
	d := diffyml.Difference{Kind: diffyml.DiffChanged, Path: diffyml.RootPath().PushField("image"), Left: "app:v1", Right: "app:v2"}

	colored := diffyml.NewColorConfig(diffyml.ColorModeAlways, 0)
	out := diffyml.RenderDifference(d, left, right, diffyml.RenderOptions{Color: colored})
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("expected ANSI escapes from inline-diff emphasis when color is enabled, got %q", out)
	}
}

func TestRenderDifference_ChangedNonScalarFallsBackToSnippets(t *testing.T) {
	left := mustSource(t, "spec:\n  tags:\n    - a\n    - b\n", "a.yaml")
	right := mustSource(t, "spec:\n  tags:\n    - a\n    - b\n    - c\n", "b.yaml")
	d := diffyml.Difference{
		Kind:  diffyml.DiffChanged,
		Path:  diffyml.RootPath().PushField("spec").PushField("tags"),
		Left:  []interface{}{"a", "b"},
		Right: []interface{}{"a", "b", "c"},
	}

	out := diffyml.RenderDifference(d, left, right, plainOpts())
	if !strings.Contains(out, "tags:") {
		t.Errorf("expected the snippet to include the surrounding source text, got %q", out)
	}
}

func TestRenderDifference_Moved(t *testing.T) {
	left := mustSource(t, "items:\n  - name: a\n  - name: b\n", "a.yaml")
	right := mustSource(t, "items:\n  - name: b\n  - name: a\n", "b.yaml")
	d := diffyml.Difference{
		Kind:         diffyml.DiffMoved,
		OriginalPath: diffyml.RootPath().PushField("items").PushIndex(0),
		NewPath:      diffyml.RootPath().PushField("items").PushIndex(1),
	}

	out := diffyml.RenderDifference(d, left, right, plainOpts())
	if !strings.Contains(out, "Moved: from .items[0] to .items[1]:") {
		t.Errorf("expected a Moved header, got %q", out)
	}
}

func TestRenderDifference_MovedHasNoSnippetBody(t *testing.T) {
	left := mustSource(t, "items:\n  - name: a\n  - name: b\n", "a.yaml")
	right := mustSource(t, "items:\n  - name: b\n  - name: a\n", "b.yaml")
	d := diffyml.Difference{
		Kind:         diffyml.DiffMoved,
		OriginalPath: diffyml.RootPath().PushField("items").PushIndex(0),
		NewPath:      diffyml.RootPath().PushField("items").PushIndex(1),
	}

	out := diffyml.RenderDifference(d, left, right, plainOpts())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 1 {
		t.Errorf("expected Moved to render only its header line with no snippet window, got %q", out)
	}
}

func TestRenderDifference_NilSourceYieldsHeaderOnly(t *testing.T) {
	d := diffyml.Difference{Kind: diffyml.DiffAdded, Path: diffyml.RootPath().PushField("x"), Value: 1}
	out := diffyml.RenderDifference(d, nil, nil, plainOpts())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 1 {
		t.Errorf("expected only the header line when no source resolves, got %q", out)
	}
}

func TestRenderDifference_SideBySideRendersBothColumns(t *testing.T) {
	left := mustSource(t, "spec:\n  replicas: 1\n  strategy:\n    type: RollingUpdate\n", "a.yaml")
	right := mustSource(t, "spec:\n  replicas: 1\n  strategy:\n    type: Recreate\n", "b.yaml")
	d := diffyml.Difference{
		Kind:  diffyml.DiffChanged,
		Path:  diffyml.RootPath().PushField("spec").PushField("strategy"),
		Left:  map[string]interface{}{"type": "RollingUpdate"},
		Right: map[string]interface{}{"type": "Recreate"},
	}

	opts := diffyml.RenderOptions{Color: diffyml.NewColorConfig(diffyml.ColorModeNever, 0), SideBySide: true}
	out := diffyml.RenderDifference(d, left, right, opts)
	if !strings.Contains(out, "RollingUpdate") || !strings.Contains(out, "Recreate") {
		t.Errorf("expected both sides' text to appear in a side-by-side render, got %q", out)
	}
}

func TestRenderDifference_SideBySideScalarAppliesInlineDiff(t *testing.T) {
	left := mustSource(t, "image: app:v1\n", "a.yaml")
	right := mustSource(t, "image: app:v2\n", "b.yaml")
	d := diffyml.Difference{Kind: diffyml.DiffChanged, Path: diffyml.RootPath().PushField("image"), Left: "app:v1", Right: "app:v2"}

	opts := diffyml.RenderOptions{Color: diffyml.NewColorConfig(diffyml.ColorModeNever, 0), SideBySide: true}
	out := diffyml.RenderDifference(d, left, right, opts)
	if !strings.Contains(out, "image: app:v1") || !strings.Contains(out, "image: app:v2") {
		t.Errorf("expected both sides' inline-diffed text in a side-by-side render, got %q", out)
	}
}
