package diffyml_test

import (
	"testing"

	"github.com/everdiff/everdiff/pkg/diffyml"
)

func TestMatchesTemplate_NilTemplateMatchesAnything(t *testing.T) {
	doc := mustParseOne(t, "a: 1\n")
	if !diffyml.MatchesTemplate(doc, nil) {
		t.Errorf("expected nil template to match anything")
	}
}

func TestMatchesTemplate_MappingContainment(t *testing.T) {
	doc := mustParseOne(t, "kind: Deployment\nmetadata:\n  name: web\n  namespace: default\n")
	template := mustParseOne(t, "kind: Deployment\n")

	if !diffyml.MatchesTemplate(doc, template) {
		t.Errorf("expected doc to structurally contain template")
	}
}

func TestMatchesTemplate_MissingKeyFails(t *testing.T) {
	doc := mustParseOne(t, "kind: Deployment\n")
	template := mustParseOne(t, "kind: Deployment\napiVersion: apps/v1\n")

	if diffyml.MatchesTemplate(doc, template) {
		t.Errorf("expected match to fail when doc lacks a templated key")
	}
}

func TestMatchesTemplate_MismatchedScalarFails(t *testing.T) {
	doc := mustParseOne(t, "kind: Service\n")
	template := mustParseOne(t, "kind: Deployment\n")

	if diffyml.MatchesTemplate(doc, template) {
		t.Errorf("expected match to fail for a differing scalar value")
	}
}

func TestMatchesTemplate_NestedContainment(t *testing.T) {
	doc := mustParseOne(t, "spec:\n  template:\n    spec:\n      containers:\n        - name: app\n          image: app:1.0\n")
	template := mustParseOne(t, "spec:\n  template:\n    spec:\n      containers:\n        - name: app\n")

	if !diffyml.MatchesTemplate(doc, template) {
		t.Errorf("expected nested containment to match")
	}
}

func TestMatchesTemplate_SequenceTooShortFails(t *testing.T) {
	doc := mustParseOne(t, "items:\n  - a\n")
	template := mustParseOne(t, "items:\n  - a\n  - b\n")

	if diffyml.MatchesTemplate(doc, template) {
		t.Errorf("expected match to fail when doc's sequence is shorter than the template's")
	}
}

func TestApplyPrePatches_AppliesMatchingPatchOnly(t *testing.T) {
	deployment := mustParseOne(t, "kind: Deployment\nspec:\n  replicas: 1\n")
	service := mustParseOne(t, "kind: Service\nspec:\n  replicas: 1\n")

	template := mustParseOne(t, "kind: Deployment\n")
	patches := []diffyml.PrePatch{
		{
			Match: template,
			Ops:   []diffyml.PatchOp{{Op: "replace", Path: "/spec/replicas", Value: 3}},
		},
	}

	patchedDeployment, errs := diffyml.ApplyPrePatches(deployment, patches)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	v, err := diffyml.ResolvePointer(patchedDeployment, "/spec/replicas")
	if err != nil || v != 3 {
		t.Errorf("expected replicas replaced to 3, got %v (err %v)", v, err)
	}

	patchedService, errs := diffyml.ApplyPrePatches(service, patches)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	v, err = diffyml.ResolvePointer(patchedService, "/spec/replicas")
	if err != nil || v != 1 {
		t.Errorf("expected a non-matching document to be left untouched, got %v (err %v)", v, err)
	}
}

func TestApplyPrePatches_AddOperation(t *testing.T) {
	doc := mustParseOne(t, "kind: Deployment\nspec:\n  replicas: 1\n")
	patches := []diffyml.PrePatch{
		{
			Match: mustParseOne(t, "kind: Deployment\n"),
			Ops:   []diffyml.PatchOp{{Op: "add", Path: "/spec/paused", Value: true}},
		},
	}

	doc, errs := diffyml.ApplyPrePatches(doc, patches)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	v, err := diffyml.ResolvePointer(doc, "/spec/paused")
	if err != nil || v != true {
		t.Errorf("expected paused=true added, got %v (err %v)", v, err)
	}
}

func TestApplyPrePatches_FailingOpIsNonFatalAndSubsequentOpsStillRun(t *testing.T) {
	doc := mustParseOne(t, "kind: Deployment\nspec:\n  replicas: 1\n")
	patches := []diffyml.PrePatch{
		{
			Match: mustParseOne(t, "kind: Deployment\n"),
			Ops: []diffyml.PatchOp{
				{Op: "replace", Path: "/spec/missing", Value: 99}, // fails: key doesn't exist
				{Op: "replace", Path: "/spec/replicas", Value: 5}, // still runs
			},
		},
	}

	doc, errs := diffyml.ApplyPrePatches(doc, patches)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %d: %v", len(errs), errs)
	}
	v, err := diffyml.ResolvePointer(doc, "/spec/replicas")
	if err != nil || v != 5 {
		t.Errorf("expected the second op to still apply despite the first failing, got %v (err %v)", v, err)
	}
}

func TestApplyPrePatches_UnsupportedOpIsRecordedAsError(t *testing.T) {
	doc := mustParseOne(t, "kind: Deployment\n")
	patches := []diffyml.PrePatch{
		{
			Match: mustParseOne(t, "kind: Deployment\n"),
			Ops:   []diffyml.PatchOp{{Op: "remove", Path: "/kind"}},
		},
	}

	_, errs := diffyml.ApplyPrePatches(doc, patches)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error for an unsupported op, got %d: %v", len(errs), errs)
	}
}

func TestApplyPrePatches_MultiplePatchesAppliedInOrder(t *testing.T) {
	doc := mustParseOne(t, "kind: Deployment\nspec:\n  replicas: 1\n")
	patches := []diffyml.PrePatch{
		{
			Match: mustParseOne(t, "kind: Deployment\n"),
			Ops:   []diffyml.PatchOp{{Op: "replace", Path: "/spec/replicas", Value: 2}},
		},
		{
			Match: mustParseOne(t, "kind: Deployment\n"),
			Ops:   []diffyml.PatchOp{{Op: "replace", Path: "/spec/replicas", Value: 3}},
		},
	}

	doc, errs := diffyml.ApplyPrePatches(doc, patches)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	v, err := diffyml.ResolvePointer(doc, "/spec/replicas")
	if err != nil || v != 3 {
		t.Errorf("expected the later patch's value to win, got %v (err %v)", v, err)
	}
}
