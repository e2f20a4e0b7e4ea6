package vmt

import (
	"reflect"
	"testing"
)

func defaultCtx(base string) ClassificationContext {
	return ClassificationContext{BaseName: base, DerivedKeys: DefaultDerivedKeys()}
}

func TestMergeStandard(t *testing.T) {
	existing := NewStandard("VertexLitGeneric",
		Parameter{"$basetexture", "old/path"},
		Parameter{"$surfaceprop", "metal"},
	)
	generated := NewStandard("VertexLitGeneric",
		Parameter{"$basetexture", "new/path"},
		Parameter{"$phong", "1"},
	)

	out := Merge(existing, generated, defaultCtx("crate"))
	if out.Kind != KindStandard {
		t.Fatalf("shape changed: %s", out.Kind)
	}

	want := []Parameter{
		{"$basetexture", "new/path"},
		{"$surfaceprop", "metal"},
		{"$phong", "1"},
	}
	if got := out.Params.Params(); !reflect.DeepEqual(got, want) {
		t.Fatalf("merge result mismatch: %v != %v", got, want)
	}
}

func TestMergePatch(t *testing.T) {
	existing := NewPatch("materials/x/shader/vmt-base.vmt")
	existing.Replace.Set("$basetexture", "x/old")
	existing.Insert.Set("$speed", "7") // hand-added

	generated := NewPatch("materials/x/shader/vmt-base.vmt")
	generated.Replace.Set("$basetexture", "x/new")

	out := Merge(existing, generated, defaultCtx("x"))
	if out.Kind != KindPatch || out.Include != "materials/x/shader/vmt-base.vmt" {
		t.Fatalf("patch structure not preserved: %+v", out)
	}
	if v, _ := out.Replace.Get("$basetexture"); v != "x/new" {
		t.Fatalf("derived replace parameter not refreshed: %q", v)
	}
	if v, _ := out.Insert.Get("$speed"); v != "7" {
		t.Fatalf("hand-added insert parameter lost: %q", v)
	}
}

func TestMergeCustomPreserved(t *testing.T) {
	existing := NewStandard("VertexLitGeneric",
		Parameter{"$detail", "hand/tuned"},
	)
	generated := NewStandard("VertexLitGeneric",
		Parameter{"$detail", "generated/value"},
	)

	out := Merge(existing, generated, defaultCtx("crate"))
	if v, _ := out.Params.Get("$detail"); v != "hand/tuned" {
		t.Fatalf("custom parameter overwritten: %q", v)
	}
}

func TestMergeIdempotent(t *testing.T) {
	doc := NewStandard("VertexLitGeneric",
		Parameter{"$basetexture", "models/crate/body"},
		Parameter{"$surfaceprop", "wood"},
		Parameter{"$phong", "1"},
	)

	out := Merge(doc, doc, defaultCtx("body"))
	if !out.Params.Equal(&doc.Params) {
		t.Fatalf("self-merge changed parameters: %v", out.Params.Params())
	}

	patch := NewPatch("materials/x/base.vmt")
	patch.Insert.Set("$translucent", "1")
	patch.Replace.Set("$basetexture", "x/body")

	out = Merge(patch, patch, defaultCtx("body"))
	if !out.Insert.Equal(&patch.Insert) || !out.Replace.Equal(&patch.Replace) {
		t.Fatalf("self-merge changed patch sections: %+v", out)
	}
}

func TestMergeNilExisting(t *testing.T) {
	generated := NewStandard("VertexLitGeneric", Parameter{"$basetexture", "a"})
	out := Merge(nil, generated, defaultCtx("a"))
	if !reflect.DeepEqual(out, generated) {
		t.Fatalf("first generation must return the template")
	}

	out.Params.Set("$basetexture", "changed")
	if v, _ := generated.Params.Get("$basetexture"); v != "a" {
		t.Fatalf("merge result shares storage with the template")
	}
}

func TestMergeShapeStandardFromPatch(t *testing.T) {
	existing := NewStandard("VertexLitGeneric",
		Parameter{"$basetexture", "old"},
	)

	generated := NewPatch("materials/x/base.vmt")
	generated.Insert.Set("$alphatest", "1")
	generated.Replace.Set("$basetexture", "x/new")

	out := Merge(existing, generated, defaultCtx("x"))
	if out.Kind != KindStandard {
		t.Fatalf("existing shape must win: %s", out.Kind)
	}
	if v, _ := out.Params.Get("$basetexture"); v != "x/new" {
		t.Fatalf("flattened replace not applied: %q", v)
	}
	if v, _ := out.Params.Get("$alphatest"); v != "1" {
		t.Fatalf("flattened insert not applied: %q", v)
	}
}

func TestMergeShapePatchFromStandard(t *testing.T) {
	existing := NewPatch("materials/x/base.vmt")
	existing.Replace.Set("$basetexture", "x/old")

	generated := NewStandard("VertexLitGeneric",
		Parameter{"$basetexture", "x/new"},
		Parameter{"$alphatest", "1"},
	)

	out := Merge(existing, generated, defaultCtx("x"))
	if out.Kind != KindPatch {
		t.Fatalf("existing shape must win: %s", out.Kind)
	}

	// Keys already present in replace stay there, new keys are additive.
	if v, _ := out.Replace.Get("$basetexture"); v != "x/new" {
		t.Fatalf("replace section not refreshed: %q", v)
	}
	if v, _ := out.Insert.Get("$alphatest"); v != "1" {
		t.Fatalf("new key must land in insert: %+v", out.Insert.Params())
	}
	if out.Replace.Has("$alphatest") {
		t.Fatalf("new key leaked into replace")
	}
}
