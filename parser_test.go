package vmt

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseStandard(t *testing.T) {
	in := `"VertexLitGeneric"
{
	"$basetexture" "models/crate/body"
	$phong 1
	"$BaseTexture" "models/crate/lid"
}`
	doc, err := Parse([]byte(in), nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Kind != KindStandard || doc.Shader != "VertexLitGeneric" {
		t.Fatalf("unexpected document: %+v", doc)
	}

	// Duplicate key: last value wins, first position and spelling kept.
	want := []Parameter{
		{"$basetexture", "models/crate/lid"},
		{"$phong", "1"},
	}
	if got := doc.Params.Params(); !reflect.DeepEqual(got, want) {
		t.Fatalf("params mismatch: %v != %v", got, want)
	}

	if v, ok := doc.Params.Get("$BASETEXTURE"); !ok || v != "models/crate/lid" {
		t.Fatalf("case-insensitive lookup failed: %q %v", v, ok)
	}
}

func TestParsePatch(t *testing.T) {
	in := `PATCH
{
	replace
	{
		"$basetexture" "models/crate/body"
	}
	include "materials/models/crate/shader/vmt-base.vmt"
	insert
	{
		"$translucent" "1"
	}
}`
	doc, err := Parse([]byte(in), nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Kind != KindPatch {
		t.Fatalf("expected patch, got %s", doc.Kind)
	}
	if doc.Include != "materials/models/crate/shader/vmt-base.vmt" {
		t.Fatalf("include mismatch: %q", doc.Include)
	}
	if v, _ := doc.Insert.Get("$translucent"); v != "1" {
		t.Fatalf("insert not parsed: %+v", doc.Insert.Params())
	}
	if v, _ := doc.Replace.Get("$basetexture"); v != "models/crate/body" {
		t.Fatalf("replace not parsed: %+v", doc.Replace.Params())
	}
}

func TestParseLenientContent(t *testing.T) {
	in := `"LightmappedGeneric"
{
	"$basetexture" "walls/brick"
	Proxies
	{
		AnimatedTexture
		{
			animatedtexturevar $basetexture
		}
	}
	%compilenodraw 0
	"$surfaceprop" "brick"
}`
	doc, err := Parse([]byte(in), nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []string{"$basetexture", "$surfaceprop"}
	if got := doc.Params.Keys(); !reflect.DeepEqual(got, want) {
		t.Fatalf("keys mismatch: %v != %v", got, want)
	}
}

func TestParsePatchUnknownSection(t *testing.T) {
	in := `patch
{
	include "materials/x/base.vmt"
	append
	{
		"$detail" "x"
	}
}`
	doc, err := Parse([]byte(in), nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Insert.Len() != 0 || doc.Replace.Len() != 0 {
		t.Fatalf("unknown section leaked parameters: %+v", doc)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", ErrMalformed},
		{"comment only", "// nothing here\n", ErrMalformed},
		{"missing open brace", `"Shader" "$key" "v"`, ErrMalformed},
		{"missing close brace", `"Shader" { "$key" "v"`, ErrMalformed},
		{"unterminated string", `"Shader" { "$key" "v`, ErrMalformed},
		{"value missing", `"Shader" { "$key" }`, ErrMalformed},
		{"unbalanced nested", `"Shader" { block { }`, ErrMalformed},
		{"patch without include", "patch { insert { } replace { } }", ErrMissingInclude},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in), nil)
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseErrorOffset(t *testing.T) {
	_, err := Parse([]byte(`"Shader" { "$key" }`), nil)
	if err == nil || !strings.Contains(err.Error(), "offset 18") {
		t.Fatalf("error must carry the byte offset: %v", err)
	}
}
