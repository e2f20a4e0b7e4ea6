package vmt

import "fmt"

// Kind discriminates the two structural shapes a material document can have.
type Kind string

const (
	// KindStandard is a flat shader block: "ShaderName" { params... }.
	KindStandard Kind = "standard"
	// KindPatch is a patch block layering insert/replace over an included
	// base document.
	KindPatch Kind = "patch"
)

// Document represents a parsed VMT material document. Exactly one shape is
// populated, selected by Kind: Shader/Params for a standard document,
// Include/Insert/Replace for a patch document.
//
// A patch document never opens its included base; Insert and Replace are
// the only parameters visible to the engine (one level of opacity).
type Document struct {
	Kind    Kind         `json:"kind" yaml:"kind"`                           // Document shape
	Shader  string       `json:"shader,omitempty" yaml:"shader,omitempty"`   // Shader name (standard)
	Params  ParameterSet `json:"params,omitempty" yaml:"params,omitempty"`   // Parameters (standard)
	Include string       `json:"include,omitempty" yaml:"include,omitempty"` // Base document path (patch)
	Insert  ParameterSet `json:"insert,omitempty" yaml:"insert,omitempty"`   // Additive parameters (patch)
	Replace ParameterSet `json:"replace,omitempty" yaml:"replace,omitempty"` // Overriding parameters (patch)
}

// NewStandard creates a standard document.
func NewStandard(shader string, params ...Parameter) *Document {
	return &Document{
		Kind:   KindStandard,
		Shader: shader,
		Params: NewParameterSet(params...),
	}
}

// NewPatch creates a patch document with empty insert and replace sets.
func NewPatch(include string) *Document {
	return &Document{Kind: KindPatch, Include: include}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{
		Kind:    d.Kind,
		Shader:  d.Shader,
		Include: d.Include,
		Params:  d.Params.Clone(),
		Insert:  d.Insert.Clone(),
		Replace: d.Replace.Clone(),
	}

	return out
}

// Flatten returns a single parameter view of the document. For a standard
// document this is a copy of Params; for a patch document insert comes
// first with replace overlaid on top.
func (d *Document) Flatten() ParameterSet {
	if d.Kind == KindStandard {
		return d.Params.Clone()
	}

	out := d.Insert.Clone()
	for _, p := range d.Replace.Params() {
		out.Set(p.Key, p.Value)
	}

	return out
}

// Check verifies structural invariants that make the document renderable.
// A patch without a base to include is not renderable.
func (d *Document) Check() error {
	if d.Kind == KindPatch && d.Include == "" {
		return fmt.Errorf("%w: no base document path", ErrMissingInclude)
	}

	return nil
}
