package vmt

import "strings"

// TemplateOptions controls generated material templates.
type TemplateOptions struct {
	// MaterialsPath is the material directory relative to materials/,
	// e.g. "models/props/crate".
	MaterialsPath string
	// LightwarpPath overrides the lightwarp texture path. Defaults to
	// "<MaterialsPath>/shader/toon_light".
	LightwarpPath string
	// Alpha selects the derived alpha parameters added to the insert set.
	Alpha AlphaType
	// Emissive adds the emissive blend family to generated documents.
	Emissive bool
}

// lightwarp returns the effective lightwarp texture path.
func (o TemplateOptions) lightwarp() string {
	if o.LightwarpPath != "" {
		return o.LightwarpPath
	}

	return o.MaterialsPath + "/shader/toon_light"
}

// IsEyeMaterial reports whether a base name selects the eye material
// family.
func IsEyeMaterial(baseName string) bool {
	return strings.EqualFold(baseName, "eye")
}

// BaseIncludePath returns the include path of the shared base document.
func BaseIncludePath(materialsPath string) string {
	return "materials/" + materialsPath + "/shader/vmt-base.vmt"
}

// EyeIncludePath returns the include path of the shared eye base document.
func EyeIncludePath(materialsPath string) string {
	return "materials/" + materialsPath + "/shader/eye_base.vmt"
}

// NewBaseDocument builds the shared VertexLitGeneric base document that
// per-texture patches include.
func NewBaseDocument(opt TemplateOptions) *Document {
	return NewStandard("VertexLitGeneric",
		Parameter{"$basetexture", "basetexture"},
		Parameter{"$lightwarptexture", opt.lightwarp()},
		Parameter{"$nocull", "1"},
		Parameter{"$nodecal", "1"},
		Parameter{"$phong", "1"},
		Parameter{"$halflambert", "1"},
		Parameter{"$phongboost", ".04"},
		Parameter{"$phongalbedotint", "1"},
		Parameter{"$phongfresnelranges", FormatVector(1, .1, .1)},
		Parameter{"$normalmapalphaenvmapmask", "1"},
		Parameter{"$envmapfresnel", "1"},
		Parameter{"$envmaptint", FormatVector(0.4, 0.4, 0.4)},
	)
}

// NewPatchDocument builds the per-texture patch document: additive alpha
// and emissive parameters go to insert, the base texture override goes to
// replace.
func NewPatchDocument(baseName string, opt TemplateOptions) *Document {
	doc := NewPatch(BaseIncludePath(opt.MaterialsPath))
	for _, p := range opt.Alpha.Params() {
		doc.Insert.Set(p.Key, p.Value)
	}
	if opt.Emissive {
		for _, p := range EmissiveParams(opt.MaterialsPath, baseName) {
			doc.Insert.Set(p.Key, p.Value)
		}
		doc.Replace.Set("$selfillum", "0")
	}
	doc.Replace.Set("$basetexture", opt.MaterialsPath+"/"+baseName)

	return doc
}

// NewEyeBaseDocument builds the shared EyeRefract base document.
func NewEyeBaseDocument(opt TemplateOptions) *Document {
	doc := NewStandard("EyeRefract",
		Parameter{"$iris", opt.MaterialsPath + "/eye"},
		Parameter{"$AmbientOcclTexture", opt.MaterialsPath + "/ambient"},
		Parameter{"$Envmap", "Engine/eye-reflection-cubemap-"},
		Parameter{"$CorneaTexture", "Engine/eye-cornea"},
		Parameter{"$EyeballRadius", "0.5"},
		Parameter{"$AmbientOcclColor", FormatVector(0.1, 0.1, 0.1)},
		Parameter{"$Dilation", "0.5"},
		Parameter{"$ParallaxStrength", "0.30"},
		Parameter{"$CorneaBumpStrength", "0.5"},
		Parameter{"$NoDecal", "1"},
		Parameter{"$RaytraceSphere", "0"},
		Parameter{"$SphereTexkillCombo", "0"},
		Parameter{"$lightwarptexture", opt.lightwarp()},
	)
	for _, p := range EmissiveParams(opt.MaterialsPath, "eye") {
		doc.Params.Set(p.Key, p.Value)
	}

	return doc
}

// NewEyePatchDocument builds one of the paired left/right eye patch
// documents. The insert section stays empty; only the iris texture is
// overridden.
func NewEyePatchDocument(baseName string, opt TemplateOptions) *Document {
	doc := NewPatch(EyeIncludePath(opt.MaterialsPath))
	doc.Replace.Set("$iris", opt.MaterialsPath+"/"+baseName)

	return doc
}

// EmissiveParams returns the emissive blend parameter family pointing at
// the companion _E texture of baseName.
func EmissiveParams(materialsPath, baseName string) []Parameter {
	return []Parameter{
		{"$EmissiveBlendEnabled", "1"},
		{"$EmissiveBlendStrength", "0.05"},
		{"$EmissiveBlendTexture", "vgui/white"},
		{"$EmissiveBlendBaseTexture", materialsPath + "/" + baseName + "_E"},
		{"$EmissiveBlendFlowTexture", "vgui/white"},
		{"$EmissiveBlendTint", FormatVector(1, 1, 1)},
		{"$EmissiveBlendScrollVector", FormatVector(0, 0)},
	}
}
