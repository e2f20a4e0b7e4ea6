package vmt

import "testing"

func TestClassify(t *testing.T) {
	existing := NewParameterSet(
		Parameter{"$basetexture", "old/crate"},
		Parameter{"$surfaceprop", "metal"},
		Parameter{"$detail", "models/crate/detail"},
		Parameter{"$envmap", "env_cubemap"},
	)
	generated := NewParameterSet(
		Parameter{"$basetexture", "new/crate"}, // in the derived table
		Parameter{"$detail", "other/detail"},   // existing value names the material
		Parameter{"$envmap", "custom/cube"},    // listed derived key
		Parameter{"$phong", "1"},               // absent from existing
		Parameter{"$surfaceprop", "wood"},      // custom, existing value unrelated
	)

	ctx := ClassificationContext{
		BaseName:    "crate",
		DerivedKeys: NewKeySet("$basetexture", "$envmap"),
	}
	derived := Classify(&existing, &generated, ctx)

	for _, key := range []string{"$basetexture", "$detail", "$envmap", "$phong"} {
		if !derived.Has(key) {
			t.Fatalf("%s must be derived", key)
		}
	}
	if derived.Has("$surfaceprop") {
		t.Fatalf("$surfaceprop must stay custom")
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	existing := NewParameterSet(Parameter{"$BumpMap", "models/CRATE_n"})
	generated := NewParameterSet(Parameter{"$bumpmap", "models/crate_n"})

	ctx := ClassificationContext{BaseName: "Crate", DerivedKeys: NewKeySet()}
	if !Classify(&existing, &generated, ctx).Has("$BUMPMAP") {
		t.Fatalf("base name match must ignore case")
	}
}

func TestClassifyEmptyBaseName(t *testing.T) {
	existing := NewParameterSet(Parameter{"$detail", "anything"})
	generated := NewParameterSet(Parameter{"$detail", "new"})

	ctx := ClassificationContext{DerivedKeys: NewKeySet()}
	if Classify(&existing, &generated, ctx).Has("$detail") {
		t.Fatalf("empty base name must never match values")
	}
}

func TestDefaultDerivedKeys(t *testing.T) {
	keys := DefaultDerivedKeys()
	for _, k := range []string{"$basetexture", "$PHONG", "$EmissiveBlendEnabled", "$iris"} {
		if !keys.Has(k) {
			t.Fatalf("default table missing %s", k)
		}
	}
	if keys.Has("$surfaceprop") {
		t.Fatalf("$surfaceprop must not be derived by default")
	}
}
