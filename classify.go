package vmt

import "strings"

// KeySet is a case-insensitive set of parameter keys.
type KeySet map[string]struct{}

// NewKeySet creates a key set from keys.
func NewKeySet(keys ...string) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s.Add(k)
	}

	return s
}

// Add inserts a key into the set.
func (s KeySet) Add(key string) {
	s[normalizeKey(key)] = struct{}{}
}

// Has reports whether key is in the set, case-insensitively.
func (s KeySet) Has(key string) bool {
	_, ok := s[normalizeKey(key)]
	return ok
}

// Clone returns a copy of the set.
func (s KeySet) Clone() KeySet {
	out := make(KeySet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}

	return out
}

// ClassificationContext carries the inputs of derived-versus-custom
// parameter decisions. BaseName is derived from the source texture file
// name; DerivedKeys is a configuration table of parameter names that are
// always safe to regenerate.
type ClassificationContext struct {
	BaseName    string // Material base name
	DerivedKeys KeySet // Parameters always considered generated
}

// DefaultDerivedKeys returns the parameter families the conversion
// pipeline regenerates. Callers may clone and extend the set or supply
// their own table; the engine treats it as plain configuration.
func DefaultDerivedKeys() KeySet {
	return NewKeySet(
		"$basetexture",
		"$bumpmap",
		"$lightwarptexture",
		"$phong",
		"$phongboost",
		"$phongexponenttexture",
		"$phongalbedotint",
		"$phongfresnelranges",
		"$envmap",
		"$envmaptint",
		"$envmapfresnel",
		"$normalmapalphaenvmapmask",
		"$halflambert",
		"$nocull",
		"$nodecal",
		"$alphatest",
		"$translucent",
		"$selfillum",
		"$selfillummask",
		"$additive",
		"$iris",
		"$emissiveblendenabled",
		"$emissiveblendstrength",
		"$emissiveblendtexture",
		"$emissiveblendbasetexture",
		"$emissiveblendflowtexture",
		"$emissiveblendtint",
		"$emissiveblendscrollvector",
	)
}

// Classify returns the subset of generated's keys that are authorized to
// overwrite existing. A key is derived when it is in ctx.DerivedKeys, when
// it is absent from existing (new parameters are always added), or when
// its existing value references ctx.BaseName (the parameter already points
// at a texture of this material, so refreshing it loses nothing). All
// other overlapping keys are custom and must be left untouched.
func Classify(existing, generated *ParameterSet, ctx ClassificationContext) KeySet {
	out := make(KeySet)
	base := strings.ToLower(ctx.BaseName)

	for _, key := range generated.Keys() {
		if ctx.DerivedKeys.Has(key) {
			out.Add(key)
			continue
		}

		val, ok := existing.Get(key)
		if !ok {
			out.Add(key)
			continue
		}

		if base != "" && strings.Contains(strings.ToLower(val), base) {
			out.Add(key)
		}
	}

	return out
}
