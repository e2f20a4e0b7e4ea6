package vmt

// AlphaType is the alpha-channel classification of a source texture. The
// classification itself is produced by an external analyzer; the engine
// only maps the label to a compression format and the material parameters
// it implies.
type AlphaType string

const (
	// NoAlpha indicates a texture without a usable alpha channel.
	NoAlpha AlphaType = "none"
	// BinaryAlpha indicates a hard on/off alpha channel.
	BinaryAlpha AlphaType = "binary"
	// GradientAlpha indicates a smooth alpha gradient.
	GradientAlpha AlphaType = "gradient"
)

// Format returns the VTF compression format for the alpha type.
func (a AlphaType) Format() string {
	switch a {
	case BinaryAlpha:
		return "DXT3"
	case GradientAlpha:
		return "DXT5"
	default:
		return "DXT1"
	}
}

// Params returns the derived material parameters implied by the alpha
// type: binary alpha enables alpha testing, gradient alpha enables
// translucency, and opaque textures add nothing.
func (a AlphaType) Params() []Parameter {
	switch a {
	case BinaryAlpha:
		return []Parameter{{Key: "$alphatest", Value: "1"}}
	case GradientAlpha:
		return []Parameter{{Key: "$translucent", Value: "1"}}
	default:
		return nil
	}
}
