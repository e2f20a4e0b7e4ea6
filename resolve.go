package vmt

import (
	"path/filepath"
	"strings"
)

// MaterialsPath extracts the material directory relative to a "materials"
// path segment, e.g. "/games/hl2/materials/models/crate" yields
// "models/crate". It reports false when the path has no materials segment.
func MaterialsPath(dir string) (string, bool) {
	norm := strings.ReplaceAll(dir, "\\", "/")
	parts := strings.Split(norm, "/")
	for i, part := range parts {
		if strings.EqualFold(part, "materials") && i+1 < len(parts) {
			rel := strings.Join(parts[i+1:], "/")
			rel = strings.Trim(rel, "/")
			if rel != "" {
				return rel, true
			}
		}
	}

	return "", false
}

// TrimMaterialsPrefix removes a leading "materials/" from a material path.
func TrimMaterialsPrefix(p string) string {
	norm := strings.ReplaceAll(p, "\\", "/")
	if len(norm) >= len("materials/") && strings.EqualFold(norm[:len("materials/")], "materials/") {
		return norm[len("materials/"):]
	}

	return norm
}

// PathResolver resolves material-relative texture paths against GameRoot.
type PathResolver struct {
	GameRoot string
}

// ResolvePath resolves a raw material path against GameRoot.
func (r PathResolver) ResolvePath(raw string) string {
	if raw == "" {
		return ""
	}

	norm := filepath.FromSlash(strings.ReplaceAll(raw, "\\", "/"))
	if filepath.IsAbs(norm) || hasVolume(norm) {
		return filepath.Clean(norm)
	}

	if r.GameRoot == "" {
		return filepath.Clean(norm)
	}

	return filepath.Clean(filepath.Join(r.GameRoot, "materials", norm))
}

// hasVolume checks if the path has a volume.
func hasVolume(p string) bool {
	return len(p) >= 2 && p[1] == ':'
}
