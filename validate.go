package vmt

import "strings"

// IssueLevel represents severity of a validation issue.
type IssueLevel string

const (
	// IssueError indicates a validation error.
	IssueError IssueLevel = "error"
	// IssueWarning indicates a validation warning.
	IssueWarning IssueLevel = "warning"
)

// Issue represents a validation issue.
type Issue struct {
	Level   IssueLevel `json:"level" yaml:"level"`                   // Severity level
	Code    string     `json:"code,omitempty" yaml:"code,omitempty"` // Machine-readable code
	Message string     `json:"message" yaml:"message"`               // Issue message
	Path    string     `json:"path,omitempty" yaml:"path,omitempty"` // Affected key or path
}

// Validate runs structural checks on a document and returns issues. It
// never interprets parameter semantics: unknown parameter names are opaque
// data, and texture existence is not resolved.
func Validate(d *Document, opt *ValidateOptions) []Issue {
	vopt := opt.normalize()
	var out []Issue

	switch d.Kind {
	case KindStandard:
		if d.Shader == "" {
			out = append(out, Issue{Level: IssueError, Code: "empty_shader", Message: "standard document without shader name"})
		}
		out = append(out, validateParams(&d.Params, vopt)...)

	case KindPatch:
		if d.Include == "" {
			out = append(out, Issue{Level: IssueError, Code: "missing_include", Message: "patch document without include path"})
		}
		out = append(out, validateParams(&d.Insert, vopt)...)
		out = append(out, validateParams(&d.Replace, vopt)...)
	}

	return out
}

// validateParams checks the parameters of one set.
func validateParams(ps *ParameterSet, opt ValidateOptions) []Issue {
	var out []Issue
	for _, p := range ps.Params() {
		if !opt.DisableKeyPrefixCheck && !strings.HasPrefix(p.Key, "$") {
			out = append(out, Issue{Level: IssueWarning, Code: "key_prefix", Message: "parameter key without '$' prefix", Path: p.Key})
		}

		if !opt.DisableVectorCheck && IsVectorValue(p.Value) {
			if _, ok := ParseVector(p.Value); !ok {
				out = append(out, Issue{Level: IssueWarning, Code: "bad_vector", Message: "bracketed value is not a numeric vector", Path: p.Key})
			}
		}
	}

	return out
}
