package vmt

// ParseOptions controls parsing behavior.
type ParseOptions struct {
	// DisableComments disables // line comments.
	DisableComments bool
}

// FormatOptions controls writer formatting.
type FormatOptions struct {
	// Indent is the indentation string for nested blocks (default is tab,
	// the convention of hand-authored material files).
	Indent string
}

// ValidateOptions controls validation rules.
type ValidateOptions struct {
	// DisableKeyPrefixCheck disables warnings for parameter keys that do
	// not start with '$'.
	DisableKeyPrefixCheck bool
	// DisableVectorCheck disables warnings for bracketed values that do
	// not parse as numeric vectors.
	DisableVectorCheck bool
}

// normalize normalizes the ParseOptions.
func (o *ParseOptions) normalize() ParseOptions {
	if o == nil {
		return ParseOptions{}
	}

	return *o
}

// normalize normalizes the FormatOptions.
func (o *FormatOptions) normalize() FormatOptions {
	if o == nil {
		return FormatOptions{Indent: "\t"}
	}

	out := *o
	if out.Indent == "" {
		out.Indent = "\t"
	}

	return out
}

// normalize normalizes the ValidateOptions.
func (o *ValidateOptions) normalize() ValidateOptions {
	if o == nil {
		return ValidateOptions{}
	}

	return *o
}
