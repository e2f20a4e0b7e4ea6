package vmt

import (
	"strconv"
	"strings"
)

// Parameter values are opaque to the engine, but two shapes recur in
// generated documents: texture paths and bracketed numeric vectors like
// "[ 1 1 1 ]". The helpers here format and recognize the vector shape;
// they never change merge behavior.

// FormatVector renders components as a bracketed vector value.
func FormatVector(vals ...float64) string {
	var b strings.Builder
	b.Grow(2 + len(vals)*8)
	b.WriteString("[")
	for _, v := range vals {
		b.WriteByte(' ')
		b.WriteString(formatFloat(v))
	}
	b.WriteString(" ]")

	return b.String()
}

// ParseVector parses a bracketed vector value. It reports false when the
// value is not vector-shaped or a component is not numeric.
func ParseVector(s string) ([]float64, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, false
	}

	fields := strings.Fields(s[1 : len(s)-1])
	if len(fields) == 0 {
		return nil, false
	}

	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		out = append(out, v)
	}

	return out, true
}

// IsVectorValue reports whether a value looks vector-shaped, parseable or
// not.
func IsVectorValue(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "[")
}

// formatFloat formats a float64 value to a string.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
