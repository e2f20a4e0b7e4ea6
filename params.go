package vmt

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parameter is one key/value pair of a material document. Keys
// conventionally begin with '$'; values are opaque strings that may encode
// vectors or texture paths.
type Parameter struct {
	Key   string `json:"key" yaml:"key"`     // Parameter name
	Value string `json:"value" yaml:"value"` // Parameter value
}

// ParameterSet is an ordered set of parameters. Keys are unique under
// case-insensitive comparison; insertion order determines serialization
// order. Setting an existing key replaces its value in place while keeping
// its position and original spelling. The zero value is ready to use.
type ParameterSet struct {
	list  []Parameter
	index map[string]int
}

// NewParameterSet builds a set from parameters in order. Duplicate keys
// keep the first occurrence position with the last occurrence value.
func NewParameterSet(params ...Parameter) ParameterSet {
	var ps ParameterSet
	for _, p := range params {
		ps.Set(p.Key, p.Value)
	}

	return ps
}

// normalizeKey folds a key for case-insensitive comparison.
func normalizeKey(key string) string {
	return strings.ToLower(key)
}

// Len returns the number of parameters.
func (ps *ParameterSet) Len() int {
	return len(ps.list)
}

// Get returns the value for key, case-insensitively.
func (ps *ParameterSet) Get(key string) (string, bool) {
	i, ok := ps.index[normalizeKey(key)]
	if !ok {
		return "", false
	}

	return ps.list[i].Value, true
}

// Has reports whether key is present, case-insensitively.
func (ps *ParameterSet) Has(key string) bool {
	_, ok := ps.index[normalizeKey(key)]
	return ok
}

// Set stores key/value. An existing key keeps its position and spelling
// and only its value is replaced; a new key is appended.
func (ps *ParameterSet) Set(key, value string) {
	norm := normalizeKey(key)
	if i, ok := ps.index[norm]; ok {
		ps.list[i].Value = value
		return
	}

	if ps.index == nil {
		ps.index = make(map[string]int)
	}
	ps.index[norm] = len(ps.list)
	ps.list = append(ps.list, Parameter{Key: key, Value: value})
}

// Params returns the parameters in insertion order.
func (ps *ParameterSet) Params() []Parameter {
	if len(ps.list) == 0 {
		return nil
	}

	out := make([]Parameter, len(ps.list))
	copy(out, ps.list)
	return out
}

// Keys returns the parameter keys in insertion order.
func (ps *ParameterSet) Keys() []string {
	if len(ps.list) == 0 {
		return nil
	}

	out := make([]string, len(ps.list))
	for i, p := range ps.list {
		out[i] = p.Key
	}

	return out
}

// Clone returns a deep copy of the set.
func (ps *ParameterSet) Clone() ParameterSet {
	var out ParameterSet
	for _, p := range ps.list {
		out.Set(p.Key, p.Value)
	}

	return out
}

// Equal reports value equality: same length, same key order under
// case-insensitive comparison, and byte-identical values.
func (ps *ParameterSet) Equal(other *ParameterSet) bool {
	if len(ps.list) != len(other.list) {
		return false
	}

	for i, p := range ps.list {
		q := other.list[i]
		if normalizeKey(p.Key) != normalizeKey(q.Key) || p.Value != q.Value {
			return false
		}
	}

	return true
}

// MarshalJSON encodes the set as an ordered parameter list.
func (ps ParameterSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(ps.list)
}

// UnmarshalJSON decodes the set from an ordered parameter list.
func (ps *ParameterSet) UnmarshalJSON(data []byte) error {
	var list []Parameter
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}

	*ps = NewParameterSet(list...)
	return nil
}

// MarshalYAML encodes the set as an ordered parameter list.
func (ps ParameterSet) MarshalYAML() (any, error) {
	return ps.list, nil
}

// UnmarshalYAML decodes the set from an ordered parameter list.
func (ps *ParameterSet) UnmarshalYAML(value *yaml.Node) error {
	var list []Parameter
	if err := value.Decode(&list); err != nil {
		return err
	}

	*ps = NewParameterSet(list...)
	return nil
}
