package value

import (
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v4"
)

// FromYAML decodes a YAML or JSON document into a Value tree. YAML is a
// superset of JSON, so a single decoder covers both formats.
func FromYAML(data []byte) (*Value, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("value: failed to decode document: %w", err)
	}
	return decodeNative(raw)
}

// decodeNative converts decoder output into a Value, reporting shapes New
// would panic on (e.g. mappings with non-string keys).
func decodeNative(raw any) (*Value, error) {
	switch d := raw.(type) {
	case map[string]any:
		fields := make(map[string]*Value, len(d))
		for key, child := range d {
			cv, err := decodeNative(child)
			if err != nil {
				return nil, err
			}
			fields[key] = cv
		}
		return New(&Record{fields: fields}), nil
	case []any:
		items := make([]*Value, len(d))
		for i, child := range d {
			cv, err := decodeNative(child)
			if err != nil {
				return nil, err
			}
			items[i] = cv
		}
		return New(SequenceOf(items...)), nil
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return New(d), nil
	default:
		return nil, fmt.Errorf("value: cannot represent %T in a document tree", raw)
	}
}

// MarshalYAML implements yaml.Marshaler, so a Value can be embedded in any
// struct handed to yaml.Marshal.
func (v *Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

// ToYAML encodes a Value tree as YAML.
func ToYAML(v *Value) ([]byte, error) {
	data, err := yaml.Marshal(v.Interface())
	if err != nil {
		return nil, fmt.Errorf("value: failed to encode document: %w", err)
	}
	return data, nil
}

// ToJSON encodes a Value tree as indented JSON.
func ToJSON(v *Value) ([]byte, error) {
	data, err := json.MarshalIndent(v.Interface(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("value: failed to encode document: %w", err)
	}
	return data, nil
}
