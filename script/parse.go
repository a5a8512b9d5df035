package script

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v4"
)

// Parse parses a revision script from YAML or JSON bytes.
//
// The function automatically detects the format (JSON or YAML) and parses
// accordingly. Returns the parsed Script or an error if parsing fails.
func Parse(data []byte) (*Script, error) {
	var s Script

	// yaml.Unmarshal handles both YAML and JSON
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, &ParseError{Cause: err}
	}

	return &s, nil
}

// ParseFile parses a revision script from a file path.
//
// Supports both YAML (.yaml, .yml) and JSON (.json) files.
func ParseFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Cause: err}
	}

	s, err := Parse(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return nil, pe
		}
		return nil, &ParseError{Path: path, Cause: err}
	}

	return s, nil
}

// IsScript checks if the given bytes appear to be a revision script.
//
// This is a heuristic check that looks for the "revision" version field.
func IsScript(data []byte) bool {
	return bytes.Contains(data, []byte("revision:")) ||
		bytes.Contains(data, []byte(`"revision":`))
}

// Marshal serializes a script to YAML bytes.
func Marshal(s *Script) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("script: failed to marshal: %w", err)
	}
	return data, nil
}
